package subprocess

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestRunCollectsOutput(t *testing.T) {
	skipOnWindows(t)

	sp := NewSubprocess(context.Background(), "/bin/sh", []string{"FRUIT=apple"}, "-c", `echo "out $FRUIT"; echo err >&2`)

	res, err := sp.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out apple\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
}

func TestRunNonzeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	res, err := NewSubprocess(context.Background(), "/bin/sh", nil, "-c", "exit 3").Run()
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunMissingExecutable(t *testing.T) {
	res, err := NewSubprocess(context.Background(), "/nonexistent/ffprobe", nil).Run()
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestRunKilledOnContextDone(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := NewSubprocess(ctx, "/bin/sh", nil, "-c", "exec sleep 5").Run()
	require.NoError(t, err)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 4*time.Second)
}
