package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ffprobe -show_format output for the Big Buck Bunny HLS test stream.
const sampleHLS = `{
    "format": {
        "filename": "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
        "nb_streams": 2,
        "nb_programs": 5,
        "format_name": "hls",
        "format_long_name": "Apple HTTP Live Streaming",
        "start_time": "10.000000",
        "duration": "634.566667",
        "size": "N/A",
        "bit_rate": "N/A",
        "probe_score": 100
    }
}`

func TestParseJSON(t *testing.T) {
	f, err := ParseJSON([]byte(sampleHLS))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "hls", f.FormatName)
	assert.Equal(t, "Apple HTTP Live Streaming", f.FormatLongName)
	assert.Equal(t, 2, f.NbStreams)
	assert.InDelta(t, 634.566667, f.Duration, 1e-6)
	assert.Equal(t, int64(0), f.BitRate)
	assert.Equal(t, 100, f.ProbeScore)
}

func TestParseJSONWithoutFormat(t *testing.T) {
	f, err := ParseJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"format":`))
	assert.Error(t, err)
}

// fakeFFprobe writes a shell script standing in for ffprobe.
func fakeFFprobe(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	path := filepath.Join(t.TempDir(), "ffprobe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestFFprobeSuccess(t *testing.T) {
	path := fakeFFprobe(t, "cat <<'EOF'\n"+sampleHLS+"\nEOF")

	res, err := NewFFprobe(path).Probe(context.Background(), "https://example.com/live.m3u8")
	require.NoError(t, err)
	assert.True(t, res.OK())
	require.NotNil(t, res.Format)
	assert.Equal(t, "hls", res.Format.FormatName)
}

func TestFFprobePassesURLLast(t *testing.T) {
	path := fakeFFprobe(t, `for last; do :; done; printf '{"format":{"filename":"%s"}}' "$last"`)

	res, err := NewFFprobe(path).Probe(context.Background(), "rtmp://example.com/app/stream")
	require.NoError(t, err)
	require.NotNil(t, res.Format)
	assert.Equal(t, "rtmp://example.com/app/stream", res.Format.Filename)
}

func TestFFprobeFailureCode(t *testing.T) {
	path := fakeFFprobe(t, "echo 'first line' >&2; echo 'Server returned 404 Not Found' >&2; exit 1")

	res, err := NewFFprobe(path).Probe(context.Background(), "https://example.com/missing.m3u8")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "Server returned 404 Not Found", res.Detail)
	assert.Nil(t, res.Format)
}

func TestFFprobeGarbageOutput(t *testing.T) {
	path := fakeFFprobe(t, "echo not-json")

	res, err := NewFFprobe(path).Probe(context.Background(), "https://example.com/live.m3u8")
	assert.Error(t, err)
	assert.True(t, res.OK())
	assert.Nil(t, res.Format)
}

func TestResultOK(t *testing.T) {
	assert.True(t, (&Result{}).OK())
	assert.False(t, (&Result{Code: 7}).OK())
	assert.False(t, (*Result)(nil).OK())
}

func TestFFprobeUnavailable(t *testing.T) {
	res, err := NewFFprobe(filepath.Join(t.TempDir(), "missing")).Probe(context.Background(), "https://example.com/live.m3u8")
	assert.Error(t, err)
	assert.Equal(t, CodeUnavailable, res.Code)
}

func TestNewFFprobeDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFFprobe, NewFFprobe("").path)
}
