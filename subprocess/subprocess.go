package subprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Result holds the outcome of a process which ran to completion.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Subprocess is used to run an external program once and collect its output.
type Subprocess struct {
	name string

	cmd    *exec.Cmd
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// NewSubprocess returns a subprocess which will run program `executable`, with current environment,
// as well as `extEnv` variables added to it (if they're not empty), it will also use the provided
// `args` as program arguments. The process is killed when ctx is done.
func NewSubprocess(ctx context.Context, executable string, extEnv []string, args ...string) *Subprocess {
	_, name := filepath.Split(executable)

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Env = append(os.Environ(), extEnv...)

	sp := &Subprocess{
		name:   name,
		cmd:    cmd,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	cmd.Stdout = sp.stdout
	cmd.Stderr = sp.stderr

	return sp
}

// Run starts the program and waits for it to exit.
//
// A program which exits with a nonzero status is not an error: its status is
// reported through Result.ExitCode. An error is returned only when the program
// could not be started or waited for.
func (sp *Subprocess) Run() (*Result, error) {
	err := sp.cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("start process %s failed, %w", sp.name, err)
		}
	}

	return &Result{
		ExitCode: sp.cmd.ProcessState.ExitCode(),
		Stdout:   sp.stdout.Bytes(),
		Stderr:   sp.stderr.Bytes(),
	}, nil
}
