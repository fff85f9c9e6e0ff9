package main

import (
	"context"
	"os"

	"github.com/dantin/logger"
	"github.com/dantin/mlixir/pkg/utils"
	"github.com/dantin/mlixir/probe"
	"github.com/dantin/mlixir/runner"
)

const appName = "mlixir"

func newLogger(level string) (runner.Logger, error) {
	l, err := logger.New(level, os.Stdout)
	if err != nil {
		return nil, err
	}
	logger.Set(l)

	return utils.NewLogger(l), nil
}

func run() int {
	l, err := logger.New("info", os.Stdout)
	if err != nil {
		panic(err)
	}
	logger.Set(l)
	defer logger.Unset()

	intr := utils.NotifyInterrupt(context.Background())
	defer intr.Stop()

	r := &runner.Runner{
		Name:      appName,
		Stdout:    os.Stdout,
		Log:       utils.NewLogger(l),
		NewLogger: newLogger,
		NewProber: func(cfg *runner.Config) probe.Prober {
			return probe.NewFFprobe(cfg.FFprobe)
		},
	}
	code := r.Run(intr.Context(), os.Args[1:])

	// a terminated run is never reported as success.
	return intr.ExitCode(code)
}

func main() {
	os.Exit(run())
}
