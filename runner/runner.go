package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dantin/logger"
	"github.com/dantin/mlixir/pkg/utils"
	"github.com/dantin/mlixir/probe"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Logger is the leveled logger a Runner writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Runner parses the command line, then probes the configured stream once.
type Runner struct {
	// Name is the application name used in the version line and usage text.
	Name string
	// Stdout receives the version line and usage text, defaults to os.Stdout.
	Stdout io.Writer
	// Log receives the run log until NewLogger replaces it, defaults to info level on Stdout.
	Log Logger
	// NewLogger, if set, builds the logger used once the log level is known.
	NewLogger func(level string) (Logger, error)
	// NewProber builds the media prober for the resolved configuration.
	NewProber func(cfg *Config) probe.Prober
}

// Run executes the application with the given arguments and returns the process exit code.
//
// The probe outcome is only logged, it never changes the exit code.
func (r *Runner) Run(ctx context.Context, args []string) int {
	name := r.Name
	if name == "" {
		name = defaultName
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	log := r.Log
	if log == nil {
		l, _ := logger.New(defaultLevel, stdout)
		log = utils.NewLogger(l)
	}

	fmt.Fprintf(stdout, "%s %s\n", name, version)
	log.Infof("Welcome to %s!", name)

	cfg := NewConfig(name, stdout)
	if err := cfg.Parse(args); err != nil {
		log.Errorf("%v", err)
		return ExitFailure
	}
	if cfg.HelpRequested {
		return ExitSuccess
	}

	if r.NewLogger != nil {
		l, err := r.NewLogger(cfg.Level)
		if err != nil {
			log.Errorf("fail to setup logger, %v", err)
			return ExitFailure
		}
		log = l
	}
	if cfg.ConfigFile != "" {
		log.Debugf("Using config file from '%s'", cfg.ConfigFile)
	}

	log.Infof("options->apples value: %s", cfg.Apples)
	log.Infof("options->oranges value: %s.", cfg.Oranges)

	log.Infof("Start App!")

	r.probe(ctx, log, cfg)

	return ExitSuccess
}

func (r *Runner) probe(ctx context.Context, log Logger, cfg *Config) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var prober probe.Prober
	if r.NewProber != nil {
		prober = r.NewProber(cfg)
	} else {
		prober = probe.NewFFprobe(cfg.FFprobe)
	}

	res, err := prober.Probe(ctx, cfg.URL)
	if res == nil {
		res = &probe.Result{Code: probe.CodeUnavailable}
	}

	if !res.OK() {
		switch {
		case ctx.Err() != nil:
			log.Infof("open input %s failed(%d), %v", cfg.URL, res.Code, ctx.Err())
		case err != nil:
			log.Infof("open input %s failed(%d), %v", cfg.URL, res.Code, err)
		case res.Detail != "":
			log.Infof("open input %s failed(%d), %s", cfg.URL, res.Code, res.Detail)
		default:
			log.Infof("open input %s failed(%d)", cfg.URL, res.Code)
		}
		return
	}

	log.Infof("open input %s success(%d)", cfg.URL, res.Code)
	if err != nil {
		log.Warnf("stream opened but not identified, %v", err)
		return
	}
	if f := res.Format; f != nil {
		log.Infof("format: %s (%s), %d streams", f.FormatName, f.FormatLongName, f.NbStreams)
		log.Debugf("input %s: duration %.3fs, bit rate %d, probe score %d", f.Filename, f.Duration, f.BitRate, f.ProbeScore)
	}
}
