package runner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dantin/mlixir/pkg/utils"
	"github.com/dantin/mlixir/probe"
	"gopkg.in/alecthomas/kingpin.v2"
	yaml "gopkg.in/yaml.v2"
)

const (
	version     = "0.1.0-dev"
	defaultName = "mlixir"

	defaultApples  = "10"
	defaultOranges = "20"
	defaultURL     = "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8"
	defaultLevel   = "info"
)

var levels = []string{"debug", "info", "warn", "error", "fatal"}

// ArgumentError reports command line input which does not match the option schema.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid command line argument, %v", e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Config holds the resolved options of a single run.
type Config struct {
	ConfigFile string        `yaml:"-"`
	Apples     string        `yaml:"apples"`
	Oranges    string        `yaml:"oranges"`
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	Level      string        `yaml:"level"`
	FFprobe    string        `yaml:"ffprobe"`

	// HelpRequested is set when usage was printed instead of running.
	HelpRequested bool `yaml:"-"`

	app *kingpin.Application
	// flags given on the command line, these win over the config file.
	explicit map[string]bool
}

// NewConfig creates the option schema of the application. Usage text is written to w.
func NewConfig(name string, w io.Writer) *Config {
	if name == "" {
		name = defaultName
	}
	cfg := &Config{explicit: make(map[string]bool)}

	app := kingpin.New(name, "Resolve the fruit options, then try to open a media stream.")
	app.UsageWriter(w)
	app.ErrorWriter(w)
	app.Terminate(func(int) { cfg.HelpRequested = true })
	app.HelpFlag.Short('h')

	cfg.flag(app, "config", 'c', "Path to YAML config file.").StringVar(&cfg.ConfigFile)
	cfg.flag(app, "apples", 'a', "how many apples do you have").Default(defaultApples).StringVar(&cfg.Apples)
	cfg.flag(app, "oranges", 'o', "how many oranges do you have").Default(defaultOranges).StringVar(&cfg.Oranges)
	cfg.flag(app, "url", 'u', "Stream URL to open.").Default(defaultURL).StringVar(&cfg.URL)
	cfg.flag(app, "timeout", 't', "Give up opening the stream after this long, 0 waits forever.").Default("0s").DurationVar(&cfg.Timeout)
	cfg.flag(app, "level", 'l', "Log level, supported level: debug, info, warn, error, fatal.").Default(defaultLevel).EnumVar(&cfg.Level, levels...)
	cfg.flag(app, "ffprobe", 0, "Path to the ffprobe executable.").Default(probe.DefaultFFprobe).StringVar(&cfg.FFprobe)

	cfg.app = app
	return cfg
}

func (cfg *Config) flag(app *kingpin.Application, name string, short rune, help string) *kingpin.FlagClause {
	f := app.Flag(name, help).Action(func(*kingpin.ParseContext) error {
		cfg.explicit[name] = true
		return nil
	})
	if short != 0 {
		f.Short(short)
	}
	return f
}

// Parse parses configuration from command line arguments.
//
// With no arguments at all, or when help is requested, usage is printed and
// HelpRequested is set. Any failure is an *ArgumentError.
func (cfg *Config) Parse(args []string) error {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	if _, err := cfg.app.Parse(args); err != nil {
		return &ArgumentError{Err: err}
	}

	if cfg.HelpRequested {
		return nil
	}

	// load configuration if specified, command line options still win.
	if cfg.ConfigFile != "" {
		cfg.ConfigFile = utils.WorkingPath(cfg.ConfigFile)
		if err := cfg.configFromFile(cfg.ConfigFile); err != nil {
			return &ArgumentError{Err: fmt.Errorf("fail to load config from file, %w", err)}
		}
	}

	if err := cfg.validate(); err != nil {
		return &ArgumentError{Err: err}
	}

	return nil
}

func (cfg *Config) configFromFile(path string) error {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file Config
	if err := yaml.UnmarshalStrict(yamlFile, &file); err != nil {
		return err
	}

	cfg.merge("apples", &cfg.Apples, file.Apples)
	cfg.merge("oranges", &cfg.Oranges, file.Oranges)
	cfg.merge("url", &cfg.URL, file.URL)
	cfg.merge("level", &cfg.Level, file.Level)
	cfg.merge("ffprobe", &cfg.FFprobe, file.FFprobe)
	if !cfg.explicit["timeout"] && file.Timeout != 0 {
		cfg.Timeout = file.Timeout
	}

	return nil
}

func (cfg *Config) merge(name string, dst *string, value string) {
	if cfg.explicit[name] || value == "" {
		return
	}
	*dst = value
}

func (cfg *Config) validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("stream url must be set")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid value of timeout %v", cfg.Timeout)
	}
	if cfg.FFprobe == "" {
		return fmt.Errorf("ffprobe path must be set")
	}

	for _, l := range levels {
		if cfg.Level == l {
			return nil
		}
	}
	return fmt.Errorf("unsupported log level %q", cfg.Level)
}
