package utils

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dantin/logger"
)

// Logger writes leveled lines to a logger.Logger, tagged with the file and
// line of the code calling Debugf, Infof, Warnf or Errorf.
type Logger struct {
	l logger.Logger
}

// NewLogger wraps l. A nil l discards everything.
func NewLogger(l logger.Logger) *Logger {
	if l == nil {
		l = logger.Disabled
	}
	return &Logger{l: l}
}

// Debugf logs at debug level.
func (lg *Logger) Debugf(format string, args ...interface{}) {
	lg.log(logger.DebugLevel, format, args)
}

// Infof logs at info level.
func (lg *Logger) Infof(format string, args ...interface{}) {
	lg.log(logger.InfoLevel, format, args)
}

// Warnf logs at warn level.
func (lg *Logger) Warnf(format string, args ...interface{}) {
	lg.log(logger.WarningLevel, format, args)
}

// Errorf logs at error level.
func (lg *Logger) Errorf(format string, args ...interface{}) {
	lg.log(logger.ErrorLevel, format, args)
}

func (lg *Logger) log(level logger.Level, format string, args []interface{}) {
	if lg.l.Level() > level {
		return
	}

	// skip log and the exported level method.
	pkg, file, line := "???", "???", 0
	if _, p, ln, ok := runtime.Caller(2); ok {
		pkg = filepath.Base(path.Dir(p))
		name := filepath.Base(p)
		file = strings.TrimSuffix(name, filepath.Ext(name))
		line = ln
	}

	// the finished line is used as a format string once more on output.
	msg := strings.ReplaceAll(fmt.Sprintf(format, args...), "%", "%%")
	lg.l.Log(level, pkg, file, line, "%s", msg)
}
