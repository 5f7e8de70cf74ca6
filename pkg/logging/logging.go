// Package logging builds the logrus loggers used across postmortem.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.InfoLevel

// New returns a logger writing to out at the given level. Colours are enabled
// only when out is a terminal.
func New(level string, out io.Writer) (*log.Logger, error) {
	lvl := DefaultLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", level)
		}
		lvl = parsed
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: !isTerminal(out),
		FullTimestamp: true,
	})
	return logger, nil
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Entry returns e, or an entry on the standard logger when e is nil.
func Entry(e *log.Entry) *log.Entry {
	if e != nil {
		return e
	}
	return log.NewEntry(log.StandardLogger())
}

// Discard returns an entry that drops everything.
func Discard() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}
