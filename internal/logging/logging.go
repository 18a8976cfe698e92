package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options controls where a logger writes and how verbose it is.
type Options struct {
	Level string
	// File, when set, receives log output instead of stderr.
	File string
	// Output overrides both File and stderr. Used by tests.
	Output io.Writer
}

// New creates a component logger and returns it with a cleanup. Stdout is never
// used because it carries the stdio protocol stream.
func New(component string, opts Options) (*logrus.Entry, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	cleanup := func() {}
	switch {
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	case opts.File != "":
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(f)
		cleanup = func() { _ = f.Close() }
	default:
		logger.SetOutput(os.Stderr)
	}

	return logger.WithField("component", component), cleanup, nil
}
