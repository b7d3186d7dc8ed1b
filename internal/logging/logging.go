// Package logging configures the application logger. The TUI owns the
// terminal, so log output goes to a file under the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// New creates a file-backed logger. An empty path yields a logger that
// discards everything, which keeps call sites unconditional.
func New(path string, verbose bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&nested.Formatter{
		TimestampFormat: time.RFC3339,
		HideKeys:        false,
		NoColors:        true,
	})

	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if path == "" {
		log.SetOutput(io.Discard)
		return log, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)

	return log, nil
}
