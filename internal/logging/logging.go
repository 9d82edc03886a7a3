// Package logging builds the run logger handed to each pipeline step.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const Prefix = "[socialposts] "

// New returns a logger writing to stderr, or to logFile when set. The
// returned close func must be called when the run ends. If the log file
// cannot be opened the logger stays on stderr.
func New(logFile string) (*log.Logger, func() error) {
	logger := log.New(os.Stderr, Prefix, log.LstdFlags)
	closeLog := func() error { return nil }

	logFile = strings.TrimSpace(logFile)
	if logFile == "" {
		return logger, closeLog
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		logger.Printf("log file %s unavailable: %v", logFile, err)
		return logger, closeLog
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Printf("log file %s unavailable: %v", logFile, err)
		return logger, closeLog
	}
	logger.SetOutput(f)
	return logger, f.Close
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, Prefix, 0)
}
