package logging

// Package logging builds the file logger shared by every component. All
// significant success and failure events end up in one append-only log
// file; the console stays reserved for prompts and progress.

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log file permissions
const (
	DefaultFilePermissions = 0644
)

// New returns a logger appending timestamp/level/message lines to the
// given file. The returned closer flushes and releases the file handle.
func New(path string) (*logrus.Logger, io.Closer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DefaultFilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	return logger, file, nil
}

// NewDiscard returns a logger that drops everything; used in tests
func NewDiscard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
