// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup applies level and format to the standard logrus logger.
func Setup(level, format string) error {
	return Configure(log.StandardLogger(), os.Stderr, level, format)
}

// Configure applies level, format and output to logger.
func Configure(logger *log.Logger, out io.Writer, level, format string) error {
	if logger == nil {
		return fmt.Errorf("logger is required")
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = log.InfoLevel.String()
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format %q", format)
	}
	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetLevel(parsed)
	return nil
}
