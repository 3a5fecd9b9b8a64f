// Package logger configures the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logger from LOG_LEVEL and LOG_FORMAT.
// It is called once from main before anything logs.
func Init() {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	if err := Configure(logrus.StandardLogger(), level, os.Getenv("LOG_FORMAT"), os.Stderr); err != nil {
		logrus.WithError(err).Warn("logger: falling back to info level")
	}
}

// Configure applies a level name and a format ("json" or "text") to log.
// An unknown level leaves log at info and is reported.
func Configure(log *logrus.Logger, level, format string, out io.Writer) error {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	if out != nil {
		log.SetOutput(out)
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		return fmt.Errorf("logger: %w", err)
	}
	log.SetLevel(parsed)
	return nil
}
