// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out, configured from the environment:
// LOG_LEVEL (default "info") and LOG_FORMAT ("json" or "text").
// Call it once in main and pass the result down.
func New(out io.Writer) *logrus.Logger {
	log := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   out == os.Stdout || out == os.Stderr,
		})
	}

	log.SetOutput(out)
	return log
}

// Quiet returns a logger that drops everything below warnings. The headless
// tools use it so per-map chatter stays out of their reports.
func Quiet(out io.Writer) *logrus.Logger {
	log := New(out)
	if log.GetLevel() > logrus.WarnLevel {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
