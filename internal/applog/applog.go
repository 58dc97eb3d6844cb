// Package applog sets up the structured logger shared by the CLI and its
// subcommands. The codec package itself never logs; only operational
// events at the CLI boundary do.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a *logrus.Logger with a JSON formatter writing to stdout and
// the given level. An unparseable level falls back to Info rather than
// failing startup over a logging preference.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
