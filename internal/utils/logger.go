package utils

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger shared by every component. Debug mode turns on
// debug-level output; everything else stays at info.
func NewLogger(debug bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
