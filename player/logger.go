package player

import (
	"io"

	"github.com/sirupsen/logrus"
)

// nopLogger returns a logger that discards everything written to it.
func nopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
