package logging

import (
	"io"

	"github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing text lines to w. Debug messages (V(1)) are
// only emitted when verbose is set.
func New(w io.Writer, verbose bool) logr.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return logrusr.New(l)
}
