package logrus

import (
	"github.com/kstenerud/go-bonjson"
	"github.com/sirupsen/logrus"
)

// Logger adapts *logrus.Entry to bonjson.Logger.
type Logger struct{ E *logrus.Entry }

var _ bonjson.Logger = Logger{}

func (l Logger) Debug(msg string, f bonjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l Logger) Info(msg string, f bonjson.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f bonjson.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f bonjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
