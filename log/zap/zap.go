package zap

import (
	"github.com/kstenerud/go-bonjson"
	"go.uber.org/zap"
)

// Logger adapts *zap.Logger to bonjson.Logger.
type Logger struct{ L *zap.Logger }

var _ bonjson.Logger = Logger{}

func (z Logger) Debug(msg string, f bonjson.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f bonjson.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f bonjson.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f bonjson.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f bonjson.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
