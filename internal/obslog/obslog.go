// Package obslog holds the Logger/Hooks shapes shared by the root package
// and internal/posmap, so the scanner can fire them without importing the
// root package (which itself imports internal/posmap) and creating an
// import cycle. The root package's Logger/Hooks/Fields/NopLogger/NopHooks
// are plain aliases to the types here.
package obslog

import "github.com/kstenerud/go-bonjson/internal/errkind"

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around your logging
// stack (see log/zap, log/logrus, log/slog, log/glog). If Logger is nil,
// logging is disabled.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger is a default no-op.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// Hooks are lightweight callbacks for high-signal codec events.
// Implementations MUST be cheap and non-blocking; do not perform I/O.
// If work may block, buffer it and drop on backpressure (best effort) --
// see hooks/async for a bounded-queue dispatcher.
type Hooks interface {
	Encoded(byteLen int, depth int)
	Decoded(byteLen int, entryCount int)
	CacheHit(key string)
	CacheMiss(key string)
	PolicyViolation(kind errkind.Kind, offset int)
	LimitExceeded(kind errkind.Kind)
}

// NopHooks is a default no-op.
type NopHooks struct{}

func (NopHooks) Encoded(int, int)                  {}
func (NopHooks) Decoded(int, int)                  {}
func (NopHooks) CacheHit(string)                   {}
func (NopHooks) CacheMiss(string)                  {}
func (NopHooks) PolicyViolation(errkind.Kind, int) {}
func (NopHooks) LimitExceeded(errkind.Kind)        {}
