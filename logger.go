package bonjson

import "github.com/kstenerud/go-bonjson/internal/obslog"

// Fields is a minimal structured field map for logs.
type Fields = obslog.Fields

// Logger is a tiny leveled logger. Provide an adapter around your logging
// stack (see log/zap, log/logrus, log/slog, log/glog). NewEncoder/Decode
// default to NopLogger when none is supplied via NewEncoderWithOptions'
// EncoderOptions or DecodeWithOptions' logger argument.
type Logger = obslog.Logger

// NopLogger is a default no-op.
type NopLogger = obslog.NopLogger
