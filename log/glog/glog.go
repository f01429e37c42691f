// Package glog adapts github.com/golang/glog to bonjson.Logger. glog has no
// native structured-field or debug-level API, so Debug maps to V(1).Infof
// and fields are flattened into the message, the same tradeoff glog's own
// users accept for its other structured-logging adapters.
package glog

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/kstenerud/go-bonjson"
)

// Logger adapts glog's package-level functions to bonjson.Logger.
type Logger struct{}

var _ bonjson.Logger = Logger{}

func (Logger) Debug(msg string, f bonjson.Fields) { glog.V(1).Info(format(msg, f)) }
func (Logger) Info(msg string, f bonjson.Fields)  { glog.Info(format(msg, f)) }
func (Logger) Warn(msg string, f bonjson.Fields)  { glog.Warning(format(msg, f)) }
func (Logger) Error(msg string, f bonjson.Fields) { glog.Error(format(msg, f)) }

func format(msg string, f bonjson.Fields) string {
	if len(f) == 0 {
		return msg
	}
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return msg + " " + strings.Join(parts, " ")
}
