package compat

import (
	"fmt"

	"github.com/kstenerud/go-bonjson"
)

// MaxDecodeBytes wraps a decode function (FromCBOR, FromMsgpack, FromJSON,
// ...) to reject an oversized payload before it ever reaches the underlying
// library, carried over from the teacher's codec/limit.go LimitCodec
// unchanged in shape. maxLen<=0 disables the guard and returns decode
// unwrapped.
func MaxDecodeBytes(maxLen int, decode func([]byte) (bonjson.Value, error)) func([]byte) (bonjson.Value, error) {
	if maxLen <= 0 {
		return decode
	}
	return func(b []byte) (bonjson.Value, error) {
		if len(b) > maxLen {
			return bonjson.Value{}, fmt.Errorf("compat: payload too large: %d > %d", len(b), maxLen)
		}
		return decode(b)
	}
}
