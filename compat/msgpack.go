package compat

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kstenerud/go-bonjson"
)

// ToMsgpack encodes v as MessagePack.
func ToMsgpack(v bonjson.Value) ([]byte, error) {
	return msgpack.Marshal(toAny(v))
}

// FromMsgpack decodes a MessagePack document into a Value tree.
func FromMsgpack(b []byte) (bonjson.Value, error) {
	var x any
	if err := msgpack.Unmarshal(b, &x); err != nil {
		return bonjson.Value{}, err
	}
	return fromAny(x)
}
