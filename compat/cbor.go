package compat

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/kstenerud/go-bonjson"
)

// cborEncMode mirrors the teacher's NewCBOR: CoreDetEncOptions for
// deterministic (canonical, RFC 8949) output, PreferredUnsortedEncOptions
// otherwise, with RFC3339Nano time encoding either way.
func cborEncMode(deterministic bool) (cbor.EncMode, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano
	return eo.EncMode()
}

// cborDecMode decodes generic CBOR maps into map[string]any directly,
// rather than cbor's own default of map[interface{}]interface{}, so
// fromAny doesn't need a second map-key-coercion path for this format.
var cborDecMode = mustCBORDecMode()

func mustCBORDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{MapType: reflect.TypeOf(map[string]any{})}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// ToCBOR encodes v as CBOR. Use deterministic=true for canonical
// (byte-for-byte stable) output, e.g. when content-addressing the result.
func ToCBOR(v bonjson.Value, deterministic bool) ([]byte, error) {
	em, err := cborEncMode(deterministic)
	if err != nil {
		return nil, err
	}
	return em.Marshal(toAny(v))
}

// FromCBOR decodes a CBOR document into a Value tree.
func FromCBOR(b []byte) (bonjson.Value, error) {
	var x any
	if err := cborDecMode.Unmarshal(b, &x); err != nil {
		return bonjson.Value{}, err
	}
	return fromAny(x)
}
