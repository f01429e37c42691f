package compat

import (
	"encoding/json"

	"github.com/kstenerud/go-bonjson"
)

// ToJSON encodes v as JSON via the standard library -- ambient, not a pack
// dependency: JSON is BONJSON's own reference textual form (spec.md §1),
// and nothing in the example pack reaches for a third-party JSON encoder
// over encoding/json.
func ToJSON(v bonjson.Value) ([]byte, error) { return json.Marshal(toAny(v)) }

// FromJSON decodes a JSON document into a Value tree.
func FromJSON(b []byte) (bonjson.Value, error) {
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return bonjson.Value{}, err
	}
	return fromAny(x)
}
