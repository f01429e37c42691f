// Package bonjson implements BONJSON: a binary serialization format that is
// structurally and type-compatible with JSON, byte-for-byte deterministic to
// encode, and decodable via a single-pass position-map scan that supports
// O(1) random access into the document without copying value bytes.
//
// Components:
//   - Encoder: a depth-tracked writer producing canonical BONJSON; it buffers
//     each open container until the container is closed (encoder.go).
//   - Map: the decoded position-map, built by Decode, giving indexed
//     accessors into a scanned document without materializing a Go value
//     tree unless the caller asks for one via Value (map.go, value.go).
//   - Policies / Limits: the security-guard configuration governing
//     malformed-input handling and resource bounds on decode (policy.go).
//
// Wire layout:
//
//	<typecode><payload>              scalar
//	0xF8 <chunk>... <chunk final>    array
//	0xF9 <chunk>... <chunk final>    object (key, value pairs)
//
// Basic usage:
//
//	data, err := bonjson.Encode(bonjson.ObjectFromMap(map[string]bonjson.Value{
//	    "id":   bonjson.Int(7),
//	    "tags": bonjson.Array(bonjson.String("a"), bonjson.String("b")),
//	}))
//	m, err := bonjson.Decode(data, bonjson.DefaultPolicies(), bonjson.DefaultLimits())
//	v, err := m.Value(m.Root())
package bonjson
