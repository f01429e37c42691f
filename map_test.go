package bonjson

import "testing"

func TestMapSerializeRoundTrip(t *testing.T) {
	v := Object(
		Pair{Key: "name", Value: String("gopher")},
		Pair{Key: "tags", Value: Array(String("a"), String("b"), String("c"))},
		Pair{Key: "count", Value: Int(7)},
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, err := Decode(data, DefaultPolicies(), DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	blob := m.Serialize()
	restored, err := DecodeSerialized(blob)
	if err != nil {
		t.Fatalf("DecodeSerialized: %v", err)
	}

	if restored.Len() != m.Len() {
		t.Fatalf("Len mismatch: want %d got %d", m.Len(), restored.Len())
	}
	want, err := m.Value(m.Root())
	if err != nil {
		t.Fatalf("Value (original): %v", err)
	}
	got, err := restored.Value(restored.Root())
	if err != nil {
		t.Fatalf("Value (restored): %v", err)
	}
	if got.Kind() != want.Kind() || len(got.AsObject()) != len(want.AsObject()) {
		t.Fatalf("restored value mismatch: want %+v got %+v", want, got)
	}
	tagsIdx, ok := restored.FindKey(restored.Root(), "tags")
	if !ok || restored.ChildCountOf(tagsIdx) != 3 {
		t.Fatalf("expected restored tags array of length 3")
	}
}

func TestMapChildAtAndNextSibling(t *testing.T) {
	v := Array(Int(10), Int(20), Int(30))
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, err := Decode(data, DefaultPolicies(), DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	root := m.Root()
	if m.ChildCountOf(root) != 3 {
		t.Fatalf("expected 3 children, got %d", m.ChildCountOf(root))
	}
	first := m.ChildAt(root, 0)
	second := m.ChildAt(root, 1)
	if m.IntAt(first) != 10 || m.IntAt(second) != 20 {
		t.Fatalf("unexpected child values: %d, %d", m.IntAt(first), m.IntAt(second))
	}
	if m.NextSibling(first) != second {
		t.Fatalf("NextSibling(first) should be second")
	}
}

func TestMapIsInertUnderKeepFirst(t *testing.T) {
	v := Object(
		Pair{Key: "x", Value: Int(1)},
		Pair{Key: "x", Value: Int(2)},
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	policies := DefaultPolicies()
	policies.DuplicateKey = DuplicateKeepFirst
	m, err := Decode(data, policies, DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	root := m.Root()
	valIdx, ok := m.FindKey(root, "x")
	if !ok || m.IntAt(valIdx) != 1 {
		t.Fatalf("KeepFirst should keep the first occurrence's value (1), got idx=%d ok=%v", valIdx, ok)
	}
	got, err := m.Value(root)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(got.AsObject()) != 1 {
		t.Fatalf("expected materialized object to skip the inert duplicate, got %+v", got.AsObject())
	}
}

func TestMapWarningsNilOnCleanDocument(t *testing.T) {
	data, err := Encode(Int(1))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, err := Decode(data, DefaultPolicies(), DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Warnings() != nil {
		t.Fatalf("expected no warnings for a clean document, got %v", m.Warnings())
	}
}
