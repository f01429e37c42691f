package utf8validate

import "testing"

func TestValidateValidPassesThrough(t *testing.T) {
	in := []byte("hello, 世界")
	out, changed, err := Validate(in, Reject)
	if err != nil || changed {
		t.Fatalf("valid input should pass through unchanged, got changed=%v err=%v", changed, err)
	}
	if string(out) != string(in) {
		t.Fatalf("expected unchanged bytes, got %q", out)
	}
}

func TestValidateRejectsInvalid(t *testing.T) {
	in := []byte{'a', 0xFF, 'b'}
	if _, _, err := Validate(in, Reject); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateReplace(t *testing.T) {
	in := []byte{'a', 0xFF, 'b'}
	out, changed, err := Validate(in, Replace)
	if err != nil || !changed {
		t.Fatalf("expected changed=true err=nil, got changed=%v err=%v", changed, err)
	}
	if string(out) != "a�b" {
		t.Fatalf("expected replacement char, got %q", out)
	}
}

func TestValidateDelete(t *testing.T) {
	in := []byte{'a', 0xFF, 'b'}
	out, changed, err := Validate(in, Delete)
	if err != nil || !changed {
		t.Fatalf("expected changed=true err=nil, got changed=%v err=%v", changed, err)
	}
	if string(out) != "ab" {
		t.Fatalf("expected invalid byte dropped, got %q", out)
	}
}

func TestValidateRejectsOverlongAndSurrogates(t *testing.T) {
	overlong := []byte{0xC0, 0x80} // overlong encoding of NUL
	if _, _, err := Validate(overlong, Reject); err != ErrInvalidUTF8 {
		t.Fatalf("expected overlong encoding rejected, got %v", err)
	}
	surrogate := []byte{0xED, 0xA0, 0x80} // encodes U+D800
	if _, _, err := Validate(surrogate, Reject); err != ErrInvalidUTF8 {
		t.Fatalf("expected surrogate rejected, got %v", err)
	}
}

func TestContainsNUL(t *testing.T) {
	if !ContainsNUL([]byte{'a', 0, 'b'}) {
		t.Fatalf("expected NUL detected")
	}
	if ContainsNUL([]byte("clean")) {
		t.Fatalf("expected no NUL detected")
	}
}
