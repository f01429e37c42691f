// Package errkind defines the BONJSON error taxonomy (spec.md §7) and the
// structured error types that carry it. It lives under internal so both
// internal/posmap (which raises these during scanning) and the root bonjson
// package (which raises them during encoding and re-exports the type for
// callers) can depend on it without an import cycle.
//
// Structured error shape is grounded on cascache's errors.go
// (InvalidateError): a typed struct implementing Error() and Unwrap(),
// rather than bare sentinel errors, so callers can errors.As into it for the
// offset/kind. Stack capture on construction uses github.com/pkg/errors,
// promoted here from an indirect dependency (pulled in transitively by
// logrus) to direct use.
package errkind

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the taxonomy of spec.md §7.
type Kind string

const (
	Truncated              Kind = "truncated"
	InvalidType            Kind = "invalidType"
	InvalidUTF8            Kind = "invalidUTF8"
	NulCharacterInString   Kind = "nulCharacterInString"
	DuplicateObjectKey     Kind = "duplicateObjectKey"
	TooManyKeys            Kind = "tooManyKeys"
	InvalidObjectKey       Kind = "invalidObjectKey"
	TypeMismatch           Kind = "typeMismatch"
	NonConformingFloat     Kind = "nonConformingFloat"
	BigNumberOutOfRange    Kind = "bigNumberOutOfRange"
	TrailingBytes          Kind = "trailingBytes"
	NonCanonicalLength     Kind = "nonCanonicalLength"
	EmptyChunkContinuation Kind = "emptyChunkContinuation"
	ContainerTooDeep       Kind = "containerTooDeep"
	ContainerTooLarge      Kind = "containerTooLarge"
	StringTooLong          Kind = "stringTooLong"
	DocumentTooLarge       Kind = "documentTooLarge"
	MaxChunksExceeded      Kind = "maxChunksExceeded"
	UnclosedContainer      Kind = "unclosedContainer"
	InvalidData            Kind = "invalidData"
)

// DecodeError is returned by the scanner and accessor. Offset is a byte
// offset into the input for scan-time errors, or -1 for errors built with
// NewAtPath, which carry Path instead.
type DecodeError struct {
	Kind   Kind
	Offset int
	Path   string
	cause  error
}

// New constructs a DecodeError with a captured stack trace.
func New(kind Kind, offset int, msg string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, cause: errors.New(msg)}
}

// NewAtPath constructs a DecodeError identified by accessor path rather than
// byte offset (e.g. the InvalidData raised by posmap's BigNumAt). The typed
// posmap accessors (IntAt, StringAt, ...) do not check the entry's tag and
// never raise TypeMismatch.
func NewAtPath(kind Kind, path string, msg string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: -1, Path: path, cause: errors.New(msg)}
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("bonjson: %s at %s: %v", e.Kind, e.Path, e.cause)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("bonjson: %s at offset %d: %v", e.Kind, e.Offset, e.cause)
	}
	return fmt.Sprintf("bonjson: %s: %v", e.Kind, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// EncodeError is returned by the encoder. It never carries a byte offset
// (the encoder fails before a byte is ever framed for the offending value).
type EncodeError struct {
	Kind  Kind
	cause error
}

// NewEncode constructs an EncodeError with a captured stack trace.
func NewEncode(kind Kind, msg string) *EncodeError {
	return &EncodeError{Kind: kind, cause: errors.New(msg)}
}

func (e *EncodeError) Error() string { return fmt.Sprintf("bonjson: %s: %v", e.Kind, e.cause) }
func (e *EncodeError) Unwrap() error { return e.cause }
