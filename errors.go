package bonjson

import "github.com/kstenerud/go-bonjson/internal/errkind"

// ErrorKind re-exports the BONJSON error taxonomy so callers can switch on
// (*DecodeError).Kind / (*EncodeError).Kind without importing an internal
// package.
type ErrorKind = errkind.Kind

const (
	ErrTruncated              = errkind.Truncated
	ErrInvalidType            = errkind.InvalidType
	ErrInvalidUTF8            = errkind.InvalidUTF8
	ErrNulCharacterInString   = errkind.NulCharacterInString
	ErrDuplicateObjectKey     = errkind.DuplicateObjectKey
	ErrTooManyKeys            = errkind.TooManyKeys
	ErrInvalidObjectKey       = errkind.InvalidObjectKey
	ErrTypeMismatch           = errkind.TypeMismatch
	ErrNonConformingFloat     = errkind.NonConformingFloat
	ErrBigNumberOutOfRange    = errkind.BigNumberOutOfRange
	ErrTrailingBytes          = errkind.TrailingBytes
	ErrNonCanonicalLength     = errkind.NonCanonicalLength
	ErrEmptyChunkContinuation = errkind.EmptyChunkContinuation
	ErrContainerTooDeep       = errkind.ContainerTooDeep
	ErrContainerTooLarge      = errkind.ContainerTooLarge
	ErrStringTooLong          = errkind.StringTooLong
	ErrDocumentTooLarge       = errkind.DocumentTooLarge
	ErrMaxChunksExceeded      = errkind.MaxChunksExceeded
	ErrUnclosedContainer      = errkind.UnclosedContainer
	ErrInvalidData            = errkind.InvalidData
)

// DecodeError is returned by Decode and Map accessors. Use errors.As to
// retrieve one from a wrapped error.
type DecodeError = errkind.DecodeError

// EncodeError is returned by Encode and Encoder methods.
type EncodeError = errkind.EncodeError
