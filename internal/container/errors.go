package container

import (
	"errors"
	"fmt"
)

var (
	ErrLeadingData     = errors.New("container: data before first marker")
	ErrNilDocument     = errors.New("container: nil document")
	ErrUnknownKind     = errors.New("container: unknown segment kind")
	ErrNotMarker       = errors.New("container: segment is not a marker")
	ErrIndexOutOfRange = errors.New("container: segment index out of range")
)

// ParseError locates a decode failure in the source stream.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d (%#x)", e.Err, e.Offset, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeError identifies the segment that could not be serialized.
type EncodeError struct {
	Index int
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%v (segment %d)", e.Err, e.Index)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
