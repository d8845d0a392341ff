package container

import (
	"bytes"
	"errors"
	"io"

	"github.com/danmuck/jpegsan/internal/container/marker"
)

// Encode writes doc to w in segment order. Raw spans are written as-is
// wherever they appear.
func Encode(w io.Writer, doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	for i, s := range doc.Segments {
		if err := writeSegment(w, s); err != nil {
			if errors.Is(err, ErrUnknownKind) {
				return &EncodeError{Index: i, Err: err}
			}
			return err
		}
	}
	return nil
}

// Marshal returns the serialized bytes of doc.
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	var buf bytes.Buffer
	buf.Grow(doc.Size())
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSegment(w io.Writer, s Segment) error {
	switch s.Kind {
	case KindMarker:
		code := [2]byte{marker.Lead, s.Marker.Suffix}
		if _, err := w.Write(code[:]); err != nil {
			return err
		}
	case KindRaw:
	default:
		return ErrUnknownKind
	}
	if len(s.Payload) == 0 {
		return nil
	}
	_, err := w.Write(s.Payload)
	return err
}
