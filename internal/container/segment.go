package container

import (
	"fmt"

	"github.com/danmuck/jpegsan/internal/container/marker"
)

// Kind tags a Segment as a marker or a raw data span.
type Kind uint8

const (
	KindMarker Kind = iota + 1
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Segment is one entry of a Document.
//
// For KindMarker, Marker identifies the code and Payload holds the bytes up
// to the next marker (nil when there were none). For KindRaw, Payload holds
// the span and Marker is zero.
type Segment struct {
	Kind    Kind
	Marker  marker.Descriptor
	Payload []byte
	// Offset is the position of the segment in the decoded stream. Segments
	// built by hand carry zero.
	Offset int
}

// NewMarker creates a marker segment. The payload is copied.
func NewMarker(d marker.Descriptor, payload []byte) Segment {
	return Segment{Kind: KindMarker, Marker: d, Payload: cloneBytes(payload)}
}

// NewRaw creates a raw data span. The data is copied.
func NewRaw(data []byte) Segment {
	return Segment{Kind: KindRaw, Payload: cloneBytes(data)}
}

func (s Segment) IsMarker() bool {
	return s.Kind == KindMarker
}

// Code returns the 0xFF-prefixed marker code.
func (s Segment) Code() ([2]byte, error) {
	if s.Kind != KindMarker {
		return [2]byte{}, ErrNotMarker
	}
	return s.Marker.Code(), nil
}

// Bytes returns the canonical bytes of s: code plus payload for markers,
// the span itself for raw data.
func (s Segment) Bytes() ([]byte, error) {
	switch s.Kind {
	case KindMarker:
		out := make([]byte, 0, 2+len(s.Payload))
		out = append(out, marker.Lead, s.Marker.Suffix)
		return append(out, s.Payload...), nil
	case KindRaw:
		return cloneBytes(s.Payload), nil
	default:
		return nil, ErrUnknownKind
	}
}

// Len is the number of bytes s occupies when serialized.
func (s Segment) Len() int {
	if s.Kind == KindMarker {
		return 2 + len(s.Payload)
	}
	return len(s.Payload)
}

// Document is the ordered segment sequence of one JPEG stream.
type Document struct {
	Segments []Segment
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Segments)
}

// Size is the serialized length of the document in bytes.
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.Segments {
		n += s.Len()
	}
	return n
}

// Markers returns the marker segments in stream order.
func (d *Document) Markers() []Segment {
	if d == nil {
		return nil
	}
	out := make([]Segment, 0, len(d.Segments))
	for _, s := range d.Segments {
		if s.Kind == KindMarker {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the indices of marker segments whose symbol matches.
func (d *Document) Find(symbol string) []int {
	if d == nil {
		return nil
	}
	var idx []int
	for i, s := range d.Segments {
		if s.Kind == KindMarker && s.Marker.Symbol == symbol {
			idx = append(idx, i)
		}
	}
	return idx
}

// SetPayload replaces the payload of the marker segment at i. A nil or
// empty payload leaves the marker bare.
func (d *Document) SetPayload(i int, payload []byte) error {
	if d == nil {
		return ErrNilDocument
	}
	if i < 0 || i >= len(d.Segments) {
		return ErrIndexOutOfRange
	}
	if d.Segments[i].Kind != KindMarker {
		return ErrNotMarker
	}
	if len(payload) == 0 {
		d.Segments[i].Payload = nil
		return nil
	}
	d.Segments[i].Payload = cloneBytes(payload)
	return nil
}

// Strip removes every marker segment whose symbol is listed, along with
// its payload, and returns how many were removed. Raw spans are kept.
func (d *Document) Strip(symbols ...string) int {
	if d == nil || len(symbols) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		drop[sym] = struct{}{}
	}
	kept := d.Segments[:0]
	removed := 0
	for _, s := range d.Segments {
		if s.Kind == KindMarker {
			if _, ok := drop[s.Marker.Symbol]; ok {
				removed++
				continue
			}
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(d.Segments); i++ {
		d.Segments[i] = Segment{}
	}
	d.Segments = kept
	return removed
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
