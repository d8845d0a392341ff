package container

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const hexDigits = "0123456789abcdef"

// Hex renders p as lowercase two-digit byte pairs separated by single spaces.
func Hex(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(p)*3 - 1)
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

// ListingOptions controls Listing output.
type ListingOptions struct {
	// ShowRaw adds a header line for raw spans.
	ShowRaw bool
	// RawPreview caps the hex preview of a raw span. Zero omits the
	// preview; negative shows the whole span.
	RawPreview int
}

func DefaultListingOptions() ListingOptions {
	return ListingOptions{ShowRaw: true, RawPreview: 16}
}

// Listing renders a human-readable line pair per segment: a header naming
// the marker and, when a payload exists, its hex dump.
func Listing(doc *Document, opts ListingOptions) []string {
	if doc == nil {
		return nil
	}
	lines := make([]string, 0, 2*len(doc.Segments))
	for _, s := range doc.Segments {
		switch s.Kind {
		case KindMarker:
			lines = append(lines, fmt.Sprintf("= MARKER %02x: %s (%s) =",
				s.Marker.Suffix, s.Marker.Symbol, s.Marker.Description))
			if s.Payload != nil {
				lines = append(lines, Hex(s.Payload))
			}
		case KindRaw:
			if !opts.ShowRaw {
				continue
			}
			lines = append(lines, fmt.Sprintf("= RAW DATA: %d bytes (%s) at offset %d =",
				len(s.Payload), humanize.IBytes(uint64(len(s.Payload))), s.Offset))
			if preview := rawPreview(s.Payload, opts.RawPreview); preview != "" {
				lines = append(lines, preview)
			}
		}
	}
	return lines
}

func rawPreview(p []byte, limit int) string {
	switch {
	case limit == 0 || len(p) == 0:
		return ""
	case limit < 0 || len(p) <= limit:
		return Hex(p)
	default:
		return Hex(p[:limit]) + " ..."
	}
}
