package container

import (
	"github.com/danmuck/jpegsan/internal/container/marker"
)

// LeadInPolicy controls bytes that appear before the first marker.
type LeadInPolicy uint8

const (
	// LeadInRaw keeps stray leading bytes as a RawDataSpan.
	LeadInRaw LeadInPolicy = iota
	// LeadInReject fails decoding with ErrLeadingData.
	LeadInReject
)

// DecodeOptions tunes Decode.
type DecodeOptions struct {
	LeadIn LeadInPolicy
}

func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{LeadIn: LeadInRaw}
}

type scanState uint8

const (
	stateData scanState = iota
	stateMarkerPending
)

// Decode splits data into marker segments and raw spans in one pass.
//
// Bytes after a marker code are collected until the next marker code and
// attached to that marker as its payload. 0xFF 0x00 (stuffing) and 0xFF 0xFF
// (fill) are kept verbatim as payload. Bytes left over when the stream ends
// become a trailing raw span, including a final unpaired 0xFF.
func Decode(data []byte, opts DecodeOptions) (*Document, error) {
	doc := &Document{Segments: make([]Segment, 0, 16)}

	state := stateData
	open := -1 // index of the most recently opened marker segment
	pendingStart := 0
	var pending []byte

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if open < 0 {
			if opts.LeadIn == LeadInReject {
				return &ParseError{Offset: pendingStart, Err: ErrLeadingData}
			}
			doc.Segments = append(doc.Segments, Segment{
				Kind:    KindRaw,
				Payload: pending,
				Offset:  pendingStart,
			})
		} else {
			doc.Segments[open].Payload = pending
		}
		pending = nil
		return nil
	}

	for i, b := range data {
		switch state {
		case stateData:
			if b == marker.Lead {
				state = stateMarkerPending
				continue
			}
			if len(pending) == 0 {
				pendingStart = i
			}
			pending = append(pending, b)

		case stateMarkerPending:
			state = stateData
			if b == 0x00 || b == marker.Lead {
				if len(pending) == 0 {
					pendingStart = i - 1
				}
				pending = append(pending, marker.Lead, b)
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			doc.Segments = append(doc.Segments, Segment{
				Kind:   KindMarker,
				Marker: marker.Resolve(b),
				Offset: i - 1,
			})
			open = len(doc.Segments) - 1
		}
	}

	if state == stateMarkerPending {
		if len(pending) == 0 {
			pendingStart = len(data) - 1
		}
		pending = append(pending, marker.Lead)
	}
	if len(pending) > 0 {
		if open < 0 && opts.LeadIn == LeadInReject {
			return nil, &ParseError{Offset: pendingStart, Err: ErrLeadingData}
		}
		doc.Segments = append(doc.Segments, Segment{
			Kind:    KindRaw,
			Payload: pending,
			Offset:  pendingStart,
		})
	}
	return doc, nil
}
