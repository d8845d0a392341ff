package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/jpegsan/internal/container/marker"
	"github.com/danmuck/jpegsan/internal/testutil/testlog"
)

func mustDecode(t *testing.T, in []byte) *Document {
	t.Helper()
	doc, err := Decode(in, DefaultDecodeOptions())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func symbols(doc *Document) []string {
	out := make([]string, 0, doc.Len())
	for _, s := range doc.Segments {
		if s.Kind == KindRaw {
			out = append(out, "<raw>")
			continue
		}
		out = append(out, s.Marker.Symbol)
	}
	return out
}

func TestDecodeSplitsMarkersAndPayloads(t *testing.T) {
	testlog.Start(t)
	in := []byte{
		0xFF, 0xD8,
		0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F',
		0xFF, 0xFE, 'h', 'i',
		0xFF, 0xD9,
	}
	doc := mustDecode(t, in)

	want := []Segment{
		{Kind: KindMarker, Marker: marker.Resolve(0xD8), Offset: 0},
		{Kind: KindMarker, Marker: marker.Resolve(0xE0), Payload: []byte{0x00, 0x10, 'J', 'F', 'I', 'F'}, Offset: 2},
		{Kind: KindMarker, Marker: marker.Resolve(0xFE), Payload: []byte("hi"), Offset: 10},
		{Kind: KindMarker, Marker: marker.Resolve(0xD9), Offset: 14},
	}
	if diff := cmp.Diff(want, doc.Segments); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeKeepsStuffedBytesVerbatim(t *testing.T) {
	testlog.Start(t)
	in := []byte{0xFF, 0xD8, 0x41, 0xFF, 0x00, 0x42, 0xFF, 0xD9}
	doc := mustDecode(t, in)
	if doc.Len() != 2 {
		t.Fatalf("expected 2 segments, got %v", symbols(doc))
	}
	want := []byte{0x41, 0xFF, 0x00, 0x42}
	if !bytes.Equal(doc.Segments[0].Payload, want) {
		t.Fatalf("SOI payload: got % x want % x", doc.Segments[0].Payload, want)
	}
}

func TestDecodeKeepsFillPairVerbatim(t *testing.T) {
	testlog.Start(t)
	in := []byte{0xFF, 0xD8, 0x01, 0xFF, 0xFF, 0xD9, 0x02, 0xFF, 0xD9}
	doc := mustDecode(t, in)
	if diff := cmp.Diff([]string{"SOI", "EOI"}, symbols(doc)); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	// The byte after a fill pair is data, even when it looks like a suffix.
	want := []byte{0x01, 0xFF, 0xFF, 0xD9, 0x02}
	if !bytes.Equal(doc.Segments[0].Payload, want) {
		t.Fatalf("payload: got % x want % x", doc.Segments[0].Payload, want)
	}
}

func TestDecodeReservedMarkerResolvesToRegistry(t *testing.T) {
	testlog.Start(t)
	doc := mustDecode(t, []byte{0xFF, 0xD8, 0xFF, 0x02, 0xFF, 0xD9})
	if diff := cmp.Diff([]string{"SOI", "RES", "EOI"}, symbols(doc)); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	if doc.Segments[1].Marker.IsUnknown() {
		t.Fatalf("RES resolved to unknown fallback")
	}
}

func TestDecodeUnknownMarkerFallback(t *testing.T) {
	testlog.Start(t)
	doc := mustDecode(t, []byte{0xFF, 0xD8, 0xFF, 0x03, 0xAA, 0xFF, 0xD9})
	got := doc.Segments[1]
	if got.Marker.Symbol != marker.UnknownSymbol || got.Marker.Description != marker.UnknownDescription {
		t.Fatalf("unexpected descriptor: %+v", got.Marker)
	}
	if got.Marker.Suffix != 0x03 || !bytes.Equal(got.Payload, []byte{0xAA}) {
		t.Fatalf("unexpected unknown segment: %+v", got)
	}
}

func TestDecodeTrailingRawData(t *testing.T) {
	testlog.Start(t)
	doc := mustDecode(t, []byte{0xFF, 0xD8, 0xFF, 0xD9, 0x01, 0x02, 0x03})
	if doc.Len() != 3 {
		t.Fatalf("expected 3 segments, got %v", symbols(doc))
	}
	last := doc.Segments[2]
	if last.Kind != KindRaw || !bytes.Equal(last.Payload, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("unexpected trailing segment: %+v", last)
	}
	if last.Offset != 4 {
		t.Fatalf("unexpected raw offset %d", last.Offset)
	}
	if doc.Segments[1].Payload != nil {
		t.Fatalf("EOI must not absorb trailing data")
	}
}

func TestDecodeDanglingLeadByteIsKept(t *testing.T) {
	testlog.Start(t)
	in := []byte{0xFF, 0xD8, 0x10, 0xFF}
	doc := mustDecode(t, in)
	if doc.Len() != 2 || doc.Segments[1].Kind != KindRaw {
		t.Fatalf("unexpected segments: %v", symbols(doc))
	}
	if !bytes.Equal(doc.Segments[1].Payload, []byte{0x10, 0xFF}) {
		t.Fatalf("unexpected trailing bytes % x", doc.Segments[1].Payload)
	}
	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip: got % x want % x", out, in)
	}
}

func TestDecodeLeadingDataBecomesRawSpan(t *testing.T) {
	testlog.Start(t)
	in := []byte{0x00, 0x01, 0xFF, 0xD8, 0x05, 0xFF, 0xD9}
	doc := mustDecode(t, in)
	if diff := cmp.Diff([]string{"<raw>", "SOI", "EOI"}, symbols(doc)); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(doc.Segments[0].Payload, []byte{0x00, 0x01}) {
		t.Fatalf("lead-in: % x", doc.Segments[0].Payload)
	}
	if !bytes.Equal(doc.Segments[1].Payload, []byte{0x05}) {
		t.Fatalf("SOI payload: % x", doc.Segments[1].Payload)
	}
	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip: got % x want % x", out, in)
	}
}

func TestDecodeLeadingDataRejected(t *testing.T) {
	testlog.Start(t)
	opts := DecodeOptions{LeadIn: LeadInReject}
	cases := map[string][]byte{
		"before marker": {0x00, 0x01, 0xFF, 0xD8},
		"no marker":     {0x41, 0x42},
		"stuffed first": {0xFF, 0x00, 0xFF, 0xD8},
	}
	for name, in := range cases {
		_, err := Decode(in, opts)
		if !errors.Is(err, ErrLeadingData) {
			t.Fatalf("%s: expected ErrLeadingData, got %v", name, err)
		}
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Offset != 0 {
			t.Fatalf("%s: expected ParseError at offset 0, got %v", name, err)
		}
	}

	if _, err := Decode([]byte{0xFF, 0xD8, 0xFF, 0xD9, 0x01}, opts); err != nil {
		t.Fatalf("trailing data must stay valid in strict mode: %v", err)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	testlog.Start(t)
	doc := mustDecode(t, nil)
	if doc.Len() != 0 {
		t.Fatalf("expected empty document, got %d segments", doc.Len())
	}
}

func TestRoundTripWellFormedStreams(t *testing.T) {
	testlog.Start(t)
	streams := [][]byte{
		{0xFF, 0xD8, 0xFF, 0xD9},
		{0xFF, 0xD8, 0x41, 0xFF, 0x00, 0x42, 0xFF, 0xD9},
		{0xFF, 0xD8, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xD9},
		{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x43, 0x00, 0xFF, 0xDA, 0x12, 0xFF, 0x00, 0xFF, 0xD0, 0x34, 0xFF, 0xD9},
		{0xFF, 0xD8, 0xFF, 0x02, 0xFF, 0x7E, 0x99, 0xFF, 0xD9, 0xDE, 0xAD},
	}
	for i, in := range streams {
		out, err := Marshal(mustDecode(t, in))
		if err != nil {
			t.Fatalf("stream %d: marshal: %v", i, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("stream %d: got % x want % x", i, out, in)
		}
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	testlog.Start(t)
	in := []byte{0xFF, 0xD8, 0x01, 0x02, 0xFF, 0xD9}
	doc := mustDecode(t, in)
	in[2] = 0xEE
	if doc.Segments[0].Payload[0] != 0x01 {
		t.Fatalf("payload aliases input buffer")
	}
}
