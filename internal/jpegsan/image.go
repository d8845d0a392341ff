package jpegsan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/jpegsan/internal/container"
	"github.com/danmuck/jpegsan/internal/tools"
)

var ErrNotSaved = errors.New("jpegsan: no saved file to open")

// Options configures an Image.
type Options struct {
	Decode  container.DecodeOptions
	Listing container.ListingOptions
	Viewer  string
	Args    []string
	Runner  tools.CommandRunner
}

func DefaultOptions() Options {
	return Options{
		Decode:  container.DefaultDecodeOptions(),
		Listing: container.DefaultListingOptions(),
		Viewer:  "xdg-open",
		Runner:  tools.ExecRunner{},
	}
}

// Image is a decoded JPEG file plus the path it was last saved to.
type Image struct {
	Doc *container.Document

	source    string
	lastSaved string
	opts      Options
}

// Load reads path and decodes it.
func Load(path string, opts Options) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img.source = path
	log.Info().
		Str("path", path).
		Str("size", humanize.IBytes(uint64(len(data)))).
		Int("segments", img.Doc.Len()).
		Msg("loaded")
	return img, nil
}

// Decode builds an Image from in-memory bytes.
func Decode(data []byte, opts Options) (*Image, error) {
	if opts.Runner == nil {
		opts.Runner = tools.ExecRunner{}
	}
	doc, err := container.Decode(data, opts.Decode)
	if err != nil {
		return nil, err
	}
	img := &Image{Doc: doc, opts: opts}
	img.reportAnomalies()
	return img, nil
}

func (img *Image) reportAnomalies() {
	last := len(img.Doc.Segments) - 1
	for i, s := range img.Doc.Segments {
		switch {
		case s.Kind == container.KindMarker && s.Marker.IsUnknown():
			log.Warn().
				Str("suffix", fmt.Sprintf("%02x", s.Marker.Suffix)).
				Int("offset", s.Offset).
				Msg("unknown marker")
		case s.Kind == container.KindRaw && i == 0:
			log.Warn().Int("bytes", len(s.Payload)).Msg("data before first marker")
		case s.Kind == container.KindRaw && i == last:
			log.Debug().Int("bytes", len(s.Payload)).Int("offset", s.Offset).Msg("trailing data")
		}
	}
}

// Source is the path the image was loaded from, if any.
func (img *Image) Source() string {
	return img.source
}

// LastSaved is the destination of the most recent successful Save.
func (img *Image) LastSaved() string {
	return img.lastSaved
}

// Strip removes marker segments by symbol.
func (img *Image) Strip(symbols ...string) int {
	n := img.Doc.Strip(symbols...)
	if n > 0 {
		log.Info().Strs("symbols", symbols).Int("removed", n).Msg("stripped segments")
	}
	return n
}

// Save serializes the document to dest.
func (img *Image) Save(dest string) error {
	data, err := container.Marshal(img.Doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	img.lastSaved = dest
	log.Info().
		Str("path", dest).
		Str("size", humanize.IBytes(uint64(len(data)))).
		Msg("saved")
	return nil
}

// Open launches the configured viewer on the last saved file.
func (img *Image) Open() error {
	if img.lastSaved == "" {
		log.Warn().Msg("no file to open")
		return ErrNotSaved
	}
	args := append(append([]string{}, img.opts.Args...), img.lastSaved)
	_, stderr, code, err := img.opts.Runner.Run(img.opts.Viewer, args...)
	if err != nil {
		log.Error().
			Err(err).
			Str("cmd", tools.CommandLine(img.opts.Viewer, args...)).
			Int32("exit_code", code).
			Bytes("stderr", stderr).
			Msg("viewer failed")
		return fmt.Errorf("open %s: %w", img.lastSaved, err)
	}
	log.Debug().Str("cmd", tools.CommandLine(img.opts.Viewer, args...)).Msg("viewer started")
	return nil
}

// ShowList writes the segment listing to w, one line each.
func (img *Image) ShowList(w io.Writer) error {
	for _, line := range container.Listing(img.Doc, img.opts.Listing) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
