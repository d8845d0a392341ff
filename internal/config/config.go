package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/jpegsan/internal/container/marker"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config holds the tool settings read from a TOML file.
type Config struct {
	Output     string
	Viewer     string
	ViewerArgs []string
	Strict     bool
	Strip      []string
	ListRaw    bool
	RawPreview int
}

type fileConfig struct {
	Output     string   `toml:"output"`
	Viewer     string   `toml:"viewer"`
	ViewerArgs []string `toml:"viewer_args"`
	Strict     bool     `toml:"strict"`
	Strip      []string `toml:"strip"`
	ListRaw    bool     `toml:"list_raw"`
	RawPreview int      `toml:"raw_preview"`
}

func Default() Config {
	return Config{
		Output:     "out.jpg",
		Viewer:     defaultViewer(),
		ViewerArgs: []string{},
		Strip:      []string{},
		ListRaw:    true,
		RawPreview: 16,
	}
}

func defaultViewer() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Load reads path over Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("viewer") {
		cfg.Viewer = strings.TrimSpace(raw.Viewer)
	}
	if meta.IsDefined("viewer_args") {
		cfg.ViewerArgs = raw.ViewerArgs
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("strip") {
		cfg.Strip = NormalizeSymbols(raw.Strip)
	}
	if meta.IsDefined("list_raw") {
		cfg.ListRaw = raw.ListRaw
	}
	if meta.IsDefined("raw_preview") {
		cfg.RawPreview = raw.RawPreview
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalidConfig)
	}
	if cfg.Viewer == "" {
		return fmt.Errorf("%w: viewer is required", ErrInvalidConfig)
	}
	if cfg.RawPreview < -1 {
		return fmt.Errorf("%w: raw_preview must be >= -1, got %d", ErrInvalidConfig, cfg.RawPreview)
	}
	for i, sym := range cfg.Strip {
		if _, ok := marker.LookupSymbol(sym); !ok {
			return fmt.Errorf("%w: strip[%d] unknown marker symbol %q", ErrInvalidConfig, i, sym)
		}
	}
	return nil
}

// NormalizeSymbols trims, upper-cases and drops empty marker symbols.
func NormalizeSymbols(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, sym := range in {
		v := strings.ToUpper(strings.TrimSpace(sym))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
