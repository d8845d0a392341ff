package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/danmuck/jpegsan/internal/config"
	"github.com/danmuck/jpegsan/internal/container"
	"github.com/danmuck/jpegsan/internal/jpegsan"
	"github.com/danmuck/jpegsan/internal/logging"
	"github.com/danmuck/jpegsan/internal/tools"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stderr, tools.ExecRunner{}))
}

type flags struct {
	configPath string
	output     string
	list       bool
	open       bool
	save       bool
	strip      []string
	strict     bool
	rawPreview int
	initConfig string
	force      bool
}

func parseFlags(args []string, stderr io.Writer) (flags, []string, error) {
	var f flags
	fs := pflag.NewFlagSet("jpegsan", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: jpegsan [flags] <input.jpg>\n\n")
		fs.PrintDefaults()
	}
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML settings file")
	fs.StringVarP(&f.output, "output", "o", "", "destination for the re-serialized file")
	fs.BoolVarP(&f.list, "list", "l", false, "print the segment listing to stderr")
	fs.BoolVar(&f.open, "open", false, "open the saved file in the viewer")
	fs.BoolVar(&f.save, "save", true, "write the re-serialized file")
	fs.StringSliceVar(&f.strip, "strip", nil, "marker symbols to remove, e.g. APP1,COM")
	fs.BoolVar(&f.strict, "strict", false, "reject data before the first marker")
	fs.IntVar(&f.rawPreview, "raw-preview", 0, "hex bytes shown per raw span (-1 all, 0 none)")
	fs.StringVar(&f.initConfig, "init-config", "", "write a settings template to this path and exit")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing settings file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return f, nil, err
		}
		return f, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if f.initConfig != "" {
		return f, nil, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return f, nil, fmt.Errorf("%w: expected one input file, got %d", errUsage, fs.NArg())
	}
	if !fs.Changed("raw-preview") {
		f.rawPreview = unsetPreview
	}
	return f, fs.Args(), nil
}

const unsetPreview = -2

func resolveConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.strict {
		cfg.Strict = true
	}
	if len(f.strip) > 0 {
		cfg.Strip = config.NormalizeSymbols(f.strip)
	}
	if f.rawPreview != unsetPreview {
		cfg.RawPreview = f.rawPreview
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func imageOptions(cfg config.Config, runner tools.CommandRunner) jpegsan.Options {
	opts := jpegsan.DefaultOptions()
	if cfg.Strict {
		opts.Decode.LeadIn = container.LeadInReject
	}
	opts.Listing = container.ListingOptions{ShowRaw: cfg.ListRaw, RawPreview: cfg.RawPreview}
	opts.Viewer = cfg.Viewer
	opts.Args = cfg.ViewerArgs
	opts.Runner = runner
	return opts
}

func run(args []string, stderr io.Writer, runner tools.CommandRunner) int {
	f, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "jpegsan: %v\n", err)
		return exitUsage
	}

	if f.initConfig != "" {
		if err := config.WriteTemplate(f.initConfig, f.force); err != nil {
			fmt.Fprintf(stderr, "jpegsan: %v\n", err)
			return exitError
		}
		log.Info().Str("path", f.initConfig).Msg("wrote settings template")
		return exitOK
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "jpegsan: %v\n", err)
		return exitUsage
	}

	img, err := jpegsan.Load(rest[0], imageOptions(cfg, runner))
	if err != nil {
		fmt.Fprintf(stderr, "jpegsan: %v\n", err)
		return exitError
	}

	if len(cfg.Strip) > 0 {
		img.Strip(cfg.Strip...)
	}
	if f.list {
		if err := img.ShowList(stderr); err != nil {
			fmt.Fprintf(stderr, "jpegsan: %v\n", err)
			return exitError
		}
	}
	if f.save || f.open {
		if err := img.Save(cfg.Output); err != nil {
			fmt.Fprintf(stderr, "jpegsan: %v\n", err)
			return exitError
		}
	}
	if f.open {
		if err := img.Open(); err != nil {
			fmt.Fprintf(stderr, "jpegsan: %v\n", err)
			return exitError
		}
	}
	return exitOK
}
