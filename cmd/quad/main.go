// Command quad draws the cell program: a solid quad on a cleared target.
//
// By default one frame is rendered headless and written to an image file:
//
//	quad -width 800 -height 600 -output cells.png
//
// With -window the program is shown in a window instead. -compare checks
// the GPU frame against the CPU reference rasterizer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/gpu"
	"github.com/gogpu/quad/integration/window"
	"github.com/gogpu/quad/internal/wgsl"
)

// compareTolerance is the per-channel difference ignored by -compare.
const compareTolerance = 2

// maxDiffPercent is the share of differing pixels -compare accepts.
// Edge pixels may legitimately differ between rasterizers.
const maxDiffPercent = 1.0

type options struct {
	configPath string
	width      int
	height     int
	output     string
	format     string
	power      string
	window     bool
	compare    bool
	spirvPath  string
	debug      bool

	set map[string]bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "quad: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	quad.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	if opts.spirvPath != "" {
		if err := dumpSPIRV(opts.spirvPath, cfg.Shader); err != nil {
			return err
		}
	}

	if opts.window {
		return window.Run(cfg)
	}

	img, err := gpu.Render(cfg)
	if err != nil {
		return err
	}
	if err := quad.SaveImage(cfg.Output, img); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	quad.Logger().Info("image saved", "path", cfg.Output, "width", cfg.Width, "height", cfg.Height)

	if opts.compare {
		if cfg.Shader != quad.CellShader() {
			quad.Logger().Warn("compare: custom shader, reference assumes the cell program")
		}
		ref := quad.Reference(cfg.Width, cfg.Height, cfg.ClearColor)
		diff, err := quad.Compare(img, ref, compareTolerance)
		if err != nil {
			return err
		}
		pct := quad.DiffPercent(diff, img)
		quad.Logger().Info("compare", "diff_pixels", diff, "diff_percent", fmt.Sprintf("%.3f", pct))
		if pct > maxDiffPercent {
			return fmt.Errorf("GPU frame differs from reference in %.2f%% of pixels", pct)
		}
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("quad", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.IntVar(&opts.width, "width", quad.DefaultWidth, "target width in pixels")
	fs.IntVar(&opts.height, "height", quad.DefaultHeight, "target height in pixels")
	fs.StringVar(&opts.output, "output", quad.DefaultOutput, "output image (.png, .bmp, .tif)")
	fs.StringVar(&opts.format, "format", "", "target format: bgra8unorm or rgba8unorm")
	fs.StringVar(&opts.power, "power", "", "adapter preference: high-performance or low-power")
	fs.BoolVar(&opts.window, "window", false, "show in a window instead of writing an image")
	fs.BoolVar(&opts.compare, "compare", false, "compare the GPU frame with the CPU reference")
	fs.StringVar(&opts.spirvPath, "spirv", "", "write the compiled SPIR-V to this file")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// buildConfig loads the config file, if any, and applies the flags that
// were set explicitly on top of it.
func buildConfig(opts options) (quad.Config, error) {
	cfg := quad.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = quad.LoadConfig(opts.configPath); err != nil {
			return quad.Config{}, err
		}
	}

	var overrides []quad.Option
	if opts.set["width"] || opts.set["height"] {
		w, h := cfg.Width, cfg.Height
		if opts.set["width"] {
			w = opts.width
		}
		if opts.set["height"] {
			h = opts.height
		}
		overrides = append(overrides, quad.WithSize(w, h))
	}
	if opts.set["output"] {
		overrides = append(overrides, quad.WithOutput(opts.output))
	}
	if opts.set["format"] {
		overrides = append(overrides, quad.WithFormat(opts.format))
	}
	if opts.set["power"] {
		overrides = append(overrides, quad.WithPowerPreference(opts.power))
	}
	cfg.Apply(overrides...)

	if err := cfg.Validate(); err != nil {
		return quad.Config{}, err
	}
	return cfg, nil
}

func dumpSPIRV(path, shader string) error {
	spirv, err := wgsl.CompileSPIRVBinary(shader)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, spirv, 0o644); err != nil { //nolint:gosec // output artifact
		return fmt.Errorf("write SPIR-V: %w", err)
	}
	quad.Logger().Info("SPIR-V written", "path", path, "words", len(spirv)/4)
	return nil
}
