package quad

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"
)

// Defaults for Config.
const (
	DefaultWidth    = 512
	DefaultHeight   = 512
	DefaultOutput   = "quad.png"
	DefaultTitle    = "quad"
	DefaultCanvasID = "board"

	// MaxDimension is the largest accepted target edge, matching the
	// default WebGPU maxTextureDimension2D limit.
	MaxDimension = 8192
)

// PreferredFormat is the target format used when the host does not
// advertise one.
const PreferredFormat = gputypes.TextureFormatBGRA8Unorm

// PowerPreference selects between adapters when several are available.
type PowerPreference int

const (
	// PowerHighPerformance prefers a discrete GPU.
	PowerHighPerformance PowerPreference = iota

	// PowerLowPower prefers an integrated GPU.
	PowerLowPower
)

// String returns the configuration name of p.
func (p PowerPreference) String() string {
	switch p {
	case PowerHighPerformance:
		return "high-performance"
	case PowerLowPower:
		return "low-power"
	default:
		return fmt.Sprintf("PowerPreference(%d)", int(p))
	}
}

// Config describes one rendering of the cell program.
// The zero value is not usable; start from DefaultConfig, NewConfig or
// LoadConfig.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Format names the target format; empty selects the host preference.
	Format string `yaml:"format,omitempty"`

	// Power names the adapter preference; empty means high-performance.
	Power string `yaml:"power,omitempty"`

	ClearColor RGBA `yaml:"clear_color"`

	// ShaderPath, when set in a config file, names a WGSL file that
	// replaces the cell program. Relative paths resolve against the
	// config file's directory.
	ShaderPath string `yaml:"shader,omitempty"`

	// Shader is the WGSL source to compile.
	Shader string `yaml:"-"`

	Title    string `yaml:"title,omitempty"`
	Output   string `yaml:"output,omitempty"`
	CanvasID string `yaml:"canvas,omitempty"`
}

// DefaultConfig returns the stock configuration: 512x512, default colors
// and the cell program.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		ClearColor: ClearColor,
		Shader:     CellShader(),
		Title:      DefaultTitle,
		Output:     DefaultOutput,
		CanvasID:   DefaultCanvasID,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their DefaultConfig values. The result is validated.
//
// Example file:
//
//	width: 800
//	height: 600
//	format: rgba8unorm
//	clear_color: {r: 0.11, g: 0.11, b: 0.18, a: 1}
//	output: board.png
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.ShaderPath != "" {
		shaderPath := cfg.ShaderPath
		if !filepath.IsAbs(shaderPath) {
			shaderPath = filepath.Join(filepath.Dir(path), shaderPath)
		}
		src, err := os.ReadFile(shaderPath) //nolint:gosec // path comes from the config file
		if err != nil {
			return Config{}, fmt.Errorf("read shader: %w", err)
		}
		cfg.Shader = string(src)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks sizes, names and colors.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if _, err := c.TextureFormat(PreferredFormat); err != nil {
		return err
	}
	if _, err := c.PowerPreference(); err != nil {
		return err
	}
	if !c.ClearColor.Valid() {
		return fmt.Errorf("%w: clear color %+v", ErrInvalidColor, c.ClearColor)
	}
	if strings.TrimSpace(c.Shader) == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidShader)
	}
	return nil
}

// TextureFormat resolves Format. An empty Format yields preferred.
func (c Config) TextureFormat(preferred gputypes.TextureFormat) (gputypes.TextureFormat, error) {
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "":
		return preferred, nil
	case "bgra8unorm":
		return gputypes.TextureFormatBGRA8Unorm, nil
	case "rgba8unorm":
		return gputypes.TextureFormatRGBA8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
	}
}

// PowerPreference resolves Power.
func (c Config) PowerPreference() (PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(c.Power)) {
	case "", "high-performance":
		return PowerHighPerformance, nil
	case "low-power":
		return PowerLowPower, nil
	default:
		return PowerHighPerformance, fmt.Errorf("quad: unknown power preference %q", c.Power)
	}
}

// SupportedFormat reports whether f can be used as a target format.
func SupportedFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatRGBA8Unorm
}
