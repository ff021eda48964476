package quad

// Option configures a Config.
// Use functional options to customize rendering.
//
// Example:
//
//	cfg := quad.NewConfig(
//	    quad.WithSize(1024, 768),
//	    quad.WithClearColor(quad.RGBA{R: 0, G: 0, B: 0, A: 1}),
//	)
type Option func(*Config)

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies opts to c in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

// WithSize sets the target size in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFormat sets the target format by name ("bgra8unorm", "rgba8unorm").
// An empty name selects the preferred format of the host.
func WithFormat(name string) Option {
	return func(c *Config) {
		c.Format = name
	}
}

// WithPowerPreference sets the adapter preference
// ("high-performance", "low-power").
func WithPowerPreference(name string) Option {
	return func(c *Config) {
		c.Power = name
	}
}

// WithClearColor sets the color the render pass clears the target to.
func WithClearColor(color RGBA) Option {
	return func(c *Config) {
		c.ClearColor = color
	}
}

// WithShader replaces the cell program. The source must declare
// VertexEntryPoint and FragmentEntryPoint with the cell vertex layout.
func WithShader(source string) Option {
	return func(c *Config) {
		c.Shader = source
	}
}

// WithTitle sets the window title used by the window target.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithOutput sets the image path written by the headless target.
func WithOutput(path string) Option {
	return func(c *Config) {
		c.Output = path
	}
}

// WithCanvasID sets the DOM element id used by the browser target.
func WithCanvasID(id string) Option {
	return func(c *Config) {
		c.CanvasID = id
	}
}
