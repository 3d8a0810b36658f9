package starlight

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/starlight/orbit"
	"github.com/gekko3d/starlight/particles"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Particles int            `json:"particles"`
	Renderer  string         `json:"renderer"`
	Window    WindowConfig   `json:"window"`
	Orbit     OrbitConfig    `json:"orbit"`
	Headless  HeadlessConfig `json:"headless"`
	Terminal  TerminalConfig `json:"terminal"`
	Debug     bool           `json:"debug"`
	LogPrefix string         `json:"logPrefix"`
	// LogFile receives log output. The terminal renderer discards logs
	// without one, since stdout is the screen.
	LogFile  string `json:"logFile,omitempty"`
	FontFile string `json:"fontFile,omitempty"`
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type OrbitConfig struct {
	RotateSpeed     float64 `json:"rotateSpeed"`
	MinDistance     float64 `json:"minDistance"`
	MaxDistance     float64 `json:"maxDistance"`
	EnableDamping   bool    `json:"enableDamping"`
	DampingFactor   float64 `json:"dampingFactor"`
	InitialDistance float64 `json:"initialDistance"`
}

type HeadlessConfig struct {
	Frames           int     `json:"frames"`
	DegreesPerSecond float64 `json:"degreesPerSecond"`
	FixedStepMs      float64 `json:"fixedStepMs"`
}

type TerminalConfig struct {
	FPS int `json:"fps"`
}

func DefaultConfig() Config {
	o := orbit.DefaultConfig()
	return Config{
		Particles: particles.DefaultCount,
		Renderer:  string(RendererWGPU),
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  DefaultTitle,
		},
		Orbit: OrbitConfig{
			RotateSpeed:     o.RotateSpeed,
			MinDistance:     o.MinDistance,
			MaxDistance:     o.MaxDistance,
			EnableDamping:   o.EnableDamping,
			DampingFactor:   o.DampingFactor,
			InitialDistance: float64(o.Eye.Len()),
		},
		Headless: HeadlessConfig{
			Frames:           900,
			DegreesPerSecond: 36,
			FixedStepMs:      1000.0 / 60,
		},
		Terminal:  TerminalConfig{FPS: DefaultTerminalFPS},
		LogPrefix: "starlight",
	}
}

// LoadConfig reads a JSON config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
	}
	if c.Particles < 0 {
		return invalid("particles must be >= 0, got %d", c.Particles)
	}
	if _, err := ParseRenderer(c.Renderer); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	o := c.Orbit
	if o.RotateSpeed <= 0 {
		return invalid("orbit.rotateSpeed must be positive")
	}
	if o.MinDistance <= 0 || o.MaxDistance < o.MinDistance {
		return invalid("orbit distance range [%g, %g] is empty", o.MinDistance, o.MaxDistance)
	}
	if o.InitialDistance < o.MinDistance || o.InitialDistance > o.MaxDistance {
		return invalid("orbit.initialDistance %g outside [%g, %g]", o.InitialDistance, o.MinDistance, o.MaxDistance)
	}
	if o.EnableDamping && (o.DampingFactor <= 0 || o.DampingFactor > 1) {
		return invalid("orbit.dampingFactor must be in (0, 1], got %g", o.DampingFactor)
	}
	if c.Headless.Frames < 0 || c.Headless.FixedStepMs < 0 {
		return invalid("headless frames and fixedStepMs must be >= 0")
	}
	if c.Terminal.FPS < 0 {
		return invalid("terminal.fps must be >= 0, got %d", c.Terminal.FPS)
	}
	return nil
}

// OrbitControls converts the orbit section into controller settings.
func (c Config) OrbitControls() orbit.Config {
	o := orbit.DefaultConfig()
	o.RotateSpeed = c.Orbit.RotateSpeed
	o.MinDistance = c.Orbit.MinDistance
	o.MaxDistance = c.Orbit.MaxDistance
	o.EnableDamping = c.Orbit.EnableDamping
	o.DampingFactor = c.Orbit.DampingFactor
	o.Eye = mgl32.Vec3{0, 0, float32(c.Orbit.InitialDistance)}
	return o
}

// BuildApp wires every module for cfg and installs the configured renderer.
func BuildApp(cfg Config) (*App, error) {
	return buildApp(cfg, nil)
}

// buildApp takes an optional screen so the terminal renderer can run
// against a simulation screen.
func buildApp(cfg Config, screen tcell.Screen) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name, _ := ParseRenderer(cfg.Renderer)

	logging, err := loggingFor(cfg, name)
	if err != nil {
		return nil, err
	}
	var step time.Duration
	controls := cfg.OrbitControls()
	if name == RendererHeadless {
		step = time.Duration(cfg.Headless.FixedStepMs * float64(time.Millisecond))
		// Scripted rotation maps 1:1 onto azimuth.
		controls.EnableDamping = false
	}

	app := NewAppBuilder().
		UseStates(StateTree, StateQuit).
		UseModule(
			logging,
			TimeModule{FixedStep: step},
			AssetServerModule{},
			OrbitModule{Config: controls},
			StarfieldModule{Count: cfg.Particles},
			HierarchyModule{},
			OverlayModule{},
		).
		Build()

	switch name {
	case RendererWGPU:
		app.UseRendererWithWindow(name, ClientModule{FontFile: cfg.FontFile}, cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	case RendererTerminal:
		app.UseRenderer(name, TerminalModule{Screen: screen, FPS: cfg.Terminal.FPS})
	case RendererHeadless:
		app.UseRenderer(name, HeadlessModule{
			Frames:           cfg.Headless.Frames,
			DegreesPerSecond: cfg.Headless.DegreesPerSecond,
		})
	}
	return app, nil
}

func loggingFor(cfg Config, name RendererName) (LoggingModule, error) {
	mod := LoggingModule{Prefix: cfg.LogPrefix, Debug: cfg.Debug}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return mod, fmt.Errorf("open log file: %w", err)
		}
		mod.Out, mod.Err, mod.Sink = f, f, f
	case name == RendererTerminal:
		mod.Out, mod.Err = io.Discard, io.Discard
	}
	return mod, nil
}
