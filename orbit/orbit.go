// Package orbit implements an orbit camera around a fixed target: drag to
// rotate, scroll to zoom, no panning.
package orbit

import (
	"math"

	"github.com/gekko3d/starlight/progress"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the poles where the up vector degenerates.
const polarEpsilon = 1e-6

type Config struct {
	RotateSpeed   float64
	ZoomStep      float64 // per wheel notch, multiplicative
	MinDistance   float64
	MaxDistance   float64
	EnableDamping bool
	DampingFactor float64
	FovDegrees    float32
	Near, Far     float32
	Eye           mgl32.Vec3
	Target        mgl32.Vec3
}

func DefaultConfig() Config {
	return Config{
		RotateSpeed:   0.5,
		ZoomStep:      0.95,
		MinDistance:   5,
		MaxDistance:   50,
		EnableDamping: true,
		DampingFactor: 0.05,
		FovDegrees:    60,
		Near:          0.1,
		Far:           1000,
		Eye:           mgl32.Vec3{0, 0, 25},
	}
}

// Controls holds the camera in spherical coordinates around Target.
// theta is the azimuth measured from +Z toward +X, phi the polar angle from +Y.
type Controls struct {
	cfg Config

	theta, phi, radius float64

	deltaTheta, deltaPhi float64
	scale                float64
}

func NewControls(cfg Config) *Controls {
	c := &Controls{cfg: cfg, scale: 1}
	offset := cfg.Eye.Sub(cfg.Target)
	c.radius = float64(offset.Len())
	if c.radius > 0 {
		c.theta = math.Atan2(float64(offset.X()), float64(offset.Z()))
		c.phi = math.Acos(clamp(float64(offset.Y())/c.radius, -1, 1))
	} else {
		c.phi = math.Pi / 2
	}
	c.phi = clamp(c.phi, polarEpsilon, math.Pi-polarEpsilon)
	c.radius = c.clampDistance(c.radius)
	return c
}

// Drag queues a rotation for a pointer move of (dx, dy) pixels in a
// viewport height pixels tall. Moving the full height rotates by
// 2π*RotateSpeed.
func (c *Controls) Drag(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	h := float64(height)
	c.RotateLeft(2 * math.Pi * dx / h * c.cfg.RotateSpeed)
	c.RotateUp(2 * math.Pi * dy / h * c.cfg.RotateSpeed)
}

// RotateLeft queues an azimuth change. Positive angles orbit the camera
// clockwise seen from above.
func (c *Controls) RotateLeft(angle float64) {
	c.deltaTheta -= angle
}

func (c *Controls) RotateUp(angle float64) {
	c.deltaPhi -= angle
}

// Zoom queues a dolly by wheel notches. Positive steps move closer.
func (c *Controls) Zoom(steps float64) {
	if c.cfg.ZoomStep <= 0 {
		return
	}
	c.scale *= math.Pow(c.cfg.ZoomStep, steps)
}

// Update applies queued input. With damping enabled only a fraction of the
// queued rotation is applied each call and the rest decays.
func (c *Controls) Update() {
	if c.cfg.EnableDamping {
		f := c.cfg.DampingFactor
		c.theta += c.deltaTheta * f
		c.phi += c.deltaPhi * f
		c.deltaTheta *= 1 - f
		c.deltaPhi *= 1 - f
	} else {
		c.theta += c.deltaTheta
		c.phi += c.deltaPhi
		c.deltaTheta = 0
		c.deltaPhi = 0
	}

	c.theta = progress.WrapAngle(c.theta)
	c.phi = clamp(c.phi, polarEpsilon, math.Pi-polarEpsilon)
	c.radius = c.clampDistance(c.radius * c.scale)
	c.scale = 1
}

// Azimuth returns the horizontal orbit angle in (-π, π].
func (c *Controls) Azimuth() float64 {
	return c.theta
}

func (c *Controls) Polar() float64 {
	return c.phi
}

func (c *Controls) Distance() float64 {
	return c.radius
}

func (c *Controls) Config() Config {
	return c.cfg
}

func (c *Controls) Target() mgl32.Vec3 {
	return c.cfg.Target
}

// Eye returns the camera position in world space.
func (c *Controls) Eye() mgl32.Vec3 {
	sinPhi := math.Sin(c.phi)
	offset := mgl32.Vec3{
		float32(c.radius * sinPhi * math.Sin(c.theta)),
		float32(c.radius * math.Cos(c.phi)),
		float32(c.radius * sinPhi * math.Cos(c.theta)),
	}
	return c.cfg.Target.Add(offset)
}

func (c *Controls) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.cfg.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Controls) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.cfg.FovDegrees), aspect, c.cfg.Near, c.cfg.Far)
}

// ViewProjection returns Projection * View.
func (c *Controls) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

func (c *Controls) clampDistance(d float64) float64 {
	lo, hi := c.cfg.MinDistance, c.cfg.MaxDistance
	if hi <= 0 {
		hi = math.Inf(1)
	}
	return clamp(d, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
