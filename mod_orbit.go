package starlight

import (
	"github.com/gekko3d/starlight/orbit"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera is the camera resource. Input systems queue rotation and zoom
// on Controls; orbitSystem applies them once per frame.
type OrbitCamera struct {
	Controls *orbit.Controls
}

// ViewProjection returns the combined matrix for the current frame aspect.
func (c *OrbitCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Controls.ViewProjection(aspect)
}

type OrbitModule struct {
	Config orbit.Config
}

func (mod OrbitModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	if cfg == (orbit.Config{}) {
		cfg = orbit.DefaultConfig()
	}
	cmd.AddResources(
		&OrbitCamera{Controls: orbit.NewControls(cfg)},
		&Frame{PixelRatio: 1},
	)
	app.UseSystem(
		System(orbitSystem).
			InStage(Update).
			RunAlways(),
	)
}

// orbitSystem applies queued camera input and samples the per-frame inputs
// the morph engine reads in PostUpdate.
func orbitSystem(t *Time, cam *OrbitCamera, frame *Frame) {
	cam.Controls.Update()
	frame.Elapsed = t.Elapsed
	frame.Azimuth = cam.Controls.Azimuth()
	frame.Sampled = true
}
