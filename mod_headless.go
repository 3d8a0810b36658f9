package starlight

import (
	"math"
)

const (
	DefaultHeadlessWidth  = 1280
	DefaultHeadlessHeight = 720
)

// HeadlessModule drives the scene without a display: the camera turns at a
// constant angular speed and the run stops after Frames frames. Pair it
// with a fixed TimeModule step for reproducible runs.
type HeadlessModule struct {
	Frames           int
	DegreesPerSecond float64
}

type headlessState struct {
	radiansPerSecond float64
}

func (mod HeadlessModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererHeadless))
	app.UseModules(LifecycleModule{Frames: mod.Frames})

	cmd.AddResources(&headlessState{radiansPerSecond: mod.DegreesPerSecond * math.Pi / 180})
	app.UseSystem(
		System(autoRotateSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(headlessReportSystem).
			InStage(Finale).
			InState(OnExit(StateQuit)),
	)
}

func autoRotateSystem(hs *headlessState, t *Time, cam *OrbitCamera, frame *Frame) {
	frame.Width, frame.Height = DefaultHeadlessWidth, DefaultHeadlessHeight
	frame.PixelRatio = 1
	if step := hs.radiansPerSecond * t.Seconds(); step != 0 {
		cam.Controls.RotateLeft(step)
	}
}

func headlessReportSystem(t *Time, sf *Starfield, cmd *Commands) {
	cmd.Logger().Infof("Finished after %d frames (%.2fs): progress %.4f", t.Frame, t.Elapsed, sf.Progress)
}
