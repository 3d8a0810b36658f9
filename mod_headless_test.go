package starlight

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessConfig(frames int, degPerSec float64) Config {
	cfg := DefaultConfig()
	cfg.Renderer = string(RendererHeadless)
	cfg.Particles = 500
	cfg.Orbit.EnableDamping = false
	cfg.Headless.Frames = frames
	cfg.Headless.DegreesPerSecond = degPerSec
	cfg.Headless.FixedStepMs = 1000.0 / 60
	return cfg
}

func TestHeadless_FullRevolutionUnwrapsSky(t *testing.T) {
	// 360°/s at 60 fps is one revolution every 60 frames.
	cfg := headlessConfig(120, 360)
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")
	app, err := BuildApp(cfg)
	require.NoError(t, err)

	finales := 0
	app.UseSystem(System(func() { finales++ }).InStage(Finale).InState(OnEnter(StateFinale)))

	app.Run()

	assert.Equal(t, StateQuit, app.State())
	assert.Equal(t, uint64(120), app.Frames())
	assert.Equal(t, 1, finales)

	sf := Resource[Starfield](app)
	assert.Equal(t, 1.0, sf.Progress)
	for i, p := range sf.Positions() {
		assert.InDelta(t, 0, p.Sub(sf.Set.Sky[i]).Len(), 1e-5, "particle %d", i)
	}

	ov := Resource[Overlay](app)
	assert.Greater(t, ov.Opacity, 0.5)

	geom := Resource[SceneGeometry](app)
	assert.NotEmpty(t, geom.SilhouettePoints())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "Sky unwrapped")
	assert.Contains(t, log, "Finished after 120 frames")
	assert.Contains(t, log, "progress 1.0000")

	sink := Resource[logSink](app)
	require.NotNil(t, sink)
	assert.True(t, sink.closed)
	_, err = sink.closer.(*os.File).WriteString("late")
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestHeadless_StillCameraKeepsTree(t *testing.T) {
	app, err := BuildApp(headlessConfig(30, 0))
	require.NoError(t, err)
	app.Run()

	sf := Resource[Starfield](app)
	assert.Zero(t, sf.Progress)
	assert.Equal(t, sf.Set.Tree, sf.Positions())
	assert.Zero(t, Resource[Overlay](app).Opacity)

	frame := Resource[Frame](app)
	assert.Equal(t, DefaultHeadlessWidth, frame.Width)
	assert.InDelta(t, 30.0/60, frame.Elapsed, 1e-6)
}

func TestHeadless_DisablesOrbitDamping(t *testing.T) {
	cfg := headlessConfig(10, 360)
	cfg.Orbit.EnableDamping = true
	app, err := BuildApp(cfg)
	require.NoError(t, err)

	controls := Resource[OrbitCamera](app).Controls
	assert.False(t, controls.Config().EnableDamping)

	require.True(t, app.Step())
	assert.InDelta(t, 2*math.Pi/60, math.Abs(controls.Azimuth()), 1e-4)
}

func TestHeadless_RendererConflict(t *testing.T) {
	app, err := BuildApp(headlessConfig(1, 0))
	require.NoError(t, err)
	assert.Panics(t, func() { app.UseModules(TerminalModule{}) })
}

func TestLifecycleModule_RequiresStates(t *testing.T) {
	assert.PanicsWithValue(t, "LifecycleModule requires a stateful app", func() {
		NewAppBuilder().UseModule(LifecycleModule{Frames: 1}).Build()
	})
}

func TestLifecycleModule_Unbounded(t *testing.T) {
	app := NewAppBuilder().UseStates(StateTree, StateQuit).UseModule(LifecycleModule{}).Build()
	for i := 0; i < 10; i++ {
		require.True(t, app.Step())
	}
	assert.Equal(t, StateTree, app.State())
}
