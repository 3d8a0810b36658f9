package starlight

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/starlight/term"
)

// DefaultTerminalFPS caps the terminal redraw rate.
const DefaultTerminalFPS = 30

// TerminalModule renders into a terminal with tcell and reads orbit input
// from its keyboard and mouse events. Screen defaults to the real terminal.
// FPS defaults to DefaultTerminalFPS.
type TerminalModule struct {
	Screen tcell.Screen
	FPS    int
}

type terminalState struct {
	renderer *term.Renderer
	ticker   *time.Ticker
	closed   bool
}

func (mod TerminalModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererTerminal))

	screen := mod.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			panic(fmt.Sprintf("terminal: %v", err))
		}
	}
	r := term.New(screen)
	if err := r.Start(); err != nil {
		panic(fmt.Sprintf("terminal: %v", err))
	}
	fps := mod.FPS
	if fps <= 0 {
		fps = DefaultTerminalFPS
	}
	cmd.AddResources(&terminalState{
		renderer: r,
		ticker:   time.NewTicker(time.Second / time.Duration(fps)),
	})

	app.UseSystem(
		System(terminalInputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(terminalRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(terminalCloseSystem).
				InStage(Render).
				InState(OnExit(StateQuit)),
		)
	}
}

func terminalInputSystem(ts *terminalState, cam *OrbitCamera, frame *Frame, cmd *Commands) {
	if ts.closed {
		return
	}
	<-ts.ticker.C

	frame.Width, frame.Height = ts.renderer.Size()
	frame.PixelRatio = 1

	a := ts.renderer.Drain()
	c := cam.Controls
	if a.RotateLeft != 0 {
		c.RotateLeft(a.RotateLeft)
	}
	if a.RotateUp != 0 {
		c.RotateUp(a.RotateUp)
	}
	if a.DragX != 0 || a.DragY != 0 {
		c.Drag(a.DragX, a.DragY, frame.Height)
	}
	if a.Zoom != 0 {
		c.Zoom(a.Zoom)
	}
	if a.Quit && cmd.State() != StateQuit {
		cmd.ChangeState(StateQuit)
	}
}

func terminalRenderSystem(ts *terminalState, frame *Frame, cam *OrbitCamera, sf *Starfield, scene *Scene, geom *SceneGeometry, ov *Overlay) {
	if ts.closed {
		return
	}
	ts.renderer.Draw(term.Scene{
		ViewProj:      cam.ViewProjection(ts.renderer.Aspect()),
		View:          cam.Controls.View(),
		Time:          frame.Elapsed,
		Positions:     sf.Positions(),
		Colors:        sf.Set.Colors,
		Sizes:         sf.Set.Sizes,
		MoonCenter:    scene.MoonCenter(),
		MoonRadius:    scene.MoonRadius(),
		Silhouette:    geom.SilhouettePoints(),
		Title:         ov.Title,
		Subtitle:      ov.Subtitle,
		Finale:        ov.Finale,
		FinaleOpacity: ov.Opacity,
	})
}

func terminalCloseSystem(ts *terminalState) {
	if ts.closed {
		return
	}
	ts.closed = true
	ts.ticker.Stop()
	ts.renderer.Close()
}
