package starlight

import (
	"fmt"
	"reflect"
)

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is
// created and made available to the GPU renderer and the input module.
// Install is idempotent.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow fills in defaults for zero values.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = DefaultTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if app.hasResource(reflect.TypeOf((*WindowState)(nil)).Elem()) {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	app.addResources(ws)
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	if app.stateful {
		app.UseSystem(
			System(windowCloseSystem).
				InStage(Finale).
				InState(OnExit(StateQuit)),
		)
	}
}

func windowCloseSystem(ws *WindowState) {
	ws.Destroy()
}
