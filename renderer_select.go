package starlight

import (
	"fmt"
	"reflect"
	"strings"
)

// RendererName identifies a concrete renderer module.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererTerminal RendererName = "terminal"
	RendererHeadless RendererName = "headless"
)

// ParseRenderer accepts a renderer name case-insensitively. An empty name
// selects the GPU renderer.
func ParseRenderer(s string) (RendererName, error) {
	switch name := RendererName(strings.ToLower(strings.TrimSpace(s))); name {
	case "":
		return RendererWGPU, nil
	case RendererWGPU, RendererTerminal, RendererHeadless:
		return name, nil
	}
	return "", fmt.Errorf("unknown renderer %q: %w", s, ErrInvalidConfig)
}

// ensureWindowResource guarantees a single shared WindowState exists.
func ensureWindowResource(app *App, width, height int, title string) {
	if app.hasResource(reflect.TypeOf((*WindowState)(nil)).Elem()) {
		return
	}
	app.UseModules(NewPlatformWindow(width, height, title))
}

// UseRenderer installs exactly one renderer module. The GPU renderer gets a
// shared window and its input module.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	return app.UseRendererWithWindow(name, mod, 0, 0, "")
}

// UseRendererWithWindow is UseRenderer with explicit window parameters,
// which only the GPU renderer uses.
func (app *App) UseRendererWithWindow(name RendererName, mod Module, width, height int, title string) *App {
	ensureSingleRenderer(app, string(name))
	if name == RendererWGPU {
		ensureWindowResource(app, width, height, title)
		app.UseModules(InputModule{})
	}
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseWGPU selects the WebGPU renderer in a window of the given size.
func (app *App) UseWGPU(width, height int, title string) *App {
	return app.UseRendererWithWindow(RendererWGPU, ClientModule{}, width, height, title)
}

// UseTerminal selects the tcell renderer on the controlling terminal.
func (app *App) UseTerminal() *App {
	return app.UseRenderer(RendererTerminal, TerminalModule{})
}
