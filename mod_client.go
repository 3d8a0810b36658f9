package starlight

import (
	"fmt"

	"github.com/gekko3d/starlight/render/core"
	"github.com/gekko3d/starlight/render/gpu"
)

// DefaultFontSize is the rasterised size of the overlay font in points.
// Text is scaled from it per item.
const DefaultFontSize = 40

// ClientModule is the windowed WebGPU renderer. It requires the window,
// the starfield, the scene geometry and the overlay to be installed first.
type ClientModule struct {
	FontSize float64
	// FontFile optionally replaces the built-in Go Regular face.
	FontFile string
}

type clientState struct {
	renderer *gpu.Renderer
	atlas    *core.TextAtlas
	vertices []gpu.SilhouetteVertex
	errors   int
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererWGPU))

	ws := mustResource[WindowState](app, "ClientModule")
	sf := mustResource[Starfield](app, "ClientModule")
	assets := mustResource[AssetServer](app, "ClientModule")

	atlas, err := mod.loadAtlas(assets)
	if err != nil {
		panic(fmt.Sprintf("client: %v", err))
	}

	w, h := ws.FramebufferSize()
	r, err := gpu.NewRenderer(ws.SurfaceDescriptor(), w, h, sf.Set.Colors, sf.Set.Sizes, atlas)
	if err != nil {
		app.Logger().Errorf("GPU init failed: %v", err)
		panic(fmt.Sprintf("client: %v", err))
	}
	app.Logger().Infof("WebGPU surface %dx%d, format %v", w, h, r.Config.Format)

	cmd.AddResources(&clientState{renderer: r, atlas: atlas})

	app.UseSystem(
		System(clientViewportSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(clientRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(clientReleaseSystem).
				InStage(Render).
				InState(OnExit(StateQuit)),
		)
	}
}

func (mod ClientModule) loadAtlas(assets *AssetServer) (*core.TextAtlas, error) {
	size := mod.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	var (
		id  AssetId
		err error
	)
	if mod.FontFile != "" {
		id, err = assets.LoadFontFile(mod.FontFile, size)
	} else {
		id, err = assets.LoadFont(size)
	}
	if err != nil {
		return nil, err
	}
	return assets.Atlas(id), nil
}

func clientViewportSystem(ws *WindowState, frame *Frame) {
	frame.Width, frame.Height = ws.FramebufferSize()
	frame.PixelRatio = ws.PixelRatio()
}

func clientRenderSystem(client *clientState, frame *Frame, cam *OrbitCamera, sf *Starfield, geom *SceneGeometry, ov *Overlay, cmd *Commands) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return
	}
	client.renderer.Resize(frame.Width, frame.Height)

	client.vertices = client.vertices[:0]
	for _, b := range geom.Batches {
		client.vertices = gpu.AppendTriangles(client.vertices, b.Positions, b.Color)
	}

	items := ov.Layout(client.atlas, frame.Width, frame.Height, frame.PixelRatio)
	err := client.renderer.Render(gpu.Frame{
		Uniforms: core.NewFrameUniforms(
			cam.ViewProjection(frame.Aspect()),
			cam.Controls.View(),
			frame.Width, frame.Height,
			frame.Elapsed, frame.PixelRatio,
		),
		Positions:  sf.Positions(),
		Silhouette: client.vertices,
		Text:       client.atlas.BuildVertices(items, frame.Width, frame.Height),
	})
	if err != nil {
		// A lost or outdated surface recovers on the next configure; only
		// the first failure of a run is worth a warning.
		if client.errors == 0 {
			cmd.Logger().Warnf("Render failed: %v", err)
		}
		client.errors++
		return
	}
	client.errors = 0
}

func clientReleaseSystem(client *clientState) {
	client.renderer.Release()
}
