// Package gpu renders the starfield with WebGPU: one star pass, one
// silhouette pass for the moon and sleigh, and one text pass for the
// overlay, all into a single colour target.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starlight/particles"
	"github.com/gekko3d/starlight/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything the renderer needs for one frame.
type Frame struct {
	Uniforms   core.FrameUniforms
	Positions  []mgl32.Vec3
	Silhouette []SilhouetteVertex
	Text       []core.TextVertex
}

type Renderer struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration
	Sampler  *wgpu.Sampler

	UniformBuffer *wgpu.Buffer

	Stars      *StarPass
	Silhouette *SilhouettePass
	Text       *TextPass

	ClearColor wgpu.Color
}

// NewRenderer brings up the device on the given surface and builds all
// passes. colors and sizes are the static per-star attributes.
func NewRenderer(surfaceDesc *wgpu.SurfaceDescriptor, width, height int, colors []particles.RGB, sizes []float32, atlas *core.TextAtlas) (*Renderer, error) {
	r := &Renderer{}
	r.Instance = wgpu.CreateInstance(nil)
	r.Surface = r.Instance.CreateSurface(surfaceDesc)

	var err error
	r.Adapter, err = r.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	r.Device, err = r.Adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.Queue = r.Device.GetQueue()

	caps := r.Surface.GetCapabilities(r.Adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}
	r.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      PickSurfaceFormat(caps.Formats),
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.Surface.Configure(r.Adapter, r.Device, r.Config)

	r.Sampler, err = r.Device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}

	r.UniformBuffer, err = r.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "FrameUB",
		Size:  UniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("uniform buffer: %w", err)
	}

	if r.Stars, err = NewStarPass(r.Device, r.Config.Format, r.UniformBuffer, colors, sizes); err != nil {
		return nil, fmt.Errorf("star pass: %w", err)
	}
	if r.Silhouette, err = NewSilhouettePass(r.Device, r.Config.Format, r.UniformBuffer); err != nil {
		return nil, fmt.Errorf("silhouette pass: %w", err)
	}
	if atlas != nil {
		if r.Text, err = NewTextPass(r.Device, r.Queue, r.Config.Format, r.Sampler, atlas); err != nil {
			return nil, fmt.Errorf("text pass: %w", err)
		}
	}

	bg := core.HexColor(0x050505)
	r.ClearColor = wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1}
	return r, nil
}

// PickSurfaceFormat prefers a non-sRGB 8-bit format. Star colours are
// already sRGB-encoded, so writing them to an sRGB view would encode twice.
func PickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if r.Config.Width == uint32(w) && r.Config.Height == uint32(h) {
		return
	}
	r.Config.Width = uint32(w)
	r.Config.Height = uint32(h)
	r.Surface.Configure(r.Adapter, r.Device, r.Config)
}

// Render uploads the frame's data and draws stars, then silhouettes, then
// text, clearing to the background colour.
func (r *Renderer) Render(f Frame) error {
	r.Queue.WriteBuffer(r.UniformBuffer, 0, encodeUniforms(f.Uniforms))
	r.Stars.Update(r.Queue, f.Positions)
	if err := r.Silhouette.Update(f.Silhouette); err != nil {
		return err
	}
	if r.Text != nil {
		if err := r.Text.Update(f.Text); err != nil {
			return err
		}
	}

	nextTexture, err := r.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.ClearColor,
		}},
	})
	r.Stars.Draw(pass)
	r.Silhouette.Draw(pass)
	if r.Text != nil {
		r.Text.Draw(pass)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	r.Queue.Submit(cmd)
	r.Surface.Present()
	return nil
}

func (r *Renderer) Release() {
	if r.Text != nil {
		r.Text.Release()
	}
	if r.Silhouette != nil {
		r.Silhouette.Release()
	}
	if r.Stars != nil {
		r.Stars.Release()
	}
	if r.UniformBuffer != nil {
		r.UniformBuffer.Release()
	}
	if r.Device != nil {
		r.Device.Release()
	}
	if r.Surface != nil {
		r.Surface.Release()
	}
	if r.Instance != nil {
		r.Instance.Release()
	}
}
