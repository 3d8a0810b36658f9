package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starlight/particles"
	"github.com/gekko3d/starlight/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// StarPass draws every particle as a camera-facing soft sprite with
// additive blending. Positions are re-uploaded each frame; colours and sizes
// are uploaded once.
type StarPass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	PositionBuffer *wgpu.Buffer
	ColorBuffer    *wgpu.Buffer
	SizeBuffer     *wgpu.Buffer
	Count          uint32
	Device         *wgpu.Device

	scratch []byte
}

func NewStarPass(device *wgpu.Device, format wgpu.TextureFormat, uniforms *wgpu.Buffer, colors []particles.RGB, sizes []float32) (*StarPass, error) {
	if len(colors) != len(sizes) {
		return nil, fmt.Errorf("star pass: colors=%d sizes=%d: %w", len(colors), len(sizes), particles.ErrLengthMismatch)
	}

	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "StarShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.StarsWGSL},
	})
	if err != nil {
		return nil, err
	}

	additive := wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "StarPipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: 12,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					},
				},
				{
					ArrayStride: 4,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32, Offset: 0, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend:     &wgpu.BlendState{Color: additive, Alpha: additive},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &StarPass{
		Pipeline: pipeline,
		Device:   device,
		Count:    uint32(len(colors)),
	}

	rgb := make([]mgl32.Vec3, len(colors))
	for i, c := range colors {
		rgb[i] = mgl32.Vec3(c)
	}
	if _, err := ensureBuffer(device, "StarColorBuffer", &p.ColorBuffer, vec3sToBytes(nil, rgb), wgpu.BufferUsageVertex, 0); err != nil {
		return nil, err
	}
	if _, err := ensureBuffer(device, "StarSizeBuffer", &p.SizeBuffer, float32sToBytes(sizes), wgpu.BufferUsageVertex, 0); err != nil {
		return nil, err
	}
	if _, err := ensureBuffer(device, "StarPositionBuffer", &p.PositionBuffer, nil, wgpu.BufferUsageVertex, len(colors)*12); err != nil {
		return nil, err
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "StarUniformBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniforms, Size: UniformSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Update uploads the live positions. Extra positions beyond Count are ignored.
func (p *StarPass) Update(queue *wgpu.Queue, positions []mgl32.Vec3) {
	n := min(len(positions), int(p.Count))
	if n == 0 {
		return
	}
	p.scratch = vec3sToBytes(p.scratch, positions[:n])
	queue.WriteBuffer(p.PositionBuffer, 0, p.scratch)
}

func (p *StarPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.Count == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.PositionBuffer, 0, p.PositionBuffer.GetSize())
	pass.SetVertexBuffer(1, p.ColorBuffer, 0, p.ColorBuffer.GetSize())
	pass.SetVertexBuffer(2, p.SizeBuffer, 0, p.SizeBuffer.GetSize())
	pass.Draw(6, p.Count, 0, 0)
}

func (p *StarPass) Release() {
	for _, b := range []*wgpu.Buffer{p.PositionBuffer, p.ColorBuffer, p.SizeBuffer} {
		if b != nil {
			b.Release()
		}
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
