package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starlight/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// SilhouetteVertex matches the WGSL VertexInput of silhouette.wgsl.
type SilhouetteVertex struct {
	Pos   [3]float32
	Color [4]float32
}

// AppendTriangles appends world-space triangle positions with one colour.
func AppendTriangles(dst []SilhouetteVertex, positions []mgl32.Vec3, color [4]float32) []SilhouetteVertex {
	for _, p := range positions {
		dst = append(dst, SilhouetteVertex{Pos: p, Color: color})
	}
	return dst
}

// SilhouettePass draws flat-coloured, CPU-transformed triangles (the moon
// and the sleigh) with alpha blending and no depth test. Later triangles
// paint over earlier ones.
type SilhouettePass struct {
	Pipeline     *wgpu.RenderPipeline
	BindGroup    *wgpu.BindGroup
	VertexBuffer *wgpu.Buffer
	VertexCount  uint32
	Device       *wgpu.Device
}

func NewSilhouettePass(device *wgpu.Device, format wgpu.TextureFormat, uniforms *wgpu.Buffer) (*SilhouettePass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "SilhouetteShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.SilhouetteWGSL},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "SilhouettePipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(SilhouetteVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
					Alpha: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "SilhouetteUniformBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniforms, Size: UniformSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return &SilhouettePass{Pipeline: pipeline, BindGroup: bg, Device: device}, nil
}

func (p *SilhouettePass) Update(vertices []SilhouetteVertex) error {
	p.VertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}
	size := len(vertices) * int(unsafe.Sizeof(SilhouetteVertex{}))
	data := unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size)
	_, err := ensureBuffer(p.Device, "SilhouetteVertexBuffer", &p.VertexBuffer, data, wgpu.BufferUsageVertex, 0)
	return err
}

func (p *SilhouettePass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.VertexCount == 0 || p.VertexBuffer == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, p.VertexBuffer.GetSize())
	pass.Draw(p.VertexCount, 1, 0, 0)
}

func (p *SilhouettePass) Release() {
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
