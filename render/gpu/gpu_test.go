package gpu

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starlight/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestEncodeUniforms(t *testing.T) {
	vp := mgl32.Translate3D(1, 2, 3)
	u := core.FrameUniforms{
		ViewProj:   vp,
		View:       mgl32.Ident4(),
		Viewport:   [2]float32{1280, 720},
		Time:       4.5,
		PixelRatio: 2,
		Opacity:    0.25,
	}
	buf := encodeUniforms(u)
	require.Len(t, buf, UniformSize)

	assert.Equal(t, float32(1), f32At(buf, 48)) // column 3, x
	assert.Equal(t, float32(3), f32At(buf, 56))
	assert.Equal(t, float32(1), f32At(buf, 64)) // view[0][0]
	assert.Equal(t, float32(1280), f32At(buf, 128))
	assert.Equal(t, float32(720), f32At(buf, 132))
	assert.Equal(t, float32(4.5), f32At(buf, 136))
	assert.Equal(t, float32(2), f32At(buf, 140))
	assert.Equal(t, float32(0.25), f32At(buf, 144))
	assert.Zero(t, f32At(buf, 156))
}

func TestEncodeUniforms_MatchesStructLayout(t *testing.T) {
	u := core.NewFrameUniforms(mgl32.Ident4(), mgl32.Ident4(), 10, 20, 1, 1)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&u)), unsafe.Sizeof(u))
	assert.Equal(t, raw, encodeUniforms(u))
}

func TestVec3sToBytes_ReusesScratch(t *testing.T) {
	scratch := make([]byte, 0, 64)
	out := vec3sToBytes(scratch, []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}})
	require.Len(t, out, 24)
	assert.Equal(t, float32(5), f32At(out, 16))
	assert.Same(t, &scratch[:1][0], &out[0])

	out = vec3sToBytes(out, []mgl32.Vec3{{7, 8, 9}})
	assert.Len(t, out, 12)
	assert.Equal(t, float32(7), f32At(out, 0))
}

func TestFloat32sToBytes(t *testing.T) {
	out := float32sToBytes([]float32{0.1, 0.6})
	require.Len(t, out, 8)
	assert.Equal(t, float32(0.6), f32At(out, 4))
	assert.Empty(t, float32sToBytes(nil))
}

func TestPickSurfaceFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, PickSurfaceFormat([]wgpu.TextureFormat{
		wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm,
	}))
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, PickSurfaceFormat([]wgpu.TextureFormat{
		wgpu.TextureFormatRGBA16Float,
	}))
}

func TestAppendTriangles(t *testing.T) {
	assert.Equal(t, uintptr(28), unsafe.Sizeof(SilhouetteVertex{}))

	black := [4]float32{0, 0, 0, 1}
	out := AppendTriangles(nil, core.BoxMesh(mgl32.Vec3{1, 1, 1}).Positions, black)
	require.Len(t, out, 36)
	for _, v := range out {
		assert.Equal(t, black, v.Color)
	}
}
