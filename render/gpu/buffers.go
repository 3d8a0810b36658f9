package gpu

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starlight/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformSize is the byte size of the Uniforms struct in the WGSL shaders.
const UniformSize = 160

// ensureBuffer grows buf to fit data plus headroom and uploads data.
// It reports whether the buffer was recreated, in which case bind groups
// referencing it must be rebuilt.
func ensureBuffer(device *wgpu.Device, name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage, headroom int) (bool, error) {
	neededSize := uint64(len(data) + headroom)
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}
	if neededSize == 0 {
		neededSize = 4
	}

	recreated := false
	current := *buf
	if current == nil || current.GetSize() < neededSize {
		if current != nil {
			current.Release()
		}
		newBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: name,
			Size:  neededSize,
			Usage: usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return false, err
		}
		*buf = newBuf
		recreated = true
	}

	if len(data) > 0 {
		device.GetQueue().WriteBuffer(*buf, 0, data)
	}
	return recreated, nil
}

// encodeUniforms packs u in the shader's std140-compatible layout:
//
//	view_proj   mat4  0
//	view        mat4  64
//	viewport    vec2  128
//	time        f32   136
//	pixel_ratio f32   140
//	opacity     f32   144
//	pad         3xf32 148 -> 160
func encodeUniforms(u core.FrameUniforms) []byte {
	buf := make([]byte, UniformSize)

	writeMat := func(offset int, mat mgl32.Mat4) {
		for i, v := range mat {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}
	writeF := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}

	writeMat(0, u.ViewProj)
	writeMat(64, u.View)
	writeF(128, u.Viewport[0])
	writeF(132, u.Viewport[1])
	writeF(136, u.Time)
	writeF(140, u.PixelRatio)
	writeF(144, u.Opacity)
	return buf
}

func vec3sToBytes(dst []byte, vs []mgl32.Vec3) []byte {
	dst = dst[:0]
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v[1]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v[2]))
	}
	return dst
}

func float32sToBytes(fs []float32) []byte {
	buf := make([]byte, 0, len(fs)*4)
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
