package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipCorrection remaps OpenGL clip depth [-w, w] (what mgl32.Perspective
// produces) into the [0, w] range WebGPU expects.
var ClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// FrameUniforms matches the Uniforms struct shared by the star and
// silhouette shaders. Size is 160 bytes.
type FrameUniforms struct {
	ViewProj   mgl32.Mat4
	View       mgl32.Mat4
	Viewport   [2]float32
	Time       float32
	PixelRatio float32
	Opacity    float32
	_          [3]float32
}

func NewFrameUniforms(viewProj, view mgl32.Mat4, width, height int, time, pixelRatio float64) FrameUniforms {
	return FrameUniforms{
		ViewProj:   ClipCorrection.Mul4(viewProj),
		View:       view,
		Viewport:   [2]float32{float32(width), float32(height)},
		Time:       float32(time),
		PixelRatio: float32(pixelRatio),
		Opacity:    1,
	}
}

// Twinkle is the per-star brightness wave in [0,1], mirrored from the star
// shader so other renderers can match it.
func Twinkle(time float64, x float32) float32 {
	return float32(math.Sin(time*2+float64(x)*10)*0.5 + 0.5)
}

// PointSize returns the on-screen star diameter in pixels. viewZ is the
// star's view-space z, negative in front of the camera. Stars at or behind
// the camera get size 0.
func PointSize(size, twinkle, pixelRatio, viewZ float32) float32 {
	if viewZ >= 0 {
		return 0
	}
	return size * (0.8 + 0.4*twinkle) * 20 * pixelRatio * (10 / -viewZ)
}

// SpriteStrength is the soft round falloff of a star sprite at distance d
// from its centre, with the sprite spanning d in [0, 0.5].
func SpriteStrength(d float32) float32 {
	if d >= 0.5 || d < 0 {
		return 0
	}
	return float32(math.Pow(float64(1-2*d), 1.5))
}

// Project maps a world point to pixel coordinates in a width x height
// viewport (origin top-left). ok is false for points behind the camera.
func Project(viewProj mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X()*0.5 + 0.5) * float32(width)
	y = (1 - (ndc.Y()*0.5 + 0.5)) * float32(height)
	return x, y, ndc.Z(), true
}

// HexColor converts 0xRRGGBB to an opaque RGBA colour.
func HexColor(hex uint32) [4]float32 {
	return [4]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}
