package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an unindexed triangle list in local space.
type Mesh struct {
	Positions []mgl32.Vec3
}

func (m Mesh) TriangleCount() int {
	return len(m.Positions) / 3
}

// Transformed appends m's positions transformed by model to dst.
func (m Mesh) Transformed(dst []mgl32.Vec3, model mgl32.Mat4) []mgl32.Vec3 {
	for _, p := range m.Positions {
		dst = append(dst, model.Mul4x1(p.Vec4(1)).Vec3())
	}
	return dst
}

// BoxMesh returns an axis-aligned box centred on the origin with full
// extents size.
func BoxMesh(size mgl32.Vec3) Mesh {
	h := size.Mul(0.5)
	c := [8]mgl32.Vec3{
		{-h[0], -h[1], -h[2]}, {h[0], -h[1], -h[2]}, {h[0], h[1], -h[2]}, {-h[0], h[1], -h[2]},
		{-h[0], -h[1], h[2]}, {h[0], -h[1], h[2]}, {h[0], h[1], h[2]}, {-h[0], h[1], h[2]},
	}
	faces := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	out := make([]mgl32.Vec3, 0, 36)
	for _, f := range faces {
		out = append(out, c[f[0]], c[f[1]], c[f[2]], c[f[0]], c[f[2]], c[f[3]])
	}
	return Mesh{Positions: out}
}

// SphereMesh returns a UV sphere. rings must be even and at least 2.
func SphereMesh(radius float32, rings, segments int) Mesh {
	return CapsuleMesh(radius, 0, rings, segments)
}

// CapsuleMesh returns a capsule along local Y: a cylinder of the given
// length capped with hemispheres of radius. length 0 gives a sphere.
func CapsuleMesh(radius, length float32, rings, segments int) Mesh {
	rings = max(rings+rings%2, 2)
	segments = max(segments, 3)
	half := length / 2

	type ring struct{ y, r float32 }
	profile := make([]ring, 0, rings+2)
	for i := 0; i <= rings/2; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		profile = append(profile, ring{float32(math.Cos(phi))*radius + half, float32(math.Sin(phi)) * radius})
	}
	start := rings / 2
	if length == 0 {
		start++
	}
	for i := start; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		profile = append(profile, ring{float32(math.Cos(phi))*radius - half, float32(math.Sin(phi)) * radius})
	}

	point := func(rg ring, s int) mgl32.Vec3 {
		a := 2 * math.Pi * float64(s) / float64(segments)
		return mgl32.Vec3{float32(math.Cos(a)) * rg.r, rg.y, float32(math.Sin(a)) * rg.r}
	}

	out := make([]mgl32.Vec3, 0, (len(profile)-1)*segments*6)
	for i := 0; i+1 < len(profile); i++ {
		top, bottom := profile[i], profile[i+1]
		for s := 0; s < segments; s++ {
			a, b := point(top, s), point(top, s+1)
			c, d := point(bottom, s), point(bottom, s+1)
			out = append(out, a, c, b, b, c, d)
		}
	}
	return Mesh{Positions: out}
}
