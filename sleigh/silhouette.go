package sleigh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Shape int

const (
	Box Shape = iota
	Sphere
	Capsule
)

// Part is one primitive of the silhouette in sleigh-local units (before
// Scale). Box uses Size as full extents. Sphere uses Radius. Capsule uses
// Radius and Length (the straight section, along local Y).
type Part struct {
	Shape     Shape
	Size      mgl32.Vec3
	Radius    float32
	Length    float32
	Offset    mgl32.Vec3
	RotationZ float32
}

// Model returns the part's matrix relative to the sleigh origin.
func (p Part) Model() mgl32.Mat4 {
	return mgl32.Translate3D(p.Offset.X(), p.Offset.Y(), p.Offset.Z()).
		Mul4(mgl32.HomogRotate3DZ(p.RotationZ))
}

// Silhouette returns the sleigh, Santa, two reindeer and the reins.
func Silhouette() []Part {
	parts := []Part{
		{Shape: Box, Size: mgl32.Vec3{1.2, 0.6, 0.8}, Offset: mgl32.Vec3{2, 0, 0}},
		{Shape: Box, Size: mgl32.Vec3{1.4, 0.1, 0.8}, Offset: mgl32.Vec3{2, -0.4, 0}, RotationZ: 0.1},
		{Shape: Sphere, Radius: 0.4, Offset: mgl32.Vec3{2, 0.5, 0}},
		{Shape: Sphere, Radius: 0.2, Offset: mgl32.Vec3{2.1, 0.8, 0}},
	}
	parts = append(parts, reindeer(mgl32.Vec3{0.5, 0, 0})...)
	parts = append(parts, reindeer(mgl32.Vec3{-0.8, 0.1, 0})...)
	parts = append(parts, Part{Shape: Box, Size: mgl32.Vec3{2.5, 0.05, 0.05}, Offset: mgl32.Vec3{0.8, 0.2, 0}, RotationZ: -0.1})
	return parts
}

func reindeer(at mgl32.Vec3) []Part {
	return []Part{
		{Shape: Capsule, Radius: 0.2, Length: 0.8, Offset: at, RotationZ: math.Pi / 2},
		{Shape: Sphere, Radius: 0.15, Offset: at.Add(mgl32.Vec3{-0.3, 0.4, 0})},
		{Shape: Capsule, Radius: 0.03, Length: 0.4, Offset: at.Add(mgl32.Vec3{-0.3, 0.6, 0}), RotationZ: 0.5},
	}
}
