// Package sleigh animates the decorative sleigh silhouette that crosses the
// moon as the sky unwraps.
package sleigh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	StartX = 4.0
	EndX   = -4.0
	// Depth is the sleigh's resting z offset inside the moon group.
	Depth = 1.5
	// Scale is the uniform scale applied to the silhouette parts.
	Scale = 0.3

	BobFrequency  = 5.0
	BobAmplitude  = 0.1
	RockFrequency = 10.0
	RockAmplitude = 0.05
)

// Transform is the sleigh's pose relative to its parent group.
type Transform struct {
	Position  mgl32.Vec3
	RotationZ float32
}

// Animate returns the sleigh pose for progress in [0,1] and elapsed seconds.
// x runs linearly from StartX to EndX with progress. The bob and the rock
// depend only on time and keep going after progress saturates.
func Animate(progress, elapsed float64) Transform {
	x := StartX + (EndX-StartX)*progress
	return Transform{
		Position: mgl32.Vec3{
			float32(x),
			float32(math.Sin(elapsed*BobFrequency) * BobAmplitude),
			Depth,
		},
		RotationZ: float32(math.Sin(elapsed*RockFrequency) * RockAmplitude),
	}
}

// Quat returns the rotation as a quaternion about +Z.
func (t Transform) Quat() mgl32.Quat {
	return mgl32.QuatRotate(t.RotationZ, mgl32.Vec3{0, 0, 1})
}

// Mat4 returns the local model matrix T * Rz * S for the sleigh.
func (t Transform) Mat4() mgl32.Mat4 {
	p := t.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.HomogRotate3DZ(t.RotationZ)).
		Mul4(mgl32.Scale3D(Scale, Scale, Scale))
}
