// Package particles builds the two static point clouds the scene morphs
// between, together with per-point colour and size attributes.
//
// Attributes are stored as parallel slices indexed by particle. Index i in
// Tree, Sky, Colors and Sizes always describes the same logical particle.
package particles

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCount is the number of particles the scene is built with.
const DefaultCount = 4000

const (
	TreeHeight     = 15.0
	TreeBaseRadius = 6.0
	// TreeTwist is the spiral twist per unit of height ratio.
	TreeTwist = 25.0
	// TreeNoise is the full width of the radial noise band (±TreeNoise/2).
	TreeNoise = 1.5
	// yRatio = u^treeHeightBias
	treeHeightBias = 0.8

	SkyInnerRadius = 30.0
	SkyShellDepth  = 20.0

	MinSize   = 0.1
	SizeRange = 0.5
)

var ErrLengthMismatch = errors.New("particle attribute length mismatch")

// RGB is an sRGB-encoded colour with components in 0..1.
type RGB [3]float32

// Palette holds the star colours: gold, lemon chiffon, light cyan, orange.
var Palette = [4]RGB{
	hexRGB(0xFFD700),
	hexRGB(0xFFFACD),
	hexRGB(0xE0FFFF),
	hexRGB(0xFFA500),
}

func hexRGB(hex uint32) RGB {
	return RGB{
		float32((hex>>16)&0xFF) / 255.0,
		float32((hex>>8)&0xFF) / 255.0,
		float32(hex&0xFF) / 255.0,
	}
}

// Set is the immutable output of Generate. Nothing writes to its slices
// after construction; per-frame code reads them by reference.
type Set struct {
	Tree   []mgl32.Vec3
	Sky    []mgl32.Vec3
	Colors []RGB
	Sizes  []float32
}

// NewSet wraps pre-built attribute slices, rejecting sets whose slices
// disagree on the particle count.
func NewSet(tree, sky []mgl32.Vec3, colors []RGB, sizes []float32) (*Set, error) {
	n := len(tree)
	if len(sky) != n || len(colors) != n || len(sizes) != n {
		return nil, fmt.Errorf("tree=%d sky=%d colors=%d sizes=%d: %w",
			len(tree), len(sky), len(colors), len(sizes), ErrLengthMismatch)
	}
	return &Set{Tree: tree, Sky: sky, Colors: colors, Sizes: sizes}, nil
}

// Len returns the particle count.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tree)
}

// Source is the random stream the generator draws from.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Generate builds count particles from the process-wide random source.
func Generate(count int) *Set {
	return GenerateFrom(globalSource{}, count)
}

// GenerateFrom builds count particles drawing from src. A non-positive count
// yields an empty, valid set.
func GenerateFrom(src Source, count int) *Set {
	if count < 0 {
		count = 0
	}
	s := &Set{
		Tree:   make([]mgl32.Vec3, count),
		Sky:    make([]mgl32.Vec3, count),
		Colors: make([]RGB, count),
		Sizes:  make([]float32, count),
	}

	for i := 0; i < count; i++ {
		s.Tree[i] = treePoint(src)
		s.Sky[i] = skyPoint(src)
		s.Colors[i] = Palette[src.IntN(len(Palette))]
		s.Sizes[i] = float32(src.Float64()*SizeRange + MinSize)
	}
	return s
}

// treePoint samples a fuzzy spiral cone shell centred on the origin.
func treePoint(src Source) mgl32.Vec3 {
	yRatio := math.Pow(src.Float64(), treeHeightBias)
	y := yRatio*TreeHeight - TreeHeight/2
	r := (1 - yRatio) * TreeBaseRadius

	angle := yRatio*TreeTwist + src.Float64()*2*math.Pi
	noisyR := r + (src.Float64()-0.5)*TreeNoise

	return mgl32.Vec3{
		float32(math.Cos(angle) * noisyR),
		float32(y),
		float32(math.Sin(angle) * noisyR),
	}
}

// skyPoint samples the spherical shell between SkyInnerRadius and
// SkyInnerRadius+SkyShellDepth. Drawing cos(phi) uniformly keeps the
// directions uniform over the sphere instead of bunching at the poles.
func skyPoint(src Source) mgl32.Vec3 {
	theta := src.Float64() * 2 * math.Pi
	phi := math.Acos(src.Float64()*2 - 1)
	radius := SkyInnerRadius + src.Float64()*SkyShellDepth

	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(radius * sinPhi * math.Cos(theta)),
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
	}
}

// TreeRadiusBound is the largest horizontal distance from the axis a tree
// particle at height y can have.
func TreeRadiusBound(y float32) float32 {
	yRatio := (float64(y) + TreeHeight/2) / TreeHeight
	return float32((1-yRatio)*TreeBaseRadius + TreeNoise/2)
}
