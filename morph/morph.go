// Package morph blends the tree cloud into the sky cloud.
//
// The blend is always recomputed from the two immutable source clouds, so
// calling it every frame never accumulates error from earlier frames.
package morph

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

var ErrLengthMismatch = errors.New("tree and sky point counts differ")

// EaseOutCubic maps raw progress p in [0,1] to 1-(1-p)^3: quick to respond,
// gentle as it settles. Inputs outside [0,1] are clamped.
func EaseOutCubic(p float64) float32 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return ease.OutCubic(float32(p), 0, 1, 1)
}

// Lerp writes the blend of tree and sky at factor t into dst. All three
// slices must have the same length. Each coordinate is computed as
// tree*(1-t) + sky*t, which reproduces tree exactly at t=0 and sky exactly
// at t=1.
func Lerp(dst, tree, sky []mgl32.Vec3, t float32) {
	s := 1 - t
	for i := range dst {
		a, b := tree[i], sky[i]
		dst[i] = mgl32.Vec3{
			a[0]*s + b[0]*t,
			a[1]*s + b[1]*t,
			a[2]*s + b[2]*t,
		}
	}
}

// Interpolate returns a freshly allocated blend of tree and sky at the eased
// value of cumulative. Missing indices in the shorter input are left out.
func Interpolate(tree, sky []mgl32.Vec3, cumulative float64) []mgl32.Vec3 {
	n := min(len(tree), len(sky))
	out := make([]mgl32.Vec3, n)
	Lerp(out, tree[:n], sky[:n], EaseOutCubic(cumulative))
	return out
}

// Morph owns the live position buffer for one tree/sky pair. It is the only
// writer of that buffer.
type Morph struct {
	tree []mgl32.Vec3
	sky  []mgl32.Vec3
	live []mgl32.Vec3
	t    float32
}

// New validates the pair and allocates the live buffer, initialised to the
// tree shape.
func New(tree, sky []mgl32.Vec3) (*Morph, error) {
	if len(tree) != len(sky) {
		return nil, fmt.Errorf("tree=%d sky=%d: %w", len(tree), len(sky), ErrLengthMismatch)
	}
	m := &Morph{
		tree: tree,
		sky:  sky,
		live: make([]mgl32.Vec3, len(tree)),
	}
	copy(m.live, tree)
	return m, nil
}

// Apply overwrites the live buffer for the given raw progress and returns it.
// The returned slice is reused across calls.
func (m *Morph) Apply(cumulative float64) []mgl32.Vec3 {
	m.t = EaseOutCubic(cumulative)
	Lerp(m.live, m.tree, m.sky, m.t)
	return m.live
}

// Positions returns the live buffer as last written.
func (m *Morph) Positions() []mgl32.Vec3 {
	return m.live
}

// Factor returns the eased blend factor used by the last Apply.
func (m *Morph) Factor() float32 {
	return m.t
}

// Len returns the particle count.
func (m *Morph) Len() int {
	return len(m.live)
}
