package core

import (
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_RoundTrip(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, -2, 3},
		Rotation: mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	p := mgl32.Vec3{0.3, 0.4, -0.5}
	world := tr.ObjectToWorld().Mul4x1(p.Vec4(1))
	back := tr.WorldToObject().Mul4x1(world).Vec3()
	assert.True(t, back.ApproxEqualThreshold(p, 1e-5))
}

func TestCompose_MatchesMatrixProduct(t *testing.T) {
	parent := Transform{
		Position: mgl32.Vec3{0, 8, 0},
		Rotation: mgl32.QuatRotate(0.3, mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	child := Transform{
		Position: mgl32.Vec3{4, 0, 1.5},
		Rotation: mgl32.QuatRotate(0.05, mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{0.3, 0.3, 0.3},
	}
	world := Compose(parent, child)
	want := parent.ObjectToWorld().Mul4(child.ObjectToWorld())

	p := mgl32.Vec3{1, 1, 1}
	got := world.ObjectToWorld().Mul4x1(p.Vec4(1)).Vec3()
	exp := want.Mul4x1(p.Vec4(1)).Vec3()
	assert.True(t, got.ApproxEqualThreshold(exp, 1e-5), "got %v want %v", got, exp)
}

func TestFrameUniforms_Layout(t *testing.T) {
	assert.Equal(t, uintptr(160), unsafe.Sizeof(FrameUniforms{}))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(FrameUniforms{}.Viewport))
	assert.Equal(t, uintptr(136), unsafe.Offsetof(FrameUniforms{}.Time))
	assert.Equal(t, uintptr(144), unsafe.Offsetof(FrameUniforms{}.Opacity))
}

func TestClipCorrection(t *testing.T) {
	near := ClipCorrection.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := ClipCorrection.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-6)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-6)
}

func TestTwinkleAndPointSize(t *testing.T) {
	for i := 0; i < 50; i++ {
		tw := Twinkle(float64(i)*0.37, float32(i)*0.11)
		assert.GreaterOrEqual(t, tw, float32(0))
		assert.LessOrEqual(t, tw, float32(1))
	}
	// size 0.5, mid twinkle, pixel ratio 1, 10 units away: 0.5*1.0*20*1*1
	assert.InDelta(t, 10, PointSize(0.5, 0.5, 1, -10), 1e-5)
	assert.InDelta(t, 20, PointSize(0.5, 0.5, 2, -10), 1e-5)
	assert.Zero(t, PointSize(0.5, 0.5, 1, 1))
}

func TestSpriteStrength(t *testing.T) {
	assert.Equal(t, float32(1), SpriteStrength(0))
	assert.Zero(t, SpriteStrength(0.5))
	assert.Zero(t, SpriteStrength(0.8))
	assert.InDelta(t, math.Pow(0.5, 1.5), SpriteStrength(0.25), 1e-6)
}

func TestProject(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 2, 0.1, 1000)
	vp := proj.Mul4(view)

	x, y, _, ok := Project(vp, mgl32.Vec3{}, 200, 100)
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)

	_, upY, _, ok := Project(vp, mgl32.Vec3{0, 5, 0}, 200, 100)
	require.True(t, ok)
	assert.Less(t, upY, y)

	_, _, _, ok = Project(vp, mgl32.Vec3{0, 0, 40}, 200, 100)
	assert.False(t, ok)
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xFDFBD3)
	assert.InDelta(t, 253.0/255, c[0], 1e-6)
	assert.InDelta(t, 251.0/255, c[1], 1e-6)
	assert.InDelta(t, 211.0/255, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])
}

func TestBoxMesh(t *testing.T) {
	m := BoxMesh(mgl32.Vec3{2, 4, 6})
	require.Equal(t, 12, m.TriangleCount())
	for _, p := range m.Positions {
		assert.InDelta(t, 1, math.Abs(float64(p.X())), 1e-6)
		assert.InDelta(t, 2, math.Abs(float64(p.Y())), 1e-6)
		assert.InDelta(t, 3, math.Abs(float64(p.Z())), 1e-6)
	}
}

func TestSphereMesh(t *testing.T) {
	m := SphereMesh(1.5, 8, 12)
	assert.Equal(t, 8*12*2, m.TriangleCount())
	for _, p := range m.Positions {
		assert.InDelta(t, 1.5, p.Len(), 1e-5)
	}
}

func TestCapsuleMesh(t *testing.T) {
	radius, length := float32(0.2), float32(0.8)
	m := CapsuleMesh(radius, length, 8, 12)
	assert.Equal(t, 9*12*2, m.TriangleCount())

	for _, p := range m.Positions {
		// Distance to the axis segment y in [-0.4, 0.4].
		y := mgl32.Clamp(p.Y(), -length/2, length/2)
		d := p.Sub(mgl32.Vec3{0, y, 0}).Len()
		assert.InDelta(t, radius, d, 1e-5)
	}
}

func TestMesh_Transformed(t *testing.T) {
	m := BoxMesh(mgl32.Vec3{1, 1, 1})
	out := m.Transformed(nil, mgl32.Translate3D(10, 0, 0))
	require.Len(t, out, 36)
	for _, p := range out {
		assert.InDelta(t, 10, p.X(), 0.5+1e-6)
	}
}

func TestTextAtlas(t *testing.T) {
	ta, err := NewTextAtlas(32)
	require.NoError(t, err)

	for r := rune('A'); r <= 'Z'; r++ {
		_, ok := ta.Glyphs[r]
		assert.True(t, ok, "missing glyph %q", r)
	}

	wA, h := ta.Measure("A", 1)
	wAB, _ := ta.Measure("AB", 1)
	assert.Greater(t, wA, float32(0))
	assert.Greater(t, wAB, wA)
	assert.Equal(t, ta.LineHeight(1), h)

	_, h2 := ta.Measure("A\nB", 1)
	assert.Equal(t, 2*h, h2)
}

func TestTextAtlas_BuildVertices(t *testing.T) {
	ta, err := NewTextAtlas(32)
	require.NoError(t, err)

	white := [4]float32{1, 1, 1, 1}
	verts := ta.BuildVertices([]TextItem{{Text: "MERRY CHRISTMAS", Scale: 1, Color: white}}, 800, 600)
	// The space has no ink.
	assert.Len(t, verts, 14*6)
	for _, v := range verts {
		assert.Equal(t, white, v.Color)
	}

	hidden := ta.BuildVertices([]TextItem{{Text: "MERRY", Scale: 1}}, 800, 600)
	assert.Empty(t, hidden)

	assert.Nil(t, (*TextAtlas)(nil).BuildVertices(nil, 800, 600))
}

func TestTextAtlas_Centered(t *testing.T) {
	ta, err := NewTextAtlas(32)
	require.NoError(t, err)

	item := ta.Centered("Starlight Tree", 40, 1, [4]float32{1, 1, 1, 1}, 800)
	w, _ := ta.Measure("Starlight Tree", 1)
	assert.InDelta(t, 400, item.Position[0]+w/2, 1e-3)
	assert.Equal(t, float32(40), item.Position[1])
}
