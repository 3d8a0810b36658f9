package progress

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(t *Tracker, samples ...float64) float64 {
	var p float64
	for _, s := range samples {
		p = t.Update(s)
	}
	return p
}

func TestUpdate_SeamCrossingIsShortArc(t *testing.T) {
	tr := NewTracker(3.0)
	p := tr.Update(-3.0)

	want := (2*math.Pi - 6.0) / (2 * math.Pi)
	assert.InDelta(t, want, p, 1e-12)
	assert.Less(t, p, 0.1, "crossing the seam must not count as a near-full turn")
}

func TestUpdate_FullTurnBothDirections(t *testing.T) {
	for _, dir := range []float64{1, -1} {
		tr := NewTracker(0)
		var p float64
		for k := 1; k <= 360; k++ {
			p = tr.Update(WrapAngle(dir * float64(k) * math.Pi / 180))
		}
		assert.Equal(t, 1.0, p, "direction %v", dir)
		assert.True(t, tr.Done())
	}
}

func TestUpdate_QuarterTurns(t *testing.T) {
	tr := NewTracker(0)
	p := feed(tr, math.Pi/2, math.Pi, -math.Pi/2, 0)
	assert.Equal(t, 1.0, p)
}

func TestUpdate_BackAndForthCountsAsForward(t *testing.T) {
	tr := NewTracker(0)
	feed(tr, 1.0, 2.0)
	half := tr.Progress()
	assert.InDelta(t, 2.0/(2*math.Pi), half, 1e-12)

	p := feed(tr, 1.0, 0.0)
	assert.InDelta(t, 4.0/(2*math.Pi), p, 1e-12)
}

func TestUpdate_MonotonicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	tr := NewTracker(0)
	prev := 0.0
	for i := 0; i < 5000; i++ {
		p := tr.Update(rng.Float64()*2*math.Pi - math.Pi)
		require.GreaterOrEqual(t, p, prev)
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
		prev = p
	}
	assert.Equal(t, 1.0, prev)
}

func TestUpdate_SaturatedStaysAtOne(t *testing.T) {
	tr := NewTracker(0)
	var calls []float64
	tr.Subscribe(func(p float64) { calls = append(calls, p) })

	feed(tr, math.Pi/2, math.Pi, -math.Pi/2, 0)
	require.Equal(t, 1.0, tr.Progress())
	n := len(calls)
	assert.Equal(t, 1.0, calls[n-1])

	feed(tr, 1, 2, 3, -3)
	assert.Equal(t, 1.0, tr.Progress())
	assert.Len(t, calls, n, "no notifications after saturation")
	assert.Equal(t, -3.0, tr.LastAzimuth())
}

func TestUpdate_TinyDeltasAccumulateButNotifyLater(t *testing.T) {
	tr := NewTracker(0)
	calls := 0
	tr.Subscribe(func(float64) { calls++ })

	tr.Update(1e-5)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1e-5, tr.LastAzimuth())
	assert.Greater(t, tr.Progress(), 0.0)

	a := 1e-5
	for i := 0; i < 100; i++ {
		a += 1e-5
		tr.Update(a)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, a, tr.LastAzimuth())
}

func TestUpdate_ZeroDeltaKeepsProgress(t *testing.T) {
	tr := NewTracker(0.5)
	assert.Equal(t, 0.0, feed(tr, 0.5, 0.5, 0.5))
}

func TestUpdate_IgnoresNonFinite(t *testing.T) {
	tr := NewTracker(0)
	tr.Update(1)
	p := tr.Progress()
	assert.Equal(t, p, tr.Update(math.NaN()))
	assert.Equal(t, p, tr.Update(math.Inf(1)))
	assert.Equal(t, 1.0, tr.LastAzimuth())
}

func TestZeroValueTrackerStartsAtZeroAzimuth(t *testing.T) {
	var tr Tracker
	assert.InDelta(t, 1.0/(2*math.Pi), tr.Update(1), 1e-12)
}

func TestSubscribeNilIsIgnored(t *testing.T) {
	tr := NewTracker(0)
	tr.Subscribe(nil)
	assert.NotPanics(t, func() { tr.Update(1) })
}

func TestDelta(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur float64
		want      float64
	}{
		{"forward", 0, 1, 1},
		{"backward", 1, 0, -1},
		{"seam positive", 3, -3, 2*math.Pi - 6},
		{"seam negative", -3, 3, 6 - 2*math.Pi},
		{"half turn", 0, math.Pi, math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Delta(c.prev, c.cur), 1e-12)
		})
	}
}

func TestWrapAngle(t *testing.T) {
	assert.Equal(t, math.Pi, WrapAngle(math.Pi))
	assert.Equal(t, math.Pi, WrapAngle(-math.Pi))
	assert.Equal(t, 0.0, WrapAngle(0))
	assert.InDelta(t, 0.5, WrapAngle(2*math.Pi+0.5), 1e-12)
	assert.InDelta(t, math.Pi/2, WrapAngle(-3*math.Pi/2), 1e-12)
	assert.InDelta(t, -1.0, WrapAngle(-1-4*math.Pi), 1e-12)
	assert.Equal(t, 0.0, WrapAngle(math.NaN()))
}
