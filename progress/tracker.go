// Package progress turns a stream of camera azimuth samples into a one-way
// progress value in [0, 1].
//
// Rotation in either direction counts as forward progress: one full turn
// of the camera, clockwise, counter-clockwise or mixed, unwraps the sky.
// Progress never decreases and saturates at 1.
package progress

import "math"

const (
	// NotifyEpsilon is the smallest progress change reported to observers.
	NotifyEpsilon = 1e-4
	// saturationTolerance absorbs float drift when a sum of increments that
	// should total exactly one revolution lands a hair below 1.
	saturationTolerance = 1e-9

	twoPi = 2 * math.Pi
)

// Observer receives the new cumulative progress.
type Observer func(progress float64)

// Tracker accumulates absolute azimuth change. It is owned by the frame
// loop and is not safe for concurrent use.
type Tracker struct {
	cumulative  float64
	lastAzimuth float64
	notified    float64
	observers   []Observer
}

// NewTracker seeds the tracker with the camera's first azimuth reading so
// the first Update does not count the distance from zero.
func NewTracker(initialAzimuth float64) *Tracker {
	return &Tracker{lastAzimuth: WrapAngle(initialAzimuth)}
}

// Subscribe registers fn to be called whenever progress moves by more than
// NotifyEpsilon since the last notification, and once more on saturation.
func (t *Tracker) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	t.observers = append(t.observers, fn)
}

// Update feeds one azimuth sample in radians and returns the cumulative
// progress.
func (t *Tracker) Update(azimuth float64) float64 {
	if math.IsNaN(azimuth) || math.IsInf(azimuth, 0) {
		return t.cumulative
	}
	d := Delta(t.lastAzimuth, azimuth)
	t.lastAzimuth = azimuth

	if t.cumulative >= 1 {
		return t.cumulative
	}

	next := clamp01(t.cumulative + math.Abs(d)/twoPi)
	if next >= 1-saturationTolerance {
		next = 1
	}
	t.cumulative = next

	if math.Abs(next-t.notified) > NotifyEpsilon || (next == 1 && t.notified != 1) {
		t.notified = next
		for _, fn := range t.observers {
			fn(next)
		}
	}
	return next
}

// Progress returns the current cumulative progress.
func (t *Tracker) Progress() float64 {
	return t.cumulative
}

// LastAzimuth returns the most recent sample fed to Update.
func (t *Tracker) LastAzimuth() float64 {
	return t.lastAzimuth
}

// Done reports whether progress has saturated.
func (t *Tracker) Done() bool {
	return t.cumulative >= 1
}

// Delta returns the signed shortest-arc change from prev to cur. Samples
// are expected in (-π, π]; a jump across the ±π seam is unwrapped so a
// small rotation through the seam is never read as a near-full turn.
func Delta(prev, cur float64) float64 {
	d := cur - prev
	if d > math.Pi {
		d -= twoPi
	} else if d < -math.Pi {
		d += twoPi
	}
	return d
}

// WrapAngle maps any angle into (-π, π].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, twoPi)
	if a > math.Pi {
		a -= twoPi
	} else if a <= -math.Pi {
		a += twoPi
	}
	return a
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
