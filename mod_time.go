package starlight

import (
	"time"
)

// Time is the frame clock. With FixedStep set, every frame advances by
// exactly that much, which keeps headless runs and tests deterministic.
type Time struct {
	Start     time.Time
	Time      time.Time
	Dt        time.Duration
	Elapsed   float64 // seconds since Start
	FixedStep time.Duration
	Frame     uint64
}

type TimeModule struct {
	FixedStep time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start:     now,
		Time:      now,
		FixedStep: mod.FixedStep,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(t *Time) {
	if t.FixedStep > 0 {
		t.Dt = t.FixedStep
		t.Time = t.Time.Add(t.FixedStep)
	} else {
		now := time.Now()
		t.Dt = now.Sub(t.Time)
		t.Time = now
	}
	t.Elapsed = t.Time.Sub(t.Start).Seconds()
	t.Frame++
}

// Seconds returns Dt in seconds.
func (t *Time) Seconds() float64 {
	return t.Dt.Seconds()
}
