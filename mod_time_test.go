package starlight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeModule_FixedStep(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{FixedStep: 50 * time.Millisecond}).Build()

	for i := 0; i < 4; i++ {
		app.Step()
	}

	tm := Resource[Time](app)
	assert.Equal(t, 50*time.Millisecond, tm.Dt)
	assert.InDelta(t, 0.05, tm.Seconds(), 1e-12)
	assert.InDelta(t, 0.2, tm.Elapsed, 1e-9)
	assert.Equal(t, uint64(4), tm.Frame)
}

func TestTimeModule_WallClock(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{}).Build()
	app.Step()
	time.Sleep(2 * time.Millisecond)
	app.Step()

	tm := Resource[Time](app)
	assert.GreaterOrEqual(t, tm.Dt, 2*time.Millisecond)
	assert.GreaterOrEqual(t, tm.Elapsed, tm.Dt.Seconds())
}
