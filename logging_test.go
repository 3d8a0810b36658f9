package starlight

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerTo("sky", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[sky] INFO: shown 2")
	assert.Contains(t, errOut.String(), "[sky] WARN: careful")
	assert.Contains(t, errOut.String(), "[sky] ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Contains(t, out.String(), "[sky] DEBUG: visible")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewDefaultLoggerTo("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), " INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestApp_LoggerFallback(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	assert.False(t, app.Logger().DebugEnabled())
	assert.NotPanics(t, func() { app.Logger().Errorf("dropped") })

	var out bytes.Buffer
	app = NewAppBuilder().UseModule(LoggingModule{Prefix: "t", Debug: true, Out: &out, Err: &out}).Build()
	app.Logger().Debugf("kept")
	assert.Contains(t, out.String(), "[t] DEBUG: kept")
}

type recordingSink struct {
	buf     *bytes.Buffer
	closes  int
	atClose string
}

func (s *recordingSink) Close() error {
	s.closes++
	s.atClose = s.buf.String()
	return nil
}

func TestLoggingModule_ClosesSinkAfterFinalReports(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{buf: &out}
	app := NewAppBuilder().
		UseStates(StateTree, StateQuit).
		UseModule(LoggingModule{Prefix: "sky", Out: &out, Err: &out, Sink: sink}).
		Build()
	app.UseSystem(System(func(cmd *Commands) { cmd.ChangeState(StateQuit) }).InState(OnExecute(StateTree)))
	app.UseSystem(System(func(cmd *Commands) { cmd.Logger().Infof("report") }).
		InStage(Finale).
		InState(OnExit(StateQuit)))

	app.Run()

	assert.Equal(t, 1, sink.closes)
	assert.Contains(t, sink.atClose, "[sky] INFO: report")
	assert.True(t, Resource[logSink](app).closed)
}

func TestLoggingModule_StatelessAppKeepsSinkOpen(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{buf: &out}
	app := NewAppBuilder().UseModule(LoggingModule{Out: &out, Err: &out, Sink: sink}).Build()

	assert.True(t, app.Step())
	assert.Zero(t, sink.closes)
	assert.Nil(t, Resource[logSink](app))
}
