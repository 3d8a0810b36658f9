package starlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

// orderModule records installation order into a shared slice.
type orderModule struct {
	name string
	log  *[]string
}

func (m orderModule) Install(app *App, commands *Commands) {
	*m.log = append(*m.log, m.name)
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(StateTree, StateQuit).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, StateTree, app.initialState)
	assert.Equal(t, StateQuit, app.finalState)
	for _, stage := range defaultStages() {
		assert.Len(t, app.systems[stage.Name], 3, stage.Name)
	}
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	names := make([]string, 0, len(app.stages))
	for _, s := range app.stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PostUpdate", "PreRender", "Render", "PostRender", "Finale"}, names)
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&MockModule{})

	assert.Len(t, builder.modules, 1)
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	NewAppBuilder().UseModule(module1).UseModule(module2).Build()

	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
}

func TestAppBuilder_Build_InstallsInOrder(t *testing.T) {
	var log []string
	NewAppBuilder().
		UseModule(orderModule{"a", &log}, orderModule{"b", &log}).
		UseModule(orderModule{"c", &log}).
		Build()

	assert.Equal(t, []string{"a", "b", "c"}, log)
}
