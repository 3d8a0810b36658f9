package starlight

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

type counter struct {
	calls []string
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := &MockResource2{name: "Resource2"}
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem())
}

func TestResource(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Nil(t, Resource[MockResource1](app))

	r := &MockResource1{name: "x"}
	app.Commands().AddResources(r)
	assert.Same(t, r, Resource[MockResource1](app))
	assert.Nil(t, Resource[MockResource1](nil))
}

func TestMustResource_PanicsWhenMissing(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.PanicsWithValue(t,
		"TestModule requires starlight.MockResource1; install its module first",
		func() { mustResource[MockResource1](app, "TestModule") })
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().Build()
	app.Commands().AddResources(c)

	// Registered out of order on purpose.
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "render") }).InStage(Render))
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "prelude") }).InStage(Prelude))
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "update") }).InStage(Update))

	assert.True(t, app.Step())
	assert.Equal(t, []string{"prelude", "update", "render"}, c.calls)
	assert.Equal(t, uint64(1), app.Frames())
}

func TestApp_UseStage(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().Build()
	app.Commands().AddResources(c)

	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "custom") }).InStage(custom))
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "post") }).InStage(PostUpdate))
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "update") }).InStage(Update))

	app.Step()
	assert.Equal(t, []string{"update", "custom", "post"}, c.calls)

	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
}

func TestApp_StatefulLifecycle(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().UseStates(StateTree, StateQuit).Build()
	app.Commands().AddResources(c)

	rec := func(name string) func(*counter) {
		return func(c *counter) { c.calls = append(c.calls, name) }
	}
	app.UseSystem(System(rec("tree.enter")).InState(OnEnter(StateTree)))
	app.UseSystem(System(func(c *counter, cmd *Commands) {
		c.calls = append(c.calls, "tree.exec")
		cmd.ChangeState(StateFinale)
	}).InState(OnExecute(StateTree)))
	app.UseSystem(System(rec("tree.exit")).InState(OnExit(StateTree)))
	app.UseSystem(System(rec("finale.enter")).InState(OnEnter(StateFinale)))
	app.UseSystem(System(func(c *counter, cmd *Commands) {
		c.calls = append(c.calls, "finale.exec")
		cmd.ChangeState(StateQuit)
	}).InState(OnExecute(StateFinale)))
	app.UseSystem(System(rec("quit.enter")).InState(OnEnter(StateQuit)))
	app.UseSystem(System(rec("quit.exit")).InState(OnExit(StateQuit)))

	app.Run()

	assert.Equal(t, []string{
		"tree.enter", "tree.exec", "tree.exit", "finale.enter",
		"finale.exec", "quit.enter", "quit.exit",
	}, c.calls)
	assert.Equal(t, StateQuit, app.State())
	assert.False(t, app.Step())
	assert.Equal(t, uint64(2), app.Frames())
}

func TestApp_ChangeToSameStateIsNoop(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().UseStates(StateTree, StateQuit).Build()
	app.Commands().AddResources(c)
	app.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "enter") }).InState(OnEnter(StateTree)))
	app.UseSystem(System(func(cmd *Commands) { cmd.ChangeState(StateTree) }).InState(OnExecute(StateTree)))

	app.Step()
	app.Step()
	assert.Equal(t, []string{"enter"}, c.calls)
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateTree)))
	})
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	var out bytes.Buffer
	app := NewAppBuilder().UseModule(LoggingModule{Out: &out, Err: &out}).Build()
	app.UseSystem(System(func(*MockResource2) {}))

	assert.Panics(t, func() { app.Step() })
	assert.Contains(t, out.String(), "Unable to resolve System dependency")
}

func TestCommands_UseSystem(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().Build()
	cmd := app.Commands()
	cmd.AddResources(c)
	cmd.UseSystem(func(c *counter) { c.calls = append(c.calls, "plain") })
	cmd.UseSystem(System(func(c *counter) { c.calls = append(c.calls, "prelude") }).InStage(Prelude))

	app.Step()
	assert.Equal(t, []string{"prelude", "plain"}, c.calls)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "tree", StateTree.String())
	assert.Equal(t, "finale", StateFinale.String())
	assert.Equal(t, "quit", StateQuit.String())
	assert.Equal(t, "state(7)", State(7).String())
}
