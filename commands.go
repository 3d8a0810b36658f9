package starlight

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseSystem schedules a system. Without an explicit schedule it runs in
// Update on every frame.
func (cmd *Commands) UseSystem(system any) *Commands {
	if sched, ok := system.(systemScheduleBuilder); ok {
		cmd.app.UseSystem(sched)
	} else {
		cmd.app.UseSystem(System(system).RunAlways())
	}
	return cmd
}

func (cmd *Commands) State() State {
	return cmd.app.state
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
