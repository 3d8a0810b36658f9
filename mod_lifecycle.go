package starlight

// Lifetime bounds a run to a number of frames. An unbounded lifetime never
// ends the run.
type Lifetime struct {
	Bounded    bool
	FramesLeft int
}

// LifecycleModule moves the app to StateQuit after Frames frames. Zero
// means run until something else quits.
type LifecycleModule struct {
	Frames int
}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	if !app.stateful {
		panic("LifecycleModule requires a stateful app")
	}
	cmd.AddResources(&Lifetime{
		Bounded:    mod.Frames > 0,
		FramesLeft: mod.Frames,
	})
	app.UseSystem(
		System(lifetimeSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func lifetimeSystem(lt *Lifetime, cmd *Commands) {
	if !lt.Bounded || cmd.State() == StateQuit {
		return
	}
	lt.FramesLeft--
	if lt.FramesLeft <= 0 {
		cmd.Logger().Debugf("Frame budget exhausted")
		cmd.ChangeState(StateQuit)
	}
}
