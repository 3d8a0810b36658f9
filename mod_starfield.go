package starlight

import (
	"fmt"
	"math"

	"github.com/gekko3d/starlight/morph"
	"github.com/gekko3d/starlight/particles"
	"github.com/gekko3d/starlight/progress"
	"github.com/gekko3d/starlight/sleigh"
	"github.com/go-gl/mathgl/mgl32"
)

// Starfield is the morph engine state for one scene: the static particle
// set, the live position buffer, the rotation tracker and the sleigh pose.
type Starfield struct {
	Set    *particles.Set
	Morph  *morph.Morph
	Sleigh sleigh.Transform
	// Progress is the cumulative rotation progress as of this frame.
	Progress float64

	// tracker is created from the first real azimuth sample so the initial
	// camera angle never counts as rotation.
	tracker   *progress.Tracker
	observers []progress.Observer
}

// NewStarfield validates set and allocates the live buffer.
func NewStarfield(set *particles.Set) (*Starfield, error) {
	if set == nil {
		set = &particles.Set{}
	}
	if _, err := particles.NewSet(set.Tree, set.Sky, set.Colors, set.Sizes); err != nil {
		return nil, err
	}
	m, err := morph.New(set.Tree, set.Sky)
	if err != nil {
		return nil, err
	}
	return &Starfield{
		Set:    set,
		Morph:  m,
		Sleigh: sleigh.Animate(0, 0),
	}, nil
}

// Subscribe registers a progress observer. Observers added before the first
// azimuth sample are attached once the tracker exists.
func (s *Starfield) Subscribe(fn progress.Observer) {
	if fn == nil {
		return
	}
	if s.tracker != nil {
		s.tracker.Subscribe(fn)
		return
	}
	s.observers = append(s.observers, fn)
}

// Tracker returns the rotation tracker, or nil before the first sample.
func (s *Starfield) Tracker() *progress.Tracker {
	return s.tracker
}

// Positions returns the live buffer as last written.
func (s *Starfield) Positions() []mgl32.Vec3 {
	return s.Morph.Positions()
}

// Step runs the per-frame order: tracker first, then the morph and the
// sleigh, which both read the updated progress.
func (s *Starfield) Step(azimuth, elapsed float64) {
	if s.tracker == nil {
		s.tracker = progress.NewTracker(azimuth)
		for _, fn := range s.observers {
			s.tracker.Subscribe(fn)
		}
		s.observers = nil
	}
	s.Progress = s.tracker.Update(azimuth)
	s.Morph.Apply(s.Progress)
	s.Sleigh = sleigh.Animate(s.Progress, elapsed)
}

type StarfieldModule struct {
	Count int
	// Source overrides the random stream, mostly for tests.
	Source particles.Source
}

func (mod StarfieldModule) Install(app *App, cmd *Commands) {
	var set *particles.Set
	if mod.Source != nil {
		set = particles.GenerateFrom(mod.Source, mod.Count)
	} else {
		set = particles.Generate(mod.Count)
	}

	sf, err := NewStarfield(set)
	if err != nil {
		panic(fmt.Sprintf("starfield: %v", err))
	}
	sf.Subscribe(milestoneLogger(app))
	cmd.AddResources(sf)
	app.Logger().Debugf("Generated %d particles", set.Len())

	app.UseSystem(
		System(starfieldSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(finaleCheckSystem).
				InStage(PostUpdate).
				InState(OnExecute(StateTree)),
		)
		app.UseSystem(
			System(finaleEnterSystem).
				InStage(PostUpdate).
				InState(OnEnter(StateFinale)),
		)
	}
}

func starfieldSystem(frame *Frame, sf *Starfield) {
	if !frame.Sampled {
		sf.Sleigh = sleigh.Animate(sf.Progress, frame.Elapsed)
		return
	}
	sf.Step(frame.Azimuth, frame.Elapsed)
}

func finaleCheckSystem(sf *Starfield, cmd *Commands) {
	if sf.Progress >= FinaleThreshold {
		cmd.ChangeState(StateFinale)
	}
}

func finaleEnterSystem(sf *Starfield, cmd *Commands) {
	cmd.Logger().Infof("Sky unwrapped (progress %.3f)", sf.Progress)
}

// milestoneLogger logs each 10% step of progress once. The logger is looked
// up on every call because LoggingModule may be installed later.
func milestoneLogger(app *App) progress.Observer {
	last := 0
	return func(p float64) {
		step := int(math.Floor(p*10 + 1e-9))
		if step <= last {
			return
		}
		last = step
		app.Logger().Infof("Progress %d%%", step*10)
	}
}
