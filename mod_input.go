package starlight

import (
	"github.com/gekko3d/starlight/term"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyRotateStep is the orbit angle applied per key press, shared with the
// terminal driver.
const KeyRotateStep = term.KeyRotateStep

const (
	KeyQ int = iota
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyEscape
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	keyCount
)

type InputModule struct{}

// Input is the window input state for the current frame.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// Scroll is the wheel movement since the last frame, positive is up.
	Scroll float64

	WindowWidth, WindowHeight int
	CloseRequested            bool

	scrollPending float64
	mouseSeen     bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ws := mustResource[WindowState](app, "InputModule")
	input := &Input{}
	ws.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		input.scrollPending += yoff
	})
	cmd.AddResources(input)

	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(orbitInputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(System(quitInputSystem).InStage(PreUpdate).InState(OnExecute(StateTree)))
		app.UseSystem(System(quitInputSystem).InStage(PreUpdate).InState(OnExecute(StateFinale)))
	}
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.update(key, s.windowGlfw.GetKey(glfwKey))
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.update(btn, s.windowGlfw.GetMouseButton(glfwBtn))
	}

	mx, my := s.windowGlfw.GetCursorPos()
	if input.mouseSeen {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	}
	input.MouseX, input.MouseY = mx, my
	input.mouseSeen = true

	input.Scroll = input.scrollPending
	input.scrollPending = 0

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
	input.CloseRequested = s.windowGlfw.ShouldClose()
}

func (input *Input) update(key int, action glfw.Action) {
	input.JustPressed[key] = false
	input.JustReleased[key] = false

	if glfw.Press == action {
		if !input.Pressed[key] {
			input.JustPressed[key] = true
		}
		input.Pressed[key] = true
	} else if glfw.Release == action {
		if input.Pressed[key] {
			input.JustReleased[key] = true
		}
		input.Pressed[key] = false
	}
}

// orbitInputSystem maps left-drag to rotation, the wheel and +/- to zoom,
// and arrow or h/j/k/l key presses to fixed rotation steps.
func orbitInputSystem(input *Input, cam *OrbitCamera) {
	c := cam.Controls
	if input.Pressed[MouseButtonLeft] && !input.JustPressed[MouseButtonLeft] {
		c.Drag(input.MouseDeltaX, input.MouseDeltaY, input.WindowHeight)
	}
	if input.Scroll != 0 {
		c.Zoom(input.Scroll)
	}
	if input.JustPressed[KeyEqual] || input.JustPressed[KeyKPPlus] {
		c.Zoom(1)
	}
	if input.JustPressed[KeyMinus] || input.JustPressed[KeyKPMinus] {
		c.Zoom(-1)
	}
	if input.JustPressed[KeyLeft] || input.JustPressed[KeyH] {
		c.RotateLeft(KeyRotateStep)
	}
	if input.JustPressed[KeyRight] || input.JustPressed[KeyL] {
		c.RotateLeft(-KeyRotateStep)
	}
	if input.JustPressed[KeyUp] || input.JustPressed[KeyK] {
		c.RotateUp(KeyRotateStep)
	}
	if input.JustPressed[KeyDown] || input.JustPressed[KeyJ] {
		c.RotateUp(-KeyRotateStep)
	}
}

func quitInputSystem(input *Input, cmd *Commands) {
	if input.CloseRequested || input.JustPressed[KeyEscape] || input.JustPressed[KeyQ] {
		cmd.ChangeState(StateQuit)
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyQ:       glfw.KeyQ,
	KeyH:       glfw.KeyH,
	KeyJ:       glfw.KeyJ,
	KeyK:       glfw.KeyK,
	KeyL:       glfw.KeyL,
	KeyEscape:  glfw.KeyEscape,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
