// Package term draws the starfield into a terminal with tcell and turns
// keyboard and mouse events into orbit input.
package term

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/starlight/particles"
	"github.com/gekko3d/starlight/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// KeyRotateStep is the orbit angle applied per arrow key press.
const KeyRotateStep = math.Pi / 36

var (
	background = core.HexColor(0x050505)
	moonColor  = core.HexColor(0xFDFBD3)
)

// Scene is one frame of terminal output.
type Scene struct {
	ViewProj  mgl32.Mat4
	View      mgl32.Mat4
	Time      float64
	Positions []mgl32.Vec3
	Colors    []particles.RGB
	Sizes     []float32

	MoonCenter mgl32.Vec3
	MoonRadius float32
	// Silhouette holds world-space sample points of the sleigh parts. They
	// are drawn black, so they only show against the moon.
	Silhouette []mgl32.Vec3

	Title, Subtitle string
	Finale          string
	FinaleOpacity   float64
}

// Actions is the input gathered since the last Drain.
type Actions struct {
	RotateLeft float64 // radians
	RotateUp   float64 // radians
	DragX      float64 // cells, scaled to row units
	DragY      float64
	Zoom       float64 // wheel notches, positive is closer
	Quit       bool
	Resized    bool
}

type Renderer struct {
	screen tcell.Screen
	events chan tcell.Event

	done      chan struct{}
	pumpDone  chan struct{}
	closeOnce sync.Once

	dragging   bool
	lastX      int
	lastY      int
	brightness []float32
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:   screen,
		events:   make(chan tcell.Event, 100),
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
}

// Start initialises the screen and starts the event pump.
func (r *Renderer) Start() error {
	if err := r.screen.Init(); err != nil {
		return err
	}
	r.screen.EnableMouse(tcell.MouseDragEvents)
	r.screen.HideCursor()
	r.screen.Clear()

	go r.pump()
	return nil
}

// pump forwards screen events until the screen is finalised or the
// renderer is closed.
func (r *Renderer) pump() {
	defer close(r.pumpDone)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case r.events <- ev:
		case <-r.done:
			return
		}
	}
}

// Close finalises the screen and stops the event pump. It is safe to call
// more than once.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.screen.Fini()
	})
}

// Size returns the screen size in cells.
func (r *Renderer) Size() (int, int) {
	return r.screen.Size()
}

// Aspect returns the visual width/height ratio of the screen.
func (r *Renderer) Aspect() float32 {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / (float32(h) * CellAspect)
}

// Drain consumes every pending event without blocking.
func (r *Renderer) Drain() Actions {
	var a Actions
	for {
		select {
		case ev := <-r.events:
			r.handle(ev, &a)
		default:
			return a
		}
	}
}

func (r *Renderer) handle(ev tcell.Event, a *Actions) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			a.Quit = true
		case tcell.KeyLeft:
			a.RotateLeft += KeyRotateStep
		case tcell.KeyRight:
			a.RotateLeft -= KeyRotateStep
		case tcell.KeyUp:
			a.RotateUp += KeyRotateStep
		case tcell.KeyDown:
			a.RotateUp -= KeyRotateStep
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				a.Quit = true
			case 'h':
				a.RotateLeft += KeyRotateStep
			case 'l':
				a.RotateLeft -= KeyRotateStep
			case 'k':
				a.RotateUp += KeyRotateStep
			case 'j':
				a.RotateUp -= KeyRotateStep
			case '+', '=':
				a.Zoom++
			case '-':
				a.Zoom--
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			a.Zoom++
		case btn&tcell.WheelDown != 0:
			a.Zoom--
		case btn&tcell.Button1 != 0:
			if r.dragging {
				a.DragX += float64(x-r.lastX) / CellAspect
				a.DragY += float64(y - r.lastY)
			}
			r.dragging = true
			r.lastX, r.lastY = x, y
		default:
			r.dragging = false
		}
	case *tcell.EventResize:
		r.screen.Sync()
		a.Resized = true
	}
}

// Draw renders s and shows it.
func (r *Renderer) Draw(s Scene) {
	w, h := r.screen.Size()
	bg := tcell.StyleDefault.Background(rgb(background[0], background[1], background[2]))
	r.screen.Fill(' ', bg)
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	r.drawStars(s, w, h, bg)
	r.drawMoon(s, w, h, bg)

	title := bg.Foreground(tcell.ColorWhite).Bold(true)
	sub := bg.Foreground(tcell.ColorGray)
	drawCentered(r.screen, s.Title, 0, w, title)
	drawCentered(r.screen, s.Subtitle, 1, w, sub)

	if s.Finale != "" && s.FinaleOpacity > 0.05 {
		level := float32(math.Min(s.FinaleOpacity, 1))
		st := bg.Foreground(rgb(level, level*0.84, level*0.4)).Bold(true)
		drawCentered(r.screen, s.Finale, h/2, w, st)
	}

	r.screen.Show()
}

func (r *Renderer) drawStars(s Scene, w, h int, bg tcell.Style) {
	if cap(r.brightness) < w*h {
		r.brightness = make([]float32, w*h)
	}
	r.brightness = r.brightness[:w*h]
	clear(r.brightness)

	n := min(len(s.Positions), len(s.Colors), len(s.Sizes))
	for i := 0; i < n; i++ {
		p := s.Positions[i]
		fx, fy, _, ok := core.Project(s.ViewProj, p, w, h)
		if !ok {
			continue
		}
		x, y := int(fx), int(fy)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}

		tw := core.Twinkle(s.Time, p.X())
		viewZ := s.View.Mul4x1(p.Vec4(1)).Z()
		size := core.PointSize(s.Sizes[i], tw, 1, viewZ)
		b := 0.4 + 0.6*tw
		if b <= r.brightness[y*w+x] {
			continue
		}
		r.brightness[y*w+x] = b

		c := s.Colors[i]
		st := bg.Foreground(rgb(c[0]*b, c[1]*b, c[2]*b))
		r.screen.SetContent(x, y, starGlyph(size), nil, st)
	}
}

func starGlyph(sizePx float32) rune {
	switch {
	case sizePx >= 12:
		return '*'
	case sizePx >= 6:
		return '+'
	default:
		return '.'
	}
}

func (r *Renderer) drawMoon(s Scene, w, h int, bg tcell.Style) {
	if s.MoonRadius <= 0 {
		return
	}
	cx, cy, _, ok := core.Project(s.ViewProj, s.MoonCenter, w, h)
	if !ok {
		return
	}
	ex, ey, _, ok := core.Project(s.ViewProj, s.MoonCenter.Add(mgl32.Vec3{0, s.MoonRadius, 0}), w, h)
	if !ok {
		return
	}
	ry := math.Hypot(float64(ex-cx), float64(ey-cy))
	rx := ry * CellAspect

	moon := bg.Foreground(rgb(moonColor[0], moonColor[1], moonColor[2]))
	for y := int(float64(cy) - ry); y <= int(float64(cy)+ry); y++ {
		for x := int(float64(cx) - rx); x <= int(float64(cx)+rx); x++ {
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			dx := (float64(x) + 0.5 - float64(cx)) / rx
			dy := (float64(y) + 0.5 - float64(cy)) / ry
			if dx*dx+dy*dy <= 1 {
				r.screen.SetContent(x, y, '█', nil, moon)
			}
		}
	}

	shadow := bg.Foreground(tcell.ColorBlack)
	for _, p := range s.Silhouette {
		fx, fy, _, ok := core.Project(s.ViewProj, p, w, h)
		x, y := int(fx), int(fy)
		if !ok || x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		r.screen.SetContent(x, y, '█', nil, shadow)
	}
}

func drawCentered(screen tcell.Screen, text string, row, width int, st tcell.Style) {
	if text == "" {
		return
	}
	runes := []rune(text)
	x := (width - len(runes)) / 2
	for i, ch := range runes {
		if x+i >= 0 && x+i < width {
			screen.SetContent(x+i, row, ch, nil, st)
		}
	}
}

func rgb(r, g, b float32) tcell.Color {
	return tcell.NewRGBColor(channel(r), channel(g), channel(b))
}

func channel(v float32) int32 {
	return int32(math.Round(float64(mgl32.Clamp(v, 0, 1)) * 255))
}
