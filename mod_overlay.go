package starlight

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/gekko3d/starlight/render/core"
)

const (
	DefaultTitle    = "Starlight Tree"
	DefaultSubtitle = "Web3D Christmas Experiment"
	DefaultFinale   = "MERRY CHRISTMAS"

	// The fade settles in roughly one second.
	overlayFrequency = 6.0
	overlayDamping   = 1.0

	// bouncePeriod is one full hop of the finale line, in seconds.
	bouncePeriod = 1.0
	// bounceHeight is the hop as a fraction of the line height.
	bounceHeight = 0.25
)

var (
	titleColor    = core.HexColor(0xFCD34D)
	subtitleColor = core.HexColor(0x9CA3AF)
	finaleColor   = core.HexColor(0xFEF08A)
)

// Overlay is the text drawn over the scene. Opacity is the finale line's
// fade, Bounce its current hop in line heights (0 at rest, up to
// bounceHeight).
type Overlay struct {
	Title    string
	Subtitle string
	Finale   string

	Opacity  float64
	Bounce   float64
	velocity float64
}

// Target reports the opacity the finale line is easing toward.
func (o *Overlay) Target(progress float64) float64 {
	if progress >= FinaleThreshold {
		return 1
	}
	return 0
}

// Step advances the fade spring by dt seconds and the bounce to elapsed.
func (o *Overlay) Step(progress, dt, elapsed float64) {
	if dt > 0 {
		spring := harmonica.NewSpring(dt, overlayFrequency, overlayDamping)
		o.Opacity, o.velocity = spring.Update(o.Opacity, o.velocity, o.Target(progress))
		o.Opacity = math.Max(0, math.Min(1, o.Opacity))
	}
	o.Bounce = 0
	if o.Opacity > 0 {
		o.Bounce = bounceHeight * math.Abs(math.Sin(math.Pi*elapsed/bouncePeriod))
	}
}

// Layout places the overlay in a width x height pixel viewport: title and
// subtitle at the top left, the finale line centred near the bottom.
func (o *Overlay) Layout(atlas *core.TextAtlas, width, height int, pixelRatio float64) []core.TextItem {
	if atlas == nil || width <= 0 || height <= 0 {
		return nil
	}
	pr := float32(pixelRatio)
	if pr <= 0 {
		pr = 1
	}
	margin := 24 * pr
	titleScale := 0.9 * pr
	subScale := 0.45 * pr
	finaleScale := 0.55 * pr

	items := []core.TextItem{
		{Text: o.Title, Position: [2]float32{margin, margin}, Scale: titleScale, Color: titleColor},
		{
			Text:     o.Subtitle,
			Position: [2]float32{margin, margin + atlas.LineHeight(titleScale)},
			Scale:    subScale,
			Color:    subtitleColor,
		},
	}
	if o.Opacity > 0 {
		lh := atlas.LineHeight(finaleScale)
		y := float32(height) - 40*pr - lh - float32(o.Bounce)*lh
		c := finaleColor
		c[3] = float32(o.Opacity)
		items = append(items, atlas.Centered(o.Finale, y, finaleScale, c, width))
	}
	return items
}

type OverlayModule struct {
	Title, Subtitle, Finale string
}

func (mod OverlayModule) Install(app *App, cmd *Commands) {
	ov := &Overlay{
		Title:    mod.Title,
		Subtitle: mod.Subtitle,
		Finale:   mod.Finale,
	}
	if ov.Title == "" {
		ov.Title = DefaultTitle
	}
	if ov.Subtitle == "" {
		ov.Subtitle = DefaultSubtitle
	}
	if ov.Finale == "" {
		ov.Finale = DefaultFinale
	}
	cmd.AddResources(ov)
	app.UseSystem(
		System(overlaySystem).
			InStage(PreRender).
			RunAlways(),
	)
}

func overlaySystem(t *Time, sf *Starfield, ov *Overlay) {
	ov.Step(sf.Progress, t.Seconds(), t.Elapsed)
}
