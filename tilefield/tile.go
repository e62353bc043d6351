package tilefield

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	idleText      = mustHex("#6366f1")
	focusedText   = mustHex("#e879f9")
	highlightText = mustHex("#ffffff")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Tile is one floating text element. All state is owned by the Field; the
// accessors are read only.
type Tile struct {
	index int
	text  string
	base  Vec3
	pos   Vec3

	// drift accumulates falling and the re-anchoring done on recycle. The
	// smoothing target is base + drift - offset.
	drift Vec3

	visible  bool
	appearIn time.Duration
	delay    time.Duration

	focused bool

	highlighted   bool
	highlightLeft time.Duration
	period        time.Duration
	nextTick      time.Duration
	phase         float64

	recycles int
	pulses   int
}

func (t *Tile) Index() int                     { return t.index }
func (t *Tile) Text() string                   { return t.text }
func (t *Tile) Base() Vec3                     { return t.base }
func (t *Tile) Pos() Vec3                      { return t.pos }
func (t *Tile) Visible() bool                  { return t.visible }
func (t *Tile) Focused() bool                  { return t.focused }
func (t *Tile) Highlighted() bool              { return t.highlighted }
func (t *Tile) Phase() float64                 { return t.phase }
func (t *Tile) AppearDelay() time.Duration     { return t.delay }
func (t *Tile) HighlightPeriod() time.Duration { return t.period }

// Recycles counts how many times the tile fell out and respawned at the top.
func (t *Tile) Recycles() int { return t.recycles }

// Pulses counts highlight pulses started so far.
func (t *Tile) Pulses() int { return t.pulses }

// Opacity is 0 before the tile appears, 0.9 while focused and 0.6 otherwise.
func (t *Tile) Opacity() float64 {
	switch {
	case !t.visible:
		return 0
	case t.focused:
		return 0.9
	default:
		return 0.6
	}
}

func (t *Tile) Scale() float64 {
	if t.focused {
		return 1.1
	}
	return 1
}

func (t *Tile) TextColor() colorful.Color {
	switch {
	case t.highlighted:
		return highlightText
	case t.focused:
		return focusedText
	default:
		return idleText
	}
}

// Gradient returns the three background stops of a highlighted tile. Each
// stop oscillates on its own sine wave, a third of a turn apart.
func (t *Tile) Gradient() ([3]colorful.Color, bool) {
	if !t.highlighted {
		return [3]colorful.Color{}, false
	}
	return GradientAt(t.phase), true
}

// GradientAt computes the gradient stops for a highlight phase.
func GradientAt(phase float64) [3]colorful.Color {
	wave := func(shift float64) float64 {
		return math.Sin(phase+shift)*0.5 + 0.5
	}
	w1 := wave(0)
	w2 := wave(2 * math.Pi / 3)
	w3 := wave(4 * math.Pi / 3)

	return [3]colorful.Color{
		colorful.Hsl(280+w1*40, 0.70, 0.60+w1*0.20),
		colorful.Hsl(200+w2*60, 0.80, 0.50+w2*0.30),
		colorful.Hsl(320+w3*30, 0.75, 0.55+w3*0.25),
	}
}

// TileState is a serializable view of a tile for one frame.
type TileState struct {
	Index       int      `json:"index"`
	Text        string   `json:"text"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Z           float64  `json:"z"`
	Visible     bool     `json:"visible"`
	Focused     bool     `json:"focused"`
	Highlighted bool     `json:"highlighted"`
	Opacity     float64  `json:"opacity"`
	Color       string   `json:"color"`
	Gradient    []string `json:"gradient,omitempty"`
}

// State snapshots the tile.
func (t *Tile) State() TileState {
	s := TileState{
		Index:       t.index,
		Text:        t.text,
		X:           t.pos.X,
		Y:           t.pos.Y,
		Z:           t.pos.Z,
		Visible:     t.visible,
		Focused:     t.focused,
		Highlighted: t.highlighted,
		Opacity:     t.Opacity(),
		Color:       t.TextColor().Hex(),
	}
	if stops, ok := t.Gradient(); ok {
		for _, c := range stops {
			s.Gradient = append(s.Gradient, c.Clamped().Hex())
		}
	}
	return s
}
