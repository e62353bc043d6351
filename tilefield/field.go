package tilefield

import (
	"math/rand"
	"time"
)

// Field owns a fixed set of tiles and advances them one frame at a time.
// Like the Tracker it runs on a single loop and is not safe for concurrent
// use; see Runner for a goroutine driven field.
type Field struct {
	cfg   Config
	rng   *rand.Rand
	tiles []*Tile

	clock  time.Duration
	frames uint64
	closed bool
}

// New lays out one tile per snippet.
func New(snippets []string, cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Field{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		tiles: make([]*Tile, len(snippets)),
	}

	for i, text := range snippets {
		base := Distribute(i, len(snippets), cfg.SpanX, cfg.SpanY, cfg.Depth, f.rng.Float64())
		period := cfg.HighlightPeriodMin
		if spread := cfg.HighlightPeriodMax - cfg.HighlightPeriodMin; spread > 0 {
			period += time.Duration(f.rng.Int63n(int64(spread)))
		}
		delay := time.Duration(i) * cfg.AppearStep
		f.tiles[i] = &Tile{
			index:    i,
			text:     text,
			base:     base,
			pos:      base,
			delay:    delay,
			appearIn: delay,
			period:   period,
			nextTick: period,
		}
	}
	return f, nil
}

func (f *Field) Config() Config       { return f.cfg }
func (f *Field) Len() int             { return len(f.tiles) }
func (f *Field) Clock() time.Duration { return f.clock }
func (f *Field) Frames() uint64       { return f.frames }
func (f *Field) Closed() bool         { return f.closed }

// Tile returns tile i or nil when out of range.
func (f *Field) Tile(i int) *Tile {
	if i < 0 || i >= len(f.tiles) {
		return nil
	}
	return f.tiles[i]
}

func (f *Field) Tiles() []*Tile {
	return append([]*Tile(nil), f.tiles...)
}

// States snapshots every tile.
func (f *Field) States() []TileState {
	out := make([]TileState, len(f.tiles))
	for i, t := range f.tiles {
		out[i] = t.State()
	}
	return out
}

// Advance runs one frame. dt moves the field clock; motion is applied per
// call.
func (f *Field) Advance(dt time.Duration, in Input) {
	if f.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	f.clock += dt
	f.frames++

	offset, k := f.response(in)
	for _, t := range f.tiles {
		if !t.visible {
			t.appearIn -= dt
			if t.appearIn <= 0 {
				t.visible = true
			}
		}
		if t.visible {
			f.move(t, offset, k)
		}
		f.pulse(t, dt)
	}
}

// response turns an input into a parallax offset and a smoothing factor.
func (f *Field) response(in Input) (Vec3, float64) {
	switch s := in.(type) {
	case Pointer:
		i := f.cfg.PointerIntensity
		return Vec3{X: s.X * i, Y: s.Y * i}, f.cfg.PointerLerp
	case Orientation:
		i := f.cfg.OrientationIntensity
		return Vec3{X: s.X * i, Y: s.Y * i}, f.cfg.OrientationLerp
	default:
		// Only touch devices end up without a signal.
		return Vec3{}, f.cfg.OrientationLerp
	}
}

func (f *Field) move(t *Tile, offset Vec3, k float64) {
	target := t.base.Add(t.drift).Sub(offset)
	t.pos.X = lerp(t.pos.X, target.X, k)
	t.pos.Y = lerp(t.pos.Y, target.Y, k)

	fall := f.cfg.FallSpeed + f.rng.Float64()*f.cfg.FallJitter
	t.drift.Y -= fall
	t.pos.Y -= fall

	if t.pos.Y < f.cfg.LowerBound {
		f.recycle(t)
	}
}

// recycle respawns t above the visible volume at a random X and Z.
func (f *Field) recycle(t *Tile) {
	x := (f.rng.Float64() - 0.5) * f.cfg.RecycleSpanX
	z := (f.rng.Float64() - 0.5) * f.cfg.RecycleSpanZ
	t.pos = Vec3{X: x, Y: f.cfg.UpperBound, Z: z}
	t.drift = t.pos.Sub(t.base)
	t.recycles++
}

// pulse runs the tile's highlight timer. A running pulse always lasts
// HighlightDuration; ticks that land inside it are skipped. Ticks and pulse
// ends inside one frame are handled in time order, measured back from the
// end of the frame.
func (f *Field) pulse(t *Tile, dt time.Duration) {
	if t.highlighted {
		t.highlightLeft -= dt
	}
	t.nextTick -= dt
	for t.nextTick <= 0 {
		late := -t.nextTick
		t.nextTick += t.period
		// The pulse ended at or before this tick.
		if t.highlighted && t.highlightLeft <= -late {
			t.highlighted = false
		}
		if t.highlighted || f.rng.Float64() >= f.cfg.HighlightChance {
			continue
		}
		t.highlighted = true
		t.highlightLeft = f.cfg.HighlightDuration - late
		t.pulses++
	}
	if t.highlighted && t.highlightLeft <= 0 {
		t.highlighted = false
	}
	if !t.highlighted {
		t.highlightLeft = 0
		return
	}
	t.phase = f.clock.Seconds() * f.cfg.PhaseRate
}

// Hover focuses a tile while the pointer is over it. Touch devices use Tap.
func (f *Field) Hover(i int, over bool, d Device) {
	if f.closed || d != Desktop {
		return
	}
	if t := f.Tile(i); t != nil {
		t.focused = over
	}
}

// Tap toggles focus on tile i.
func (f *Field) Tap(i int) {
	if f.closed {
		return
	}
	if t := f.Tile(i); t != nil {
		t.focused = !t.focused
	}
}

// Close tears the field down. Pending appear and highlight timers stop and
// later frames are ignored.
func (f *Field) Close() {
	f.closed = true
}
