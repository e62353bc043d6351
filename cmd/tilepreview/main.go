// cmd/tilepreview renders the floating tile field in a desktop window.
package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/kkdev/portfolio/tilefield"
)

const (
	maxFrameTime = 100 * time.Millisecond
	cameraZ      = 12.0
	fovDegrees   = 75.0
	glyphWidth   = 7
)

var background = color.RGBA{R: 2, G: 6, B: 23, A: 255}

type rect struct {
	x, y, w, h float32
}

func (r rect) contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= r.x && fx <= r.x+r.w && fy >= r.y && fy <= r.y+r.h
}

type preview struct {
	log     *zap.Logger
	path    string
	seed    int64
	doc     tilefield.Document
	field   *tilefield.Field
	tracker *tilefield.Tracker
	watcher *tilefield.Watcher

	width, height int
	last          time.Time
	hovered       int
	rects         map[int]rect
	gamma, beta   float64
}

func newPreview(log *zap.Logger, path string, seed int64, width, height int) (*preview, error) {
	p := &preview{
		log:     log,
		path:    path,
		seed:    seed,
		width:   width,
		height:  height,
		hovered: -1,
		rects:   make(map[int]rect),
		beta:    45,
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	if path != "" {
		w, err := tilefield.Watch(path)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
		p.watcher = w
	}
	return p, nil
}

// load (re)builds the field from the document on disk or the defaults.
func (p *preview) load() error {
	doc := tilefield.Document{Snippets: tilefield.DefaultSnippets, Field: tilefield.DefaultConfig()}
	if p.path != "" {
		var err error
		if doc, err = tilefield.LoadFile(p.path); err != nil {
			return err
		}
	}
	if p.seed != 0 {
		doc.Field.Seed = p.seed
	}

	field, err := tilefield.New(doc.Snippets, doc.Field)
	if err != nil {
		return err
	}
	tracker := tilefield.NewTracker(doc.Field, p.width, p.height)
	// Desktop builds have no permission prompt for orientation.
	if err := tracker.RequestPermission(context.Background(), nil); err != nil {
		p.log.Debug("orientation unavailable", zap.Error(err))
	}

	if p.field != nil {
		p.field.Close()
	}
	p.doc, p.field, p.tracker = doc, field, tracker
	p.hovered = -1
	clear(p.rects)
	p.last = time.Now()
	p.log.Info("field loaded",
		zap.Int("tiles", field.Len()),
		zap.Stringer("device", tracker.Device()))
	return nil
}

func (p *preview) close() {
	if p.watcher != nil {
		_ = p.watcher.Close()
	}
	if p.field != nil {
		p.field.Close()
	}
}

func (p *preview) Update() error {
	if p.watcher != nil {
		select {
		case <-p.watcher.Events:
			if err := p.load(); err != nil {
				p.log.Warn("reload failed; keeping current field", zap.Error(err))
			}
		case err := <-p.watcher.Errors:
			p.log.Warn("watch error", zap.Error(err))
		default:
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(p.last)
	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	p.last = now

	x, y := ebiten.CursorPosition()
	p.tracker.PointerMove(float64(x), float64(y))
	p.tilt()

	p.field.Advance(dt, p.tracker.Signal())

	hit := p.hit(x, y)
	if hit != p.hovered {
		if p.hovered >= 0 {
			p.field.Hover(p.hovered, false, p.tracker.Device())
		}
		if hit >= 0 {
			p.field.Hover(hit, true, p.tracker.Device())
		}
		p.hovered = hit
	}
	if hit >= 0 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.field.Tap(hit)
	}
	return nil
}

// tilt fakes a gyroscope with the arrow keys when the window is narrow
// enough to count as a touch device.
func (p *preview) tilt() {
	if p.tracker.Device() != tilefield.Mobile {
		return
	}
	const step = 0.5
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		p.gamma -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		p.gamma += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		p.beta -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		p.beta += step
	}
	p.gamma = math.Max(-90, math.Min(90, p.gamma))
	p.beta = math.Max(-180, math.Min(180, p.beta))
	p.tracker.DeviceOrientation(p.gamma, p.beta)
}

// hit returns the front-most tile under the cursor, or -1.
func (p *preview) hit(x, y int) int {
	best, bestZ := -1, math.Inf(-1)
	for i, r := range p.rects {
		if !r.contains(x, y) {
			continue
		}
		if z := p.field.Tile(i).Pos().Z; z > bestZ {
			best, bestZ = i, z
		}
	}
	return best
}

// project maps a world point to screen space with a pinhole camera at
// z=cameraZ looking down -Z.
func (p *preview) project(v tilefield.Vec3) (x, y, scale float64) {
	focal := float64(p.height) / 2 / math.Tan(fovDegrees/2*math.Pi/180)
	scale = focal / (cameraZ - v.Z)
	return float64(p.width)/2 + v.X*scale, float64(p.height)/2 - v.Y*scale, scale
}

func withAlpha(c color.Color, a float64) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)}
}

func (p *preview) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	tiles := p.field.Tiles()
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Pos().Z < tiles[j].Pos().Z })

	clear(p.rects)
	for _, t := range tiles {
		if !t.Visible() {
			continue
		}
		cx, cy, scale := p.project(t.Pos())
		s := scale / 40 * t.Scale()
		w := float32((float64(len(t.Text())*glyphWidth) + 16) * s)
		h := float32(24 * s)
		r := rect{x: float32(cx) - w/2, y: float32(cy) - h/2, w: w, h: h}
		p.rects[t.Index()] = r

		alpha := t.Opacity()
		if stops, ok := t.Gradient(); ok {
			band := r.w / float32(len(stops))
			for i, c := range stops {
				vector.DrawFilledRect(screen, r.x+band*float32(i), r.y, band, r.h, withAlpha(c.Clamped(), alpha), false)
			}
		} else {
			vector.DrawFilledRect(screen, r.x, r.y, r.w, r.h, color.NRGBA{R: 99, G: 102, B: 241, A: uint8(0.2 * alpha * 255)}, false)
		}
		vector.StrokeRect(screen, r.x, r.y, r.w, r.h, 1, color.NRGBA{R: 99, G: 102, B: 241, A: uint8(0.5 * alpha * 255)}, true)
		text.Draw(screen, t.Text(), basicfont.Face7x13, int(r.x)+8, int(cy)+4, withAlpha(t.TextColor(), alpha))
	}
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.width || outsideHeight != p.height {
		p.width, p.height = outsideWidth, outsideHeight
		p.tracker.Resize(outsideWidth, outsideHeight)
		if err := p.tracker.RequestPermission(context.Background(), nil); err != nil {
			p.log.Debug("orientation unavailable", zap.Error(err))
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	var (
		fieldPath     string
		seed          int64
		width, height int
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "tilepreview",
		Short: "Preview the floating code background",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewDevelopmentConfig()
			if !verbose {
				config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
			}
			log, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Sync()

			p, err := newPreview(log, fieldPath, seed, width, height)
			if err != nil {
				return err
			}
			defer p.close()

			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowTitle("Floating tiles")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			return ebiten.RunGame(p)
		},
	}
	cmd.Flags().StringVar(&fieldPath, "field", "", "YAML field document to load and watch")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the document or the clock)")
	cmd.Flags().IntVar(&width, "width", 1280, "window width")
	cmd.Flags().IntVar(&height, "height", 800, "window height")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
