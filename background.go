package main

import (
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkdev/portfolio/tilefield"
)

const frameInterval = time.Second / 60

// queryInt reads an integer query parameter, clamped to [lo, hi].
func queryInt(c *gin.Context, key string, fallback, lo, hi int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return min(max(v, lo), hi)
}

// handleBackground returns the snippets and tuning the page script animates.
func (a *App) handleBackground(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"snippets": a.field.Snippets,
		"config":   a.field.Field,
	})
}

// newTracker builds the input state for a simulated viewport. An optional
// px/py pair is replayed as the last pointer position.
func (a *App) newTracker(c *gin.Context, cfg tilefield.Config) *tilefield.Tracker {
	width := queryInt(c, "width", 1280, 1, 10000)
	height := queryInt(c, "height", 800, 1, 10000)
	tr := tilefield.NewTracker(cfg, width, height)

	px, errX := strconv.ParseFloat(c.Query("px"), 64)
	py, errY := strconv.ParseFloat(c.Query("py"), 64)
	if errX == nil && errY == nil {
		tr.PointerMove(px, py)
	}
	return tr
}

// handleBackgroundFrames runs the field for a number of frames and returns
// the final tile states. The same seed always yields the same answer.
func (a *App) handleBackgroundFrames(c *gin.Context) {
	cfg := a.field.Field
	// Seed 0 would mean "seed from the clock".
	cfg.Seed = int64(queryInt(c, "seed", 1, 1, 1<<31-1))
	frames := queryInt(c, "frames", 60, 0, 3600)

	field, err := tilefield.New(a.field.Snippets, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer field.Close()

	tr := a.newTracker(c, cfg)
	for i := 0; i < frames; i++ {
		field.Advance(frameInterval, tr.Signal())
	}

	c.JSON(http.StatusOK, gin.H{
		"frames":   field.Frames(),
		"clock_ms": field.Clock().Milliseconds(),
		"device":   tr.Device().String(),
		"tiles":    field.States(),
	})
}

// streamHub tracks the live background streams so input posted by a page
// reaches the field its stream is drawing.
type streamHub struct {
	mu      sync.Mutex
	limit   int
	runners map[string]*tilefield.Runner
}

func newStreamHub(limit int) *streamHub {
	if limit <= 0 {
		limit = 32
	}
	return &streamHub{limit: limit, runners: make(map[string]*tilefield.Runner)}
}

// add registers r under a new session id. It reports false when the hub is
// full.
func (h *streamHub) add(r *tilefield.Runner) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.runners) >= h.limit {
		return "", false
	}
	id := uuid.NewString()
	h.runners[id] = r
	return id, true
}

func (h *streamHub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.runners, id)
}

func (h *streamHub) get(id string) (*tilefield.Runner, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.runners[id]
	return r, ok
}

func (h *streamHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.runners)
}

// handleBackgroundStream streams live frames as server-sent events until the
// client goes away. The first event carries the session id the page posts
// its input with.
func (a *App) handleBackgroundStream(c *gin.Context) {
	cfg := a.field.Field
	cfg.Seed = 0
	fps := queryInt(c, "fps", 30, 1, 60)

	field, err := tilefield.New(a.field.Snippets, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	frames := make(chan []tilefield.TileState, 1)
	publish := func(f *tilefield.Field) {
		select {
		case frames <- f.States():
		default:
		}
	}

	ctx := c.Request.Context()
	tracker := a.newTracker(c, cfg)
	// Browsers prompt for motion access themselves; a page that was denied
	// never posts orientation.
	_ = tracker.RequestPermission(ctx, nil)

	runner := tilefield.NewRunner(field, tracker, time.Second/time.Duration(fps), publish, a.log)
	id, ok := a.streams.add(runner)
	if !ok {
		field.Close()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Too many background streams"})
		return
	}
	defer a.streams.remove(id)
	runner.Start(ctx)
	defer runner.Stop()

	sentSession := false
	c.Stream(func(w io.Writer) bool {
		if !sentSession {
			sentSession = true
			c.SSEvent("session", id)
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case states := <-frames:
			c.SSEvent("frame", states)
			return true
		}
	})
}

// BackgroundInput is one input event posted by a page for its stream.
type BackgroundInput struct {
	Session string  `json:"session" binding:"required"`
	Type    string  `json:"type" binding:"required,oneof=pointer orientation resize hover tap"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Gamma   float64 `json:"gamma"`
	Beta    float64 `json:"beta"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Index   int     `json:"index"`
	Over    bool    `json:"over"`
}

// handleBackgroundInput forwards pointer, tilt, resize, hover and tap events
// to the field of a live stream.
func (a *App) handleBackgroundInput(c *gin.Context) {
	var in BackgroundInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Type == "resize" && (in.Width <= 0 || in.Height <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resize needs a positive width and height"})
		return
	}
	runner, ok := a.streams.get(in.Session)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown background session"})
		return
	}

	ctx := c.Request.Context()
	runner.Do(func(f *tilefield.Field, tr *tilefield.Tracker) {
		switch in.Type {
		case "pointer":
			tr.PointerMove(in.X, in.Y)
		case "orientation":
			tr.DeviceOrientation(in.Gamma, in.Beta)
		case "resize":
			tr.Resize(in.Width, in.Height)
			_ = tr.RequestPermission(ctx, nil)
		case "hover":
			f.Hover(in.Index, in.Over, tr.Device())
		case "tap":
			f.Tap(in.Index)
		}
	})
	c.Status(http.StatusNoContent)
}
