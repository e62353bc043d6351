package tilefield

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner advances a field from a ticker goroutine. Input callbacks and
// readers go through Do so they share the frame loop's lock.
type Runner struct {
	mu       sync.Mutex
	field    *Field
	tracker  *Tracker
	interval time.Duration
	onFrame  func(*Field)
	log      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewRunner prepares a runner ticking every interval. onFrame, if set, runs
// after each frame while the lock is held.
func NewRunner(f *Field, tr *Tracker, interval time.Duration, onFrame func(*Field), log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		field:    f,
		tracker:  tr,
		interval: interval,
		onFrame:  onFrame,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the frame loop. It returns immediately; the loop ends when
// ctx is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.log.Debug("tile field started", zap.Int("tiles", r.field.Len()), zap.Duration("interval", r.interval))
	go r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			r.mu.Lock()
			r.field.Advance(dt, r.tracker.Signal())
			if r.onFrame != nil {
				r.onFrame(r.field)
			}
			r.mu.Unlock()
		}
	}
}

// Do runs fn with exclusive access to the field and tracker.
func (r *Runner) Do(fn func(*Field, *Tracker)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.field, r.tracker)
}

// Stop cancels the loop, waits for it to exit and closes the field.
func (r *Runner) Stop() {
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
			<-r.done
		}
		r.mu.Lock()
		r.field.Close()
		r.mu.Unlock()
		r.log.Debug("tile field stopped", zap.Uint64("frames", r.field.Frames()))
	})
}
