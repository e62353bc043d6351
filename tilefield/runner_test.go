package tilefield

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestRunnerStopReleasesLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	f, err := New(DefaultSnippets, testConfig())
	require.NoError(t, err)
	tr := NewTracker(f.Config(), 1280, 720)

	var frames atomic.Int64
	r := NewRunner(f, tr, time.Millisecond, func(*Field) { frames.Add(1) }, zaptest.NewLogger(t))
	r.Start(context.Background())

	r.Do(func(_ *Field, tr *Tracker) { tr.PointerMove(0, 0) })
	require.Eventually(t, func() bool { return frames.Load() >= 5 }, 2*time.Second, time.Millisecond)

	r.Stop()
	r.Stop()

	var closed bool
	var clock time.Duration
	r.Do(func(f *Field, _ *Tracker) {
		closed = f.Closed()
		clock = f.Clock()
	})
	assert.True(t, closed)
	assert.Positive(t, clock)
}

func TestRunnerStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	f, err := New(DefaultSnippets[:3], testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(f, NewTracker(f.Config(), 400, 800), time.Millisecond, nil, nil)
	r.Start(ctx)
	cancel()
	r.Stop()
	assert.True(t, f.Closed())
}
