package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingWorker runs until stopped or the context is cancelled
type blockingWorker struct {
	*BaseWorker
	started atomic.Bool
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{BaseWorker: NewBaseWorker(name, "test:stream", "test-group", zap.NewNop())}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	select {
	case <-w.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stuckWorker ignores Stop
type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

// failingWorker exits immediately with an error
type failingWorker struct {
	*BaseWorker
}

func (w *failingWorker) Start(ctx context.Context) error {
	return errors.New("consumer group missing")
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())

	err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no workers registered")
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	first := newBlockingWorker("first")
	second := newBlockingWorker("second")
	m.Register(first)
	m.Register(second)

	require.NoError(t, m.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return first.started.Load() && second.started.Load()
	}, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, m.Stop(ctx))
	assert.True(t, first.IsStopped())
	assert.True(t, second.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())

	stuck := &stuckWorker{
		BaseWorker: NewBaseWorker("stuck", "test:stream", "test-group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(stuck.release)
	m.Register(stuck)

	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerManager_StopReportsFailedWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.Register(&failingWorker{BaseWorker: NewBaseWorker("broken", "test:stream", "test-group", zap.NewNop())})

	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := m.Stop(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: consumer group missing")
}

func TestBaseWorker_Sleep(t *testing.T) {
	w := NewBaseWorker("sleeper", "test:stream", "test-group", zap.NewNop())

	assert.True(t, w.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Sleep(ctx, time.Minute))

	require.NoError(t, w.Stop())
	assert.False(t, w.Sleep(context.Background(), time.Minute))
	assert.Equal(t, "test:stream", w.Stream())
}

func TestWorkerManager_DoneWhenAllWorkersFail(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.Register(&failingWorker{BaseWorker: NewBaseWorker("broken", "test:stream", "test-group", zap.NewNop())})

	require.NoError(t, m.Start(context.Background()))

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("Done was not closed after every worker exited")
	}

	err := m.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer group missing")
}

func TestWorkerManager_DoneOpenWhileWorkersRun(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	w := newBlockingWorker("alive")
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))

	select {
	case <-m.Done():
		t.Fatal("Done closed while a worker is still running")
	case <-time.After(50 * time.Millisecond):
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	select {
	case <-m.Done():
	default:
		t.Fatal("Done must be closed after Stop")
	}
	assert.NoError(t, m.Err())
}

func TestWorkerManager_StopBeforeStart(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.Register(newBlockingWorker("idle"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Stop(ctx))
}
