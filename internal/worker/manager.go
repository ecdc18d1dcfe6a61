package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nearby-poi-service/internal/pkg/metrics"
	"go.uber.org/zap"
)

// WorkerManager запускает зарегистрированные воркеры и останавливает их вместе
type WorkerManager struct {
	logger *zap.Logger

	mu      sync.Mutex
	workers []Worker
	running sync.WaitGroup
	failed  []error
	started bool

	// exited закрывается, когда завершились все запущенные воркеры
	exited chan struct{}
}

// NewWorkerManager - создание менеджера воркеров
func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		logger: logger,
		exited: make(chan struct{}),
	}
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered",
		zap.String("name", w.Name()),
		zap.String("stream", w.Stream()))
}

// Start запускает каждый воркер в своей горутине и сразу возвращается
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.registered()
	if len(workers) == 0 {
		return errors.New("no workers registered")
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return errors.New("workers already started")
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.running.Add(1)
		metrics.WorkersRunning.Inc()

		go func(w Worker) {
			defer m.running.Done()
			defer metrics.WorkersRunning.Dec()

			err := w.Start(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				m.logger.Info("Worker exited", zap.String("name", w.Name()))
				return
			}

			m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
			m.mu.Lock()
			m.failed = append(m.failed, fmt.Errorf("%s: %w", w.Name(), err))
			m.mu.Unlock()
		}(w)
	}

	go func() {
		m.running.Wait()
		close(m.exited)
	}()

	return nil
}

// Done закрывается, когда все воркеры вышли: после Stop или если все упали сами
func (m *WorkerManager) Done() <-chan struct{} {
	return m.exited
}

// Err возвращает ошибки воркеров, завершившихся аварийно
func (m *WorkerManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.failed...)
}

// Stop посылает Stop всем воркерам и ждёт их выхода, пока не истечёт ctx.
// Возвращает ошибки воркеров, завершившихся аварийно.
func (m *WorkerManager) Stop(ctx context.Context) error {
	workers := m.registered()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("name", w.Name()), zap.Error(err))
		}
	}

	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-m.exited:
	case <-ctx.Done():
		m.logger.Warn("Workers did not stop in time, in-flight messages stay pending")
		return fmt.Errorf("workers shutdown timed out: %w", ctx.Err())
	}

	return m.Err()
}

func (m *WorkerManager) registered() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Worker(nil), m.workers...)
}
