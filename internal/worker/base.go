package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker - общее состояние воркеров стримов: имя, стрим, группа и сигнал остановки
type BaseWorker struct {
	name          string
	stream        string
	consumerGroup string
	logger        *zap.Logger

	stopped  chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker - создание BaseWorker
func NewBaseWorker(name, stream, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		stream:        stream,
		consumerGroup: consumerGroup,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("stream", stream),
		),
		stopped: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string          { return w.name }
func (w *BaseWorker) Stream() string        { return w.stream }
func (w *BaseWorker) ConsumerGroup() string { return w.consumerGroup }
func (w *BaseWorker) Logger() *zap.Logger   { return w.logger }

// Stop сигнализирует циклу воркера о завершении. Идемпотентен
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopped)
	})
	return nil
}

// Done закрывается после Stop
func (w *BaseWorker) Done() <-chan struct{} {
	return w.stopped
}

func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopped:
		return true
	default:
		return false
	}
}

// Sleep ждёт d. Возвращает false, если ожидание прервано Stop или отменой ctx
func (w *BaseWorker) Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.stopped:
		return false
	case <-ctx.Done():
		return false
	}
}
