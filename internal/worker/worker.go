package worker

import "context"

// Worker - долгоживущий потребитель Redis Stream.
// Start блокируется до Stop или отмены ctx.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
	// Stream - имя стрима, который читает воркер
	Stream() string
}
