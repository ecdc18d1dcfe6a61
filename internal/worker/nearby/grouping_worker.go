package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nearby-poi-service/internal/domain"
	"github.com/nearby-poi-service/internal/domain/repository"
	"github.com/nearby-poi-service/internal/pkg/metrics"
	"github.com/nearby-poi-service/internal/usecase/dto"
	"github.com/nearby-poi-service/internal/worker"
	"go.uber.org/zap"
)

const (
	workerName      = "poi-grouping"
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза при ошибке чтения или публикации
)

// NearbyGrouper - use case группировки POI рядом с точкой
type NearbyGrouper interface {
	GroupNearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResult, error)
}

// GroupingWorker обрабатывает запросы на группировку POI из Redis Stream
type GroupingWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	nearbyUC     NearbyGrouper
	consumerName string
	maxBatchSize int
	retryDelay   time.Duration

	// recoverPending - перед новыми сообщениями дочитать свои неподтверждённые
	recoverPending bool
}

// NewGroupingWorker создает новый GroupingWorker
func NewGroupingWorker(
	streamRepo repository.StreamRepository,
	nearbyUC NearbyGrouper,
	consumerGroup string,
	maxBatchSize int,
	logger *zap.Logger,
) *GroupingWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &GroupingWorker{
		BaseWorker:   worker.NewBaseWorker(workerName, domain.StreamNearbyRequest, consumerGroup, logger),
		streamRepo:   streamRepo,
		nearbyUC:     nearbyUC,
		consumerName: consumerName,
		maxBatchSize: maxBatchSize,
		retryDelay:   errorSleep,
	}
}

// Start запускает воркер
func (w *GroupingWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting GroupingWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", w.maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// после рестарта с тем же consumer name в pending могут остаться сообщения
	w.recoverPending = true

	for {
		select {
		case <-w.Done():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Sleep(ctx, w.retryDelay)
				continue
			}

			if processed == 0 {
				w.Sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений
func (w *GroupingWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.readBatch(ctx)
	if err != nil {
		return 0, err
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	unpublished := 0
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.WorkerMessagesTotal.WithLabelValues(workerName, metrics.OutcomeInvalid).Inc()
			// ACK битое сообщение чтобы не застревало
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		done := w.handleEvent(ctx, event)

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamNearbyDone, done); err != nil {
			// без ACK сообщение остаётся в pending, его перечитает readBatch
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
			unpublished++
			continue
		}
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
		w.recoverPending = true
	}

	if unpublished > 0 {
		w.recoverPending = true
		return len(messages), fmt.Errorf("failed to publish %d done events", unpublished)
	}

	return len(messages), nil
}

// readBatch сначала отдаёт pending сообщения этого consumer, пока они есть, затем новые
func (w *GroupingWorker) readBatch(ctx context.Context) ([]domain.StreamMessage, error) {
	if w.recoverPending {
		pending, err := w.streamRepo.ConsumePending(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.maxBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read pending messages: %w", err)
		}
		if len(pending) > 0 {
			w.Logger().Info("Reprocessing pending messages", zap.Int("count", len(pending)))
			return pending, nil
		}
		w.recoverPending = false
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.maxBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

// handleEvent группирует POI для одного события. Ошибка use case попадает в событие результата.
// Category в ответе всегда повторяет категорию запроса, в том числе при ошибке.
func (w *GroupingWorker) handleEvent(ctx context.Context, event *domain.NearbyRequestEvent) *domain.NearbyDoneEvent {
	done := &domain.NearbyDoneEvent{
		RequestID: event.RequestID,
		Category:  event.Category,
	}

	result, err := w.nearbyUC.GroupNearby(ctx, dto.NearbyRequest{
		Category: event.Category,
		Lng:      event.Lng,
		Lat:      event.Lat,
	})
	if err != nil {
		w.Logger().Warn("Grouping failed",
			zap.String("request_id", event.RequestID.String()),
			zap.String("category", event.Category),
			zap.Error(err))
		metrics.WorkerMessagesTotal.WithLabelValues(workerName, metrics.OutcomeError).Inc()
		done.Error = err.Error()
		return done
	}

	metrics.WorkerMessagesTotal.WithLabelValues(workerName, metrics.OutcomeSuccess).Inc()
	done.Result = result.Groups
	return done
}

// parseMessage парсит сообщение из стрима в NearbyRequestEvent
func parseMessage(msg domain.StreamMessage) (*domain.NearbyRequestEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.NearbyRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.RequestID == uuid.Nil {
		return nil, fmt.Errorf("missing request_id")
	}

	return &event, nil
}
