package repository

import (
	"context"

	"github.com/nearby-poi-service/internal/domain"
)

// StreamConsumer - чтение стрима через consumer group
type StreamConsumer interface {
	// CreateConsumerGroup создаёт группу (и стрим). Существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	// ConsumeBatch читает до maxCount новых сообщений, не блокируясь на пустом стриме
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)
	// ConsumePending повторно отдаёт неподтверждённые сообщения этого consumer
	ConsumePending(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error
}

// StreamPublisher - публикация событий; payload сериализуется в JSON поле "data"
type StreamPublisher interface {
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

type StreamRepository interface {
	StreamConsumer
	StreamPublisher
}
