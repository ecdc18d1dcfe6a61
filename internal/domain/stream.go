package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamNearbyRequest = "stream:poi:nearby:request"
	StreamNearbyDone    = "stream:poi:nearby:done"
)

// NearbyRequestEvent - входящее событие на группировку POI рядом с точкой
type NearbyRequestEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Category  string    `json:"category"`
	Lng       float64   `json:"lng"`
	Lat       float64   `json:"lat"`
}

// NearbyDoneEvent - результат группировки.
// Category повторяет категорию из запроса как есть. Result присутствует всегда:
// {} - POI не найдены, null - обработка завершилась ошибкой (см. Error).
type NearbyDoneEvent struct {
	RequestID uuid.UUID     `json:"request_id"`
	Category  string        `json:"category"`
	Result    GroupedResult `json:"result"`
	Error     string        `json:"error,omitempty"`
}

// Failed проверяет, завершилась ли обработка ошибкой
func (e *NearbyDoneEvent) Failed() bool {
	return e.Error != ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
