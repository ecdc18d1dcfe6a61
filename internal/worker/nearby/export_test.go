package nearby

import "time"

// SetRetryDelay укорачивает паузу после ошибки в тестах
func (w *GroupingWorker) SetRetryDelay(d time.Duration) {
	w.retryDelay = d
}
