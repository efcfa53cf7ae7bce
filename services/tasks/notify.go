package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"barberqueue/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifyNext = "queue:notify-next"
	NotifyQueue    = "notifications"
)

// NewNotifyNextTask wraps a composed notification. Retries are disabled: a
// customer must not get the same "you're next" message twice.
func NewNotifyNextTask(payload models.NotifyPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode notify payload: %w", err)
	}
	task := asynq.NewTask(TypeNotifyNext, b)
	opts := []asynq.Option{
		asynq.MaxRetry(0),
		asynq.Queue(NotifyQueue),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

func ParseNotifyNextPayload(task *asynq.Task) (models.NotifyPayload, error) {
	var p models.NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeNotifyNext, err)
	}
	return p, nil
}
