package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRatingRecompute = "rating:recompute"

// RatingRecomputePayload names the provider whose rating must be rebuilt.
type RatingRecomputePayload struct {
	ProviderID string `json:"providerId"`
}

// Enqueuer is the part of *asynq.Client used to schedule tasks.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewRatingRecomputeTask builds a retrying task for providerID. Tasks for the same provider
// are deduplicated for a minute since a single recompute covers every pending review.
func NewRatingRecomputeTask(providerID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(RatingRecomputePayload{ProviderID: providerID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRatingRecompute, b)
	opts := []asynq.Option{
		asynq.MaxRetry(10),
		asynq.Unique(time.Minute),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseRatingRecompute decodes a task payload.
func ParseRatingRecompute(task *asynq.Task) (RatingRecomputePayload, error) {
	var p RatingRecomputePayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
