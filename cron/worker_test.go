package cron

import (
	"context"
	"errors"
	"testing"

	"karigar/models"
	"karigar/services/tasks"

	"github.com/hibiken/asynq"
)

type fakeAggregator struct {
	recomputed []string
	err        error
	all        int
}

func (f *fakeAggregator) Recompute(_ context.Context, providerID string) (models.RatingSummary, error) {
	f.recomputed = append(f.recomputed, providerID)
	if f.err != nil {
		return models.RatingSummary{}, f.err
	}
	return models.RatingSummary{Average: 4, Count: 2}, nil
}

func (f *fakeAggregator) RecomputeAll(context.Context) (int, error) {
	f.all++
	return 3, f.err
}

func TestHandleRatingRecompute(t *testing.T) {
	agg := &fakeAggregator{}
	task, _, err := tasks.NewRatingRecomputeTask("provider-9")
	if err != nil {
		t.Fatal(err)
	}
	if err := HandleRatingRecompute(agg)(context.Background(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(agg.recomputed) != 1 || agg.recomputed[0] != "provider-9" {
		t.Errorf("recomputed = %v", agg.recomputed)
	}
}

func TestHandleRatingRecompute_RetriesOnFailure(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("mongo unavailable")}
	task, _, _ := tasks.NewRatingRecomputeTask("provider-9")

	err := HandleRatingRecompute(agg)(context.Background(), task)
	if err == nil {
		t.Fatal("expected an error so the task is retried")
	}
	if errors.Is(err, asynq.SkipRetry) {
		t.Error("store failures must stay retryable")
	}
}

func TestHandleRatingRecompute_BadPayloadSkipsRetry(t *testing.T) {
	agg := &fakeAggregator{}
	for _, payload := range [][]byte{[]byte("{"), []byte(`{"providerId":""}`)} {
		err := HandleRatingRecompute(agg)(context.Background(), asynq.NewTask(tasks.TypeRatingRecompute, payload))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("payload %s: expected SkipRetry, got %v", payload, err)
		}
	}
	if len(agg.recomputed) != 0 {
		t.Error("invalid payloads must not trigger a recompute")
	}
}

func TestReconcileRatings(t *testing.T) {
	agg := &fakeAggregator{}
	ReconcileRatings(context.Background(), agg)
	if agg.all != 1 {
		t.Errorf("RecomputeAll called %d times", agg.all)
	}
}
