package cron

import (
	"context"
	"fmt"
	"time"

	"karigar/config"
	"karigar/models"
	"karigar/services/review"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RatingRecomputer is the part of the rating aggregator the worker drives.
type RatingRecomputer interface {
	Recompute(ctx context.Context, providerID string) (models.RatingSummary, error)
	RecomputeAll(ctx context.Context) (int, error)
}

// RedisQueueOpt returns the asynq connection for the task queue DB.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker consumes rating recompute tasks and runs the scheduled reconciliation.
type Worker struct {
	srv       *asynq.Server
	scheduler *cron.Cron
}

// StartWorker runs the async worker and the reconciliation schedule in the background.
func StartWorker(agg RatingRecomputer) (*Worker, error) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRatingRecompute, HandleRatingRecompute(agg))

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Rating worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		logger.Error("Rating worker gave up after max attempts")
	}()

	scheduler := cron.New()
	_, err := scheduler.AddFunc(config.AppConfig.RatingReconcileSchedule, func() {
		ReconcileRatings(context.Background(), agg)
	})
	if err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("invalid rating reconcile schedule %q: %w", config.AppConfig.RatingReconcileSchedule, err)
	}
	scheduler.Start()
	logger.Info("Rating worker started", zap.String("reconcileSchedule", config.AppConfig.RatingReconcileSchedule))

	return &Worker{srv: srv, scheduler: scheduler}, nil
}

// Stop drains the scheduler and the task server.
func (w *Worker) Stop() {
	<-w.scheduler.Stop().Done()
	w.srv.Shutdown()
}

// HandleRatingRecompute rebuilds one provider's rating. Returning an error lets asynq retry.
func HandleRatingRecompute(agg RatingRecomputer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRatingRecompute(task)
		if err != nil || p.ProviderID == "" {
			utils.GetLogger().Error("Invalid rating recompute payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		summary, err := agg.Recompute(ctx, p.ProviderID)
		if err != nil {
			utils.GetLogger().Warn("Rating recompute retry failed", zap.String("providerID", p.ProviderID), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("Rating recomputed",
			zap.String("providerID", p.ProviderID),
			zap.Float64("average", summary.Average),
			zap.Int("count", summary.Count),
		)
		return nil
	}
}

// ReconcileRatings recomputes every reviewed provider, repairing any drift left by failed recomputes.
func ReconcileRatings(ctx context.Context, agg RatingRecomputer) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	start := time.Now()
	n, err := agg.RecomputeAll(ctx)
	if err != nil {
		utils.GetLogger().Error("Rating reconciliation incomplete", zap.Int("recomputed", n), zap.Error(err))
		return
	}
	utils.GetLogger().Info("Rating reconciliation finished", zap.Int("recomputed", n), zap.Duration("took", time.Since(start)))
}

var _ RatingRecomputer = (*review.RatingAggregator)(nil)
