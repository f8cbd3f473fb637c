package review

import (
	"context"
	"fmt"

	providerRepo "karigar/database/repository/provider"
	reviewRepo "karigar/database/repository/review"
	"karigar/models"
)

// DirectoryInvalidator drops cached directory pages after a provider changes.
type DirectoryInvalidator interface {
	Invalidate(ctx context.Context)
}

// ComputeRating returns the arithmetic mean and count of the given overall scores.
func ComputeRating(overall []int) models.RatingSummary {
	if len(overall) == 0 {
		return models.RatingSummary{}
	}
	sum := 0
	for _, r := range overall {
		sum += r
	}
	return models.RatingSummary{
		Average: float64(sum) / float64(len(overall)),
		Count:   len(overall),
	}
}

// RatingAggregator rebuilds a provider's cached rating from its full review set.
type RatingAggregator struct {
	Reviews   reviewRepo.ReviewRepository
	Providers providerRepo.ProviderRepository
	Directory DirectoryInvalidator
}

// Recompute reads every review of providerID and overwrites its rating summary.
// It is idempotent, so retries and the nightly reconciliation can call it freely.
func (a *RatingAggregator) Recompute(ctx context.Context, providerID string) (models.RatingSummary, error) {
	overall, err := a.Reviews.OverallRatings(ctx, providerID)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to read ratings: %w", err)
	}
	summary := ComputeRating(overall)
	if err := a.Providers.SetRating(ctx, providerID, summary); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to store rating: %w", err)
	}
	if a.Directory != nil {
		a.Directory.Invalidate(ctx)
	}
	return summary, nil
}

// RecomputeAll rebuilds the rating of every reviewed provider and returns how many succeeded.
func (a *RatingAggregator) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := a.Reviews.ReviewedProviderIDs(ctx)
	if err != nil {
		return 0, err
	}
	done := 0
	var firstErr error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := a.Recompute(ctx, id); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("provider %s: %w", id, err)
			}
			continue
		}
		done++
	}
	return done, firstErr
}
