package providerRepo

import (
	"context"

	"karigar/models"
)

// ProviderRepository defines methods for service provider data access.
type ProviderRepository interface {
	// Create inserts a profile. It returns repository.ErrDuplicateProfile if the user already owns one.
	Create(ctx context.Context, provider *models.ServiceProvider) error
	// GetByID returns repository.ErrNotFound when no provider has the id.
	GetByID(ctx context.Context, id string) (*models.ServiceProvider, error)
	// GetByUserID returns the profile owned by a user.
	GetByUserID(ctx context.Context, userID string) (*models.ServiceProvider, error)
	// Update applies the non-nil fields of req.
	Update(ctx context.Context, id string, req models.UpdateProviderRequest) (*models.ServiceProvider, error)
	// SetRating overwrites the cached rating summary.
	SetRating(ctx context.Context, id string, rating models.RatingSummary) error
	// IncrementJobs adds to the completed/cancelled job counters.
	IncrementJobs(ctx context.Context, id string, completed, cancelled int) error
	// Search returns one page of available providers matching q and the total match count.
	Search(ctx context.Context, q models.DirectoryQuery) ([]models.ServiceProvider, int64, error)
}
