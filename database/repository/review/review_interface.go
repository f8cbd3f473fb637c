package reviewRepo

import (
	"context"

	"karigar/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// CreateAndLink stores review and links it to its booking atomically. It returns
	// repository.ErrDuplicateReview if the booking already has a review.
	CreateAndLink(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// ListByProvider returns one page of reviews for a provider, newest first.
	ListByProvider(ctx context.Context, providerID string, page models.Page) ([]models.Review, int64, error)
	// ListByCustomer returns one page of reviews written by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string, page models.Page) ([]models.Review, int64, error)
	// OverallRatings returns the overall score of every review of a provider.
	OverallRatings(ctx context.Context, providerID string) ([]int, error)
	// ReviewedProviderIDs returns every provider with at least one review.
	ReviewedProviderIDs(ctx context.Context) ([]string, error)
	// AddHelpfulVote records voterID's helpful vote once. A repeat vote returns
	// repository.ErrAlreadyVoted.
	AddHelpfulVote(ctx context.Context, id, voterID string) (*models.Review, error)
}
