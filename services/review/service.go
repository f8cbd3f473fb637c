package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"karigar/database/repository"
	bookingRepo "karigar/database/repository/booking"
	providerRepo "karigar/database/repository/provider"
	reviewRepo "karigar/database/repository/review"
	"karigar/models"
	"karigar/monitoring"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxReviewImages      = 5
	MaxCommentLength     = 1000
	DefaultReviewPerPage = 10
)

// ReviewService handles review submission and reads.
type ReviewService interface {
	SubmitReview(ctx context.Context, customerID string, req models.SubmitReviewRequest) (*models.Review, error)
	ListMyReviews(ctx context.Context, customerID string, page models.Page) (models.PageResult[models.Review], error)
	ListProviderReviews(ctx context.Context, providerID string, page models.Page) (models.PageResult[models.Review], error)
	MarkHelpful(ctx context.Context, voterID, reviewID string) (*models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews    reviewRepo.ReviewRepository
	Bookings   bookingRepo.BookingRepository
	Providers  providerRepo.ProviderRepository
	Aggregator *RatingAggregator
	// Queue receives a recompute task when the inline recompute fails. May be nil.
	Queue   tasks.Enqueuer
	Metrics *monitoring.Metrics
}

var _ ReviewService = (*DefaultReviewService)(nil)

// SubmitReview checks, in order, that the booking exists, belongs to the caller, is completed
// and has no review yet. The review and its booking link are stored together; the provider
// rating is then rebuilt on a best-effort basis.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, customerID string, req models.SubmitReviewRequest) (*models.Review, error) {
	if err := validateReview(&req); err != nil {
		return nil, err
	}

	booking, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Booking")
		}
		return nil, utils.NewInternalError("Failed to load booking", err)
	}
	if booking.CustomerID != customerID {
		return nil, utils.NewAuthorizationError("Only the booking customer can review it")
	}
	if booking.Status != models.StatusCompleted {
		return nil, utils.NewInvalidStateError("Only completed bookings can be reviewed")
	}
	if booking.ReviewID != "" {
		return nil, utils.NewConflictError("This booking has already been reviewed")
	}

	now := time.Now().UTC()
	review := &models.Review{
		ID:                uuid.New().String(),
		BookingID:         booking.ID,
		CustomerID:        customerID,
		ServiceProviderID: booking.ProviderID,
		Rating:            req.Rating.WithDefaults(),
		Comment:           req.Comment,
		Images:            req.Images,
		HelpfulVotes:      0,
		IsVerified:        true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Reviews.CreateAndLink(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, utils.NewConflictError("This booking has already been reviewed")
		}
		return nil, utils.NewInternalError("Failed to save review", err)
	}
	if s.Metrics != nil {
		s.Metrics.ReviewsSubmitted.Inc()
	}

	s.refreshRating(ctx, review)
	return review, nil
}

// refreshRating recomputes the provider rating. On failure the review stands and a retry
// task is queued.
func (s *DefaultReviewService) refreshRating(ctx context.Context, review *models.Review) {
	logger := utils.GetLogger()
	_, err := s.Aggregator.Recompute(ctx, review.ServiceProviderID)
	if err == nil {
		return
	}
	logger.Error("Rating recompute failed",
		zap.String("reviewID", review.ID),
		zap.String("providerID", review.ServiceProviderID),
		zap.Error(err),
	)
	if s.Metrics != nil {
		s.Metrics.RatingRecomputeFailures.Inc()
	}
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewRatingRecomputeTask(review.ServiceProviderID)
	if err != nil {
		logger.Error("Failed to build rating recompute task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		logger.Error("Failed to enqueue rating recompute",
			zap.String("providerID", review.ServiceProviderID),
			zap.Error(err),
		)
	}
}

func (s *DefaultReviewService) ListMyReviews(ctx context.Context, customerID string, page models.Page) (models.PageResult[models.Review], error) {
	items, total, err := s.Reviews.ListByCustomer(ctx, customerID, page)
	if err != nil {
		return models.PageResult[models.Review]{}, utils.NewInternalError("Failed to list reviews", err)
	}
	return models.NewPageResult(items, total, page), nil
}

func (s *DefaultReviewService) ListProviderReviews(ctx context.Context, providerID string, page models.Page) (models.PageResult[models.Review], error) {
	if _, err := s.Providers.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PageResult[models.Review]{}, utils.NewNotFoundError("Service provider")
		}
		return models.PageResult[models.Review]{}, utils.NewInternalError("Failed to load service provider", err)
	}
	items, total, err := s.Reviews.ListByProvider(ctx, providerID, page)
	if err != nil {
		return models.PageResult[models.Review]{}, utils.NewInternalError("Failed to list reviews", err)
	}
	return models.NewPageResult(items, total, page), nil
}

// MarkHelpful records one helpful vote per user. Authors cannot vote on their own review.
func (s *DefaultReviewService) MarkHelpful(ctx context.Context, voterID, reviewID string) (*models.Review, error) {
	current, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Review")
		}
		return nil, utils.NewInternalError("Failed to load review", err)
	}
	if current.CustomerID == voterID {
		return nil, utils.NewValidationError("You cannot mark your own review as helpful")
	}

	review, err := s.Reviews.AddHelpfulVote(ctx, reviewID, voterID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NewNotFoundError("Review")
		case errors.Is(err, repository.ErrAlreadyVoted):
			return nil, utils.NewConflictError("You have already marked this review as helpful")
		}
		return nil, utils.NewInternalError("Failed to record vote", err)
	}
	return review, nil
}

func validateReview(req *models.SubmitReviewRequest) error {
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.Comment = strings.TrimSpace(req.Comment)

	if req.BookingID == "" {
		return utils.NewValidationError("bookingId is required")
	}
	if req.Rating.Overall < 1 || req.Rating.Overall > 5 {
		return utils.NewValidationError("rating.overall must be between 1 and 5")
	}
	subs := map[string]int{
		"professionalism": req.Rating.Professionalism,
		"quality":         req.Rating.Quality,
		"punctuality":     req.Rating.Punctuality,
		"communication":   req.Rating.Communication,
	}
	for name, v := range subs {
		if v != 0 && (v < 1 || v > 5) {
			return utils.NewValidationError("rating.%s must be between 1 and 5", name)
		}
	}
	if req.Comment == "" {
		return utils.NewValidationError("comment is required")
	}
	if len([]rune(req.Comment)) > MaxCommentLength {
		return utils.NewValidationError("comment must be at most %d characters", MaxCommentLength)
	}
	if len(req.Images) > MaxReviewImages {
		return utils.NewValidationError("at most %d images are allowed", MaxReviewImages)
	}
	for _, img := range req.Images {
		if strings.TrimSpace(img.URL) == "" {
			return utils.NewValidationError("image url is required")
		}
	}
	return nil
}
