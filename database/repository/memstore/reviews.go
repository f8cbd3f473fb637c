package memstore

import (
	"context"
	"sort"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ReviewRepo is the memory implementation of reviewRepo.ReviewRepository.
type ReviewRepo struct {
	s *Store
}

func (r *ReviewRepo) CreateAndLink(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.BookingID == review.BookingID {
			return repository.ErrDuplicateReview
		}
	}
	b, ok := r.s.bookings[review.BookingID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.ReviewID != "" || b.Status != models.StatusCompleted {
		return repository.ErrDuplicateReview
	}

	r.s.reviews[review.ID] = cloneReview(review)
	summary := review.Summary()
	b.ReviewID = review.ID
	b.Review = &summary
	b.UpdatedAt = review.CreatedAt
	return nil
}

func (r *ReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneReview(rv), nil
}

func (r *ReviewRepo) ListByProvider(_ context.Context, providerID string, page models.Page) ([]models.Review, int64, error) {
	return r.list(func(rv *models.Review) bool { return rv.ServiceProviderID == providerID }, page)
}

func (r *ReviewRepo) ListByCustomer(_ context.Context, customerID string, page models.Page) ([]models.Review, int64, error) {
	return r.list(func(rv *models.Review) bool { return rv.CustomerID == customerID }, page)
}

func (r *ReviewRepo) list(match func(*models.Review) bool, page models.Page) ([]models.Review, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []models.Review
	for _, rv := range r.s.reviews {
		if match(rv) {
			matched = append(matched, *cloneReview(rv))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *ReviewRepo) OverallRatings(_ context.Context, providerID string) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ratings []int
	for _, rv := range r.s.reviews {
		if rv.ServiceProviderID == providerID {
			ratings = append(ratings, rv.Rating.Overall)
		}
	}
	return ratings, nil
}

func (r *ReviewRepo) ReviewedProviderIDs(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for _, rv := range r.s.reviews {
		if !seen[rv.ServiceProviderID] {
			seen[rv.ServiceProviderID] = true
			ids = append(ids, rv.ServiceProviderID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ReviewRepo) AddHelpfulVote(_ context.Context, id, voterID string) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, v := range rv.HelpfulVoters {
		if v == voterID {
			return nil, repository.ErrAlreadyVoted
		}
	}
	rv.HelpfulVoters = append(rv.HelpfulVoters, voterID)
	rv.HelpfulVotes++
	rv.UpdatedAt = time.Now()
	return cloneReview(rv), nil
}
