package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ProviderRepo is the memory implementation of providerRepo.ProviderRepository.
type ProviderRepo struct {
	s *Store
}

func (r *ProviderRepo) Create(_ context.Context, provider *models.ServiceProvider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.providers {
		if p.UserID == provider.UserID {
			return repository.ErrDuplicateProfile
		}
	}
	r.s.providers[provider.ID] = cloneProvider(provider)
	return nil
}

func (r *ProviderRepo) GetByID(_ context.Context, id string) (*models.ServiceProvider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProvider(p), nil
}

func (r *ProviderRepo) GetByUserID(_ context.Context, userID string) (*models.ServiceProvider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.providers {
		if p.UserID == userID {
			return cloneProvider(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProviderRepo) Update(_ context.Context, id string, req models.UpdateProviderRequest) (*models.ServiceProvider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Skills != nil {
		p.Skills = append([]string(nil), (*req.Skills)...)
	}
	if req.Experience != nil {
		p.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		p.HourlyRate = *req.HourlyRate
	}
	if req.DailyRate != nil {
		p.DailyRate = *req.DailyRate
	}
	if req.MinBookingHours != nil {
		p.MinBookingHours = *req.MinBookingHours
	}
	if req.Availability != nil {
		p.Availability = *req.Availability
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	p.UpdatedAt = time.Now()
	return cloneProvider(p), nil
}

func (r *ProviderRepo) SetRating(_ context.Context, id string, rating models.RatingSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Rating = rating
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProviderRepo) IncrementJobs(_ context.Context, id string, completed, cancelled int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.TotalJobs.Completed += completed
	p.TotalJobs.Cancelled += cancelled
	return nil
}

func (r *ProviderRepo) Search(_ context.Context, q models.DirectoryQuery) ([]models.ServiceProvider, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	city := strings.ToLower(q.City)
	var matched []models.ServiceProvider
	for _, p := range r.s.providers {
		if !p.IsAvailable {
			continue
		}
		if q.ServiceType != "" && p.ServiceType != q.ServiceType {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(p.Location.City), city) {
			continue
		}
		if q.MinRating > 0 && p.Rating.Average < q.MinRating {
			continue
		}
		c := cloneProvider(p)
		c.Documents = nil
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return directoryLess(q.SortBy, &matched[i], &matched[j])
	})
	return paginate(matched, models.Page{Page: q.Page, Limit: q.Limit}), int64(len(matched)), nil
}

// directoryLess mirrors providerRepo.DirectorySort.
func directoryLess(sortBy string, a, b *models.ServiceProvider) bool {
	switch sortBy {
	case models.SortByRating:
		if a.Rating.Average != b.Rating.Average {
			return a.Rating.Average > b.Rating.Average
		}
	case models.SortByPrice:
		if a.HourlyRate != b.HourlyRate {
			return a.HourlyRate < b.HourlyRate
		}
	case models.SortByExperience:
		if a.Experience != b.Experience {
			return a.Experience > b.Experience
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}
