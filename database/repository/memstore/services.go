package memstore

import (
	"context"
	"sort"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// ServiceRepo is the memory implementation of serviceRepo.ServiceRepository.
type ServiceRepo struct {
	s *Store
}

func (r *ServiceRepo) Create(_ context.Context, service *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *service
	r.s.services[service.ID] = &c
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *svc
	return &c, nil
}

func (r *ServiceRepo) ListByProvider(_ context.Context, providerID string) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Service{}
	for _, svc := range r.s.services {
		if svc.ProviderID == providerID {
			matched = append(matched, *svc)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

func (r *ServiceRepo) Update(_ context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.ServiceType != nil {
		svc.ServiceType = *req.ServiceType
	}
	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.PriceType != nil {
		svc.PriceType = *req.PriceType
	}
	if req.Availability != nil {
		svc.Availability = *req.Availability
	}
	if req.Location != nil {
		svc.Location = *req.Location
	}
	if req.Experience != nil {
		svc.Experience = *req.Experience
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.UpdatedAt = time.Now()
	c := *svc
	return &c, nil
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.services, id)
	return nil
}
