package memstore

import (
	"context"
	"strings"
	"time"

	"karigar/database/repository"
	"karigar/models"
)

// UserRepo is the memory implementation of userRepo.UserRepository.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) UpdateProfile(_ context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Email != nil {
		for otherID, other := range r.s.users {
			if otherID != id && strings.EqualFold(other.Email, *req.Email) {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	u.UpdatedAt = time.Now()
	c := *u
	return &c, nil
}
