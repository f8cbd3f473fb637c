package memstore

import (
	"context"
	"sort"

	"karigar/database/repository"
	"karigar/models"
)

// BookingRepo is the memory implementation of bookingRepo.BookingRepository.
type BookingRepo struct {
	s *Store
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) List(_ context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []models.Booking
	for _, b := range r.s.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderUserID != "" && b.ProviderUserID != filter.ProviderUserID {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, b.Status) {
			continue
		}
		c := cloneBooking(b)
		c.Messages = nil
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, page), int64(len(matched)), nil
}

func hasStatus(statuses []models.BookingStatus, s models.BookingStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func (r *BookingRepo) ApplyStatusChange(_ context.Context, id string, change models.StatusChange) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if b.Status != change.From {
		return nil, repository.ErrStaleBooking
	}
	b.Apply(change)
	return cloneBooking(b), nil
}

func (r *BookingRepo) AppendMessage(_ context.Context, id string, msg models.BookingMessage, maxMessages int) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if len(b.Messages) >= maxMessages {
		return nil, repository.ErrThreadFull
	}
	b.Messages = append(b.Messages, msg)
	b.UpdatedAt = msg.Timestamp
	return cloneBooking(b), nil
}
