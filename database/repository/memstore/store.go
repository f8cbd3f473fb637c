// Package memstore keeps every collection in process memory. It backs the test
// suites and the "memory" storage driver.
package memstore

import (
	"sync"

	bookingRepo "karigar/database/repository/booking"
	providerRepo "karigar/database/repository/provider"
	reviewRepo "karigar/database/repository/review"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
	"karigar/models"
)

var (
	_ bookingRepo.BookingRepository   = (*BookingRepo)(nil)
	_ reviewRepo.ReviewRepository     = (*ReviewRepo)(nil)
	_ providerRepo.ProviderRepository = (*ProviderRepo)(nil)
	_ userRepo.UserRepository         = (*UserRepo)(nil)
	_ serviceRepo.ServiceRepository   = (*ServiceRepo)(nil)
)

// Store is the shared state behind the memory repositories. One mutex covers all
// collections so cross-collection writes are atomic.
type Store struct {
	mu        sync.RWMutex
	bookings  map[string]*models.Booking
	reviews   map[string]*models.Review
	providers map[string]*models.ServiceProvider
	users     map[string]*models.User
	services  map[string]*models.Service
}

// New returns an empty store.
func New() *Store {
	return &Store{
		bookings:  make(map[string]*models.Booking),
		reviews:   make(map[string]*models.Review),
		providers: make(map[string]*models.ServiceProvider),
		users:     make(map[string]*models.User),
		services:  make(map[string]*models.Service),
	}
}

func (s *Store) Bookings() *BookingRepo   { return &BookingRepo{s: s} }
func (s *Store) Reviews() *ReviewRepo     { return &ReviewRepo{s: s} }
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Services() *ServiceRepo   { return &ServiceRepo{s: s} }

func paginate[T any](items []T, page models.Page) []T {
	skip := page.Skip()
	if skip < 0 || skip >= int64(len(items)) {
		return []T{}
	}
	start := int(skip)
	end := len(items)
	if page.Limit > 0 && page.Limit < end-start {
		end = start + page.Limit
	}
	return items[start:end]
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	c.Attachments = cloneSlice(b.Attachments)
	c.StatusHistory = cloneSlice(b.StatusHistory)
	c.Messages = cloneSlice(b.Messages)
	if b.Address.Coordinates != nil {
		coords := *b.Address.Coordinates
		c.Address.Coordinates = &coords
	}
	if b.RescheduledTimeSlot != nil {
		ts := *b.RescheduledTimeSlot
		c.RescheduledTimeSlot = &ts
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	if b.Review != nil {
		r := *b.Review
		c.Review = &r
	}
	return &c
}

func cloneReview(r *models.Review) *models.Review {
	c := *r
	c.Images = cloneSlice(r.Images)
	c.HelpfulVoters = cloneSlice(r.HelpfulVoters)
	return &c
}

func cloneProvider(p *models.ServiceProvider) *models.ServiceProvider {
	c := *p
	c.Skills = cloneSlice(p.Skills)
	c.Images = cloneSlice(p.Images)
	c.Documents = cloneSlice(p.Documents)
	if p.Location.Coordinates != nil {
		coords := *p.Location.Coordinates
		c.Location.Coordinates = &coords
	}
	return &c
}
