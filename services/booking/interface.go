package booking

import (
	"context"
	"time"

	bookingRepo "karigar/database/repository/booking"
	providerRepo "karigar/database/repository/provider"
	"karigar/models"
	"karigar/monitoring"
)

const (
	MaxDescriptionLength = 500
	MaxAttachments       = 5
	MaxMessageLength     = 1000
	MaxThreadMessages    = 500
)

// BookingService owns every state change of a booking.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string, statuses []models.BookingStatus, page models.Page) (models.PageResult[models.Booking], error)
	ListProviderBookings(ctx context.Context, providerUserID string, statuses []models.BookingStatus, page models.Page) (models.PageResult[models.Booking], error)
	ProviderHistory(ctx context.Context, providerUserID string, page models.Page) (models.PageResult[models.Booking], error)

	// UpdateStatus is the customer-side transition.
	UpdateStatus(ctx context.Context, customerID, bookingID string, req models.StatusUpdateRequest) (*models.Booking, error)

	AcceptBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)
	RejectBooking(ctx context.Context, providerUserID, bookingID, reason string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, providerUserID, bookingID string, req models.RescheduleRequest) (*models.Booking, error)
	StartBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error)

	AddMessage(ctx context.Context, userID, bookingID, text string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Metrics   *monitoring.Metrics
	// Now is overridable in tests.
	Now func() time.Time
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	metrics *monitoring.Metrics,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Providers: providers,
		Metrics:   metrics,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

var _ BookingService = (*DefaultBookingService)(nil)
