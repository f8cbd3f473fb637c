package bookingRepo

import (
	"context"

	"karigar/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns repository.ErrNotFound when no booking has the id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns one page of bookings matching filter, newest first, and the total match count.
	List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error)
	// ApplyStatusChange moves the booking from change.From to change.To and appends the history entry
	// in one write. It returns repository.ErrStaleBooking if the stored status is no longer change.From.
	ApplyStatusChange(ctx context.Context, id string, change models.StatusChange) (*models.Booking, error)
	// AppendMessage pushes msg onto the thread unless it already holds maxMessages entries,
	// in which case it returns repository.ErrThreadFull.
	AppendMessage(ctx context.Context, id string, msg models.BookingMessage, maxMessages int) (*models.Booking, error)
}
