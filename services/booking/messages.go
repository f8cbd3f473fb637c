package booking

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"
)

// AddMessage appends to the booking thread. Either party may post in any status,
// including after the booking has ended.
func (s *DefaultBookingService) AddMessage(ctx context.Context, userID, bookingID, text string) (*models.Booking, error) {
	text, err := validateMessage(text)
	if err != nil {
		return nil, err
	}
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	sender, ok := booking.SenderFor(userID)
	if !ok {
		return nil, utils.NewAuthorizationError("Not authorized to message on this booking")
	}

	msg := models.BookingMessage{
		Sender:    sender,
		SenderID:  userID,
		Text:      text,
		Timestamp: s.now(),
	}
	updated, err := s.Bookings.AppendMessage(ctx, booking.ID, msg, MaxThreadMessages)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrThreadFull):
		return nil, utils.NewConflictError("Message thread is full")
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewNotFoundError("Booking")
	default:
		return nil, utils.NewInternalError("Failed to add message", err)
	}

	if s.Metrics != nil {
		s.Metrics.MessagesPosted.Inc()
	}
	return updated, nil
}
