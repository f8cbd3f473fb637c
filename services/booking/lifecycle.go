package booking

import (
	"context"
	"errors"
	"strings"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

// UpdateStatus applies a customer-requested transition. Only cancellation is open to customers;
// any other target, unknown statuses included, is an invalid transition from the current status.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, customerID, bookingID string, req models.StatusUpdateRequest) (*models.Booking, error) {
	if strings.TrimSpace(string(req.Status)) == "" {
		return nil, utils.NewValidationError("status is required")
	}
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, utils.NewAuthorizationError("Only the booking customer can update its status")
	}

	reason := strings.TrimSpace(req.CancellationReason)
	change := models.StatusChange{To: req.Status}
	if req.Status == models.StatusCancelled {
		change.CancellationReason = reason
		change.Note = reason
	}

	updated, err := s.transition(ctx, booking, models.ActorCustomer, change)
	if err != nil {
		return nil, err
	}
	if updated.Status == models.StatusCancelled {
		s.bumpJobs(ctx, updated, 0, 1)
	}
	return updated, nil
}

func (s *DefaultBookingService) AcceptBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
	booking, err := s.loadForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, models.ActorProvider, models.StatusChange{To: models.StatusAccepted})
}

// RejectBooking declines a pending booking. A non-blank reason is required.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, providerUserID, bookingID, reason string) (*models.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, utils.NewValidationError("rejection reason is required")
	}
	booking, err := s.loadForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, models.ActorProvider, models.StatusChange{
		To:              models.StatusRejected,
		RejectionReason: reason,
		Note:            reason,
	})
}

// RescheduleBooking proposes a new date and window. The original schedule is kept as requested.
func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, providerUserID, bookingID string, req models.RescheduleRequest) (*models.Booking, error) {
	if req.ScheduledDate == "" || req.TimeSlot.Start == "" || req.TimeSlot.End == "" {
		return nil, utils.NewValidationError("scheduledDate and timeSlot are required")
	}
	if err := validateSchedule(req.ScheduledDate, req.TimeSlot); err != nil {
		return nil, err
	}
	booking, err := s.loadForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}
	slot := req.TimeSlot
	return s.transition(ctx, booking, models.ActorProvider, models.StatusChange{
		To:                  models.StatusRescheduled,
		RescheduledDate:     req.ScheduledDate,
		RescheduledTimeSlot: &slot,
	})
}

func (s *DefaultBookingService) StartBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
	booking, err := s.loadForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, models.ActorProvider, models.StatusChange{To: models.StatusInProgress})
}

func (s *DefaultBookingService) CompleteBooking(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
	booking, err := s.loadForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}
	completedAt := s.now()
	updated, err := s.transition(ctx, booking, models.ActorProvider, models.StatusChange{
		To:          models.StatusCompleted,
		CompletedAt: &completedAt,
	})
	if err != nil {
		return nil, err
	}
	s.bumpJobs(ctx, updated, 1, 0)
	return updated, nil
}

func (s *DefaultBookingService) loadForProvider(ctx context.Context, providerUserID, bookingID string) (*models.Booking, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderUserID != providerUserID {
		return nil, utils.NewAuthorizationError("Only the assigned provider can perform this action")
	}
	return booking, nil
}

// transition checks the move against the state machine and persists it with its history entry
// in a single conditional write.
func (s *DefaultBookingService) transition(ctx context.Context, booking *models.Booking, actor models.Actor, change models.StatusChange) (*models.Booking, error) {
	change.From = booking.Status
	if err := booking.Status.Transition(actor, change.To); err != nil {
		return nil, utils.NewInvalidTransitionError(string(change.From), string(change.To))
	}
	change.At = s.now()

	updated, err := s.Bookings.ApplyStatusChange(ctx, booking.ID, change)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrStaleBooking):
		current, loadErr := s.load(ctx, booking.ID)
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, utils.NewInvalidTransitionError(string(current.Status), string(change.To))
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewNotFoundError("Booking")
	default:
		return nil, utils.NewInternalError("Failed to update booking status", err)
	}

	if s.Metrics != nil {
		s.Metrics.RecordTransition(string(change.From), string(change.To))
	}
	utils.GetLogger().Info("Booking status changed",
		zap.String("bookingID", booking.ID),
		zap.String("actor", string(actor)),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
	)
	return updated, nil
}

// bumpJobs updates the provider's job counters. Failures are logged and do not affect the booking.
func (s *DefaultBookingService) bumpJobs(ctx context.Context, booking *models.Booking, completed, cancelled int) {
	if err := s.Providers.IncrementJobs(ctx, booking.ProviderID, completed, cancelled); err != nil {
		utils.GetLogger().Warn("Failed to update provider job totals",
			zap.String("bookingID", booking.ID),
			zap.String("providerID", booking.ProviderID),
			zap.Error(err),
		)
	}
}
