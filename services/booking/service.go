package booking

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request, snapshots the provider's rate and stores a pending booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	provider, err := s.Providers.GetByID(ctx, req.ServiceProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Service provider")
		}
		return nil, utils.NewInternalError("Failed to load service provider", err)
	}
	if !provider.IsAvailable {
		return nil, utils.NewConflictError("Service provider is not accepting bookings")
	}

	now := s.now()
	schedule := req.Schedule
	booking := &models.Booking{
		ID:                  uuid.New().String(),
		CustomerID:          customerID,
		ProviderID:          provider.ID,
		ProviderUserID:      provider.UserID,
		ServiceType:         req.ServiceType,
		Description:         req.Description,
		SpecialInstructions: req.SpecialInstructions,
		Attachments:         req.Attachments,
		Address:             req.Address,
		Schedule:            schedule,
		Pricing: models.Pricing{
			HourlyRate:     provider.HourlyRate,
			EstimatedTotal: EstimateTotal(provider.HourlyRate, schedule.EstimatedHours),
			PaymentStatus:  models.PaymentPending,
		},
		Status: models.StatusPending,
		StatusHistory: []models.StatusHistoryEntry{
			{Status: models.StatusPending, Timestamp: now, Note: "Booking created"},
		},
		Messages:  []models.BookingMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, utils.NewInternalError("Failed to create booking", err)
	}
	if s.Metrics != nil {
		s.Metrics.BookingsCreated.Inc()
	}
	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("customerID", customerID),
		zap.String("providerID", provider.ID),
	)
	return booking, nil
}

// GetBooking returns a booking to either of its parties.
func (s *DefaultBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(userID) {
		return nil, utils.NewAuthorizationError("Not authorized to view this booking")
	}
	return booking, nil
}

func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Booking")
		}
		return nil, utils.NewInternalError("Failed to load booking", err)
	}
	return booking, nil
}
