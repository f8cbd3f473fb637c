package booking

import (
	"context"

	"karigar/models"
	"karigar/utils"
)

// HistoryStatuses are the statuses shown in a provider's job history.
var HistoryStatuses = []models.BookingStatus{models.StatusCompleted, models.StatusCancelled}

func (s *DefaultBookingService) ListCustomerBookings(ctx context.Context, customerID string, statuses []models.BookingStatus, page models.Page) (models.PageResult[models.Booking], error) {
	return s.list(ctx, models.BookingFilter{CustomerID: customerID, Statuses: statuses}, page)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerUserID string, statuses []models.BookingStatus, page models.Page) (models.PageResult[models.Booking], error) {
	return s.list(ctx, models.BookingFilter{ProviderUserID: providerUserID, Statuses: statuses}, page)
}

func (s *DefaultBookingService) ProviderHistory(ctx context.Context, providerUserID string, page models.Page) (models.PageResult[models.Booking], error) {
	return s.list(ctx, models.BookingFilter{ProviderUserID: providerUserID, Statuses: HistoryStatuses}, page)
}

func (s *DefaultBookingService) list(ctx context.Context, filter models.BookingFilter, page models.Page) (models.PageResult[models.Booking], error) {
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return models.PageResult[models.Booking]{}, utils.NewValidationError("unknown status %q", st)
		}
	}
	items, total, err := s.Bookings.List(ctx, filter, page)
	if err != nil {
		return models.PageResult[models.Booking]{}, utils.NewInternalError("Failed to list bookings", err)
	}
	return models.NewPageResult(items, total, page), nil
}
