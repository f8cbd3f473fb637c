package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler      gin.HandlerFunc
	LoginHandler         gin.HandlerFunc
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler       gin.HandlerFunc
	GetMyBookingsHandler       gin.HandlerFunc
	GetProviderBookingsHandler gin.HandlerFunc
	GetProviderHistoryHandler  gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	UpdateStatusHandler        gin.HandlerFunc
	AcceptBookingHandler       gin.HandlerFunc
	RejectBookingHandler       gin.HandlerFunc
	RescheduleBookingHandler   gin.HandlerFunc
	StartBookingHandler        gin.HandlerFunc
	CompleteBookingHandler     gin.HandlerFunc
	AddMessageHandler          gin.HandlerFunc

	// Review endpoints
	SubmitReviewHandler       gin.HandlerFunc
	GetMyReviewsHandler       gin.HandlerFunc
	GetProviderReviewsHandler gin.HandlerFunc
	MarkReviewHelpfulHandler  gin.HandlerFunc

	// Service provider endpoints
	ListProvidersHandler           gin.HandlerFunc
	GetProviderHandler             gin.HandlerFunc
	GetProviderAvailabilityHandler gin.HandlerFunc
	GetMyProviderProfileHandler    gin.HandlerFunc
	CreateProviderProfileHandler   gin.HandlerFunc
	UpdateProviderProfileHandler   gin.HandlerFunc

	// Catalog endpoints
	CreateServiceHandler gin.HandlerFunc
	GetMyServicesHandler gin.HandlerFunc
	GetServiceHandler    gin.HandlerFunc
	UpdateServiceHandler gin.HandlerFunc
	DeleteServiceHandler gin.HandlerFunc

	// Ops endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler group into a bundle.
func NewHandlerBundle(auth *AuthHandler, bookings *BookingHandler, reviews *ReviewHandler, providers *ProviderHandler, services *ServiceHandler, health gin.HandlerFunc, metrics gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		RegisterHandler:      auth.RegisterHandler,
		LoginHandler:         auth.LoginHandler,
		GetProfileHandler:    auth.GetProfileHandler,
		UpdateProfileHandler: auth.UpdateProfileHandler,

		CreateBookingHandler:       bookings.CreateBookingHandler,
		GetMyBookingsHandler:       bookings.GetMyBookingsHandler,
		GetProviderBookingsHandler: bookings.GetProviderBookingsHandler,
		GetProviderHistoryHandler:  bookings.GetProviderHistoryHandler,
		GetBookingHandler:          bookings.GetBookingHandler,
		UpdateStatusHandler:        bookings.UpdateStatusHandler,
		AcceptBookingHandler:       bookings.AcceptBookingHandler,
		RejectBookingHandler:       bookings.RejectBookingHandler,
		RescheduleBookingHandler:   bookings.RescheduleBookingHandler,
		StartBookingHandler:        bookings.StartBookingHandler,
		CompleteBookingHandler:     bookings.CompleteBookingHandler,
		AddMessageHandler:          bookings.AddMessageHandler,

		SubmitReviewHandler:       reviews.SubmitReviewHandler,
		GetMyReviewsHandler:       reviews.GetMyReviewsHandler,
		GetProviderReviewsHandler: reviews.GetProviderReviewsHandler,
		MarkReviewHelpfulHandler:  reviews.MarkReviewHelpfulHandler,

		ListProvidersHandler:           providers.ListProvidersHandler,
		GetProviderHandler:             providers.GetProviderHandler,
		GetProviderAvailabilityHandler: providers.GetProviderAvailabilityHandler,
		GetMyProviderProfileHandler:    providers.GetMyProfileHandler,
		CreateProviderProfileHandler:   providers.CreateProfileHandler,
		UpdateProviderProfileHandler:   providers.UpdateProfileHandler,

		CreateServiceHandler: services.CreateServiceHandler,
		GetMyServicesHandler: services.GetMyServicesHandler,
		GetServiceHandler:    services.GetServiceHandler,
		UpdateServiceHandler: services.UpdateServiceHandler,
		DeleteServiceHandler: services.DeleteServiceHandler,

		HealthHandler:  health,
		MetricsHandler: metrics,
	}
}
