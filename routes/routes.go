package routes

import (
	"time"

	"karigar/handlers"
	"karigar/middleware"
	"karigar/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/login", hb.LoginHandler)
		auth.GET("/profile", middleware.JWTAuthMiddleware(), hb.GetProfileHandler)
		auth.PUT("/profile", middleware.JWTAuthMiddleware(), hb.UpdateProfileHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints. Every route requires a token.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	customer := middleware.RequireRole(models.RoleCustomer)
	provider := middleware.RequireRole(models.RoleServiceProvider)

	bookings := api.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("", customer, hb.CreateBookingHandler)
		bookings.GET("/my-bookings", customer, hb.GetMyBookingsHandler)
		bookings.GET("/provider", provider, hb.GetProviderBookingsHandler)
		bookings.GET("/provider/history", provider, hb.GetProviderHistoryHandler)
		bookings.GET("/:id", hb.GetBookingHandler)
		bookings.PUT("/:id/status", customer, hb.UpdateStatusHandler)
		bookings.PUT("/:id/accept", provider, hb.AcceptBookingHandler)
		bookings.PUT("/:id/reject", provider, hb.RejectBookingHandler)
		bookings.PUT("/:id/reschedule", provider, hb.RescheduleBookingHandler)
		bookings.PUT("/:id/start", provider, hb.StartBookingHandler)
		bookings.PUT("/:id/complete", provider, hb.CompleteBookingHandler)
		bookings.POST("/:id/messages", hb.AddMessageHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reviews := api.Group("/reviews")
	reviews.Use(middleware.JWTAuthMiddleware())
	{
		reviews.POST("", middleware.RequireRole(models.RoleCustomer), hb.SubmitReviewHandler)
		reviews.GET("/my-reviews", middleware.RequireRole(models.RoleCustomer), hb.GetMyReviewsHandler)
		reviews.POST("/:id/helpful", hb.MarkReviewHelpfulHandler)
	}
}

// RegisterProviderRoutes registers the public directory and provider profile management.
func RegisterProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	owner := []gin.HandlerFunc{middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleServiceProvider)}

	providers := api.Group("/service-providers")
	{
		providers.GET("", hb.ListProvidersHandler)
		providers.POST("", append(owner, hb.CreateProviderProfileHandler)...)
		providers.GET("/me", append(owner, hb.GetMyProviderProfileHandler)...)
		providers.PATCH("/me", append(owner, hb.UpdateProviderProfileHandler)...)
		providers.GET("/:id", hb.GetProviderHandler)
		providers.GET("/:id/reviews", hb.GetProviderReviewsHandler)
		providers.GET("/:id/availability", hb.GetProviderAvailabilityHandler)
	}
}

// RegisterServiceRoutes registers the provider service catalog. Every route requires a token.
func RegisterServiceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	provider := middleware.RequireRole(models.RoleServiceProvider)

	services := api.Group("/services")
	services.Use(middleware.JWTAuthMiddleware())
	{
		services.POST("", provider, hb.CreateServiceHandler)
		services.GET("/my-services", provider, hb.GetMyServicesHandler)
		services.GET("/:id", hb.GetServiceHandler)
		services.PUT("/:id", provider, hb.UpdateServiceHandler)
		services.DELETE("/:id", provider, hb.DeleteServiceHandler)
	}
}

// RegisterOpsRoutes registers health and metrics at the root.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterReviewRoutes(api, hb)
	RegisterProviderRoutes(api, hb)
	RegisterServiceRoutes(api, hb)
	RegisterOpsRoutes(r, hb)
}
