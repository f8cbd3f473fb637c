package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/models"
	"karigar/services/review"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxReviewsPerPage = 50

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(service review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: service}
}

// SubmitReviewHandler handles POST /reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var req models.SubmitReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)
	rv, err := h.Service.SubmitReview(c.Request.Context(), userID, req)
	if err != nil {
		utils.GetLogger().Info("Review refused",
			zap.String("bookingID", req.BookingID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Review submitted successfully", "review": rv})
}

// GetMyReviewsHandler handles GET /reviews/my-reviews.
func (h *ReviewHandler) GetMyReviewsHandler(c *gin.Context) {
	page := utils.ParsePage(c, review.DefaultReviewPerPage, maxReviewsPerPage)
	result, err := h.Service.ListMyReviews(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("reviews", result))
}

// GetProviderReviewsHandler handles GET /service-providers/:id/reviews.
func (h *ReviewHandler) GetProviderReviewsHandler(c *gin.Context) {
	page := utils.ParsePage(c, review.DefaultReviewPerPage, maxReviewsPerPage)
	result, err := h.Service.ListProviderReviews(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("reviews", result))
}

// MarkReviewHelpfulHandler handles POST /reviews/:id/helpful.
func (h *ReviewHandler) MarkReviewHelpfulHandler(c *gin.Context) {
	rv, err := h.Service.MarkHelpful(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "helpfulVotes": rv.HelpfulVotes})
}
