package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func reviewService(c *gin.Context) services.ReviewService {
	return services.ReviewService{RequestID: middleware.GetRequestID(c)}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/bookings/:id/review
func CreateReview(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	review, err := reviewService(c).Create(middleware.Actor(c), bookingID, req.Rating, req.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// PUT /api/bookings/:id/review
func UpdateReview(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	review, err := reviewService(c).Update(middleware.Actor(c), bookingID, req.Rating, req.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DELETE /api/bookings/:id/review
func DeleteReview(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := reviewService(c).Delete(middleware.Actor(c), bookingID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ulasan dihapus"})
}
