package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return 0, false
	}
	return id, true
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req services.CreateBookingInput
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).CreateBooking(middleware.Actor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings?search=
func ListBookings(c *gin.Context) {
	bookings, err := bookingService(c).List(middleware.Actor(c), c.Query("search"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booking, err := bookingService(c).Get(middleware.Actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateBookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).UpdateStatus(middleware.Actor(c), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type overallReportRequest struct {
	Report     string `json:"report"`
	FinalGrade string `json:"finalGrade"`
}

// POST /api/bookings/:id/overall-report
func SubmitOverallReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req overallReportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).SubmitOverallReport(middleware.Actor(c), id, req.Report, req.FinalGrade)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
