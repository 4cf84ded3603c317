package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func payoutService(c *gin.Context) services.PayoutService {
	return services.PayoutService{
		RequestID:         middleware.GetRequestID(c),
		DefaultFeePercent: defaultFee,
	}
}

// POST /api/payouts/bookings/:bookingId (admin)
func CreatePayout(c *gin.Context) {
	bookingID, ok := paramID(c, "bookingId")
	if !ok {
		return
	}

	payout, err := payoutService(c).CreateForBooking(middleware.Actor(c), bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payout)
}

// PUT /api/payouts/:id (admin)
func UpdatePayout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.PayoutUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	payout, err := payoutService(c).AdminUpdate(middleware.Actor(c), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payout)
}

// GET /api/payouts/:id/receipt
func DownloadPayoutReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GeneratePayoutReceipt(middleware.Actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/settings/service-fee (admin)
func GetServiceFee(c *gin.Context) {
	fee, err := payoutService(c).ServiceFee()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceFeePercent": fee})
}

type serviceFeeRequest struct {
	ServiceFeePercent float64 `json:"serviceFeePercent"`
}

// PUT /api/settings/service-fee (admin)
func SetServiceFee(c *gin.Context) {
	var req serviceFeeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := payoutService(c).SetServiceFee(middleware.Actor(c), req.ServiceFeePercent); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceFeePercent": req.ServiceFeePercent})
}
