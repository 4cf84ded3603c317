package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/payments/:id/proof
// Multipart form: proof (file).
func UploadPaymentProof(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file bukti pembayaran wajib diunggah", err)
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file bukti pembayaran tidak bisa dibaca", err)
		return
	}
	defer src.Close()

	path, err := fileStore.Save("payment-proofs", fileHeader.Filename, src)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payment, err := paymentService(c).AttachProof(middleware.Actor(c), id, path, fileHeader.Filename)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

type verifyPaymentRequest struct {
	Status string `json:"status"`
}

// PUT /api/payments/:id/verify (admin)
func VerifyPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req verifyPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	payment, err := paymentService(c).Verify(middleware.Actor(c), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GET /api/payments/:id/invoice
func DownloadPaymentInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GeneratePaymentInvoice(middleware.Actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
