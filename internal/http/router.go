package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Everything below needs a valid token.
		secured := api.Group("")
		secured.Use(middleware.Auth([]byte(env.JWTSecret)))

		// Bookings
		bookings := secured.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id/status", h.UpdateBookingStatus)
		bookings.POST("/:id/overall-report", h.SubmitOverallReport)
		bookings.POST("/:id/review", h.CreateReview)
		bookings.PUT("/:id/review", h.UpdateReview)
		bookings.DELETE("/:id/review", h.DeleteReview)

		// Sessions
		sessions := secured.Group("/sessions")
		sessions.PUT("/:id/report", h.SubmitSessionReport)
		sessions.PUT("/:id/attendance", h.SubmitSessionAttendance)

		// Payments
		payments := secured.Group("/payments")
		payments.POST("/:id/proof", h.UploadPaymentProof)
		payments.PUT("/:id/verify", adminOnly, h.VerifyPayment)
		payments.GET("/:id/invoice", h.DownloadPaymentInvoice)

		// Payouts
		payouts := secured.Group("/payouts")
		payouts.POST("/bookings/:bookingId", adminOnly, h.CreatePayout)
		payouts.PUT("/:id", adminOnly, h.UpdatePayout)
		payouts.GET("/:id/receipt", h.DownloadPayoutReceipt)

		// Settings
		settings := secured.Group("/settings", adminOnly)
		settings.GET("/service-fee", h.GetServiceFee)
		settings.PUT("/service-fee", h.SetServiceFee)
	}

	h.SetRouter(r)
	return r
}
