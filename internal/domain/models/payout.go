package models

import "time"

const (
	PayoutStatusPendingPayment = "PENDING_PAYMENT"
	PayoutStatusProcessing     = "PROCESSING"
	PayoutStatusPaid           = "PAID"
	PayoutStatusFailed         = "FAILED"
	PayoutStatusCancelled      = "CANCELLED"
)

// TeacherPayout holds the frozen honorarium for one completed booking.
// Amounts are snapshots taken at creation and never recomputed.
type TeacherPayout struct {
	ID             int64      `json:"id"`
	BookingID      int64      `json:"bookingId"`
	TeacherID      int64      `json:"teacherId"`
	CoursePrice    int64      `json:"coursePrice"`
	FeePercent     float64    `json:"feePercent"`
	FeeAmount      int64      `json:"feeAmount"`
	Honorarium     int64      `json:"honorarium"`
	Status         string     `json:"status"`
	PayoutDate     *time.Time `json:"payoutDate,omitempty"`
	TransactionRef string     `json:"transactionRef,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	ProofFile      string     `json:"proofFile,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PayoutUpdate supports PATCH-style updates via key presence.
type PayoutUpdate struct {
	Status         string     `json:"status"`
	PayoutDate     *time.Time `json:"payoutDate"`
	TransactionRef *string    `json:"transactionRef"`
	Notes          *string    `json:"notes"`
	ProofFile      *string    `json:"proofFile"`
}
