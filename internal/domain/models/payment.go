package models

import "time"

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// Payment is one installment of a booking's payment plan. Created once at
// booking time; only status and proof fields mutate afterwards.
type Payment struct {
	ID                int64      `json:"id"`
	BookingID         int64      `json:"bookingId"`
	InstallmentNumber int64      `json:"installmentNumber"`
	Amount            int64      `json:"amount"`
	Status            string     `json:"status"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	ProofFile         string     `json:"proofFile,omitempty"`
	ProofFileName     string     `json:"proofFileName,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
