package models

import "time"

// Booking statuses form the lifecycle machine:
// PENDING -> {CONFIRMED, CANCELLED}; CONFIRMED -> {COMPLETED, CANCELLED}.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

// Allowed number of sessions per booking.
var AllowedSessionCounts = map[int]bool{6: true, 12: true, 24: true}

// Booking is the aggregate for one student's purchase of a course package.
type Booking struct {
	ID               int64      `json:"id"`
	StudentID        int64      `json:"studentId"`
	CourseID         int64      `json:"courseId"`
	Address          string     `json:"address"`
	PaymentMethod    string     `json:"paymentMethod"` // FULL | INSTALLMENT
	InstallmentCount int        `json:"installmentCount,omitempty"`
	SessionCount     int        `json:"sessionCount"`
	Total            int64      `json:"total"`
	Status           string     `json:"status"`
	OverallReport    string     `json:"overallReport,omitempty"`
	FinalGrade       string     `json:"finalGrade,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	// Denormalized for list/detail responses.
	StudentName string `json:"studentName,omitempty"`
	CourseTitle string `json:"courseTitle,omitempty"`
	TeacherID   int64  `json:"teacherId,omitempty"`

	Sessions []Session `json:"sessions,omitempty"`
	Payments []Payment `json:"payments,omitempty"`
}

func (b Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
