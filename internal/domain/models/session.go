package models

import "time"

const (
	SessionStatusScheduled = "SCHEDULED"
	SessionStatusCompleted = "COMPLETED"
)

// Session is one scheduled occurrence of a course within a booking.
// IsUnlocked is a one-way gate: set when the matching payment stage is
// settled, never cleared again.
type Session struct {
	ID              int64      `json:"id"`
	BookingID       int64      `json:"bookingId"`
	SessionNumber   int        `json:"sessionNumber"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	Status          string     `json:"status"`
	IsUnlocked      bool       `json:"isUnlocked"`
	TeacherReport   string     `json:"teacherReport,omitempty"`
	AttachmentFile  string     `json:"attachmentFile,omitempty"`
	StudentAttended *bool      `json:"studentAttended,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SessionReportInput is the teacher-side mutation for one session.
type SessionReportInput struct {
	Report         string `json:"report"`
	Attendance     *bool  `json:"attendance"`
	Status         string `json:"status"`
	AttachmentFile string `json:"attachmentFile"`
}
