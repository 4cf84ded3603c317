package models

import "time"

// CourseReview is the student's rating for one completed booking.
// At most one per booking; rating/comment stay editable by the author.
type CourseReview struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	StudentID int64     `json:"studentId"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
