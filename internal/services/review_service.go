package services

import (
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// ReviewService: one review per completed booking, written and owned by
// the booking's student.
type ReviewService struct {
	ReviewRepo  repositories.ReviewRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return domain.ValidationError{Field: "rating", Msg: "harus 1 sampai 5"}
	}
	return nil
}

func (s ReviewService) Create(rc domain.RequestContext, bookingID int64, rating int, comment string) (models.CourseReview, error) {
	if err := validateRating(rating); err != nil {
		return models.CourseReview{}, err
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.CourseReview{}, err
	}
	if !(rc.IsStudent() && booking.StudentID == rc.UserID) {
		return models.CourseReview{}, domain.ForbiddenError{Msg: "hanya siswa pemilik booking yang bisa memberi ulasan"}
	}
	if booking.Status != models.BookingStatusCompleted {
		return models.CourseReview{}, domain.ConflictError{
			Resource: "review",
			Code:     domain.CodeIllegalTransition,
			Msg:      "ulasan hanya setelah booking COMPLETED",
		}
	}

	if _, exists, err := s.ReviewRepo.GetByBookingID(bookingID); err != nil {
		return models.CourseReview{}, err
	} else if exists {
		return models.CourseReview{}, domain.ConflictError{
			Resource: "review",
			Code:     domain.CodeReviewExists,
			Msg:      "booking ini sudah diulas",
		}
	}

	review := models.CourseReview{
		BookingID: bookingID,
		StudentID: rc.UserID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.ReviewRepo.Insert(&review); err != nil {
		return models.CourseReview{}, err
	}

	utils.LogEvent(s.RequestID, "review", "create",
		fmt.Sprintf("booking_id=%d rating=%d", bookingID, rating))

	rv, _, err := s.ReviewRepo.GetByBookingID(bookingID)
	return rv, err
}

func (s ReviewService) Update(rc domain.RequestContext, bookingID int64, rating int, comment string) (models.CourseReview, error) {
	if err := validateRating(rating); err != nil {
		return models.CourseReview{}, err
	}

	review, exists, err := s.ReviewRepo.GetByBookingID(bookingID)
	if err != nil {
		return models.CourseReview{}, err
	}
	if !exists {
		return models.CourseReview{}, domain.NotFoundError{Resource: "review"}
	}
	if review.StudentID != rc.UserID {
		return models.CourseReview{}, domain.ForbiddenError{Msg: "hanya penulis ulasan yang bisa mengubah"}
	}

	if err := s.ReviewRepo.Update(review.ID, rating, strings.TrimSpace(comment)); err != nil {
		return models.CourseReview{}, err
	}

	rv, _, err := s.ReviewRepo.GetByBookingID(bookingID)
	return rv, err
}

func (s ReviewService) Delete(rc domain.RequestContext, bookingID int64) error {
	review, exists, err := s.ReviewRepo.GetByBookingID(bookingID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundError{Resource: "review"}
	}
	if review.StudentID != rc.UserID {
		return domain.ForbiddenError{Msg: "hanya penulis ulasan yang bisa menghapus"}
	}

	if err := s.ReviewRepo.Delete(review.ID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "review", "delete", fmt.Sprintf("booking_id=%d", bookingID))
	return nil
}
