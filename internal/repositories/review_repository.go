package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r ReviewRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reviewSelect = `
	SELECT id, booking_id, student_id, rating, COALESCE(comment,''), created_at, updated_at
	FROM course_reviews`

func scanReview(row interface{ Scan(...any) error }) (models.CourseReview, error) {
	var rv models.CourseReview
	err := row.Scan(&rv.ID, &rv.BookingID, &rv.StudentID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

func (r ReviewRepository) GetByBookingID(bookingID int64) (models.CourseReview, bool, error) {
	rv, err := scanReview(r.db().QueryRow(reviewSelect+` WHERE booking_id = ? LIMIT 1`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CourseReview{}, false, nil
		}
		return models.CourseReview{}, false, err
	}
	return rv, true, nil
}

func (r ReviewRepository) Insert(rv *models.CourseReview) error {
	res, err := r.db().Exec(`
		INSERT INTO course_reviews (booking_id, student_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		rv.BookingID, rv.StudentID, rv.Rating, rv.Comment,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = id
	return nil
}

func (r ReviewRepository) Update(id int64, rating int, comment string) error {
	res, err := r.db().Exec(`
		UPDATE course_reviews SET rating = ?, comment = ?, updated_at = NOW() WHERE id = ?`,
		rating, comment, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "review"}
	}
	return nil
}

func (r ReviewRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM course_reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "review"}
	}
	return nil
}
