package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type CourseRepository struct {
	DB *sql.DB
}

func (r CourseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CourseRepository) GetByID(id int64) (models.Course, error) {
	if id <= 0 {
		return models.Course{}, domain.ValidationError{Field: "course_id", Msg: "id tidak valid"}
	}

	query := `
		SELECT id, title, teacher_id, price_per_session, COALESCE(status,'')
		FROM courses
		WHERE id = ? LIMIT 1`

	var c models.Course
	err := r.db().QueryRow(query, id).Scan(
		&c.ID,
		&c.Title,
		&c.TeacherID,
		&c.PricePerSession,
		&c.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Course{}, domain.NotFoundError{Resource: "course"}
		}
		return models.Course{}, err
	}
	return c, nil
}
