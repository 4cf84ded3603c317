package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelect = `
	SELECT b.id, b.student_id, b.course_id, COALESCE(b.address,''),
	       b.payment_method, COALESCE(b.installment_count,0),
	       b.session_count, b.total, b.status,
	       COALESCE(b.overall_report,''), COALESCE(b.final_grade,''),
	       b.completed_at, b.created_at, b.updated_at,
	       u.name, c.title, c.teacher_id
	FROM bookings b
	JOIN users u ON u.id = b.student_id
	JOIN courses c ON c.id = b.course_id`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.StudentID,
		&b.CourseID,
		&b.Address,
		&b.PaymentMethod,
		&b.InstallmentCount,
		&b.SessionCount,
		&b.Total,
		&b.Status,
		&b.OverallReport,
		&b.FinalGrade,
		&b.CompletedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.StudentName,
		&b.CourseTitle,
		&b.TeacherID,
	)
	return b, err
}

// InsertTx writes the booking row inside the creation transaction.
func (r BookingRepository) InsertTx(tx *sql.Tx, b *models.Booking) error {
	res, err := tx.Exec(`
		INSERT INTO bookings
			(student_id, course_id, address, payment_method, installment_count,
			 session_count, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.StudentID,
		b.CourseID,
		b.Address,
		b.PaymentMethod,
		b.InstallmentCount,
		b.SessionCount,
		b.Total,
		b.Status,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	b, err := scanBooking(r.db().QueryRow(bookingSelect+` WHERE b.id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// GetForUpdateTx re-reads the booking with a row lock so concurrent status
// transitions against the same aggregate serialize.
func (r BookingRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Booking, error) {
	b, err := scanBooking(tx.QueryRow(bookingSelect+` WHERE b.id = ? LIMIT 1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ListForActor scopes the listing by role: students see their own bookings,
// teachers see bookings against their courses, admins see everything.
// Search matches booking id, student name, or course title.
func (r BookingRepository) ListForActor(rc domain.RequestContext, search string) ([]models.Booking, error) {
	query := bookingSelect
	where := []string{}
	args := []any{}

	switch rc.Role {
	case domain.RoleStudent:
		where = append(where, "b.student_id = ?")
		args = append(args, rc.UserID)
	case domain.RoleTeacher:
		where = append(where, "c.teacher_id = ?")
		args = append(args, rc.UserID)
	case domain.RoleAdmin:
		// no scoping
	default:
		return nil, domain.ForbiddenError{Msg: "role tidak dikenal"}
	}

	if s := strings.TrimSpace(search); s != "" {
		where = append(where, "(CAST(b.id AS CHAR) LIKE ? OR u.name LIKE ? OR c.title LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like, like)
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) UpdateStatusTx(tx *sql.Tx, id int64, status string) error {
	res, err := tx.Exec(`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// CompleteTx stores the overall report and moves the booking to COMPLETED.
// The completion date is stamped only on the first transition.
func (r BookingRepository) CompleteTx(tx *sql.Tx, id int64, report, finalGrade string) error {
	_, err := tx.Exec(`
		UPDATE bookings
		SET status = ?, overall_report = ?, final_grade = ?,
		    completed_at = COALESCE(completed_at, NOW()), updated_at = NOW()
		WHERE id = ?`,
		models.BookingStatusCompleted, report, finalGrade, id,
	)
	return err
}
