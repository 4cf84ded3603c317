package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type SessionRepository struct {
	DB *sql.DB
}

func (r SessionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const sessionSelect = `
	SELECT id, booking_id, session_number, scheduled_at, status, is_unlocked,
	       COALESCE(teacher_report,''), COALESCE(attachment_file,''),
	       student_attended, completed_at, created_at, updated_at
	FROM sessions`

func scanSession(row interface{ Scan(...any) error }) (models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID,
		&s.BookingID,
		&s.SessionNumber,
		&s.ScheduledAt,
		&s.Status,
		&s.IsUnlocked,
		&s.TeacherReport,
		&s.AttachmentFile,
		&s.StudentAttended,
		&s.CompletedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// InsertBatchTx writes the full ordered session set of a new booking.
func (r SessionRepository) InsertBatchTx(tx *sql.Tx, bookingID int64, times []time.Time) error {
	for i, at := range times {
		_, err := tx.Exec(`
			INSERT INTO sessions
				(booking_id, session_number, scheduled_at, status, is_unlocked, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
			bookingID, i+1, at, models.SessionStatusScheduled, false,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r SessionRepository) GetByID(id int64) (models.Session, error) {
	if id <= 0 {
		return models.Session{}, domain.ValidationError{Field: "session_id", Msg: "id tidak valid"}
	}

	s, err := scanSession(r.db().QueryRow(sessionSelect+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, domain.NotFoundError{Resource: "session"}
		}
		return models.Session{}, err
	}
	return s, nil
}

// GetForUpdateTx locks the session row for a read-modify-write transition.
func (r SessionRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Session, error) {
	s, err := scanSession(tx.QueryRow(sessionSelect+` WHERE id = ? LIMIT 1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, domain.NotFoundError{Resource: "session"}
		}
		return models.Session{}, err
	}
	return s, nil
}

func (r SessionRepository) ListByBookingID(bookingID int64) ([]models.Session, error) {
	rows, err := r.db().Query(sessionSelect+` WHERE booking_id = ? ORDER BY session_number ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UnlockUpToTx opens sessions 1..n. Strictly additive: rows already
// unlocked are never touched back.
func (r SessionRepository) UnlockUpToTx(tx *sql.Tx, bookingID int64, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := tx.Exec(`
		UPDATE sessions
		SET is_unlocked = TRUE, updated_at = NOW()
		WHERE booking_id = ? AND session_number <= ? AND is_unlocked = FALSE`,
		bookingID, n,
	)
	return err
}

// CountsTx returns total and completed session counts under the caller's
// transaction, used as the completion precondition.
func (r SessionRepository) CountsTx(tx *sql.Tx, bookingID int64) (total, completed int, err error) {
	err = tx.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(status = ?), 0)
		FROM sessions
		WHERE booking_id = ?`,
		models.SessionStatusCompleted, bookingID,
	).Scan(&total, &completed)
	return total, completed, err
}

// UpdateReportTx applies the teacher's session report fields.
func (r SessionRepository) UpdateReportTx(tx *sql.Tx, id int64, in models.SessionReportInput, stampCompletion bool) error {
	query := `
		UPDATE sessions
		SET teacher_report = ?, status = ?, updated_at = NOW()`
	args := []any{in.Report, in.Status}

	if in.AttachmentFile != "" {
		query += `, attachment_file = ?`
		args = append(args, in.AttachmentFile)
	}
	if in.Attendance != nil {
		query += `, student_attended = ?`
		args = append(args, *in.Attendance)
	}
	if stampCompletion {
		query += `, completed_at = COALESCE(completed_at, NOW())`
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	_, err := tx.Exec(query, args...)
	return err
}

// SetAttendanceTx records the student's one-time self-report.
func (r SessionRepository) SetAttendanceTx(tx *sql.Tx, id int64, attended bool) error {
	_, err := tx.Exec(`
		UPDATE sessions
		SET student_attended = ?, updated_at = NOW()
		WHERE id = ?`,
		attended, id,
	)
	return err
}
