package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type PayoutRepository struct {
	DB *sql.DB
}

func (r PayoutRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const payoutSelect = `
	SELECT id, booking_id, teacher_id, course_price, fee_percent, fee_amount,
	       honorarium, status, payout_date, COALESCE(transaction_ref,''),
	       COALESCE(notes,''), COALESCE(proof_file,''), created_at, updated_at
	FROM teacher_payouts`

func scanPayout(row interface{ Scan(...any) error }) (models.TeacherPayout, error) {
	var p models.TeacherPayout
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.TeacherID,
		&p.CoursePrice,
		&p.FeePercent,
		&p.FeeAmount,
		&p.Honorarium,
		&p.Status,
		&p.PayoutDate,
		&p.TransactionRef,
		&p.Notes,
		&p.ProofFile,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r PayoutRepository) GetByID(id int64) (models.TeacherPayout, error) {
	if id <= 0 {
		return models.TeacherPayout{}, domain.ValidationError{Field: "payout_id", Msg: "id tidak valid"}
	}

	p, err := scanPayout(r.db().QueryRow(payoutSelect+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TeacherPayout{}, domain.NotFoundError{Resource: "payout"}
		}
		return models.TeacherPayout{}, err
	}
	return p, nil
}

// GetByBookingTx looks up an existing payout under the creating transaction
// so duplicate runs serialize on the booking row.
func (r PayoutRepository) GetByBookingTx(tx *sql.Tx, bookingID int64) (models.TeacherPayout, bool, error) {
	p, err := scanPayout(tx.QueryRow(payoutSelect+` WHERE booking_id = ? LIMIT 1 FOR UPDATE`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TeacherPayout{}, false, nil
		}
		return models.TeacherPayout{}, false, err
	}
	return p, true, nil
}

func (r PayoutRepository) InsertTx(tx *sql.Tx, p *models.TeacherPayout) error {
	res, err := tx.Exec(`
		INSERT INTO teacher_payouts
			(booking_id, teacher_id, course_price, fee_percent, fee_amount,
			 honorarium, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		p.BookingID,
		p.TeacherID,
		p.CoursePrice,
		p.FeePercent,
		p.FeeAmount,
		p.Honorarium,
		p.Status,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update performs PATCH-style updates based on key presence. Frozen amount
// columns are deliberately not touchable here.
func (r PayoutRepository) Update(id int64, upd models.PayoutUpdate) error {
	sets := []string{"status = ?"}
	args := []any{upd.Status}

	if upd.PayoutDate != nil {
		sets = append(sets, "payout_date = ?")
		args = append(args, *upd.PayoutDate)
	}
	if upd.TransactionRef != nil {
		sets = append(sets, "transaction_ref = ?")
		args = append(args, *upd.TransactionRef)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if upd.ProofFile != nil {
		sets = append(sets, "proof_file = ?")
		args = append(args, *upd.ProofFile)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	res, err := r.db().Exec("UPDATE teacher_payouts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payout"}
	}
	return nil
}
