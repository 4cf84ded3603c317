package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentSelect = `
	SELECT id, booking_id, installment_number, amount, status,
	       due_date, COALESCE(proof_file,''), COALESCE(proof_file_name,''),
	       paid_at, created_at, updated_at
	FROM payments`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.InstallmentNumber,
		&p.Amount,
		&p.Status,
		&p.DueDate,
		&p.ProofFile,
		&p.ProofFileName,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// InsertPlanTx writes the derived installment set of a new booking.
func (r PaymentRepository) InsertPlanTx(tx *sql.Tx, bookingID int64, plan []domain.PlanInstallment) error {
	for _, inst := range plan {
		_, err := tx.Exec(`
			INSERT INTO payments
				(booking_id, installment_number, amount, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, NOW(), NOW())`,
			bookingID, inst.Number, inst.Amount, models.PaymentStatusPending,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "payment_id", Msg: "id tidak valid"}
	}

	p, err := scanPayment(r.db().QueryRow(paymentSelect+` WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) GetForUpdateTx(tx *sql.Tx, id int64) (models.Payment, error) {
	p, err := scanPayment(tx.QueryRow(paymentSelect+` WHERE id = ? LIMIT 1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) ListByBookingID(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(paymentSelect+` WHERE booking_id = ? ORDER BY installment_number ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProof attaches the uploaded proof reference; status stays as-is
// until an admin verifies.
func (r PaymentRepository) UpdateProof(id int64, proofFile, proofFileName string) error {
	res, err := r.db().Exec(`
		UPDATE payments
		SET proof_file = ?, proof_file_name = ?, updated_at = NOW()
		WHERE id = ?`,
		proofFile, proofFileName, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// SetStatusTx flips the installment status; paid_at is stamped when the
// status becomes PAID and cleared otherwise.
func (r PaymentRepository) SetStatusTx(tx *sql.Tx, id int64, status string) error {
	var err error
	if status == models.PaymentStatusPaid {
		_, err = tx.Exec(`
			UPDATE payments
			SET status = ?, paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
			WHERE id = ?`, status, id)
	} else {
		_, err = tx.Exec(`
			UPDATE payments
			SET status = ?, updated_at = NOW()
			WHERE id = ?`, status, id)
	}
	return err
}

// CountsTx locks the booking's payment rows and returns total/paid counts.
// Run inside the same transaction as the guard that depends on them.
func (r PaymentRepository) CountsTx(tx *sql.Tx, bookingID int64) (total, paid int, err error) {
	rows, err := tx.Query(`SELECT status FROM payments WHERE booking_id = ? FOR UPDATE`, bookingID)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return 0, 0, err
		}
		total++
		if status == models.PaymentStatusPaid {
			paid++
		}
	}
	return total, paid, rows.Err()
}
