package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// PaymentService owns installment state: proof attachment by the student
// and manual verification by an admin. Marking an installment PAID opens
// the matching session range inside the same transaction; that unlock is
// one-way and survives a later retroactive FAILED.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	SessionRepo repositories.SessionRepository
	DB          *sql.DB
	RequestID   string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// AttachProof stores the uploaded proof reference on the installment.
// Status is untouched; only admin verification moves it.
func (s PaymentService) AttachProof(rc domain.RequestContext, paymentID int64, proofFile, proofFileName string) (models.Payment, error) {
	if strings.TrimSpace(proofFile) == "" {
		return models.Payment{}, domain.ValidationError{Field: "proofFile", Msg: "bukti pembayaran wajib diisi"}
	}
	if strings.TrimSpace(proofFileName) == "" {
		proofFileName = "bukti-pembayaran"
	}

	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if !rc.IsAdmin() && !(rc.IsStudent() && booking.StudentID == rc.UserID) {
		return models.Payment{}, domain.ForbiddenError{Msg: "tidak punya akses ke pembayaran ini"}
	}
	if booking.Status == models.BookingStatusCancelled {
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Code:     domain.CodeIllegalTransition,
			Msg:      "booking sudah dibatalkan",
		}
	}

	if err := s.PaymentRepo.UpdateProof(paymentID, proofFile, proofFileName); err != nil {
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "attach_proof",
		fmt.Sprintf("payment_id=%d booking_id=%d file=%s", paymentID, booking.ID, proofFileName))

	return s.PaymentRepo.GetByID(paymentID)
}

// Verify is the admin decision on an installment: PAID or FAILED.
// On PAID the unlock mapping runs against the count of paid installments;
// a PAID installment may later be turned FAILED, but sessions already
// unlocked stay unlocked.
func (s PaymentService) Verify(rc domain.RequestContext, paymentID int64, status string) (models.Payment, error) {
	if !rc.IsAdmin() {
		return models.Payment{}, domain.ForbiddenError{Msg: "verifikasi pembayaran hanya oleh admin"}
	}

	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.PaymentStatusPaid && status != models.PaymentStatusFailed {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "harus PAID atau FAILED"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}

	// lock the booking before its payments; cancellation takes the same
	// locks in the same order
	booking, err := s.BookingRepo.GetForUpdateTx(tx, payment.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Code:     domain.CodeIllegalTransition,
			Msg:      "booking sudah dibatalkan",
		}
	}

	payment, err = s.PaymentRepo.GetForUpdateTx(tx, paymentID)
	if err != nil {
		return models.Payment{}, err
	}

	if err := s.PaymentRepo.SetStatusTx(tx, paymentID, status); err != nil {
		return models.Payment{}, err
	}

	if status == models.PaymentStatusPaid {
		total, paid, err := s.PaymentRepo.CountsTx(tx, booking.ID)
		if err != nil {
			return models.Payment{}, err
		}
		n := domain.UnlockedSessionCount(paid, total, booking.SessionCount)
		if err := s.SessionRepo.UnlockUpToTx(tx, booking.ID, n); err != nil {
			return models.Payment{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "verify",
		fmt.Sprintf("payment_id=%d booking_id=%d cicilan=%d status=%s", paymentID, booking.ID, payment.InstallmentNumber, status))

	return s.PaymentRepo.GetByID(paymentID)
}

// OverallStatus derives the booking-level payment state used by gating
// logic: PAID when every installment is paid, FAILED when any failed and
// none pending resolution, otherwise PENDING.
func OverallStatus(payments []models.Payment) string {
	if len(payments) == 0 {
		return models.PaymentStatusPending
	}
	paid := 0
	failed := 0
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusPaid:
			paid++
		case models.PaymentStatusFailed:
			failed++
		}
	}
	switch {
	case paid == len(payments):
		return models.PaymentStatusPaid
	case failed > 0 && paid+failed == len(payments):
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}
