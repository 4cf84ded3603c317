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

// PayoutService creates and advances teacher payouts. Creation is an
// explicit admin action, never a side effect of booking completion, and is
// idempotent per booking; amounts freeze at creation time.
type PayoutService struct {
	PayoutRepo  repositories.PayoutRepository
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	SettingRepo repositories.SettingRepository
	DB          *sql.DB
	RequestID   string

	// DefaultFeePercent backs the settings table when unset.
	DefaultFeePercent float64
}

func (s PayoutService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PayoutService) defaultFee() float64 {
	if s.DefaultFeePercent > 0 {
		return s.DefaultFeePercent
	}
	return 0.15
}

// CreateForBooking computes and stores the honorarium for one completed,
// fully paid booking. Running it again returns the existing payout.
func (s PayoutService) CreateForBooking(rc domain.RequestContext, bookingID int64) (models.TeacherPayout, error) {
	if !rc.IsAdmin() {
		return models.TeacherPayout{}, domain.ForbiddenError{Msg: "pencairan honor hanya oleh admin"}
	}

	fee, err := s.SettingRepo.GetServiceFee(s.defaultFee())
	if err != nil {
		return models.TeacherPayout{}, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.TeacherPayout{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	booking, err := s.BookingRepo.GetForUpdateTx(tx, bookingID)
	if err != nil {
		return models.TeacherPayout{}, err
	}
	if booking.Status != models.BookingStatusCompleted {
		return models.TeacherPayout{}, domain.ConflictError{
			Resource: "payout",
			Code:     domain.CodePayoutNotEligible,
			Msg:      "booking belum COMPLETED",
		}
	}

	total, paid, err := s.PaymentRepo.CountsTx(tx, booking.ID)
	if err != nil {
		return models.TeacherPayout{}, err
	}
	if total == 0 || paid < total {
		return models.TeacherPayout{}, domain.ConflictError{
			Resource: "payout",
			Code:     domain.CodePayoutNotEligible,
			Msg:      fmt.Sprintf("pembayaran lunas %d dari %d", paid, total),
		}
	}

	if existing, ok, err := s.PayoutRepo.GetByBookingTx(tx, booking.ID); err != nil {
		return models.TeacherPayout{}, err
	} else if ok {
		// idempotent: amounts stay frozen even if the fee setting moved
		return existing, tx.Commit()
	}

	detail := domain.ComputePayout(booking.Total, fee)
	payout := models.TeacherPayout{
		BookingID:   booking.ID,
		TeacherID:   booking.TeacherID,
		CoursePrice: detail.CoursePrice,
		FeePercent:  detail.FeePercent,
		FeeAmount:   detail.FeeAmount,
		Honorarium:  detail.Honorarium,
		Status:      models.PayoutStatusPendingPayment,
	}
	if err := s.PayoutRepo.InsertTx(tx, &payout); err != nil {
		return models.TeacherPayout{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.TeacherPayout{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "payout", "create",
		fmt.Sprintf("payout_id=%d booking_id=%d honor=%d fee=%d", payout.ID, booking.ID, payout.Honorarium, payout.FeeAmount))

	return s.PayoutRepo.GetByID(payout.ID)
}

// AdminUpdate advances the payout status and attaches transfer metadata.
// PAID requires a payout date; PAID and CANCELLED are terminal.
func (s PayoutService) AdminUpdate(rc domain.RequestContext, payoutID int64, upd models.PayoutUpdate) (models.TeacherPayout, error) {
	if !rc.IsAdmin() {
		return models.TeacherPayout{}, domain.ForbiddenError{Msg: "update pencairan hanya oleh admin"}
	}

	upd.Status = strings.ToUpper(strings.TrimSpace(upd.Status))
	switch upd.Status {
	case models.PayoutStatusProcessing, models.PayoutStatusPaid,
		models.PayoutStatusFailed, models.PayoutStatusCancelled:
	default:
		return models.TeacherPayout{}, domain.ValidationError{Field: "status", Msg: "status pencairan tidak dikenal"}
	}

	payout, err := s.PayoutRepo.GetByID(payoutID)
	if err != nil {
		return models.TeacherPayout{}, err
	}
	if payout.Status == models.PayoutStatusPaid || payout.Status == models.PayoutStatusCancelled {
		return models.TeacherPayout{}, domain.ConflictError{
			Resource: "payout",
			Code:     domain.CodeIllegalTransition,
			Msg:      "pencairan sudah " + payout.Status,
		}
	}
	if upd.Status == models.PayoutStatusPaid && upd.PayoutDate == nil && payout.PayoutDate == nil {
		return models.TeacherPayout{}, domain.ValidationError{Field: "payoutDate", Msg: "wajib diisi saat status PAID"}
	}

	if err := s.PayoutRepo.Update(payoutID, upd); err != nil {
		return models.TeacherPayout{}, err
	}

	utils.LogEvent(s.RequestID, "payout", "update",
		fmt.Sprintf("payout_id=%d %s->%s", payoutID, payout.Status, upd.Status))

	return s.PayoutRepo.GetByID(payoutID)
}

// ServiceFee reads the current fee fraction from the settings store.
func (s PayoutService) ServiceFee() (float64, error) {
	return s.SettingRepo.GetServiceFee(s.defaultFee())
}

// SetServiceFee updates the fee for future payout runs; existing payouts
// keep their snapshots.
func (s PayoutService) SetServiceFee(rc domain.RequestContext, v float64) error {
	if !rc.IsAdmin() {
		return domain.ForbiddenError{Msg: "pengaturan fee hanya oleh admin"}
	}
	if err := s.SettingRepo.SetServiceFee(v); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payout", "set_fee", fmt.Sprintf("fee=%v", v))
	return nil
}
