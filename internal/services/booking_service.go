package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// BookingService owns the booking aggregate: atomic creation, role-scoped
// reads, the status machine and the overall-report completion path.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	SessionRepo repositories.SessionRepository
	PaymentRepo repositories.PaymentRepository
	CourseRepo  repositories.CourseRepository
	UserRepo    repositories.UserRepository
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// CreateBookingInput is the student's booking request.
type CreateBookingInput struct {
	CourseID         int64                `json:"courseId"`
	Address          string               `json:"address"`
	SessionTimes     []string             `json:"sessionTimes"` // "YYYY-MM-DD HH:MM[:SS]"
	PaymentMethod    string               `json:"paymentMethod"`
	InstallmentCount int                  `json:"installmentCount"`
	Profile          models.ProfileUpdate `json:"profile"`
}

// CreateBooking materializes the aggregate: one booking, its ordered
// sessions and the derived payment plan, in a single transaction. Any
// failure (including a profile email conflict) leaves no partial records.
func (s BookingService) CreateBooking(rc domain.RequestContext, in CreateBookingInput) (models.Booking, error) {
	if !rc.IsStudent() {
		return models.Booking{}, domain.ForbiddenError{Msg: "hanya siswa yang bisa membuat booking"}
	}

	course, err := s.CourseRepo.GetByID(in.CourseID)
	if err != nil {
		return models.Booking{}, err
	}

	count := len(in.SessionTimes)
	if !models.AllowedSessionCounts[count] {
		return models.Booking{}, domain.ValidationError{Field: "sessionTimes", Msg: "jumlah sesi harus 6, 12, atau 24"}
	}

	times := make([]time.Time, 0, count)
	for i, raw := range in.SessionTimes {
		at, err := utils.ParseDateTime(raw)
		if err != nil {
			return models.Booking{}, domain.ValidationError{
				Field: fmt.Sprintf("sessionTimes[%d]", i),
				Msg:   "format tanggal tidak valid",
				Err:   err,
			}
		}
		times = append(times, at)
	}

	method := strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	total := course.PricePerSession * int64(count)
	plan, err := domain.BuildPaymentPlan(total, method, in.InstallmentCount)
	if err != nil {
		return models.Booking{}, err
	}

	installments := 0
	if method == domain.PaymentMethodInstallment {
		installments = in.InstallmentCount
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if !in.Profile.Empty() {
		if err := s.UserRepo.UpdateProfileTx(tx, rc.UserID, in.Profile); err != nil {
			return models.Booking{}, err
		}
	}

	booking := models.Booking{
		StudentID:        rc.UserID,
		CourseID:         course.ID,
		Address:          strings.TrimSpace(in.Address),
		PaymentMethod:    method,
		InstallmentCount: installments,
		SessionCount:     count,
		Total:            total,
		Status:           models.BookingStatusPending,
	}
	if err := s.BookingRepo.InsertTx(tx, &booking); err != nil {
		return models.Booking{}, err
	}
	if err := s.SessionRepo.InsertBatchTx(tx, booking.ID, times); err != nil {
		return models.Booking{}, err
	}
	if err := s.PaymentRepo.InsertPlanTx(tx, booking.ID, plan); err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d student_id=%d course_id=%d sesi=%d total=%d", booking.ID, rc.UserID, course.ID, count, total))

	return s.loadAggregate(booking.ID)
}

// Get returns the booking with nested sessions/payments, scoped by role.
func (s BookingService) Get(rc domain.RequestContext, id int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if err := authorizeBookingActor(rc, booking); err != nil {
		return models.Booking{}, err
	}
	return s.attachChildren(booking)
}

// List returns role-scoped bookings with optional free-text search.
func (s BookingService) List(rc domain.RequestContext, search string) ([]models.Booking, error) {
	return s.BookingRepo.ListForActor(rc, search)
}

// UpdateStatus runs the booking state machine. The paid-payment guard and
// the current status are re-read under row locks inside the transaction so
// concurrent admin/student writes cannot slip past the checks.
func (s BookingService) UpdateStatus(rc domain.RequestContext, id int64, newStatus string) (models.Booking, error) {
	newStatus = strings.ToUpper(strings.TrimSpace(newStatus))
	switch newStatus {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled:
	case models.BookingStatusCompleted:
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Code:     domain.CodeIllegalTransition,
			Msg:      "COMPLETED hanya lewat laporan akhir",
		}
	default:
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	booking, err := s.BookingRepo.GetForUpdateTx(tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if err := authorizeBookingActor(rc, booking); err != nil {
		return models.Booking{}, err
	}
	if booking.IsTerminal() {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Code:     domain.CodeIllegalTransition,
			Msg:      "booking sudah " + booking.Status,
		}
	}

	switch newStatus {
	case models.BookingStatusConfirmed:
		if booking.Status != models.BookingStatusPending {
			return models.Booking{}, domain.ConflictError{
				Resource: "booking",
				Code:     domain.CodeIllegalTransition,
				Msg:      "konfirmasi hanya dari PENDING",
			}
		}
		if !rc.IsAdmin() && !(rc.IsTeacher() && booking.TeacherID == rc.UserID) {
			return models.Booking{}, domain.ForbiddenError{Msg: "hanya guru kursus atau admin yang bisa konfirmasi"}
		}

	case models.BookingStatusCancelled:
		// student/teacher may only bail out of a PENDING engagement
		if !rc.IsAdmin() && booking.Status != models.BookingStatusPending {
			return models.Booking{}, domain.ForbiddenError{Msg: "pembatalan setelah konfirmasi hanya oleh admin"}
		}
		_, paid, err := s.PaymentRepo.CountsTx(tx, booking.ID)
		if err != nil {
			return models.Booking{}, err
		}
		if paid > 0 {
			return models.Booking{}, domain.ConflictError{
				Resource: "booking",
				Code:     domain.CodePaymentAlreadyCaptured,
				Msg:      "ada pembayaran yang sudah diterima, gunakan proses refund",
			}
		}
	}

	if err := s.BookingRepo.UpdateStatusTx(tx, booking.ID, newStatus); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "update_status",
		fmt.Sprintf("booking_id=%d %s->%s oleh user_id=%d role=%s", booking.ID, booking.Status, newStatus, rc.UserID, rc.Role))

	return s.loadAggregate(booking.ID)
}

// SubmitOverallReport is the sole path into COMPLETED: every session must
// already be completed, and a booking with zero sessions never completes.
func (s BookingService) SubmitOverallReport(rc domain.RequestContext, id int64, report, finalGrade string) (models.Booking, error) {
	report = strings.TrimSpace(report)
	if report == "" {
		return models.Booking{}, domain.ValidationError{Field: "report", Msg: "laporan wajib diisi"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	booking, err := s.BookingRepo.GetForUpdateTx(tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !rc.IsAdmin() && !(rc.IsTeacher() && booking.TeacherID == rc.UserID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "hanya guru kursus yang bisa mengirim laporan akhir"}
	}
	if booking.Status != models.BookingStatusConfirmed {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Code:     domain.CodeIllegalTransition,
			Msg:      "laporan akhir hanya untuk booking CONFIRMED",
		}
	}

	total, completed, err := s.SessionRepo.CountsTx(tx, booking.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if total == 0 || completed < total {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Code:     domain.CodeSessionsIncomplete,
			Msg:      fmt.Sprintf("sesi selesai %d dari %d", completed, total),
		}
	}

	if err := s.BookingRepo.CompleteTx(tx, booking.ID, report, strings.TrimSpace(finalGrade)); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "complete",
		fmt.Sprintf("booking_id=%d oleh user_id=%d", booking.ID, rc.UserID))

	return s.loadAggregate(booking.ID)
}

func (s BookingService) loadAggregate(id int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	return s.attachChildren(booking)
}

func (s BookingService) attachChildren(booking models.Booking) (models.Booking, error) {
	sessions, err := s.SessionRepo.ListByBookingID(booking.ID)
	if err != nil {
		return models.Booking{}, err
	}
	payments, err := s.PaymentRepo.ListByBookingID(booking.ID)
	if err != nil {
		return models.Booking{}, err
	}
	booking.Sessions = sessions
	booking.Payments = payments
	return booking, nil
}

// authorizeBookingActor admits the booking's student, the course's teacher,
// and admins; everyone else gets a 403.
func authorizeBookingActor(rc domain.RequestContext, b models.Booking) error {
	switch {
	case rc.IsAdmin():
		return nil
	case rc.IsStudent() && b.StudentID == rc.UserID:
		return nil
	case rc.IsTeacher() && b.TeacherID == rc.UserID:
		return nil
	}
	return domain.ForbiddenError{Msg: "tidak punya akses ke booking ini"}
}
