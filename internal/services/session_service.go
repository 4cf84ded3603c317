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

// SessionService gates per-session actions behind the unlock flag and
// owns the SCHEDULED -> COMPLETED transition.
type SessionService struct {
	SessionRepo repositories.SessionRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string

	// Now is swappable for the attendance day check in tests.
	Now func() time.Time
}

func (s SessionService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SubmitTeacherReport files the teacher's session report: free text,
// optional attendance override, optional attachment, and the status move.
// Only the owning course's teacher may write, only while unlocked, and a
// COMPLETED session never reopens.
func (s SessionService) SubmitTeacherReport(rc domain.RequestContext, sessionID int64, in models.SessionReportInput) (models.Session, error) {
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if in.Status != models.SessionStatusScheduled && in.Status != models.SessionStatusCompleted {
		return models.Session{}, domain.ValidationError{Field: "status", Msg: "harus SCHEDULED atau COMPLETED"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Session{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	session, err := s.SessionRepo.GetForUpdateTx(tx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	booking, err := s.BookingRepo.GetByID(session.BookingID)
	if err != nil {
		return models.Session{}, err
	}

	if !rc.IsAdmin() && !(rc.IsTeacher() && booking.TeacherID == rc.UserID) {
		return models.Session{}, domain.ForbiddenError{Msg: "hanya guru kursus yang bisa mengisi laporan sesi"}
	}
	if !session.IsUnlocked {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeSessionLocked,
			Msg:      "sesi belum terbuka, menunggu pembayaran",
		}
	}
	if session.Status == models.SessionStatusCompleted && in.Status == models.SessionStatusScheduled {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeIllegalTransition,
			Msg:      "sesi yang sudah selesai tidak bisa dibuka kembali",
		}
	}

	stamp := session.Status == models.SessionStatusScheduled && in.Status == models.SessionStatusCompleted
	if err := s.SessionRepo.UpdateReportTx(tx, sessionID, in, stamp); err != nil {
		return models.Session{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Session{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "session", "teacher_report",
		fmt.Sprintf("session_id=%d booking_id=%d status=%s", sessionID, booking.ID, in.Status))

	return s.SessionRepo.GetByID(sessionID)
}

// SubmitStudentAttendance is the student's one-time self-report, only on
// the session's calendar day while the session is still SCHEDULED. The
// teacher's report can still override attendance afterwards.
func (s SessionService) SubmitStudentAttendance(rc domain.RequestContext, sessionID int64, attended bool) (models.Session, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return models.Session{}, domain.InternalError{Msg: "gagal mulai transaksi", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	session, err := s.SessionRepo.GetForUpdateTx(tx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	booking, err := s.BookingRepo.GetByID(session.BookingID)
	if err != nil {
		return models.Session{}, err
	}

	if !(rc.IsStudent() && booking.StudentID == rc.UserID) {
		return models.Session{}, domain.ForbiddenError{Msg: "hanya siswa pemilik booking yang bisa absen"}
	}
	if booking.Status == models.BookingStatusCancelled {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeIllegalTransition,
			Msg:      "booking sudah dibatalkan",
		}
	}
	if !session.IsUnlocked {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeSessionLocked,
			Msg:      "sesi belum terbuka, menunggu pembayaran",
		}
	}
	if session.Status != models.SessionStatusScheduled {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeIllegalTransition,
			Msg:      "sesi sudah selesai",
		}
	}
	if session.StudentAttended != nil {
		return models.Session{}, domain.ConflictError{
			Resource: "session",
			Code:     domain.CodeAlreadyRecorded,
			Msg:      "absensi sudah tercatat",
		}
	}
	if !utils.SameLocalDay(s.now(), session.ScheduledAt) {
		return models.Session{}, domain.ValidationError{Field: "session", Msg: "absensi hanya bisa pada hari sesi"}
	}

	if err := s.SessionRepo.SetAttendanceTx(tx, sessionID, attended); err != nil {
		return models.Session{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Session{}, domain.InternalError{Msg: "gagal commit transaksi", Err: err}
	}

	utils.LogEvent(s.RequestID, "session", "student_attendance",
		fmt.Sprintf("session_id=%d booking_id=%d hadir=%v", sessionID, booking.ID, attended))

	return s.SessionRepo.GetByID(sessionID)
}
