package services

import (
	"database/sql/driver"
	"testing"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var sessionCols = []string{
	"id", "booking_id", "session_number", "scheduled_at", "status", "is_unlocked",
	"teacher_report", "attachment_file", "student_attended", "completed_at",
	"created_at", "updated_at",
}

func sessionRow(id, bookingID int64, scheduledAt time.Time, status string, unlocked bool, attended driver.Value) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, bookingID, 1, scheduledAt, status, unlocked,
		"", "", attended, nil,
		now, now,
	}
}

func TestTeacherReportRejectedWhileLocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, time.Now(), "SCHEDULED", false, nil)...))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectRollback()

	svc := SessionService{DB: db}
	rc := domain.RequestContext{UserID: 9, Role: domain.RoleTeacher}

	_, err = svc.SubmitTeacherReport(rc, 3, models.SessionReportInput{
		Report: "Materi aljabar selesai",
		Status: models.SessionStatusCompleted,
	})
	if domain.ConflictCode(err) != domain.CodeSessionLocked {
		t.Fatalf("expected session_locked conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompletedSessionNeverReopens(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, time.Now(), "COMPLETED", true, nil)...))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectRollback()

	svc := SessionService{DB: db}
	rc := domain.RequestContext{UserID: 9, Role: domain.RoleTeacher}

	_, err = svc.SubmitTeacherReport(rc, 3, models.SessionReportInput{
		Report: "Revisi laporan",
		Status: models.SessionStatusScheduled,
	})
	if domain.ConflictCode(err) != domain.CodeIllegalTransition {
		t.Fatalf("expected illegal_transition conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTeacherReportStatusCaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, time.Now(), "SCHEDULED", true, nil)...))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectExec("UPDATE sessions").
		WithArgs("Materi aljabar selesai", "COMPLETED", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, time.Now(), "COMPLETED", true, nil)...))

	svc := SessionService{DB: db}
	rc := domain.RequestContext{UserID: 9, Role: domain.RoleTeacher}

	session, err := svc.SubmitTeacherReport(rc, 3, models.SessionReportInput{
		Report: "Materi aljabar selesai",
		Status: " completed ",
	})
	if err != nil {
		t.Fatalf("lowercase status should be accepted, got %v", err)
	}
	if session.Status != models.SessionStatusCompleted {
		t.Fatalf("session status %s", session.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStudentAttendanceRecordedOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, time.Now(), "SCHEDULED", true, true)...))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectRollback()

	svc := SessionService{DB: db}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleStudent}

	_, err = svc.SubmitStudentAttendance(rc, 3, true)
	if domain.ConflictCode(err) != domain.CodeAlreadyRecorded {
		t.Fatalf("expected already_recorded conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStudentAttendanceOnlyOnSessionDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	scheduled := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM sessions").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow(sessionRow(3, 1, scheduled, "SCHEDULED", true, nil)...))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectRollback()

	svc := SessionService{
		DB:  db,
		Now: func() time.Time { return scheduled.AddDate(0, 0, 1) },
	}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleStudent}

	_, err = svc.SubmitStudentAttendance(rc, 3, true)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error a day after the session, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
