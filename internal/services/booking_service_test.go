package services

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var bookingCols = []string{
	"id", "student_id", "course_id", "address", "payment_method", "installment_count",
	"session_count", "total", "status", "overall_report", "final_grade",
	"completed_at", "created_at", "updated_at", "name", "title", "teacher_id",
}

func bookingRow(id, studentID int64, status string, installments, sessionCount int, total int64) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, studentID, int64(2), "Jl. Melati 1", "INSTALLMENT", installments,
		sessionCount, total, status, "", "",
		nil, now, now, "Siswa Uji", "Matematika SMA", int64(9),
	}
}

func TestCreateBookingRollsBackWhenSessionInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT id, title, teacher_id, price_per_session").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "teacher_id", "price_per_session", "status"}).
			AddRow(int64(2), "Matematika SMA", int64(9), int64(100000), "active"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO sessions").WillReturnError(errors.New("kolom scheduled_at rusak"))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleStudent}

	_, err = svc.CreateBooking(rc, CreateBookingInput{
		CourseID:      2,
		Address:       "Jl. Melati 1",
		PaymentMethod: "FULL",
		SessionTimes: []string{
			"2026-01-05 10:00", "2026-01-07 10:00", "2026-01-09 10:00",
			"2026-01-12 10:00", "2026-01-14 10:00", "2026-01-16 10:00",
		},
	})
	if err == nil {
		t.Fatalf("expected error when session insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRollsBackOnDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT id, title, teacher_id, price_per_session").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "teacher_id", "price_per_session", "status"}).
			AddRow(int64(2), "Matematika SMA", int64(9), int64(100000), "active"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleStudent}

	email := "sudah@terpakai.id"
	_, err = svc.CreateBooking(rc, CreateBookingInput{
		CourseID:      2,
		Address:       "Jl. Melati 1",
		PaymentMethod: "FULL",
		SessionTimes: []string{
			"2026-01-05 10:00", "2026-01-07 10:00", "2026-01-09 10:00",
			"2026-01-12 10:00", "2026-01-14 10:00", "2026-01-16 10:00",
		},
		Profile: models.ProfileUpdate{Email: &email},
	})
	if domain.ConflictCode(err) != domain.CodeProfileConflict {
		t.Fatalf("expected profile_conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsOddSessionCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT id, title, teacher_id, price_per_session").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "teacher_id", "price_per_session", "status"}).
			AddRow(int64(2), "Matematika SMA", int64(9), int64(100000), "active"))

	svc := BookingService{DB: db}
	rc := domain.RequestContext{UserID: 7, Role: domain.RoleStudent}

	_, err = svc.CreateBooking(rc, CreateBookingInput{
		CourseID:      2,
		PaymentMethod: "FULL",
		SessionTimes:  []string{"2026-01-05 10:00", "2026-01-07 10:00"},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for 2 sessions, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelRejectedAfterPaymentCaptured(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectQuery("SELECT status FROM payments").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).
			AddRow("PAID").AddRow("PENDING").AddRow("PENDING"))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	rc := domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}

	_, err = svc.UpdateStatus(rc, 1, "CANCELLED")
	if domain.ConflictCode(err) != domain.CodePaymentAlreadyCaptured {
		t.Fatalf("expected payment_already_captured conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOverallReportNeedsEverySessionDone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectQuery("FROM sessions").WithArgs("COMPLETED", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed"}).AddRow(6, 4))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	rc := domain.RequestContext{UserID: 9, Role: domain.RoleTeacher}

	_, err = svc.SubmitOverallReport(rc, 1, "Perkembangan baik", "A")
	if domain.ConflictCode(err) != domain.CodeSessionsIncomplete {
		t.Fatalf("expected sessions_incomplete conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
