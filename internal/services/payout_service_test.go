package services

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var payoutCols = []string{
	"id", "booking_id", "teacher_id", "course_price", "fee_percent", "fee_amount",
	"honorarium", "status", "payout_date", "transaction_ref", "notes", "proof_file",
	"created_at", "updated_at",
}

func payoutRow(id, bookingID int64, status string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, bookingID, int64(9), int64(600000), 0.15, int64(90000),
		int64(510000), status, nil, "", "", "",
		now, now,
	}
}

func TestCreatePayoutIdempotentPerBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT value FROM settings").WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "COMPLETED", 3, 6, 600000)...))
	mock.ExpectQuery("SELECT status FROM payments").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).
			AddRow("PAID").AddRow("PAID").AddRow("PAID"))
	mock.ExpectQuery("FROM teacher_payouts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(payoutCols).
			AddRow(payoutRow(5, 1, "PENDING_PAYMENT")...))
	mock.ExpectCommit()

	svc := PayoutService{DB: db, DefaultFeePercent: 0.15}
	rc := domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}

	payout, err := svc.CreateForBooking(rc, 1)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if payout.ID != 5 {
		t.Fatalf("expected existing payout 5, got %d", payout.ID)
	}
	if payout.Honorarium != 510000 {
		t.Fatalf("frozen honorarium changed: %d", payout.Honorarium)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePayoutNeedsCompletedBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT value FROM settings").WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "CONFIRMED", 3, 6, 600000)...))
	mock.ExpectRollback()

	svc := PayoutService{DB: db, DefaultFeePercent: 0.15}
	rc := domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}

	_, err = svc.CreateForBooking(rc, 1)
	if domain.ConflictCode(err) != domain.CodePayoutNotEligible {
		t.Fatalf("expected payout_not_eligible conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePayoutNeedsFullyPaidPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT value FROM settings").WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(bookingRow(1, 7, "COMPLETED", 3, 6, 600000)...))
	mock.ExpectQuery("SELECT status FROM payments").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).
			AddRow("PAID").AddRow("PAID").AddRow("PENDING"))
	mock.ExpectRollback()

	svc := PayoutService{DB: db, DefaultFeePercent: 0.15}
	rc := domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}

	_, err = svc.CreateForBooking(rc, 1)
	if domain.ConflictCode(err) != domain.CodePayoutNotEligible {
		t.Fatalf("expected payout_not_eligible conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdminUpdatePaidNeedsPayoutDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM teacher_payouts").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(payoutCols).
			AddRow(payoutRow(5, 1, "PROCESSING")...))

	svc := PayoutService{DB: db}
	rc := domain.RequestContext{UserID: 99, Role: domain.RoleAdmin}

	_, err = svc.AdminUpdate(rc, 5, models.PayoutUpdate{Status: "PAID"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error without payout date, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
