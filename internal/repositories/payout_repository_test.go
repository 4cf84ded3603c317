package repositories

import (
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPayoutUpdateOnlyTouchesPresentKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	ref := "TRX-001"

	mock.ExpectExec(`UPDATE teacher_payouts SET status = \?, payout_date = \?, transaction_ref = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs("PAID", date, ref, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := PayoutRepository{DB: db}
	err = repo.Update(5, models.PayoutUpdate{
		Status:         "PAID",
		PayoutDate:     &date,
		TransactionRef: &ref,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayoutUpdateStatusOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE teacher_payouts SET status = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs("PROCESSING", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := PayoutRepository{DB: db}
	if err := repo.Update(5, models.PayoutUpdate{Status: "PROCESSING"}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayoutUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE teacher_payouts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PayoutRepository{DB: db}
	err = repo.Update(404, models.PayoutUpdate{Status: "PROCESSING"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
