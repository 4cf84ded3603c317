package services

import (
	"bytes"
	"testing"
	"time"

	"backend/internal/domain/models"
)

func TestBuildPaymentInvoicePDF(t *testing.T) {
	booking := models.Booking{
		ID:           1,
		StudentName:  "Siswa Uji",
		CourseTitle:  "Matematika SMA",
		SessionCount: 6,
		Total:        600000,
		Payments: []models.Payment{
			{InstallmentNumber: 1}, {InstallmentNumber: 2}, {InstallmentNumber: 3},
		},
	}
	payment := models.Payment{
		ID:                11,
		BookingID:         1,
		InstallmentNumber: 2,
		Amount:            200000,
		Status:            models.PaymentStatusPending,
	}

	pdf, filename, err := buildPaymentInvoicePDF(booking, payment)
	if err != nil {
		t.Fatalf("buildPaymentInvoicePDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("buildPaymentInvoicePDF returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
	if filename != "INVOICE_1_2.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestBuildPayoutReceiptPDF(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	booking := models.Booking{ID: 1, CourseTitle: "Matematika SMA"}
	payout := models.TeacherPayout{
		ID:          5,
		BookingID:   1,
		CoursePrice: 600000,
		FeePercent:  0.15,
		FeeAmount:   90000,
		Honorarium:  510000,
		Status:      models.PayoutStatusPaid,
		PayoutDate:  &date,
	}

	pdf, filename, err := buildPayoutReceiptPDF(booking, payout)
	if err != nil {
		t.Fatalf("buildPayoutReceiptPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("buildPayoutReceiptPDF returned empty data")
	}
	if filename != "PAYOUT_5.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}
