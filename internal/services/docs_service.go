package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF invoice cicilan dan bukti pencairan honor.
type DocsService struct {
	PaymentRepo repositories.PaymentRepository
	PayoutRepo  repositories.PayoutRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

// GeneratePaymentInvoice renders the invoice for one installment.
func (s DocsService) GeneratePaymentInvoice(rc domain.RequestContext, paymentID int64) ([]byte, string, error) {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err != nil {
		return nil, "", err
	}
	if err := authorizeBookingActor(rc, booking); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("payment_id=%d", paymentID))
	return buildPaymentInvoicePDF(booking, payment)
}

// GeneratePayoutReceipt renders the transfer receipt for one payout.
func (s DocsService) GeneratePayoutReceipt(rc domain.RequestContext, payoutID int64) ([]byte, string, error) {
	payout, err := s.PayoutRepo.GetByID(payoutID)
	if err != nil {
		return nil, "", err
	}
	if !rc.IsAdmin() && !(rc.IsTeacher() && payout.TeacherID == rc.UserID) {
		return nil, "", domain.ForbiddenError{Msg: "tidak punya akses ke pencairan ini"}
	}
	booking, err := s.BookingRepo.GetByID(payout.BookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("payout_id=%d", payoutID))
	return buildPayoutReceiptPDF(booking, payout)
}

func buildPaymentInvoicePDF(b models.Booking, p models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%d", b.ID, p.InstallmentNumber)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Nama   : %s", safe(b.StudentName, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Les %s, %d sesi, cicilan ke-%d dari %d",
		safe(b.CourseTitle, "-"), b.SessionCount, p.InstallmentNumber, len(b.Payments))
	if len(b.Payments) == 0 {
		desc = fmt.Sprintf("Les %s, %d sesi, cicilan ke-%d",
			safe(b.CourseTitle, "-"), b.SessionCount, p.InstallmentNumber)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Nominal cicilan: "+utils.FormatRupiah(p.Amount))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total paket    : "+utils.FormatRupiah(b.Total))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status         : "+p.Status)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Pembayaran dikonfirmasi admin setelah bukti transfer divalidasi.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%d.pdf", b.ID, p.InstallmentNumber)
	return buf.Bytes(), filename, nil
}

func buildPayoutReceiptPDF(b models.Booking, p models.TeacherPayout) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bukti Pencairan Honor", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUKTI PENCAIRAN HONOR")
	pdf.Ln(12)

	payoutDate := "-"
	if p.PayoutDate != nil {
		payoutDate = utils.FormatDate(*p.PayoutDate)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Pencairan    : PAY-%d", p.ID),
		fmt.Sprintf("Kode Booking    : #%d", p.BookingID),
		fmt.Sprintf("Kursus          : %s", safe(b.CourseTitle, "-")),
		fmt.Sprintf("Harga Paket     : %s", utils.FormatRupiah(p.CoursePrice)),
		fmt.Sprintf("Biaya Layanan   : %s (%.0f%%)", utils.FormatRupiah(p.FeeAmount), p.FeePercent*100),
		fmt.Sprintf("Honorarium      : %s", utils.FormatRupiah(p.Honorarium)),
		fmt.Sprintf("Status          : %s", p.Status),
		fmt.Sprintf("Tanggal Cair    : %s", payoutDate),
		fmt.Sprintf("Ref Transaksi   : %s", safe(p.TransactionRef, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Dokumen ini dibuat otomatis oleh sistem.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("PAYOUT_%d.pdf", p.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
