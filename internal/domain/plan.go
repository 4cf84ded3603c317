package domain

// Payment methods accepted at booking time.
const (
	PaymentMethodFull        = "FULL"
	PaymentMethodInstallment = "INSTALLMENT"
)

// AllowedInstallmentCounts is the fixed set offered for cicilan plans.
var AllowedInstallmentCounts = map[int]bool{2: true, 3: true}

// PlanInstallment is one derived partial payment.
type PlanInstallment struct {
	Number int64 `json:"installmentNumber"`
	Amount int64 `json:"amount"`
}

// BuildPaymentPlan derives the installment set for a booking total.
// Amounts are integer Rupiah. The first N-1 installments take total/N
// rounded down; the last takes the remainder, so the plan always sums
// exactly to total.
func BuildPaymentPlan(total int64, method string, installments int) ([]PlanInstallment, error) {
	if total <= 0 {
		return nil, ValidationError{Field: "total", Msg: "harus lebih dari 0"}
	}

	switch method {
	case PaymentMethodFull:
		return []PlanInstallment{{Number: 1, Amount: total}}, nil
	case PaymentMethodInstallment:
		if !AllowedInstallmentCounts[installments] {
			return nil, ValidationError{Field: "installmentCount", Msg: "jumlah cicilan tidak tersedia"}
		}
		per := total / int64(installments)
		if per <= 0 {
			return nil, ValidationError{Field: "total", Msg: "nominal terlalu kecil untuk dicicil"}
		}
		plan := make([]PlanInstallment, 0, installments)
		var allocated int64
		for i := 1; i < installments; i++ {
			plan = append(plan, PlanInstallment{Number: int64(i), Amount: per})
			allocated += per
		}
		plan = append(plan, PlanInstallment{Number: int64(installments), Amount: total - allocated})
		return plan, nil
	default:
		return nil, ValidationError{Field: "paymentMethod", Msg: "harus FULL atau INSTALLMENT"}
	}
}
