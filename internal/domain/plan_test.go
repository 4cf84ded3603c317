package domain

import "testing"

func TestBuildPaymentPlanFull(t *testing.T) {
	plan, err := BuildPaymentPlan(600000, PaymentMethodFull, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected 1 installment, got %d", len(plan))
	}
	if plan[0].Number != 1 || plan[0].Amount != 600000 {
		t.Fatalf("unexpected plan: %+v", plan[0])
	}
}

func TestBuildPaymentPlanInstallmentSumsExactly(t *testing.T) {
	cases := []struct {
		total        int64
		installments int
		want         []int64
	}{
		{600000, 3, []int64{200000, 200000, 200000}},
		{600000, 2, []int64{300000, 300000}},
		{1000001, 3, []int64{333333, 333333, 333335}},
		{999999, 2, []int64{499999, 500000}},
	}

	for _, tc := range cases {
		plan, err := BuildPaymentPlan(tc.total, PaymentMethodInstallment, tc.installments)
		if err != nil {
			t.Fatalf("total=%d n=%d: unexpected error: %v", tc.total, tc.installments, err)
		}
		if len(plan) != tc.installments {
			t.Fatalf("total=%d: expected %d installments, got %d", tc.total, tc.installments, len(plan))
		}
		var sum int64
		for i, inst := range plan {
			if inst.Number != int64(i+1) {
				t.Fatalf("total=%d: installment %d has number %d", tc.total, i+1, inst.Number)
			}
			if inst.Amount != tc.want[i] {
				t.Fatalf("total=%d: installment %d amount %d, want %d", tc.total, i+1, inst.Amount, tc.want[i])
			}
			sum += inst.Amount
		}
		if sum != tc.total {
			t.Fatalf("total=%d: plan sums to %d", tc.total, sum)
		}
	}
}

func TestBuildPaymentPlanRejectsBadInput(t *testing.T) {
	if _, err := BuildPaymentPlan(0, PaymentMethodFull, 0); !IsValidation(err) {
		t.Fatalf("total 0: expected validation error, got %v", err)
	}
	if _, err := BuildPaymentPlan(600000, "TRANSFER", 0); !IsValidation(err) {
		t.Fatalf("unknown method: expected validation error, got %v", err)
	}
	if _, err := BuildPaymentPlan(600000, PaymentMethodInstallment, 4); !IsValidation(err) {
		t.Fatalf("4 installments: expected validation error, got %v", err)
	}
	if _, err := BuildPaymentPlan(600000, PaymentMethodInstallment, 1); !IsValidation(err) {
		t.Fatalf("1 installment: expected validation error, got %v", err)
	}
	if _, err := BuildPaymentPlan(2, PaymentMethodInstallment, 3); !IsValidation(err) {
		t.Fatalf("tiny total: expected validation error, got %v", err)
	}
}
