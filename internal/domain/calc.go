package domain

import "math"

// PayoutDetail is the frozen honorarium breakdown for one booking.
type PayoutDetail struct {
	CoursePrice int64   `json:"coursePrice"` // price per sesi x jumlah sesi
	FeePercent  float64 `json:"feePercent"`
	FeeAmount   int64   `json:"feeAmount"`
	Honorarium  int64   `json:"honorarium"`
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// ComputePayout derives the teacher honorarium net of the platform fee.
// coursePrice is the booking total (price per sesi x jumlah sesi).
// Amounts are snapshotted by the caller and never recomputed afterwards.
func ComputePayout(coursePrice int64, feePercent float64) PayoutDetail {
	total := coursePrice
	fee := roundMoney(float64(total) * feePercent)

	return PayoutDetail{
		CoursePrice: total,
		FeePercent:  feePercent,
		FeeAmount:   fee,
		Honorarium:  total - fee,
	}
}
