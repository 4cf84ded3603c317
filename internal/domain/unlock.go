package domain

// UnlockedSessionCount maps payment progress to the number of sessions a
// teacher may act on: with paidInstallments k of totalInstallments N over
// sessionCount M, sessions 1..ceil(k*M/N) are open. The mapping is
// monotonic in k and reaches M exactly when every installment is paid.
// Callers apply it one-way: a session once unlocked is never re-locked.
func UnlockedSessionCount(paidInstallments, totalInstallments, sessionCount int) int {
	if paidInstallments <= 0 || totalInstallments <= 0 || sessionCount <= 0 {
		return 0
	}
	if paidInstallments >= totalInstallments {
		return sessionCount
	}
	// integer ceil of k*M/N
	n := (paidInstallments*sessionCount + totalInstallments - 1) / totalInstallments
	if n > sessionCount {
		n = sessionCount
	}
	return n
}
