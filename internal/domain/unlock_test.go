package domain

import "testing"

func TestUnlockedSessionCountProportional(t *testing.T) {
	cases := []struct {
		paid, total, sessions, want int
	}{
		{0, 3, 6, 0},
		{1, 3, 6, 2},
		{2, 3, 6, 4},
		{3, 3, 6, 6},
		{1, 2, 6, 3},
		{1, 3, 12, 4},
		{2, 3, 12, 8},
		{1, 2, 24, 12},
		// not evenly divisible: ceil
		{1, 3, 24, 8},
		{2, 3, 7, 5},
	}
	for _, tc := range cases {
		got := UnlockedSessionCount(tc.paid, tc.total, tc.sessions)
		if got != tc.want {
			t.Fatalf("paid=%d/%d sessions=%d: got %d, want %d", tc.paid, tc.total, tc.sessions, got, tc.want)
		}
	}
}

func TestUnlockedSessionCountFullPlan(t *testing.T) {
	if got := UnlockedSessionCount(1, 1, 12); got != 12 {
		t.Fatalf("full payment should open every session, got %d", got)
	}
}

func TestUnlockedSessionCountMonotonic(t *testing.T) {
	prev := 0
	for paid := 0; paid <= 3; paid++ {
		got := UnlockedSessionCount(paid, 3, 24)
		if got < prev {
			t.Fatalf("unlock count dropped from %d to %d at paid=%d", prev, got, paid)
		}
		prev = got
	}
	if prev != 24 {
		t.Fatalf("all paid should open 24 sessions, got %d", prev)
	}
}
