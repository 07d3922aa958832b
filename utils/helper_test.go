package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMonthsBetween(t *testing.T) {
	asOf := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		from time.Time
		want int
	}{
		{time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), 1},
		// Day-of-month not yet reached: month does not count.
		{time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), 60},
		// Future dates never go negative.
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, c := range cases {
		if got := MonthsBetween(c.from, asOf); got != c.want {
			t.Errorf("MonthsBetween(%s) = %d, want %d", c.from.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestDivOrZero(t *testing.T) {
	if got := DivOrZero(decimal.NewFromInt(10), decimal.Zero); !got.IsZero() {
		t.Errorf("DivOrZero by zero = %s, want 0", got)
	}
	if got := DivOrZero(decimal.NewFromInt(10), decimal.NewFromInt(4)); !got.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("DivOrZero(10,4) = %s, want 2.5", got)
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("UniqueSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueSlice[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
