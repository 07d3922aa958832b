package scoring

import (
	"testing"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"github.com/shopspring/decimal"
)

func TestMapToScoreRange_Bounds(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"0", 300},
		{"100", 850},
		{"-5", 300},
		{"150", 850},
		{"50", 575},
		{"20", 410},
	}
	for _, c := range cases {
		got := MapToScoreRange(decimal.RequireFromString(c.raw))
		if got != c.want {
			t.Errorf("MapToScoreRange(%s) = %d, want %d", c.raw, got, c.want)
		}
	}
}

// Rounding at exact .5 boundaries is half-away-from-zero: raw 3 maps to
// 316.5 and must round up to 317, never down to 316.
func TestMapToScoreRange_HalfRoundsUp(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"3", 317},   // 316.5
		{"7", 339},   // 338.5
		{"4.5", 325}, // 324.75 rounds to 325
	}
	for _, c := range cases {
		got := MapToScoreRange(decimal.RequireFromString(c.raw))
		if got != c.want {
			t.Errorf("MapToScoreRange(%s) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestMapToScoreRange_Monotonic(t *testing.T) {
	prev := MapToScoreRange(decimal.Zero)
	for i := 1; i <= 1000; i++ {
		raw := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(10))
		got := MapToScoreRange(raw)
		if got < prev {
			t.Fatalf("MapToScoreRange not monotonic at raw=%s: %d < %d", raw, got, prev)
		}
		if got < 300 || got > 850 {
			t.Fatalf("MapToScoreRange(%s) = %d outside [300,850]", raw, got)
		}
		prev = got
	}
}

func TestGetRiskCategory_Bands(t *testing.T) {
	cases := []struct {
		score int
		want  models.RiskCategory
	}{
		{850, models.RiskCategoryExcellent},
		{750, models.RiskCategoryExcellent},
		{749, models.RiskCategoryGood},
		{650, models.RiskCategoryGood},
		{649, models.RiskCategoryFair},
		{550, models.RiskCategoryFair},
		{549, models.RiskCategoryMarginal},
		{450, models.RiskCategoryMarginal},
		{449, models.RiskCategoryHighRisk},
		{300, models.RiskCategoryHighRisk},
	}
	for _, c := range cases {
		if got := GetRiskCategory(c.score); got != c.want {
			t.Errorf("GetRiskCategory(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

// The five bands must cover [300,850] with no gaps: every score lands in
// exactly one category and category only improves as the score rises.
func TestGetRiskCategory_Contiguous(t *testing.T) {
	rank := map[models.RiskCategory]int{
		models.RiskCategoryHighRisk:  0,
		models.RiskCategoryMarginal:  1,
		models.RiskCategoryFair:      2,
		models.RiskCategoryGood:      3,
		models.RiskCategoryExcellent: 4,
	}
	prev := rank[GetRiskCategory(300)]
	for score := 301; score <= 850; score++ {
		cur, ok := rank[GetRiskCategory(score)]
		if !ok {
			t.Fatalf("GetRiskCategory(%d) returned unknown category", score)
		}
		if cur < prev {
			t.Fatalf("risk category regressed at score %d", score)
		}
		prev = cur
	}
}
