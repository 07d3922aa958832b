package scoring

import (
	"github.com/shopspring/decimal"
)

// All seven dimension scorers share one shape: fetch records, grade a handful
// of threshold-banded sub-scores, sum them. The band tables and the tally
// below keep that shape declarative instead of hand-duplicating control flow
// across seven files.

// Band awards Points when the graded value is >= AtLeast. Bands are declared
// best-first; the first matching band wins.
type Band struct {
	AtLeast decimal.Decimal
	Points  int
}

// gradeAtLeast grades a higher-is-better value against bands. No matching
// band means zero points.
func gradeAtLeast(value decimal.Decimal, bands []Band) int {
	for _, b := range bands {
		if value.GreaterThanOrEqual(b.AtLeast) {
			return b.Points
		}
	}
	return 0
}

// CountBand awards Points when the graded count is <= AtMost. Bands are
// declared best-first; the first matching band wins.
type CountBand struct {
	AtMost int
	Points int
}

// gradeAtMost grades a lower-is-better count against bands.
func gradeAtMost(count int, bands []CountBand) int {
	for _, b := range bands {
		if count <= b.AtMost {
			return b.Points
		}
	}
	return 0
}

// tally accumulates a dimension's sub-scores. Values are clamped into
// [0, max] so a scorer can never emit a negative or over-max sub-score.
type tally struct {
	subs []SubScore
}

func (t *tally) add(name string, value int, max int, details string) {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	t.subs = append(t.subs, SubScore{
		Name:      name,
		Value:     value,
		MaxPoints: max,
		Details:   details,
	})
}

// result returns the sub-scores and their total, which is the dimension's
// raw 0-100 score by construction (sub-score maxima sum to 100).
func (t *tally) result(dim Dimension) *DimensionScore {
	total := 0
	for _, s := range t.subs {
		total += s.Value
	}
	if total > 100 {
		total = 100
	}
	return &DimensionScore{
		Dimension:     dim,
		Score:         total,
		WeightedScore: decimal.Zero,
		SubScores:     t.subs,
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
