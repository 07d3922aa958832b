package scoring

import (
	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"github.com/shopspring/decimal"
)

var (
	scoreFloor = decimal.NewFromInt(300)
	scoreSpan  = decimal.NewFromInt(550)
	hundred    = decimal.NewFromInt(100)
)

// MapToScoreRange clamps a raw 0-100 composite and maps it linearly onto the
// 300-850 range: round(300 + raw/100*550). Rounding is half-away-from-zero
// (shopspring Round semantics); the exact .5 behaviour is pinned by tests.
func MapToScoreRange(raw decimal.Decimal) int {
	if raw.LessThan(decimal.Zero) {
		raw = decimal.Zero
	}
	if raw.GreaterThan(hundred) {
		raw = hundred
	}
	mapped := scoreFloor.Add(raw.Mul(scoreSpan).Div(hundred)).Round(0)
	return int(mapped.IntPart())
}

// GetRiskCategory partitions [300,850] into five contiguous bands, inclusive
// on each band's lower bound.
func GetRiskCategory(score int) models.RiskCategory {
	switch {
	case score >= 750:
		return models.RiskCategoryExcellent
	case score >= 650:
		return models.RiskCategoryGood
	case score >= 550:
		return models.RiskCategoryFair
	case score >= 450:
		return models.RiskCategoryMarginal
	default:
		return models.RiskCategoryHighRisk
	}
}
