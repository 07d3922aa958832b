package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"github.com/shopspring/decimal"
)

var onTimeRateBands = []Band{
	{AtLeast: dec("0.98"), Points: 35},
	{AtLeast: dec("0.95"), Points: 30},
	{AtLeast: dec("0.90"), Points: 25},
	{AtLeast: dec("0.80"), Points: 18},
	{AtLeast: dec("0.70"), Points: 12},
	{AtLeast: dec("0.50"), Points: 6},
	{AtLeast: dec("0"), Points: 2},
}

var lateMissedBands = []CountBand{
	{AtMost: 0, Points: 25},
	{AtMost: 2, Points: 20},
	{AtMost: 5, Points: 14},
	{AtMost: 10, Points: 8},
}

var restructureBands = []CountBand{
	{AtMost: 0, Points: 20},
	{AtMost: 1, Points: 10},
}

var defaultBands = []CountBand{
	{AtMost: 0, Points: 20},
	{AtMost: 1, Points: 5},
}

// ScoreRepaymentHistory grades how the member has serviced past and current
// loans: on-time rate, late/missed frequency, restructurings, defaults.
func (e *Engine) ScoreRepaymentHistory(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	loans, err := e.Data.GetLoans(ctx, memberId)
	if err != nil {
		return nil, err
	}

	var total, onTime, lateOrMissed int
	var restructured, defaulted int
	for _, loan := range loans {
		switch loan.Status {
		case models.LoanStatusRestructured:
			restructured++
		case models.LoanStatusDefault:
			defaulted++
		}
		for _, p := range loan.Payments {
			if p.DueDate.After(asOf) {
				continue
			}
			total++
			switch p.Status {
			case models.PaymentStatusOnTime:
				onTime++
			case models.PaymentStatusLate, models.PaymentStatusMissed:
				lateOrMissed++
			}
		}
	}

	t := &tally{}

	if total == 0 {
		// Zero payments: nothing to rate, on-time sub-score is 0 by rule.
		t.add("on_time_rate", 0, 35, "no payments recorded")
	} else {
		rate := decimal.NewFromInt(int64(onTime)).Div(decimal.NewFromInt(int64(total)))
		t.add("on_time_rate", gradeAtLeast(rate, onTimeRateBands), 35,
			fmt.Sprintf("on-time rate %s (%d of %d payments due by %s)",
				rate.StringFixed(4), onTime, total, asOf.Format("2006-01-02")))
	}

	t.add("late_missed_frequency", gradeAtMost(lateOrMissed, lateMissedBands), 25,
		fmt.Sprintf("%d late or missed payments (full points at 0, none above 10)", lateOrMissed))
	t.add("restructuring_count", gradeAtMost(restructured, restructureBands), 20,
		fmt.Sprintf("%d restructured loans (full points at 0, none above 1)", restructured))
	t.add("default_count", gradeAtMost(defaulted, defaultBands), 20,
		fmt.Sprintf("%d defaulted loans (full points at 0, none above 1)", defaulted))

	return t.result(DimensionRepaymentHistory), nil
}
