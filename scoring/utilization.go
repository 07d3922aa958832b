package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

var purposeSpecificityBands = []Band{
	{AtLeast: dec("0.9"), Points: 20},
	{AtLeast: dec("0.7"), Points: 15},
	{AtLeast: dec("0.5"), Points: 10},
	{AtLeast: dec("0.25"), Points: 5},
}

var concurrentLoanBands = []CountBand{
	{AtMost: 1, Points: 20},
	{AtMost: 2, Points: 12},
	{AtMost: 3, Points: 6},
}

var cyclingIntervalBands = []Band{
	{AtLeast: dec("6"), Points: 20},
	{AtLeast: dec("3"), Points: 12},
	{AtLeast: dec("1"), Points: 6},
}

// ScoreLoanUtilization grades how responsibly the member borrows: stated
// purposes, exposure relative to CBU, concurrent loans, early repayment, and
// how quickly new applications follow old ones. A member with no loans has
// nothing to grade and scores zero across the board.
func (e *Engine) ScoreLoanUtilization(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	loans, err := e.Data.GetLoans(ctx, memberId)
	if err != nil {
		return nil, err
	}
	cbu, err := e.Data.GetShareCapitalLedger(ctx, memberId)
	if err != nil {
		return nil, err
	}

	t := &tally{}

	if len(loans) == 0 {
		t.add("purpose_specificity", 0, 20, "no loans on record")
		t.add("loan_to_cbu_ratio", 0, 25, "no loans on record")
		t.add("concurrent_loans", 0, 20, "no loans on record")
		t.add("early_repayment", 0, 15, "no loans on record")
		t.add("application_cycling", 0, 20, "no loans on record")
		return t.result(DimensionLoanUtilization), nil
	}

	specific := 0
	for _, loan := range loans {
		if len(loan.Purpose) > 10 {
			specific++
		}
	}
	specificRate := decimal.NewFromInt(int64(specific)).Div(decimal.NewFromInt(int64(len(loans))))
	t.add("purpose_specificity", gradeAtLeast(specificRate, purposeSpecificityBands), 20,
		fmt.Sprintf("%d of %d loans carry a specific purpose (rate %s, full points at 0.90)",
			specific, len(loans), specificRate.StringFixed(4)))

	activePrincipal := decimal.Zero
	activeCount := 0
	for _, loan := range loans {
		if loan.Status.IsActive() {
			activePrincipal = activePrincipal.Add(loan.Principal)
			activeCount++
		}
	}
	cbuBalance := balanceAt(cbu, asOf)
	switch {
	case activeCount == 0:
		t.add("loan_to_cbu_ratio", 25, 25, "no active loan exposure")
	case cbuBalance.IsZero():
		t.add("loan_to_cbu_ratio", 0, 25,
			fmt.Sprintf("active principal %s against zero CBU balance", activePrincipal.StringFixed(2)))
	default:
		ratio := activePrincipal.Div(cbuBalance)
		t.add("loan_to_cbu_ratio", gradeLoanToCbu(ratio), 25,
			fmt.Sprintf("active principal %s is %sx of CBU balance %s (full points at 1.0x or below)",
				activePrincipal.StringFixed(2), ratio.StringFixed(2), cbuBalance.StringFixed(2)))
	}

	t.add("concurrent_loans", gradeAtMost(activeCount, concurrentLoanBands), 20,
		fmt.Sprintf("%d concurrent active loans (full points at 1 or fewer)", activeCount))

	early, paid := 0, 0
	for _, loan := range loans {
		if loan.Status == models.LoanStatusPaid {
			paid++
			if loan.WasRepaidEarly() {
				early++
			}
		}
	}
	switch {
	case early > 0:
		t.add("early_repayment", 15, 15, fmt.Sprintf("%d of %d completed loans repaid early", early, paid))
	case paid > 0:
		t.add("early_repayment", 8, 15, fmt.Sprintf("%d completed loans, all repaid on schedule", paid))
	default:
		t.add("early_repayment", 0, 15, "no completed loans yet")
	}

	if len(loans) == 1 {
		t.add("application_cycling", 20, 20, "single loan, no application cycling")
	} else {
		interval := averageApplicationInterval(loans)
		t.add("application_cycling", gradeAtLeast(interval, cyclingIntervalBands), 20,
			fmt.Sprintf("average %s months between loan applications (full points at 6)", interval.StringFixed(1)))
	}

	return t.result(DimensionLoanUtilization), nil
}

func gradeLoanToCbu(ratio decimal.Decimal) int {
	switch {
	case ratio.LessThanOrEqual(dec("1")):
		return 25
	case ratio.LessThanOrEqual(dec("2")):
		return 18
	case ratio.LessThanOrEqual(dec("3")):
		return 12
	case ratio.LessThanOrEqual(dec("5")):
		return 6
	default:
		return 0
	}
}

// averageApplicationInterval returns the mean months between consecutive
// application dates. Loans arrive ordered by application date.
func averageApplicationInterval(loans []*models.Loan) decimal.Decimal {
	totalMonths := 0
	for i := 1; i < len(loans); i++ {
		totalMonths += utils.MonthsBetween(loans[i-1].ApplicationDate, loans[i].ApplicationDate)
	}
	return decimal.NewFromInt(int64(totalMonths)).Div(decimal.NewFromInt(int64(len(loans) - 1)))
}
