package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

var tenureBands = []Band{
	{AtLeast: dec("60"), Points: 35},
	{AtLeast: dec("36"), Points: 28},
	{AtLeast: dec("12"), Points: 18},
	{AtLeast: dec("6"), Points: 10},
	{AtLeast: dec("1"), Points: 4},
}

var contributionGapBands = []CountBand{
	{AtMost: 0, Points: 25},
	{AtMost: 1, Points: 12},
	{AtMost: 2, Points: 5},
}

var productCountBands = []Band{
	{AtLeast: dec("4"), Points: 25},
	{AtLeast: dec("3"), Points: 18},
	{AtLeast: dec("2"), Points: 12},
	{AtLeast: dec("1"), Points: 6},
}

// ScoreMembershipMaturity grades how long and how steadily the member has
// been part of the cooperative: tenure, continuity of contributions, PMES
// completion, and breadth of products used.
func (e *Engine) ScoreMembershipMaturity(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	member, err := e.Data.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}
	cbu, err := e.Data.GetShareCapitalLedger(ctx, memberId)
	if err != nil {
		return nil, err
	}
	savings, err := e.Data.GetSavingsLedger(ctx, memberId)
	if err != nil {
		return nil, err
	}
	loans, err := e.Data.GetLoans(ctx, memberId)
	if err != nil {
		return nil, err
	}

	t := &tally{}

	tenure := member.TenureMonthsAt(asOf)
	t.add("tenure", gradeAtLeast(decimal.NewFromInt(int64(tenure)), tenureBands), 35,
		fmt.Sprintf("%d months of membership since %s (full points at 60)",
			tenure, member.MembershipStartDate.Format("2006-01-02")))

	gaps, hasContributions := contributionGaps(cbu, asOf)
	if hasContributions {
		t.add("continuity_of_standing", gradeAtMost(gaps, contributionGapBands), 25,
			fmt.Sprintf("%d contribution gaps longer than 6 months (full points at 0)", gaps))
	} else {
		t.add("continuity_of_standing", 0, 25, "no contribution history to assess")
	}

	if member.HasCompletedPmes() {
		t.add("pmes_completion", 15, 15,
			fmt.Sprintf("PMES completed %s", member.PmesCompletedAt.Format("2006-01-02")))
	} else {
		t.add("pmes_completion", 0, 15, "PMES not completed")
	}

	products := distinctProducts(cbu, savings, loans)
	t.add("product_breadth", gradeAtLeast(decimal.NewFromInt(int64(products)), productCountBands), 25,
		fmt.Sprintf("%d distinct coop products used (full points at 4)", products))

	return t.result(DimensionMembershipMaturity), nil
}

// contributionGaps scans the sorted CBU contribution dates and counts
// silences longer than six months between consecutive contributions,
// including the stretch from the last contribution to asOf.
func contributionGaps(cbu []*models.ShareCapitalTransaction, asOf time.Time) (int, bool) {
	var dates []time.Time
	for _, txn := range cbu {
		if txn.Type == models.LedgerTransactionTypeContribution && !txn.TransactionDate.After(asOf) {
			dates = append(dates, txn.TransactionDate)
		}
	}
	if len(dates) == 0 {
		return 0, false
	}
	gaps := 0
	for i := 1; i < len(dates); i++ {
		if utils.MonthsBetween(dates[i-1], dates[i]) > 6 {
			gaps++
		}
	}
	if utils.MonthsBetween(dates[len(dates)-1], asOf) > 6 {
		gaps++
	}
	return gaps, true
}

func distinctProducts(cbu []*models.ShareCapitalTransaction, savings []*models.SavingsTransaction, loans []*models.Loan) int {
	count := 0
	if len(cbu) > 0 {
		count++
	}
	if len(savings) > 0 {
		count++
	}
	loanTypes := map[string]bool{}
	for _, loan := range loans {
		loanTypes[loan.LoanType] = true
	}
	return count + len(loanTypes)
}
