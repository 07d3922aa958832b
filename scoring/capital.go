package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

var cbuGrowthBands = []Band{
	{AtLeast: dec("0.25"), Points: 30},
	{AtLeast: dec("0.15"), Points: 24},
	{AtLeast: dec("0.10"), Points: 18},
	{AtLeast: dec("0.05"), Points: 12},
	{AtLeast: dec("0.01"), Points: 6},
}

var contributionMonthBands = []Band{
	{AtLeast: dec("12"), Points: 25},
	{AtLeast: dec("10"), Points: 20},
	{AtLeast: dec("8"), Points: 15},
	{AtLeast: dec("6"), Points: 10},
	{AtLeast: dec("3"), Points: 5},
}

var netSaverBands = []Band{
	{AtLeast: dec("3"), Points: 25},
	{AtLeast: dec("2"), Points: 20},
	{AtLeast: dec("1.5"), Points: 15},
	{AtLeast: dec("1"), Points: 10},
	{AtLeast: dec("0.5"), Points: 5},
}

// ScoreCapitalBuildUp grades the member's saving behaviour: CBU growth over
// the trailing 12 months, voluntary savings, contribution consistency, and
// the deposit-to-withdrawal ratio across both ledgers.
func (e *Engine) ScoreCapitalBuildUp(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	cbu, err := e.Data.GetShareCapitalLedger(ctx, memberId)
	if err != nil {
		return nil, err
	}
	savings, err := e.Data.GetSavingsLedger(ctx, memberId)
	if err != nil {
		return nil, err
	}

	windowStart, _ := utils.GetLastMonthsRange(asOf, 12)
	t := &tally{}

	oldBalance := balanceAt(cbu, windowStart)
	curBalance := balanceAt(cbu, asOf)
	switch {
	case oldBalance.IsZero() && curBalance.GreaterThan(decimal.Zero):
		// New CBU holder: no 12-month-old balance to grow from.
		t.add("cbu_growth", 30, 30,
			fmt.Sprintf("new CBU holder: balance 0 at %s, %s now",
				windowStart.Format("2006-01-02"), curBalance.StringFixed(2)))
	case oldBalance.IsZero():
		t.add("cbu_growth", 0, 30, "no CBU balance held in the trailing 12 months")
	default:
		growth := curBalance.Sub(oldBalance).Div(oldBalance)
		t.add("cbu_growth", gradeAtLeast(growth, cbuGrowthBands), 30,
			fmt.Sprintf("CBU grew %s over 12 months (%s to %s, full points at 25%%)",
				growth.StringFixed(4), oldBalance.StringFixed(2), curBalance.StringFixed(2)))
	}

	savingsBalance := savingsBalanceAt(savings, asOf)
	recentDeposits := 0
	for _, txn := range savings {
		if txn.Type.IsInflow() && !txn.TransactionDate.Before(windowStart) && !txn.TransactionDate.After(asOf) {
			recentDeposits++
		}
	}
	switch {
	case savingsBalance.GreaterThan(decimal.Zero) && recentDeposits > 0:
		t.add("voluntary_savings", 20, 20,
			fmt.Sprintf("savings balance %s with %d deposits in the trailing 12 months",
				savingsBalance.StringFixed(2), recentDeposits))
	case savingsBalance.GreaterThan(decimal.Zero):
		t.add("voluntary_savings", 12, 20,
			fmt.Sprintf("savings balance %s but no deposits in the trailing 12 months",
				savingsBalance.StringFixed(2)))
	case len(savings) > 0:
		t.add("voluntary_savings", 6, 20, "savings account exists but balance is zero")
	default:
		t.add("voluntary_savings", 0, 20, "no voluntary savings account")
	}

	months := contributionMonths(cbu, windowStart, asOf)
	t.add("contribution_consistency", gradeAtLeast(decimal.NewFromInt(int64(months)), contributionMonthBands), 25,
		fmt.Sprintf("CBU contributions in %d of the trailing 12 calendar months", months))

	inflow, outflow := ledgerFlows(cbu, savings, windowStart, asOf)
	switch {
	case inflow.IsZero() && outflow.IsZero():
		t.add("net_saver_ratio", 0, 25, "no ledger activity in the trailing 12 months")
	case outflow.IsZero():
		t.add("net_saver_ratio", 25, 25,
			fmt.Sprintf("deposits %s with zero withdrawals in the trailing 12 months", inflow.StringFixed(2)))
	default:
		ratio := inflow.Div(outflow)
		t.add("net_saver_ratio", gradeAtLeast(ratio, netSaverBands), 25,
			fmt.Sprintf("deposit-to-withdrawal ratio %s (%s in, %s out, full points at 3.0)",
				ratio.StringFixed(4), inflow.StringFixed(2), outflow.StringFixed(2)))
	}

	return t.result(DimensionCapitalBuildUp), nil
}

// balanceAt returns the running balance of the last CBU transaction at or
// before the cutoff. The ledger is ordered by date, ties by insertion order.
func balanceAt(txns []*models.ShareCapitalTransaction, cutoff time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range txns {
		if txn.TransactionDate.After(cutoff) {
			break
		}
		balance = txn.RunningBalance
	}
	return balance
}

func savingsBalanceAt(txns []*models.SavingsTransaction, cutoff time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range txns {
		if txn.TransactionDate.After(cutoff) {
			break
		}
		balance = txn.RunningBalance
	}
	return balance
}

// contributionMonths counts distinct calendar months in (from, asOf] that
// carry at least one CBU contribution.
func contributionMonths(txns []*models.ShareCapitalTransaction, from time.Time, asOf time.Time) int {
	seen := map[string]bool{}
	for _, txn := range txns {
		if txn.Type != models.LedgerTransactionTypeContribution {
			continue
		}
		if txn.TransactionDate.Before(from) || txn.TransactionDate.After(asOf) {
			continue
		}
		seen[txn.TransactionDate.Format("2006-01")] = true
	}
	if len(seen) > 12 {
		return 12
	}
	return len(seen)
}

func ledgerFlows(cbu []*models.ShareCapitalTransaction, savings []*models.SavingsTransaction, from time.Time, asOf time.Time) (decimal.Decimal, decimal.Decimal) {
	inflow, outflow := decimal.Zero, decimal.Zero
	for _, txn := range cbu {
		if txn.TransactionDate.Before(from) || txn.TransactionDate.After(asOf) {
			continue
		}
		if txn.Type.IsInflow() {
			inflow = inflow.Add(txn.Amount)
		} else {
			outflow = outflow.Add(txn.Amount)
		}
	}
	for _, txn := range savings {
		if txn.TransactionDate.Before(from) || txn.TransactionDate.After(asOf) {
			continue
		}
		if txn.Type.IsInflow() {
			inflow = inflow.Add(txn.Amount)
		} else {
			outflow = outflow.Add(txn.Amount)
		}
	}
	return inflow, outflow
}
