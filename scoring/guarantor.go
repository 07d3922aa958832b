package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

var activeGuarantorBands = []Band{
	{AtLeast: dec("3"), Points: 25},
	{AtLeast: dec("2"), Points: 18},
	{AtLeast: dec("1"), Points: 10},
}

var guarantorScoreBands = []Band{
	{AtLeast: dec("700"), Points: 30},
	{AtLeast: dec("650"), Points: 24},
	{AtLeast: dec("600"), Points: 18},
	{AtLeast: dec("550"), Points: 12},
	{AtLeast: dec("300"), Points: 6},
}

var diversityBands = []Band{
	{AtLeast: dec("0.75"), Points: 15},
	{AtLeast: dec("0.5"), Points: 10},
	{AtLeast: dec("0.01"), Points: 5},
}

var calledGuaranteeBands = []CountBand{
	{AtMost: 0, Points: 15},
	{AtMost: 1, Points: 7},
}

// ScoreGuarantorNetwork grades the quality of the people standing behind the
// member's loans: how many, how creditworthy, how geographically diverse, how
// reciprocal, and whether any guarantee has ever been called. A member whose
// loans carry no guarantors scores zero across the board.
func (e *Engine) ScoreGuarantorNetwork(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	loans, err := e.Data.GetLoans(ctx, memberId)
	if err != nil {
		return nil, err
	}

	var links []models.LoanGuarantor
	for _, loan := range loans {
		links = append(links, loan.Guarantors...)
	}

	t := &tally{}

	if len(links) == 0 {
		t.add("active_guarantors", 0, 25, "no guarantors on record")
		t.add("guarantor_creditworthiness", 0, 30, "no guarantors on record")
		t.add("barangay_diversity", 0, 15, "no guarantors on record")
		t.add("reciprocity", 0, 15, "no guarantors on record")
		t.add("default_exposure", 0, 15, "no guarantors on record")
		return t.result(DimensionGuarantorNetwork), nil
	}

	activeIds := map[int]bool{}
	allIds := map[int]bool{}
	called := 0
	for _, link := range links {
		allIds[link.GuarantorMemberId] = true
		switch link.Status {
		case models.GuarantorStatusActive:
			activeIds[link.GuarantorMemberId] = true
		case models.GuarantorStatusCalled:
			called++
		}
	}

	t.add("active_guarantors", gradeAtLeast(decimal.NewFromInt(int64(len(activeIds))), activeGuarantorBands), 25,
		fmt.Sprintf("%d distinct active guarantors (full points at 3)", len(activeIds)))

	guarantorIds := sortedKeys(allIds)

	scored, scoreSum := 0, decimal.Zero
	for _, id := range guarantorIds {
		score, err := e.Data.GetLatestCreditScore(ctx, id)
		if err != nil {
			return nil, err
		}
		if score != nil {
			scored++
			scoreSum = scoreSum.Add(decimal.NewFromInt(int64(score.TotalScore)))
		}
	}
	if scored == 0 {
		t.add("guarantor_creditworthiness", 10, 30, "no guarantor has been scored yet (neutral default)")
	} else {
		avg := scoreSum.Div(decimal.NewFromInt(int64(scored)))
		t.add("guarantor_creditworthiness", gradeAtLeast(avg, guarantorScoreBands), 30,
			fmt.Sprintf("average guarantor score %s across %d scored guarantors (full points at 700)",
				avg.StringFixed(0), scored))
	}

	barangays := map[string]bool{}
	for _, id := range guarantorIds {
		guarantor, err := e.Data.GetMember(ctx, id)
		if err != nil {
			// A dangling guarantor link is data corruption, not a missing
			// scored member: strip the NotFound sentinel so the failure is
			// not reported as a 404 for the member being scored.
			if errors.Is(err, utils.ErrorRecordNotFound) {
				return nil, fmt.Errorf("guarantor member %d not found", id)
			}
			return nil, err
		}
		if guarantor.Barangay != "" {
			barangays[guarantor.Barangay] = true
		}
	}
	diversity := decimal.NewFromInt(int64(len(barangays))).Div(decimal.NewFromInt(int64(len(guarantorIds))))
	t.add("barangay_diversity", gradeAtLeast(diversity, diversityBands), 15,
		fmt.Sprintf("%d unique barangays across %d guarantors (ratio %s, full points at 0.75)",
			len(barangays), len(guarantorIds), diversity.StringFixed(4)))

	mutual := 0
	for _, id := range guarantorIds {
		theirLoans, err := e.Data.GetLoans(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, loan := range theirLoans {
			found := false
			for _, g := range loan.Guarantors {
				if g.GuarantorMemberId == memberId {
					mutual++
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	switch {
	case mutual >= 2:
		t.add("reciprocity", 15, 15, fmt.Sprintf("%d mutual guarantor relationships", mutual))
	case mutual == 1:
		t.add("reciprocity", 8, 15, "1 mutual guarantor relationship")
	default:
		t.add("reciprocity", 0, 15, "no mutual guarantor relationships")
	}

	t.add("default_exposure", gradeAtMost(called, calledGuaranteeBands), 15,
		fmt.Sprintf("%d guarantees called on the member's loans (full points at 0)", called))

	return t.result(DimensionGuarantorNetwork), nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
