package ladder

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/scoring"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

// BuildInputs assembles the classifier's fact snapshot from member records.
// The on-time ratio counts payments of completed (PAID) loans only.
func BuildInputs(ctx context.Context, data scoring.DataFacade, memberId int, asOf time.Time) (*Inputs, error) {
	member, err := data.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}
	loans, err := data.GetLoans(ctx, memberId)
	if err != nil {
		return nil, err
	}

	in := &Inputs{
		TenureMonths:  member.TenureMonthsAt(asOf),
		PmesCompleted: member.HasCompletedPmes(),
	}

	var activeGuarantorIds []int
	var paymentsTotal, paymentsOnTime int
	for _, loan := range loans {
		for _, g := range loan.Guarantors {
			if g.Status == models.GuarantorStatusActive {
				activeGuarantorIds = append(activeGuarantorIds, g.GuarantorMemberId)
			}
		}
		switch loan.Status {
		case models.LoanStatusPaid:
			in.CompletedLoanCount++
			for _, p := range loan.Payments {
				paymentsTotal++
				if p.Status == models.PaymentStatusOnTime {
					paymentsOnTime++
				}
			}
		case models.LoanStatusRestructured:
			in.HasRestructured = true
		case models.LoanStatusDefault:
			in.HasDefault = true
		}
	}
	in.ActiveGuarantorCount = len(utils.UniqueSlice(activeGuarantorIds))
	in.OnTimeRatio = utils.DivOrZero(
		decimal.NewFromInt(int64(paymentsOnTime)),
		decimal.NewFromInt(int64(paymentsTotal)))

	return in, nil
}

// EvaluateMember runs the full fetch-then-classify pipeline for one member.
func EvaluateMember(ctx context.Context, data scoring.DataFacade, memberId int, asOf time.Time) (*Evaluation, error) {
	in, err := BuildInputs(ctx, data, memberId, asOf)
	if err != nil {
		return nil, err
	}
	return Evaluate(*in), nil
}
