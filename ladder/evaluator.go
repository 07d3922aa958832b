package ladder

import (
	"github.com/shopspring/decimal"
)

// Inputs are the four groups of facts the ladder classifies over. They are a
// plain snapshot: the evaluator holds no state between calls and recomputes
// the stage from scratch every invocation.
type Inputs struct {
	TenureMonths         int             `json:"tenure_months"`
	PmesCompleted        bool            `json:"pmes_completed"`
	ActiveGuarantorCount int             `json:"active_guarantor_count"`
	CompletedLoanCount   int             `json:"completed_loan_count"`
	HasRestructured      bool            `json:"has_restructured"`
	HasDefault           bool            `json:"has_default"`
	OnTimeRatio          decimal.Decimal `json:"on_time_ratio"`
}

// Evaluation is the classifier's output: where the member stands, how much
// they may borrow, and what still separates them from the next stage.
type Evaluation struct {
	CurrentStage          StageName       `json:"current_stage"`
	MinLoanAmount         decimal.Decimal `json:"min_loan_amount"`
	MaxLoanAmount         decimal.Decimal `json:"max_loan_amount"`
	NextStageRequirements []string        `json:"next_stage_requirements"`
	EligibleForNextStage  bool            `json:"eligible_for_next_stage"`
}

var minOnTimeRatio = decimal.RequireFromString("0.7")

// Evaluate classifies the member top-down: the first satisfied stage wins.
// Restructured loans block Level 3 but not Level 2; a default blocks only
// Standard. Standard is terminal.
func Evaluate(in Inputs) *Evaluation {
	switch {
	case meetsStandard(in):
		return evaluation(StageStandard, nil)
	case meetsLevel3(in):
		return evaluation(StageLevel3, unmetStandard(in))
	case meetsLevel2(in):
		return evaluation(StageLevel2, unmetLevel3(in))
	case meetsEntry(in):
		return evaluation(StageEntry, unmetLevel2(in))
	default:
		// Pre-Entry members see the full Entry requirement list, not just
		// the unmet subset, so the onboarding checklist is always complete.
		return evaluation(StagePreEntry, stageByName(StagePreEntry).Requirements)
	}
}

func evaluation(name StageName, requirements []string) *Evaluation {
	stage := stageByName(name)
	if requirements == nil {
		requirements = []string{}
	}
	return &Evaluation{
		CurrentStage:          name,
		MinLoanAmount:         stage.MinLoanAmount,
		MaxLoanAmount:         stage.MaxLoanAmount,
		NextStageRequirements: requirements,
		// Standard is terminal; everywhere else an empty unmet list would
		// have promoted the member already.
		EligibleForNextStage: name != StageStandard && len(requirements) == 0,
	}
}

func meetsStandard(in Inputs) bool {
	return in.CompletedLoanCount >= 2 &&
		in.TenureMonths >= 12 &&
		!in.HasDefault &&
		in.OnTimeRatio.GreaterThanOrEqual(minOnTimeRatio)
}

func meetsLevel3(in Inputs) bool {
	return in.CompletedLoanCount >= 2 &&
		in.TenureMonths >= 12 &&
		in.ActiveGuarantorCount >= 2 &&
		!in.HasRestructured
}

func meetsLevel2(in Inputs) bool {
	return in.CompletedLoanCount >= 1 && in.TenureMonths >= 6
}

func meetsEntry(in Inputs) bool {
	return in.TenureMonths >= 3 && in.PmesCompleted && in.ActiveGuarantorCount >= 1
}

func unmetStandard(in Inputs) []string {
	var reqs []string
	if in.CompletedLoanCount < 2 {
		reqs = append(reqs, ReqStandardLoans)
	}
	if in.TenureMonths < 12 {
		reqs = append(reqs, ReqStandardTenure)
	}
	if in.HasDefault {
		reqs = append(reqs, ReqStandardNoDflt)
	}
	if in.OnTimeRatio.LessThan(minOnTimeRatio) {
		reqs = append(reqs, ReqStandardOnTime)
	}
	return reqs
}

func unmetLevel3(in Inputs) []string {
	var reqs []string
	if in.CompletedLoanCount < 2 {
		reqs = append(reqs, ReqLevel3Loans)
	}
	if in.TenureMonths < 12 {
		reqs = append(reqs, ReqLevel3Tenure)
	}
	if in.ActiveGuarantorCount < 2 {
		reqs = append(reqs, ReqLevel3Guarantor)
	}
	if in.HasRestructured {
		reqs = append(reqs, ReqLevel3NoRestr)
	}
	return reqs
}

func unmetLevel2(in Inputs) []string {
	var reqs []string
	if in.CompletedLoanCount < 1 {
		reqs = append(reqs, ReqLevel2Loan)
	}
	if in.TenureMonths < 6 {
		reqs = append(reqs, ReqLevel2Tenure)
	}
	return reqs
}
