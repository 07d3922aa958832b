package ladder

import (
	"testing"

	"github.com/shopspring/decimal"
)

func ratio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEvaluate_StandardIsTerminal(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:       13,
		CompletedLoanCount: 2,
		HasDefault:         false,
		OnTimeRatio:        ratio("0.75"),
	})
	if eval.CurrentStage != StageStandard {
		t.Fatalf("stage = %s, want Standard", eval.CurrentStage)
	}
	if eval.EligibleForNextStage {
		t.Error("Standard must not be eligible for a next stage")
	}
	if len(eval.NextStageRequirements) != 0 {
		t.Errorf("Standard requirements = %v, want empty", eval.NextStageRequirements)
	}
	if !eval.MaxLoanAmount.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("max loan = %s, want 300000", eval.MaxLoanAmount)
	}
}

// A brand-new member sees the complete Entry checklist, even for conditions
// they may already meet individually.
func TestEvaluate_PreEntryListsAllEntryRequirements(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:         4,
		PmesCompleted:        false,
		ActiveGuarantorCount: 0,
	})
	if eval.CurrentStage != StagePreEntry {
		t.Fatalf("stage = %s, want Pre-Entry", eval.CurrentStage)
	}
	want := []string{ReqEntryTenure, ReqEntryPmes, ReqEntryGuarantor}
	if len(eval.NextStageRequirements) != len(want) {
		t.Fatalf("requirements = %v, want %v", eval.NextStageRequirements, want)
	}
	for i, req := range want {
		if eval.NextStageRequirements[i] != req {
			t.Errorf("requirement[%d] = %q, want %q", i, eval.NextStageRequirements[i], req)
		}
	}
	if !eval.MaxLoanAmount.IsZero() {
		t.Errorf("Pre-Entry max loan = %s, want 0", eval.MaxLoanAmount)
	}
}

// Restructuring blocks Level 3 but does not push a member below Level 2.
func TestEvaluate_RestructuredMemberHoldsAtLevel2(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:         13,
		PmesCompleted:        true,
		ActiveGuarantorCount: 2,
		CompletedLoanCount:   2,
		HasRestructured:      true,
		OnTimeRatio:          ratio("0.5"),
	})
	if eval.CurrentStage != StageLevel2 {
		t.Fatalf("stage = %s, want Level 2", eval.CurrentStage)
	}
	found := false
	for _, req := range eval.NextStageRequirements {
		if req == ReqLevel3NoRestr {
			found = true
		}
	}
	if !found {
		t.Errorf("requirements %v missing %q", eval.NextStageRequirements, ReqLevel3NoRestr)
	}
}

func TestEvaluate_EntryMemberSeesUnmetLevel2Subset(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:         7,
		PmesCompleted:        true,
		ActiveGuarantorCount: 1,
		CompletedLoanCount:   0,
	})
	if eval.CurrentStage != StageEntry {
		t.Fatalf("stage = %s, want Entry", eval.CurrentStage)
	}
	// Tenure 7 already satisfies Level 2's six-month bar: only the completed
	// loan is outstanding.
	if len(eval.NextStageRequirements) != 1 || eval.NextStageRequirements[0] != ReqLevel2Loan {
		t.Errorf("requirements = %v, want [%q]", eval.NextStageRequirements, ReqLevel2Loan)
	}
}

func TestEvaluate_Level3MemberSeesUnmetStandardSubset(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:         24,
		PmesCompleted:        true,
		ActiveGuarantorCount: 2,
		CompletedLoanCount:   2,
		OnTimeRatio:          ratio("0.6"),
	})
	if eval.CurrentStage != StageLevel3 {
		t.Fatalf("stage = %s, want Level 3", eval.CurrentStage)
	}
	if len(eval.NextStageRequirements) != 1 || eval.NextStageRequirements[0] != ReqStandardOnTime {
		t.Errorf("requirements = %v, want [%q]", eval.NextStageRequirements, ReqStandardOnTime)
	}
}

func TestEvaluate_DefaultBlocksStandardOnly(t *testing.T) {
	eval := Evaluate(Inputs{
		TenureMonths:         24,
		ActiveGuarantorCount: 2,
		CompletedLoanCount:   2,
		HasDefault:           true,
		OnTimeRatio:          ratio("0.9"),
	})
	if eval.CurrentStage != StageLevel3 {
		t.Fatalf("stage = %s, want Level 3 (default only blocks Standard)", eval.CurrentStage)
	}
	if len(eval.NextStageRequirements) != 1 || eval.NextStageRequirements[0] != ReqStandardNoDflt {
		t.Errorf("requirements = %v, want [%q]", eval.NextStageRequirements, ReqStandardNoDflt)
	}
}

func TestEvaluate_TopDownFirstMatch(t *testing.T) {
	// Meets Entry and Level 2 simultaneously: classification must land on
	// the highest satisfied stage, not the first rung.
	eval := Evaluate(Inputs{
		TenureMonths:         8,
		PmesCompleted:        true,
		ActiveGuarantorCount: 1,
		CompletedLoanCount:   1,
		OnTimeRatio:          ratio("1"),
	})
	if eval.CurrentStage != StageLevel2 {
		t.Fatalf("stage = %s, want Level 2", eval.CurrentStage)
	}
}

func TestStageTable_CeilingsAscend(t *testing.T) {
	stages := StageTable()
	for i := 1; i < len(stages); i++ {
		if stages[i].MaxLoanAmount.LessThan(stages[i-1].MaxLoanAmount) {
			t.Errorf("stage %s ceiling %s below %s ceiling %s",
				stages[i].Name, stages[i].MaxLoanAmount,
				stages[i-1].Name, stages[i-1].MaxLoanAmount)
		}
	}
}
