package ladder

import (
	"github.com/shopspring/decimal"
)

type StageName string

const (
	StagePreEntry StageName = "Pre-Entry"
	StageEntry    StageName = "Entry"
	StageLevel2   StageName = "Level 2"
	StageLevel3   StageName = "Level 3"
	StageStandard StageName = "Standard"
)

// Stage is configuration data: a tier's loan-ceiling range and the static
// requirement texts shown to members working toward it.
type Stage struct {
	Name          StageName       `json:"name"`
	MinLoanAmount decimal.Decimal `json:"min_loan_amount"`
	MaxLoanAmount decimal.Decimal `json:"max_loan_amount"`
	Requirements  []string        `json:"requirements"`
}

const (
	ReqEntryTenure     = "At least 3 months of membership"
	ReqEntryPmes       = "Completion of the Pre-Membership Education Seminar (PMES)"
	ReqEntryGuarantor  = "At least 1 guarantor"
	ReqLevel2Loan      = "At least 1 completed loan"
	ReqLevel2Tenure    = "At least 6 months of membership"
	ReqLevel3Loans     = "At least 2 completed loans"
	ReqLevel3Tenure    = "At least 12 months of membership"
	ReqLevel3Guarantor = "At least 2 active guarantors"
	ReqLevel3NoRestr   = "No restructured loans"
	ReqStandardLoans   = "At least 2 completed loans"
	ReqStandardTenure  = "At least 12 months of membership"
	ReqStandardNoDflt  = "No defaulted loans"
	ReqStandardOnTime  = "On-time payment ratio of at least 0.70"
)

// StageTable returns the ladder configuration, ordered bottom-up. Loaded once
// at process start; never member-specific.
func StageTable() []Stage {
	return []Stage{
		{
			Name:          StagePreEntry,
			MinLoanAmount: decimal.Zero,
			MaxLoanAmount: decimal.Zero,
			Requirements:  []string{ReqEntryTenure, ReqEntryPmes, ReqEntryGuarantor},
		},
		{
			Name:          StageEntry,
			MinLoanAmount: decimal.NewFromInt(5000),
			MaxLoanAmount: decimal.NewFromInt(15000),
			Requirements:  []string{ReqLevel2Loan, ReqLevel2Tenure},
		},
		{
			Name:          StageLevel2,
			MinLoanAmount: decimal.NewFromInt(15000),
			MaxLoanAmount: decimal.NewFromInt(50000),
			Requirements:  []string{ReqLevel3Loans, ReqLevel3Tenure, ReqLevel3Guarantor, ReqLevel3NoRestr},
		},
		{
			Name:          StageLevel3,
			MinLoanAmount: decimal.NewFromInt(50000),
			MaxLoanAmount: decimal.NewFromInt(150000),
			Requirements:  []string{ReqStandardLoans, ReqStandardTenure, ReqStandardNoDflt, ReqStandardOnTime},
		},
		{
			Name:          StageStandard,
			MinLoanAmount: decimal.NewFromInt(150000),
			MaxLoanAmount: decimal.NewFromInt(300000),
			Requirements:  []string{},
		},
	}
}

func stageByName(name StageName) Stage {
	for _, s := range StageTable() {
		if s.Name == name {
			return s
		}
	}
	return Stage{Name: name}
}
