package models

import "errors"

type EmploymentType string

const (
	EmploymentTypeEmployed      EmploymentType = "EMPLOYED"
	EmploymentTypeSelfEmployed  EmploymentType = "SELF_EMPLOYED"
	EmploymentTypeBusinessOwner EmploymentType = "BUSINESS_OWNER"
	EmploymentTypeFarmer        EmploymentType = "FARMER"
	EmploymentTypeUnemployed    EmploymentType = "UNEMPLOYED"
)

func ParseEmploymentType(str string) (EmploymentType, error) {
	employmentTypes := map[string]EmploymentType{
		"EMPLOYED":       EmploymentTypeEmployed,
		"SELF_EMPLOYED":  EmploymentTypeSelfEmployed,
		"BUSINESS_OWNER": EmploymentTypeBusinessOwner,
		"FARMER":         EmploymentTypeFarmer,
		"UNEMPLOYED":     EmploymentTypeUnemployed,
	}
	t, ok := employmentTypes[str]
	if !ok {
		return "", errors.New("invalid employment type")
	}
	return t, nil
}

type MembershipStatus string

const (
	MembershipStatusActive     MembershipStatus = "ACTIVE"
	MembershipStatusInactive   MembershipStatus = "INACTIVE"
	MembershipStatusTerminated MembershipStatus = "TERMINATED"
)

type LedgerTransactionType string

const (
	LedgerTransactionTypeContribution LedgerTransactionType = "CONTRIBUTION"
	LedgerTransactionTypeDeposit      LedgerTransactionType = "DEPOSIT"
	LedgerTransactionTypeWithdrawal   LedgerTransactionType = "WITHDRAWAL"
	LedgerTransactionTypeDividend     LedgerTransactionType = "DIVIDEND"
	LedgerTransactionTypeInterest     LedgerTransactionType = "INTEREST"
)

// IsInflow reports whether the transaction adds to the member's balance.
func (t LedgerTransactionType) IsInflow() bool {
	switch t {
	case LedgerTransactionTypeContribution, LedgerTransactionTypeDeposit,
		LedgerTransactionTypeDividend, LedgerTransactionTypeInterest:
		return true
	}
	return false
}

type LoanStatus string

const (
	LoanStatusPending      LoanStatus = "PENDING"
	LoanStatusApproved     LoanStatus = "APPROVED"
	LoanStatusCurrent      LoanStatus = "CURRENT"
	LoanStatusReleased     LoanStatus = "RELEASED"
	LoanStatusDelinquent   LoanStatus = "DELINQUENT"
	LoanStatusDefault      LoanStatus = "DEFAULT"
	LoanStatusRestructured LoanStatus = "RESTRUCTURED"
	LoanStatusPaid         LoanStatus = "PAID"
)

// HasRepaymentHistory reports whether the loan status implies repayment
// behaviour exists to evaluate. PENDING and APPROVED loans have none, so
// they do not disqualify a member from the thin-file pathway.
func (s LoanStatus) HasRepaymentHistory() bool {
	switch s {
	case LoanStatusPaid, LoanStatusCurrent, LoanStatusDelinquent,
		LoanStatusDefault, LoanStatusRestructured:
		return true
	}
	return false
}

// IsActive reports whether the loan currently counts against the member's
// concurrent-loan exposure.
func (s LoanStatus) IsActive() bool {
	switch s {
	case LoanStatusCurrent, LoanStatusReleased, LoanStatusDelinquent:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusOnTime  PaymentStatus = "ON_TIME"
	PaymentStatusLate    PaymentStatus = "LATE"
	PaymentStatusMissed  PaymentStatus = "MISSED"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

type GuarantorStatus string

const (
	GuarantorStatusActive   GuarantorStatus = "ACTIVE"
	GuarantorStatusReleased GuarantorStatus = "RELEASED"
	GuarantorStatusCalled   GuarantorStatus = "CALLED"
)

type ActivityCategory string

const (
	ActivityCategoryGeneralAssembly   ActivityCategory = "GENERAL_ASSEMBLY"
	ActivityCategoryFinancialLiteracy ActivityCategory = "FINANCIAL_LITERACY"
	ActivityCategoryVolunteer         ActivityCategory = "VOLUNTEER"
	ActivityCategoryCommunity         ActivityCategory = "COMMUNITY"
)

type CommitteeRole string

const (
	CommitteeRoleChairperson CommitteeRole = "CHAIRPERSON"
	CommitteeRoleViceChair   CommitteeRole = "VICE_CHAIR"
	CommitteeRoleSecretary   CommitteeRole = "SECRETARY"
	CommitteeRoleMember      CommitteeRole = "MEMBER"
)

type RiskCategory string

const (
	RiskCategoryExcellent RiskCategory = "EXCELLENT"
	RiskCategoryGood      RiskCategory = "GOOD"
	RiskCategoryFair      RiskCategory = "FAIR"
	RiskCategoryMarginal  RiskCategory = "MARGINAL"
	RiskCategoryHighRisk  RiskCategory = "HIGH_RISK"
)

type ScoringPathway string

const (
	ScoringPathwayStandard ScoringPathway = "STANDARD"
	ScoringPathwayThinFile ScoringPathway = "THIN_FILE"
)

const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusPublished  = "PUBLISHED"
	OutboxPublishStatusDead       = "DEAD"
)
