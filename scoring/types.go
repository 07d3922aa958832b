package scoring

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"github.com/shopspring/decimal"
)

// DataFacade is the read-only view of member records the engine scores from.
// Implemented by models.MemberDataService over gorm; tests supply fakes.
// Every call is a plain blocking request/response: retries and timeouts are
// the implementation's concern, not the engine's.
type DataFacade interface {
	GetMember(ctx context.Context, memberId int) (*models.Member, error)
	GetShareCapitalLedger(ctx context.Context, memberId int) ([]*models.ShareCapitalTransaction, error)
	GetSavingsLedger(ctx context.Context, memberId int) ([]*models.SavingsTransaction, error)
	GetLoans(ctx context.Context, memberId int) ([]*models.Loan, error)
	GetGuarantorshipsGiven(ctx context.Context, memberId int) ([]*models.LoanGuarantor, error)
	GetActivityAttendance(ctx context.Context, memberId int) ([]*models.ActivityAttendance, error)
	GetCommitteeService(ctx context.Context, memberId int) ([]*models.CommitteeService, error)
	GetServiceUsageCount(ctx context.Context, memberId int, since time.Time) (int64, error)
	GetReferralCount(ctx context.Context, memberId int) (int64, error)
	GetLatestCreditScore(ctx context.Context, memberId int) (*models.CreditScore, error)
}

type Dimension string

const (
	DimensionRepaymentHistory      Dimension = "REPAYMENT_HISTORY"
	DimensionCapitalBuildUp        Dimension = "CAPITAL_BUILD_UP"
	DimensionCooperativeEngagement Dimension = "COOPERATIVE_ENGAGEMENT"
	DimensionMembershipMaturity    Dimension = "MEMBERSHIP_MATURITY"
	DimensionLoanUtilization       Dimension = "LOAN_UTILIZATION"
	DimensionGuarantorNetwork      Dimension = "GUARANTOR_NETWORK"
	DimensionDemographics          Dimension = "DEMOGRAPHICS"
)

// AllDimensions is the canonical ordering of dimensions in results and
// weight tables.
var AllDimensions = []Dimension{
	DimensionRepaymentHistory,
	DimensionCapitalBuildUp,
	DimensionCooperativeEngagement,
	DimensionMembershipMaturity,
	DimensionLoanUtilization,
	DimensionGuarantorNetwork,
	DimensionDemographics,
}

// SubScore is one audited line item of a dimension. Details carries the raw
// inputs and the threshold that was crossed so a credit officer can verify
// the computation by hand.
type SubScore struct {
	Name      string `json:"name"`
	Value     int    `json:"value"`
	MaxPoints int    `json:"max_points"`
	Details   string `json:"details"`
}

// DimensionScore is the 0-100 outcome of a single dimension scorer.
// Sub-score values always sum to Score. Weight and WeightedScore are filled
// in by the orchestrator from the selected weight table, never by the scorer.
type DimensionScore struct {
	Dimension     Dimension       `json:"dimension"`
	Score         int             `json:"score"`
	Weight        int             `json:"weight"`
	WeightedScore decimal.Decimal `json:"weighted_score"`
	SubScores     []SubScore      `json:"sub_scores"`
}

// Result is one complete scoring run.
type Result struct {
	MemberId      int                   `json:"member_id"`
	TotalScore    int                   `json:"total_score"`
	RiskCategory  models.RiskCategory   `json:"risk_category"`
	Pathway       models.ScoringPathway `json:"pathway"`
	Dimensions    []DimensionScore      `json:"dimensions"`
	ComputedAt    time.Time             `json:"computed_at"`
	ModelVersion  string                `json:"model_version"`
	CorrelationId string                `json:"correlation_id"`
}
