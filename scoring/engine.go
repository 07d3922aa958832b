package scoring

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ModelVersion tags every persisted result so historical scores remain
// interpretable after rule changes.
const ModelVersion = "coopcredit-v1.0"

type Engine struct {
	Data   DataFacade
	Config *Config
	Logger *logrus.Logger
}

func NewEngine(data DataFacade, cfg *Config) *Engine {
	return &Engine{
		Data:   data,
		Config: cfg,
		Logger: config.GetLogger(),
	}
}

type scorerFunc func(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error)

func (e *Engine) scorers() map[Dimension]scorerFunc {
	return map[Dimension]scorerFunc{
		DimensionRepaymentHistory:      e.ScoreRepaymentHistory,
		DimensionCapitalBuildUp:        e.ScoreCapitalBuildUp,
		DimensionCooperativeEngagement: e.ScoreCooperativeEngagement,
		DimensionMembershipMaturity:    e.ScoreMembershipMaturity,
		DimensionLoanUtilization:       e.ScoreLoanUtilization,
		DimensionGuarantorNetwork:      e.ScoreGuarantorNetwork,
		DimensionDemographics:          e.ScoreDemographics,
	}
}

// IsThinFile reports whether the member has no loan with repayment history.
// PENDING and APPROVED loans alone keep a member thin-file.
func (e *Engine) IsThinFile(ctx context.Context, memberId int) (bool, error) {
	loans, err := e.Data.GetLoans(ctx, memberId)
	if err != nil {
		return false, err
	}
	for _, loan := range loans {
		if loan.Status.HasRepaymentHistory() {
			return false, nil
		}
	}
	return true, nil
}

// ComputeMemberScore runs the full scoring pipeline for one member: thin-file
// test, concurrent dimension scoring with one shared as-of timestamp, weight
// application, range mapping, ceiling clamp, and risk classification. It
// writes nothing; persistence is the caller's concern.
func (e *Engine) ComputeMemberScore(ctx context.Context, memberId int) (*Result, error) {
	logger := e.Logger

	// Resolve the member up front so an unknown id fails with NotFound
	// before any scorer runs.
	if _, err := e.Data.GetMember(ctx, memberId); err != nil {
		config.LogError(logger, "scoring", "ComputeMemberScore", "resolve member", map[string]interface{}{
			"memberId": memberId,
		}, err)
		return nil, err
	}

	thinFile, err := e.IsThinFile(ctx, memberId)
	if err != nil {
		return nil, err
	}
	pathway := models.ScoringPathwayStandard
	weights := e.Config.StandardWeights
	if thinFile {
		pathway = models.ScoringPathwayThinFile
		weights = e.Config.ThinFileWeights
	}

	asOf := time.Now().UTC()

	// Fan out the seven scorers; any single failure cancels the rest and
	// fails the whole computation, never a partial dimension set.
	scored := make(map[Dimension]*DimensionScore, len(AllDimensions))
	group, groupCtx := errgroup.WithContext(ctx)
	results := make([]*DimensionScore, len(AllDimensions))
	for i, dim := range AllDimensions {
		i, scorer := i, e.scorers()[dim]
		group.Go(func() error {
			ds, err := scorer(groupCtx, memberId, asOf)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		config.LogError(logger, "scoring", "ComputeMemberScore", "dimension scoring", map[string]interface{}{
			"memberId": memberId,
			"pathway":  pathway,
		}, err)
		return nil, err
	}
	for _, ds := range results {
		scored[ds.Dimension] = ds
	}

	// The weight table is the single source of truth: override whatever the
	// scorer attached and accumulate score * weight / 100.
	raw := decimal.Zero
	dimensions := make([]DimensionScore, 0, len(AllDimensions))
	for _, dim := range AllDimensions {
		ds := scored[dim]
		ds.Weight = weights[dim]
		ds.WeightedScore = decimal.NewFromInt(int64(ds.Score)).
			Mul(decimal.NewFromInt(int64(ds.Weight))).
			Div(hundred)
		raw = raw.Add(ds.WeightedScore)
		dimensions = append(dimensions, *ds)
	}

	total := MapToScoreRange(raw)
	if thinFile && total > e.Config.ThinFileCeiling {
		total = e.Config.ThinFileCeiling
	}

	correlationId, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || correlationId == "" {
		correlationId = uuid.NewString()
	}

	result := &Result{
		MemberId:      memberId,
		TotalScore:    total,
		RiskCategory:  GetRiskCategory(total),
		Pathway:       pathway,
		Dimensions:    dimensions,
		ComputedAt:    asOf,
		ModelVersion:  ModelVersion,
		CorrelationId: correlationId,
	}

	logger.WithFields(logrus.Fields{
		"memberId":      memberId,
		"totalScore":    total,
		"riskCategory":  result.RiskCategory,
		"pathway":       pathway,
		"correlationId": correlationId,
	}).Info("member score computed")

	return result, nil
}
