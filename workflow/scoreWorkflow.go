package workflow

import (
	"context"
	"encoding/json"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/scoring"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"gorm.io/gorm"
)

// ComputeAndSaveScore runs the scoring engine for one member and persists
// the outcome: a new append-only CreditScore row plus its outbox event in a
// single transaction. On any failure nothing is persisted.
func ComputeAndSaveScore(ctx context.Context, engine *scoring.Engine, memberId int) (*models.CreditScore, error) {
	logger := config.GetLogger()

	result, err := engine.ComputeMemberScore(ctx, memberId)
	if err != nil {
		return nil, err
	}

	breakdown, err := json.Marshal(result.Dimensions)
	if err != nil {
		config.LogError(logger, "workflow", "ComputeAndSaveScore", "marshal breakdown", memberId, err)
		return nil, err
	}

	score := &models.CreditScore{
		MemberId:      result.MemberId,
		TotalScore:    result.TotalScore,
		RiskCategory:  result.RiskCategory,
		Pathway:       result.Pathway,
		Breakdown:     breakdown,
		ModelVersion:  result.ModelVersion,
		CorrelationId: result.CorrelationId,
		ComputedAt:    result.ComputedAt,
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(score).Error; err != nil {
			return err
		}
		event := &models.ScoreEventRecord{
			MemberId:      score.MemberId,
			CreditScoreId: score.ID,
			ComputedAt:    score.ComputedAt,
			TotalScore:    score.TotalScore,
			RiskCategory:  string(score.RiskCategory),
			Pathway:       string(score.Pathway),
			ModelVersion:  score.ModelVersion,
			Breakdown:     breakdown,
			PublishStatus: models.OutboxPublishStatusPending,
			CorrelationId: score.CorrelationId,
		}
		return tx.Create(event).Error
	})
	if err != nil {
		config.LogError(logger, "workflow", "ComputeAndSaveScore", "persist score", memberId, err)
		return nil, err
	}

	// Latest-score cache: replace so guarantor lookups see the new score.
	if err := utils.RemoveRedisItem[models.CreditScore](memberId); err != nil {
		config.LogError(logger, "workflow", "ComputeAndSaveScore", "RemoveRedisItem", memberId, err)
	}
	if err := utils.StoreRedis[models.CreditScore](score, memberId); err != nil {
		config.LogError(logger, "workflow", "ComputeAndSaveScore", "StoreRedis", memberId, err)
	}

	return score, nil
}

// RescoreMembers scores a list of members sequentially, returning the count
// persisted and the first error encountered alongside how far it got.
func RescoreMembers(ctx context.Context, engine *scoring.Engine, memberIds []int) (int, error) {
	done := 0
	for _, id := range memberIds {
		select {
		case <-ctx.Done():
			return done, ctx.Err()
		default:
		}
		if _, err := ComputeAndSaveScore(ctx, engine, id); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
