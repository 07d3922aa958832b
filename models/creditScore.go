package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"gorm.io/gorm"
)

// CreditScore is one persisted scoring run. Rows are append-only: a rescore
// inserts a new row and never updates a prior one, so the table doubles as
// the member's scoring history.
type CreditScore struct {
	ID            int            `gorm:"primary_key" json:"id"`
	MemberId      int            `gorm:"index;not null" json:"member_id"`
	TotalScore    int            `gorm:"not null" json:"total_score"`
	RiskCategory  RiskCategory   `gorm:"size:20;not null" json:"risk_category"`
	Pathway       ScoringPathway `gorm:"size:20;not null" json:"pathway"`
	Breakdown     []byte         `gorm:"type:json;not null" json:"breakdown"`
	ModelVersion  string         `gorm:"size:50;not null" json:"model_version"`
	CorrelationId string         `gorm:"size:64" json:"correlation_id"`
	ComputedAt    time.Time      `gorm:"index;not null" json:"computed_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// GetLatestCreditScore returns the most recent persisted score for the
// member, or nil when the member has never been scored.
func GetLatestCreditScore(ctx context.Context, memberId int) (*CreditScore, error) {
	// cache hit path
	cached, err := utils.RetrieveRedis[CreditScore](memberId)
	if err == nil && cached != nil {
		return cached, nil
	}

	var score CreditScore
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("computed_at DESC, id DESC").
		First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := utils.StoreRedis[CreditScore](&score, memberId); err != nil {
		config.LogError(config.GetLogger(), "creditScore.go", "GetLatestCreditScore", "StoreRedis", memberId, err)
	}
	return &score, nil
}

func GetCreditScoreHistory(ctx context.Context, memberId int) ([]*CreditScore, error) {
	var scores []*CreditScore
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("computed_at DESC, id DESC").
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
