package models

import (
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
)

// ScoreEventRecord is the transactional outbox row for credit-score events.
// It is written inside the same DB transaction as the CreditScore row and
// published to Pub/Sub asynchronously by the dispatcher after commit.
type ScoreEventRecord struct {
	ID            int        `gorm:"primary_key;index:idx_outbox_dispatch,priority:3" json:"id"`
	MemberId      int        `gorm:"index;not null" json:"member_id"`
	CreditScoreId int        `gorm:"index;not null" json:"credit_score_id"`
	ComputedAt    time.Time  `gorm:"index;not null" json:"computed_at"`
	TotalScore    int        `gorm:"not null" json:"total_score"`
	RiskCategory  string     `gorm:"size:20;not null" json:"risk_category"`
	Pathway       string     `gorm:"size:20;not null" json:"pathway"`
	ModelVersion  string     `gorm:"size:50;not null" json:"model_version"`
	Breakdown     []byte     `gorm:"type:blob" json:"breakdown"`
	IsProcessed   bool       `gorm:"index;not null" json:"is_processed"`
	// Outbox publish metadata (publish happens after commit via dispatcher).
	PublishStatus    string     `gorm:"size:20;index;not null;default:'PENDING';index:idx_outbox_dispatch,priority:1" json:"publish_status"` // PENDING|PROCESSING|PUBLISHED|FAILED|DEAD
	PublishedAt      *time.Time `gorm:"index" json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:255" json:"pubsub_message_id"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `gorm:"index;index:idx_outbox_dispatch,priority:2" json:"next_attempt_at"`
	LockedAt         *time.Time `gorm:"index" json:"locked_at"`
	LockedBy         *string    `gorm:"size:100" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`
	CorrelationId    string     `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ConvertToScoreEventMessage(record ScoreEventRecord) config.ScoreEventMessage {
	return config.ScoreEventMessage{
		ID:            record.ID,
		MemberId:      record.MemberId,
		ComputedAt:    record.ComputedAt,
		TotalScore:    record.TotalScore,
		RiskCategory:  record.RiskCategory,
		Pathway:       record.Pathway,
		ModelVersion:  record.ModelVersion,
		Breakdown:     record.Breakdown,
		CorrelationId: record.CorrelationId,
	}
}
