package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"github.com/shopspring/decimal"
)

// ShareCapitalTransaction is one row of a member's CBU (capital build-up)
// ledger. Append-only; ordering is by transaction date, ties broken by id
// (insertion order).
type ShareCapitalTransaction struct {
	ID              int                   `gorm:"primary_key" json:"id"`
	MemberId        int                   `gorm:"index;not null" json:"member_id"`
	TransactionDate time.Time             `gorm:"index;not null" json:"transaction_date"`
	Type            LedgerTransactionType `gorm:"size:20;not null" json:"type"`
	Amount          decimal.Decimal       `gorm:"type:decimal(14,2);not null" json:"amount"`
	RunningBalance  decimal.Decimal       `gorm:"type:decimal(14,2);not null" json:"running_balance"`
	AccountSubtype  string                `gorm:"size:30" json:"account_subtype"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

// SavingsTransaction is one row of a member's voluntary savings ledger.
type SavingsTransaction struct {
	ID              int                   `gorm:"primary_key" json:"id"`
	MemberId        int                   `gorm:"index;not null" json:"member_id"`
	TransactionDate time.Time             `gorm:"index;not null" json:"transaction_date"`
	Type            LedgerTransactionType `gorm:"size:20;not null" json:"type"`
	Amount          decimal.Decimal       `gorm:"type:decimal(14,2);not null" json:"amount"`
	RunningBalance  decimal.Decimal       `gorm:"type:decimal(14,2);not null" json:"running_balance"`
	AccountSubtype  string                `gorm:"size:30" json:"account_subtype"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

func GetShareCapitalLedger(ctx context.Context, memberId int) ([]*ShareCapitalTransaction, error) {
	var txns []*ShareCapitalTransaction
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("transaction_date ASC, id ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func GetSavingsLedger(ctx context.Context, memberId int) ([]*SavingsTransaction, error) {
	var txns []*SavingsTransaction
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("transaction_date ASC, id ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
