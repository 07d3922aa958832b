package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Loan struct {
	ID              int             `gorm:"primary_key" json:"id"`
	MemberId        int             `gorm:"index;not null" json:"member_id"`
	LoanType        string          `gorm:"size:50;not null" json:"loan_type"`
	Principal       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"principal"`
	Status          LoanStatus      `gorm:"index;size:20;not null" json:"status"`
	ApplicationDate time.Time       `gorm:"index;not null" json:"application_date"`
	MaturityDate    *time.Time      `json:"maturity_date"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	Payments        []LoanPayment   `gorm:"foreignKey:LoanId" json:"payments"`
	Guarantors      []LoanGuarantor `gorm:"foreignKey:LoanId" json:"guarantors"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type LoanPayment struct {
	ID         int             `gorm:"primary_key" json:"id"`
	LoanId     int             `gorm:"index;not null" json:"loan_id"`
	DueDate    time.Time       `gorm:"index;not null" json:"due_date"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount_due"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount_paid"`
	PaidDate   *time.Time      `json:"paid_date"`
	Status     PaymentStatus   `gorm:"size:20;not null" json:"status"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// LoanGuarantor links a guaranteeing member to a loan.
type LoanGuarantor struct {
	ID                int             `gorm:"primary_key" json:"id"`
	LoanId            int             `gorm:"index;not null" json:"loan_id"`
	GuarantorMemberId int             `gorm:"index;not null" json:"guarantor_member_id"`
	GuaranteedAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"guaranteed_amount"`
	Status            GuarantorStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// LastPaymentDate returns the latest paid date across the loan's payments,
// nil when nothing has been paid.
func (l *Loan) LastPaymentDate() *time.Time {
	var last *time.Time
	for i := range l.Payments {
		p := l.Payments[i]
		if p.PaidDate == nil {
			continue
		}
		if last == nil || p.PaidDate.After(*last) {
			last = p.PaidDate
		}
	}
	return last
}

// WasRepaidEarly reports whether a PAID loan settled before its maturity date.
func (l *Loan) WasRepaidEarly() bool {
	if l.Status != LoanStatusPaid || l.MaturityDate == nil {
		return false
	}
	last := l.LastPaymentDate()
	return last != nil && last.Before(*l.MaturityDate)
}

func GetLoans(ctx context.Context, memberId int) ([]*Loan, error) {
	var loans []*Loan
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Preload("Payments", func(db2 *gorm.DB) *gorm.DB {
			return db2.Order("loan_payments.due_date ASC, loan_payments.id ASC")
		}).
		Preload("Guarantors").
		Order("application_date ASC, id ASC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// GetGuarantorshipsGiven returns guarantor links where the member is the guarantor.
func GetGuarantorshipsGiven(ctx context.Context, memberId int) ([]*LoanGuarantor, error) {
	var links []*LoanGuarantor
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("guarantor_member_id = ?", memberId).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
