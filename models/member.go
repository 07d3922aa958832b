package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Member struct {
	ID                  int              `gorm:"primary_key" json:"id"`
	MemberNumber        string           `gorm:"index;size:30;not null" json:"member_number"`
	FirstName           string           `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName            string           `gorm:"size:100;not null" json:"last_name" binding:"required"`
	EmploymentType      EmploymentType   `gorm:"size:30;not null" json:"employment_type"`
	MonthlyIncome       decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"monthly_income"`
	DateOfBirth         time.Time        `gorm:"not null" json:"date_of_birth"`
	MembershipStartDate time.Time        `gorm:"index;not null" json:"membership_start_date"`
	City                string           `gorm:"size:100" json:"city"`
	Province            string           `gorm:"size:100" json:"province"`
	Barangay            string           `gorm:"size:100" json:"barangay"`
	PmesCompletedAt     *time.Time       `json:"pmes_completed_at"`
	Status              MembershipStatus `gorm:"index;size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// AgeAt returns the member's age in whole years at the given time.
func (m *Member) AgeAt(asOf time.Time) int {
	age := asOf.Year() - m.DateOfBirth.Year()
	if asOf.YearDay() < m.DateOfBirth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// TenureMonthsAt returns whole months of membership at the given time.
func (m *Member) TenureMonthsAt(asOf time.Time) int {
	return utils.MonthsBetween(m.MembershipStartDate, asOf)
}

func (m *Member) HasCompletedPmes() bool {
	return m.PmesCompletedAt != nil
}

func GetMemberById(ctx context.Context, id int) (*Member, error) {
	if id <= 0 {
		return nil, errors.New("member id is required")
	}

	// cache hit path
	cached, err := utils.RetrieveRedis[Member](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	var member Member
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if err := utils.StoreRedis[Member](&member, member.ID); err != nil {
		config.LogError(config.GetLogger(), "member.go", "GetMemberById", "StoreRedis", member.ID, err)
	}
	return &member, nil
}

// GetActiveMemberIds returns ids of all ACTIVE members, ordered for stable batch runs.
func GetActiveMemberIds(ctx context.Context) ([]int, error) {
	var ids []int
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Member{}).
		Where("status = ?", MembershipStatusActive).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
