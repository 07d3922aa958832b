package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
)

// ActivityAttendance records a member's invitation to a cooperative activity
// and whether they showed up.
type ActivityAttendance struct {
	ID           int              `gorm:"primary_key" json:"id"`
	MemberId     int              `gorm:"index;not null" json:"member_id"`
	ActivityName string           `gorm:"size:150;not null" json:"activity_name"`
	Category     ActivityCategory `gorm:"index;size:30;not null" json:"category"`
	ActivityDate time.Time        `gorm:"index;not null" json:"activity_date"`
	Attended     bool             `gorm:"not null" json:"attended"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type CommitteeService struct {
	ID        int           `gorm:"primary_key" json:"id"`
	MemberId  int           `gorm:"index;not null" json:"member_id"`
	Committee string        `gorm:"size:100;not null" json:"committee"`
	Role      CommitteeRole `gorm:"size:30;not null" json:"role"`
	StartDate time.Time     `gorm:"not null" json:"start_date"`
	EndDate   *time.Time    `json:"end_date"`
	IsActive  *bool         `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// ServiceUsage is one use of a coop service (pharmacy, groceries, rice mill...).
type ServiceUsage struct {
	ID        int       `gorm:"primary_key" json:"id"`
	MemberId  int       `gorm:"index;not null" json:"member_id"`
	Service   string    `gorm:"size:100;not null" json:"service"`
	UsedAt    time.Time `gorm:"index;not null" json:"used_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Referral records a member bringing in a new member.
type Referral struct {
	ID               int       `gorm:"primary_key" json:"id"`
	ReferrerMemberId int       `gorm:"index;not null" json:"referrer_member_id"`
	ReferredMemberId int       `gorm:"index;not null" json:"referred_member_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func GetActivityAttendance(ctx context.Context, memberId int) ([]*ActivityAttendance, error) {
	var records []*ActivityAttendance
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("activity_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func GetCommitteeService(ctx context.Context, memberId int) ([]*CommitteeService, error) {
	var records []*CommitteeService
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Where("member_id = ?", memberId).
		Order("start_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func GetServiceUsageCount(ctx context.Context, memberId int, since time.Time) (int64, error) {
	var count int64
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&ServiceUsage{}).
		Where("member_id = ? AND used_at >= ?", memberId, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func GetReferralCount(ctx context.Context, memberId int) (int64, error) {
	var count int64
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Referral{}).
		Where("referrer_member_id = ?", memberId).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
