package models

import (
	"context"
	"time"
)

// MemberDataService is the gorm-backed read facade the scoring engine and
// ladder evaluator pull member records through.
type MemberDataService struct{}

func NewMemberDataService() *MemberDataService {
	return &MemberDataService{}
}

func (s *MemberDataService) GetMember(ctx context.Context, memberId int) (*Member, error) {
	return GetMemberById(ctx, memberId)
}

func (s *MemberDataService) GetShareCapitalLedger(ctx context.Context, memberId int) ([]*ShareCapitalTransaction, error) {
	return GetShareCapitalLedger(ctx, memberId)
}

func (s *MemberDataService) GetSavingsLedger(ctx context.Context, memberId int) ([]*SavingsTransaction, error) {
	return GetSavingsLedger(ctx, memberId)
}

func (s *MemberDataService) GetLoans(ctx context.Context, memberId int) ([]*Loan, error) {
	return GetLoans(ctx, memberId)
}

func (s *MemberDataService) GetGuarantorshipsGiven(ctx context.Context, memberId int) ([]*LoanGuarantor, error) {
	return GetGuarantorshipsGiven(ctx, memberId)
}

func (s *MemberDataService) GetActivityAttendance(ctx context.Context, memberId int) ([]*ActivityAttendance, error) {
	return GetActivityAttendance(ctx, memberId)
}

func (s *MemberDataService) GetCommitteeService(ctx context.Context, memberId int) ([]*CommitteeService, error) {
	return GetCommitteeService(ctx, memberId)
}

func (s *MemberDataService) GetServiceUsageCount(ctx context.Context, memberId int, since time.Time) (int64, error) {
	return GetServiceUsageCount(ctx, memberId, since)
}

func (s *MemberDataService) GetReferralCount(ctx context.Context, memberId int) (int64, error) {
	return GetReferralCount(ctx, memberId)
}

func (s *MemberDataService) GetLatestCreditScore(ctx context.Context, memberId int) (*CreditScore, error) {
	return GetLatestCreditScore(ctx, memberId)
}
