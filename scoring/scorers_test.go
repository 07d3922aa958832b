package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

// NOTE: These tests are intentionally DB-free. fakeData implements the read
// facade from in-memory maps so scorers can be validated against hand-built
// member histories.

type fakeData struct {
	members   map[int]*models.Member
	cbu       map[int][]*models.ShareCapitalTransaction
	savings   map[int][]*models.SavingsTransaction
	loans     map[int][]*models.Loan
	given     map[int][]*models.LoanGuarantor
	activity  map[int][]*models.ActivityAttendance
	committee map[int][]*models.CommitteeService
	usage     map[int]int64
	referrals map[int]int64
	scores    map[int]*models.CreditScore
}

func newFakeData() *fakeData {
	return &fakeData{
		members:   map[int]*models.Member{},
		cbu:       map[int][]*models.ShareCapitalTransaction{},
		savings:   map[int][]*models.SavingsTransaction{},
		loans:     map[int][]*models.Loan{},
		given:     map[int][]*models.LoanGuarantor{},
		activity:  map[int][]*models.ActivityAttendance{},
		committee: map[int][]*models.CommitteeService{},
		usage:     map[int]int64{},
		referrals: map[int]int64{},
		scores:    map[int]*models.CreditScore{},
	}
}

func (f *fakeData) GetMember(ctx context.Context, id int) (*models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return m, nil
}

func (f *fakeData) GetShareCapitalLedger(ctx context.Context, id int) ([]*models.ShareCapitalTransaction, error) {
	return f.cbu[id], nil
}

func (f *fakeData) GetSavingsLedger(ctx context.Context, id int) ([]*models.SavingsTransaction, error) {
	return f.savings[id], nil
}

func (f *fakeData) GetLoans(ctx context.Context, id int) ([]*models.Loan, error) {
	return f.loans[id], nil
}

func (f *fakeData) GetGuarantorshipsGiven(ctx context.Context, id int) ([]*models.LoanGuarantor, error) {
	return f.given[id], nil
}

func (f *fakeData) GetActivityAttendance(ctx context.Context, id int) ([]*models.ActivityAttendance, error) {
	return f.activity[id], nil
}

func (f *fakeData) GetCommitteeService(ctx context.Context, id int) ([]*models.CommitteeService, error) {
	return f.committee[id], nil
}

func (f *fakeData) GetServiceUsageCount(ctx context.Context, id int, since time.Time) (int64, error) {
	return f.usage[id], nil
}

func (f *fakeData) GetReferralCount(ctx context.Context, id int) (int64, error) {
	return f.referrals[id], nil
}

func (f *fakeData) GetLatestCreditScore(ctx context.Context, id int) (*models.CreditScore, error) {
	return f.scores[id], nil
}

func testEngine(data DataFacade) *Engine {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return NewEngine(data, cfg)
}

func subScore(t *testing.T, ds *DimensionScore, name string) SubScore {
	t.Helper()
	for _, s := range ds.SubScores {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("dimension %s has no sub-score %q", ds.Dimension, name)
	return SubScore{}
}

func checkSubScoreSum(t *testing.T, ds *DimensionScore) {
	t.Helper()
	sum := 0
	for _, s := range ds.SubScores {
		if s.Value < 0 || s.Value > s.MaxPoints {
			t.Errorf("%s/%s = %d outside [0,%d]", ds.Dimension, s.Name, s.Value, s.MaxPoints)
		}
		if s.Details == "" {
			t.Errorf("%s/%s has empty details", ds.Dimension, s.Name)
		}
		sum += s.Value
	}
	if sum != ds.Score {
		t.Errorf("%s sub-scores sum to %d, score is %d", ds.Dimension, sum, ds.Score)
	}
	if ds.Score < 0 || ds.Score > 100 {
		t.Errorf("%s score %d outside [0,100]", ds.Dimension, ds.Score)
	}
}

func perfectPaymentLoan(memberId int, asOf time.Time, count int) *models.Loan {
	maturity := asOf.AddDate(0, -1, 0)
	loan := &models.Loan{
		ID:              1,
		MemberId:        memberId,
		LoanType:        "PROVIDENT",
		Principal:       decimal.NewFromInt(40000),
		Status:          models.LoanStatusPaid,
		ApplicationDate: asOf.AddDate(-2, 0, 0),
		MaturityDate:    &maturity,
		Purpose:         "Sari-sari store inventory expansion",
	}
	for i := 1; i <= count; i++ {
		due := loan.ApplicationDate.AddDate(0, i, 0)
		paid := due.AddDate(0, 0, -1)
		loan.Payments = append(loan.Payments, models.LoanPayment{
			ID:         i,
			LoanId:     loan.ID,
			DueDate:    due,
			AmountDue:  decimal.NewFromInt(2000),
			AmountPaid: decimal.NewFromInt(2000),
			PaidDate:   &paid,
			Status:     models.PaymentStatusOnTime,
		})
	}
	return loan
}

// A flawless borrower maxes every repayment sub-score: 35+25+20+20 = 100.
func TestScoreRepaymentHistory_PerfectBorrower(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.loans[1] = []*models.Loan{perfectPaymentLoan(1, asOf, 20)}

	ds, err := testEngine(data).ScoreRepaymentHistory(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreRepaymentHistory: %v", err)
	}
	if ds.Score != 100 {
		t.Errorf("score = %d, want 100", ds.Score)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreRepaymentHistory_NoPayments(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ds, err := testEngine(newFakeData()).ScoreRepaymentHistory(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreRepaymentHistory: %v", err)
	}
	if got := subScore(t, ds, "on_time_rate"); got.Value != 0 {
		t.Errorf("on_time_rate with no payments = %d, want 0", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreRepaymentHistory_DefaultAndRestructure(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.loans[1] = []*models.Loan{
		{ID: 1, MemberId: 1, Status: models.LoanStatusDefault, ApplicationDate: asOf.AddDate(-3, 0, 0)},
		{ID: 2, MemberId: 1, Status: models.LoanStatusRestructured, ApplicationDate: asOf.AddDate(-2, 0, 0)},
	}

	ds, err := testEngine(data).ScoreRepaymentHistory(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreRepaymentHistory: %v", err)
	}
	if got := subScore(t, ds, "restructuring_count"); got.Value != 10 {
		t.Errorf("restructuring_count = %d, want 10", got.Value)
	}
	if got := subScore(t, ds, "default_count"); got.Value != 5 {
		t.Errorf("default_count = %d, want 5", got.Value)
	}
	checkSubScoreSum(t, ds)
}

// A holder whose balance was zero 12 months ago and is positive now gets the
// full growth sub-score regardless of the absolute amount.
func TestScoreCapitalBuildUp_NewHolderRule(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.cbu[1] = []*models.ShareCapitalTransaction{
		{
			ID:              1,
			MemberId:        1,
			TransactionDate: asOf.AddDate(0, -6, 0),
			Type:            models.LedgerTransactionTypeContribution,
			Amount:          decimal.NewFromInt(500),
			RunningBalance:  decimal.NewFromInt(500),
		},
	}

	ds, err := testEngine(data).ScoreCapitalBuildUp(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreCapitalBuildUp: %v", err)
	}
	if got := subScore(t, ds, "cbu_growth"); got.Value != 30 {
		t.Errorf("cbu_growth for new holder = %d, want 30", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreCapitalBuildUp_SteadyContributor(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	balance := decimal.Zero
	// 24 straight monthly contributions of 500.
	for i := 24; i >= 1; i-- {
		balance = balance.Add(decimal.NewFromInt(500))
		data.cbu[1] = append(data.cbu[1], &models.ShareCapitalTransaction{
			ID:              25 - i,
			MemberId:        1,
			TransactionDate: asOf.AddDate(0, -i, 0),
			Type:            models.LedgerTransactionTypeContribution,
			Amount:          decimal.NewFromInt(500),
			RunningBalance:  balance,
		})
	}

	ds, err := testEngine(data).ScoreCapitalBuildUp(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreCapitalBuildUp: %v", err)
	}
	// 12 of 12 window months carry a contribution.
	if got := subScore(t, ds, "contribution_consistency"); got.Value != 25 {
		t.Errorf("contribution_consistency = %d, want 25", got.Value)
	}
	// Balance grew 6500 -> 12000 over the window, far past the 25% band.
	if got := subScore(t, ds, "cbu_growth"); got.Value != 30 {
		t.Errorf("cbu_growth = %d, want 30", got.Value)
	}
	// All inflow, zero withdrawals.
	if got := subScore(t, ds, "net_saver_ratio"); got.Value != 25 {
		t.Errorf("net_saver_ratio = %d, want 25", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreCooperativeEngagement_NeutralGuarantorDefault(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ds, err := testEngine(newFakeData()).ScoreCooperativeEngagement(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreCooperativeEngagement: %v", err)
	}
	if got := subScore(t, ds, "guarantor_track_record"); got.Value != 3 {
		t.Errorf("guarantor_track_record with no history = %d, want neutral 3", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreCooperativeEngagement_ActiveChairOutranksPastService(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	ended := asOf.AddDate(-1, 0, 0)
	data.committee[1] = []*models.CommitteeService{
		{ID: 1, MemberId: 1, Committee: "Audit", Role: models.CommitteeRoleMember,
			StartDate: asOf.AddDate(-3, 0, 0), EndDate: &ended, IsActive: utils.NewFalse()},
		{ID: 2, MemberId: 1, Committee: "Education", Role: models.CommitteeRoleChairperson,
			StartDate: asOf.AddDate(0, -8, 0), IsActive: utils.NewTrue()},
	}

	ds, err := testEngine(data).ScoreCooperativeEngagement(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreCooperativeEngagement: %v", err)
	}
	if got := subScore(t, ds, "committee_service"); got.Value != 15 {
		t.Errorf("committee_service = %d, want 15 for active chairperson", got.Value)
	}
}

func TestScoreMembershipMaturity_TenureAndPmes(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	pmes := asOf.AddDate(-4, 0, 0)
	data := newFakeData()
	data.members[1] = &models.Member{
		ID:                  1,
		MembershipStartDate: asOf.AddDate(-6, 0, 0),
		DateOfBirth:         time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
		PmesCompletedAt:     &pmes,
	}

	ds, err := testEngine(data).ScoreMembershipMaturity(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreMembershipMaturity: %v", err)
	}
	if got := subScore(t, ds, "tenure"); got.Value != 35 {
		t.Errorf("tenure at 72 months = %d, want 35", got.Value)
	}
	if got := subScore(t, ds, "pmes_completion"); got.Value != 15 {
		t.Errorf("pmes_completion = %d, want 15", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreMembershipMaturity_GapDetection(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.members[1] = &models.Member{
		ID:                  1,
		MembershipStartDate: asOf.AddDate(-3, 0, 0),
		DateOfBirth:         time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	// Two contributions 10 months apart, the last one recent: one gap.
	data.cbu[1] = []*models.ShareCapitalTransaction{
		{ID: 1, MemberId: 1, TransactionDate: asOf.AddDate(0, -12, 0),
			Type: models.LedgerTransactionTypeContribution,
			Amount: decimal.NewFromInt(500), RunningBalance: decimal.NewFromInt(500)},
		{ID: 2, MemberId: 1, TransactionDate: asOf.AddDate(0, -2, 0),
			Type: models.LedgerTransactionTypeContribution,
			Amount: decimal.NewFromInt(500), RunningBalance: decimal.NewFromInt(1000)},
	}

	ds, err := testEngine(data).ScoreMembershipMaturity(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreMembershipMaturity: %v", err)
	}
	if got := subScore(t, ds, "continuity_of_standing"); got.Value != 12 {
		t.Errorf("continuity_of_standing with one gap = %d, want 12", got.Value)
	}
}

// No loans means nothing to grade: the whole dimension floors at zero rather
// than awarding "no concurrent loans" style free points.
func TestScoreLoanUtilization_NoLoansScoresZero(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ds, err := testEngine(newFakeData()).ScoreLoanUtilization(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreLoanUtilization: %v", err)
	}
	if ds.Score != 0 {
		t.Errorf("score with no loans = %d, want 0", ds.Score)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreLoanUtilization_EarlyRepayment(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.loans[1] = []*models.Loan{perfectPaymentLoan(1, asOf, 12)}

	ds, err := testEngine(data).ScoreLoanUtilization(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreLoanUtilization: %v", err)
	}
	// Last payment lands before maturity.
	if got := subScore(t, ds, "early_repayment"); got.Value != 15 {
		t.Errorf("early_repayment = %d, want 15", got.Value)
	}
	// Purpose text is longer than 10 chars on the only loan.
	if got := subScore(t, ds, "purpose_specificity"); got.Value != 20 {
		t.Errorf("purpose_specificity = %d, want 20", got.Value)
	}
	if got := subScore(t, ds, "application_cycling"); got.Value != 20 {
		t.Errorf("application_cycling for a single loan = %d, want 20", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreGuarantorNetwork_NoGuarantorsScoresZero(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ds, err := testEngine(newFakeData()).ScoreGuarantorNetwork(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreGuarantorNetwork: %v", err)
	}
	if ds.Score != 0 {
		t.Errorf("score with no guarantors = %d, want 0", ds.Score)
	}
	if got := subScore(t, ds, "guarantor_creditworthiness"); got.Value != 0 {
		t.Errorf("creditworthiness with no guarantors = %d, want 0 (not the unscored default)", got.Value)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreGuarantorNetwork_UnscoredGuarantorsGetNeutralDefault(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	loan := perfectPaymentLoan(1, asOf, 12)
	loan.Guarantors = []models.LoanGuarantor{
		{ID: 1, LoanId: loan.ID, GuarantorMemberId: 2,
			GuaranteedAmount: decimal.NewFromInt(20000), Status: models.GuarantorStatusActive},
	}
	data.loans[1] = []*models.Loan{loan}
	data.members[2] = &models.Member{ID: 2, Barangay: "Magugpo East",
		DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)}

	ds, err := testEngine(data).ScoreGuarantorNetwork(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreGuarantorNetwork: %v", err)
	}
	if got := subScore(t, ds, "guarantor_creditworthiness"); got.Value != 10 {
		t.Errorf("creditworthiness with unscored guarantor = %d, want 10", got.Value)
	}
	if got := subScore(t, ds, "default_exposure"); got.Value != 15 {
		t.Errorf("default_exposure with no called guarantees = %d, want 15", got.Value)
	}
	checkSubScoreSum(t, ds)
}

// A guarantor link pointing at a nonexistent member fails the run, but must
// not surface as NotFound for the member being scored.
func TestScoreGuarantorNetwork_DanglingLinkNamesTheGuarantor(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	loan := perfectPaymentLoan(1, asOf, 12)
	loan.Guarantors = []models.LoanGuarantor{
		{ID: 1, LoanId: loan.ID, GuarantorMemberId: 99,
			GuaranteedAmount: decimal.NewFromInt(20000), Status: models.GuarantorStatusActive},
	}
	data.loans[1] = []*models.Loan{loan}

	_, err := testEngine(data).ScoreGuarantorNetwork(context.Background(), 1, asOf)
	if err == nil {
		t.Fatal("expected error for dangling guarantor link")
	}
	if errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("err = %v, must not carry the member NotFound sentinel", err)
	}
	if !strings.Contains(err.Error(), "guarantor member 99") {
		t.Errorf("err = %v, want the guarantor id named", err)
	}
}

func TestScoreDemographics_LookupTables(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.members[1] = &models.Member{
		ID:             1,
		EmploymentType: models.EmploymentTypeEmployed,
		MonthlyIncome:  decimal.NewFromInt(55000),
		DateOfBirth:    time.Date(1986, 5, 1, 0, 0, 0, 0, time.UTC), // age 40
		City:           "Tagum City",
		Province:       "Davao del Norte",
	}

	ds, err := testEngine(data).ScoreDemographics(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreDemographics: %v", err)
	}
	if ds.Score != 100 {
		t.Errorf("score = %d, want 100 for a prime-profile member", ds.Score)
	}
	checkSubScoreSum(t, ds)
}

func TestScoreDemographics_OutsideProvince(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	data := newFakeData()
	data.members[1] = &models.Member{
		ID:             1,
		EmploymentType: models.EmploymentTypeUnemployed,
		MonthlyIncome:  decimal.Zero,
		DateOfBirth:    time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC),
		City:           "Cebu City",
		Province:       "Cebu",
	}

	ds, err := testEngine(data).ScoreDemographics(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("ScoreDemographics: %v", err)
	}
	// 5 (age) + 5 (unemployed) + 0 (income) + 4 (proximity)
	if ds.Score != 14 {
		t.Errorf("score = %d, want 14", ds.Score)
	}
	checkSubScoreSum(t, ds)
}
