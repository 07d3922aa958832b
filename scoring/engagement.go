package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
)

var gaAttendanceBands = []Band{
	{AtLeast: dec("0.9"), Points: 25},
	{AtLeast: dec("0.75"), Points: 20},
	{AtLeast: dec("0.5"), Points: 14},
	{AtLeast: dec("0.25"), Points: 8},
	{AtLeast: dec("0.01"), Points: 3},
}

var trainingBands = []Band{
	{AtLeast: dec("3"), Points: 20},
	{AtLeast: dec("2"), Points: 15},
	{AtLeast: dec("1"), Points: 10},
}

var patronageBands = []Band{
	{AtLeast: dec("24"), Points: 15},
	{AtLeast: dec("12"), Points: 12},
	{AtLeast: dec("6"), Points: 8},
	{AtLeast: dec("1"), Points: 4},
}

var volunteerBands = []Band{
	{AtLeast: dec("5"), Points: 10},
	{AtLeast: dec("3"), Points: 7},
	{AtLeast: dec("1"), Points: 4},
}

var referralBands = []Band{
	{AtLeast: dec("3"), Points: 5},
	{AtLeast: dec("2"), Points: 4},
	{AtLeast: dec("1"), Points: 2},
}

// ScoreCooperativeEngagement grades participation in cooperative life:
// assemblies, trainings, committee work, patronage, volunteering, standing as
// a guarantor for others, and member referrals.
func (e *Engine) ScoreCooperativeEngagement(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	attendance, err := e.Data.GetActivityAttendance(ctx, memberId)
	if err != nil {
		return nil, err
	}
	committees, err := e.Data.GetCommitteeService(ctx, memberId)
	if err != nil {
		return nil, err
	}
	windowStart, _ := utils.GetLastMonthsRange(asOf, 12)
	usageCount, err := e.Data.GetServiceUsageCount(ctx, memberId, windowStart)
	if err != nil {
		return nil, err
	}
	referralCount, err := e.Data.GetReferralCount(ctx, memberId)
	if err != nil {
		return nil, err
	}
	guarantorships, err := e.Data.GetGuarantorshipsGiven(ctx, memberId)
	if err != nil {
		return nil, err
	}

	t := &tally{}

	var gaInvited, gaAttended, trainings, volunteers int
	for _, rec := range attendance {
		if rec.ActivityDate.After(asOf) {
			continue
		}
		switch rec.Category {
		case models.ActivityCategoryGeneralAssembly:
			gaInvited++
			if rec.Attended {
				gaAttended++
			}
		case models.ActivityCategoryFinancialLiteracy:
			if rec.Attended {
				trainings++
			}
		case models.ActivityCategoryVolunteer, models.ActivityCategoryCommunity:
			if rec.Attended {
				volunteers++
			}
		}
	}

	if gaInvited == 0 {
		t.add("ga_attendance", 0, 25, "no general assemblies held during membership")
	} else {
		rate := decimal.NewFromInt(int64(gaAttended)).Div(decimal.NewFromInt(int64(gaInvited)))
		t.add("ga_attendance", gradeAtLeast(rate, gaAttendanceBands), 25,
			fmt.Sprintf("attended %d of %d general assemblies (rate %s, full points at 0.90)",
				gaAttended, gaInvited, rate.StringFixed(4)))
	}

	t.add("financial_literacy", gradeAtLeast(decimal.NewFromInt(int64(trainings)), trainingBands), 20,
		fmt.Sprintf("%d financial-literacy trainings attended (full points at 3)", trainings))

	t.add(gradeCommitteeService(committees, asOf))

	t.add("service_patronage", gradeAtLeast(decimal.NewFromInt(usageCount), patronageBands), 15,
		fmt.Sprintf("%d coop service uses in the trailing 12 months (full points at 24)", usageCount))

	t.add("volunteer_activity", gradeAtLeast(decimal.NewFromInt(int64(volunteers)), volunteerBands), 10,
		fmt.Sprintf("%d volunteer or community activities attended (full points at 5)", volunteers))

	t.add(gradeGuarantorTrack(guarantorships))

	t.add("referrals", gradeAtLeast(decimal.NewFromInt(referralCount), referralBands), 5,
		fmt.Sprintf("%d members referred (full points at 3)", referralCount))

	return t.result(DimensionCooperativeEngagement), nil
}

// gradeCommitteeService differentiates active leadership over plain
// membership over past service.
func gradeCommitteeService(committees []*models.CommitteeService, asOf time.Time) (string, int, int, string) {
	const name = "committee_service"
	best, bestDesc := 0, "no committee service"
	for _, svc := range committees {
		if svc.StartDate.After(asOf) {
			continue
		}
		active := utils.DereferencePtr(svc.IsActive) && (svc.EndDate == nil || svc.EndDate.After(asOf))
		points, desc := 0, ""
		switch {
		case active && (svc.Role == models.CommitteeRoleChairperson || svc.Role == models.CommitteeRoleViceChair):
			points, desc = 15, fmt.Sprintf("active %s of %s", svc.Role, svc.Committee)
		case active && svc.Role == models.CommitteeRoleSecretary:
			points, desc = 12, fmt.Sprintf("active secretary of %s", svc.Committee)
		case active:
			points, desc = 9, fmt.Sprintf("active member of %s", svc.Committee)
		default:
			points, desc = 5, fmt.Sprintf("past service on %s", svc.Committee)
		}
		if points > best {
			best, bestDesc = points, desc
		}
	}
	return name, best, 15, bestDesc
}

// gradeGuarantorTrack rewards members who stand for others and have never had
// a guarantee called. No history at all is neutral, not penalized.
func gradeGuarantorTrack(given []*models.LoanGuarantor) (string, int, int, string) {
	const name = "guarantor_track_record"
	if len(given) == 0 {
		return name, 3, 10, "never stood as guarantor (neutral default)"
	}
	called := 0
	for _, g := range given {
		if g.Status == models.GuarantorStatusCalled {
			called++
		}
	}
	switch {
	case called == 0 && len(given) >= 3:
		return name, 10, 10, fmt.Sprintf("%d guarantees given, none called", len(given))
	case called == 0:
		return name, 7, 10, fmt.Sprintf("%d guarantees given, none called", len(given))
	case called == 1:
		return name, 2, 10, fmt.Sprintf("%d guarantees given, 1 called", len(given))
	default:
		return name, 0, 10, fmt.Sprintf("%d guarantees given, %d called", len(given), called)
	}
}
