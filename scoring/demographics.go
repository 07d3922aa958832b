package scoring

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
)

var incomeBands = []Band{
	{AtLeast: dec("50000"), Points: 25},
	{AtLeast: dec("30000"), Points: 20},
	{AtLeast: dec("15000"), Points: 14},
	{AtLeast: dec("8000"), Points: 8},
	{AtLeast: dec("0.01"), Points: 4},
}

var employmentPoints = map[models.EmploymentType]int{
	models.EmploymentTypeEmployed:      35,
	models.EmploymentTypeBusinessOwner: 30,
	models.EmploymentTypeSelfEmployed:  25,
	models.EmploymentTypeFarmer:        20,
	models.EmploymentTypeUnemployed:    5,
}

// ScoreDemographics grades the member's profile against static lookup
// tables: age, employment type, income bracket, and distance from the
// cooperative's headquarters.
func (e *Engine) ScoreDemographics(ctx context.Context, memberId int, asOf time.Time) (*DimensionScore, error) {
	member, err := e.Data.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}

	t := &tally{}

	age := member.AgeAt(asOf)
	t.add("age_band", gradeAge(age), 25, fmt.Sprintf("age %d (full points between 30 and 55)", age))

	t.add("employment_stability", employmentPoints[member.EmploymentType], 35,
		fmt.Sprintf("employment type %s", member.EmploymentType))

	t.add("income_band", gradeAtLeast(member.MonthlyIncome, incomeBands), 25,
		fmt.Sprintf("monthly income %s PHP (full points at 50000)", member.MonthlyIncome.StringFixed(2)))

	t.add(gradeProximity(member, e.Config.HeadquartersCity, e.Config.HeadquartersProvince))

	return t.result(DimensionDemographics), nil
}

func gradeAge(age int) int {
	switch {
	case age >= 30 && age <= 55:
		return 25
	case age >= 25 && age <= 60:
		return 20
	case age >= 21 && age <= 65:
		return 12
	default:
		return 5
	}
}

func gradeProximity(member *models.Member, hqCity string, hqProvince string) (string, int, int, string) {
	const name = "hq_proximity"
	switch {
	case member.City == hqCity:
		return name, 15, 15, fmt.Sprintf("resides in %s, same city as headquarters", member.City)
	case member.Province == hqProvince:
		return name, 10, 15, fmt.Sprintf("resides in %s, same province as headquarters", member.Province)
	default:
		return name, 4, 15, fmt.Sprintf("resides in %s, %s, outside the headquarters province", member.City, member.Province)
	}
}
