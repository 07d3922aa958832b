package main

import (
	"flag"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"bitbucket.org/mmdatafocus/coopcredit_backend/models"
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Seeds a small development dataset: one well-established member with full
// history, one thin-file member, and one guarantor with nothing but a CBU
// account. Intended for local testing only.
func main() {
	var migrate = flag.Bool("migrate", true, "run AutoMigrate before seeding")
	flag.Parse()

	logger := config.GetLogger()
	config.ConnectDatabaseWithRetry()
	if *migrate {
		if err := models.MigrateDatabase(); err != nil {
			logger.WithFields(logrus.Fields{"field": "seed-dev"}).Panic(err.Error())
		}
	}

	db := config.GetDB()
	now := time.Now().UTC()
	pmes := now.AddDate(-4, 0, 0)

	established := &models.Member{
		MemberNumber:        "M-0001",
		FirstName:           "Rosa",
		LastName:            "Villanueva",
		EmploymentType:      models.EmploymentTypeEmployed,
		MonthlyIncome:       decimal.NewFromInt(32000),
		DateOfBirth:         time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		MembershipStartDate: now.AddDate(-5, 0, 0),
		City:                "Tagum City",
		Province:            "Davao del Norte",
		Barangay:            "Magugpo East",
		PmesCompletedAt:     &pmes,
		Status:              models.MembershipStatusActive,
	}
	thinFile := &models.Member{
		MemberNumber:        "M-0002",
		FirstName:           "Daniel",
		LastName:            "Ocampo",
		EmploymentType:      models.EmploymentTypeSelfEmployed,
		MonthlyIncome:       decimal.NewFromInt(18000),
		DateOfBirth:         time.Date(1998, 11, 2, 0, 0, 0, 0, time.UTC),
		MembershipStartDate: now.AddDate(0, -4, 0),
		City:                "Panabo",
		Province:            "Davao del Norte",
		Barangay:            "San Francisco",
		Status:              models.MembershipStatusActive,
	}
	guarantor := &models.Member{
		MemberNumber:        "M-0003",
		FirstName:           "Lea",
		LastName:            "Bautista",
		EmploymentType:      models.EmploymentTypeBusinessOwner,
		MonthlyIncome:       decimal.NewFromInt(55000),
		DateOfBirth:         time.Date(1979, 7, 22, 0, 0, 0, 0, time.UTC),
		MembershipStartDate: now.AddDate(-6, 0, 0),
		City:                "Tagum City",
		Province:            "Davao del Norte",
		Barangay:            "Visayan Village",
		PmesCompletedAt:     &pmes,
		Status:              models.MembershipStatusActive,
	}
	for _, m := range []*models.Member{established, thinFile, guarantor} {
		utils.ErrorPanic(db.Create(m).Error)
	}

	// 24 months of CBU contributions for the established member.
	balance := decimal.Zero
	for i := 24; i >= 1; i-- {
		amount := decimal.NewFromInt(500)
		balance = balance.Add(amount)
		txn := &models.ShareCapitalTransaction{
			MemberId:        established.ID,
			TransactionDate: now.AddDate(0, -i, 0),
			Type:            models.LedgerTransactionTypeContribution,
			Amount:          amount,
			RunningBalance:  balance,
			AccountSubtype:  "REGULAR",
		}
		utils.ErrorPanic(db.Create(txn).Error)
	}

	// One fully repaid loan with 12 on-time payments, guaranteed by M-0003.
	maturity := now.AddDate(0, -2, 0)
	loan := &models.Loan{
		MemberId:        established.ID,
		LoanType:        "PROVIDENT",
		Principal:       decimal.NewFromInt(24000),
		Status:          models.LoanStatusPaid,
		ApplicationDate: now.AddDate(0, -15, 0),
		MaturityDate:    &maturity,
		Purpose:         "House roof repair before rainy season",
	}
	utils.ErrorPanic(db.Create(loan).Error)
	for i := 1; i <= 12; i++ {
		due := loan.ApplicationDate.AddDate(0, i, 0)
		paid := due.AddDate(0, 0, -2)
		payment := &models.LoanPayment{
			LoanId:     loan.ID,
			DueDate:    due,
			AmountDue:  decimal.NewFromInt(2000),
			AmountPaid: decimal.NewFromInt(2000),
			PaidDate:   &paid,
			Status:     models.PaymentStatusOnTime,
		}
		utils.ErrorPanic(db.Create(payment).Error)
	}
	link := &models.LoanGuarantor{
		LoanId:            loan.ID,
		GuarantorMemberId: guarantor.ID,
		GuaranteedAmount:  decimal.NewFromInt(24000),
		Status:            models.GuarantorStatusActive,
	}
	utils.ErrorPanic(db.Create(link).Error)

	// Engagement history for the established member.
	for i := 0; i < 3; i++ {
		att := &models.ActivityAttendance{
			MemberId:     established.ID,
			ActivityName: fmt.Sprintf("Annual General Assembly %d", now.Year()-i),
			Category:     models.ActivityCategoryGeneralAssembly,
			ActivityDate: now.AddDate(-i, -1, 0),
			Attended:     true,
		}
		utils.ErrorPanic(db.Create(att).Error)
	}
	committee := &models.CommitteeService{
		MemberId:  established.ID,
		Committee: "Education Committee",
		Role:      models.CommitteeRoleSecretary,
		StartDate: now.AddDate(-1, 0, 0),
		IsActive:  utils.NewTrue(),
	}
	utils.ErrorPanic(db.Create(committee).Error)

	fmt.Printf("seeded members %d, %d, %d\n", established.ID, thinFile.ID, guarantor.ID)
}
