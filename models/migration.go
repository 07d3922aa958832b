package models

import (
	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
)

// MigrateDatabase runs gorm AutoMigrate for every table this service owns.
// Invoked by the server on startup and by cmd tools that need a schema.
func MigrateDatabase() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Member{},
		&ShareCapitalTransaction{},
		&SavingsTransaction{},
		&Loan{},
		&LoanPayment{},
		&LoanGuarantor{},
		&ActivityAttendance{},
		&CommitteeService{},
		&ServiceUsage{},
		&Referral{},
		&CreditScore{},
		&ScoreEventRecord{},
	)
}
