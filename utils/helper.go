package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func UniqueSlice[T comparable](slice []T) []T {
	keys := make(map[T]bool)
	list := []T{}
	for _, entry := range slice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	var zero T
	return zero
}

// months elapsed between from and asOf, calendar-based, never negative
func MonthsBetween(from time.Time, asOf time.Time) int {
	if from.After(asOf) {
		return 0
	}
	months := (asOf.Year()-from.Year())*12 + int(asOf.Month()) - int(from.Month())
	if asOf.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func GetLastMonthsRange(asOf time.Time, months int) (time.Time, time.Time) {
	return asOf.AddDate(0, -months, 0), asOf
}

// safe division: returns zero when the denominator is zero
func DivOrZero(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
