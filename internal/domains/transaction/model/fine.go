package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const fineDay = 24 * time.Hour

// CalculateFine computes the late fee for a return: the number of days late,
// any partial day rounded up to a full day, times ratePerDay. Returns zero
// when actualReturn is on or before dueDate.
func CalculateFine(dueDate, actualReturn time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	late := actualReturn.Sub(dueDate)
	if late <= 0 {
		return decimal.Zero
	}

	days := int64(late / fineDay)
	if late%fineDay > 0 {
		days++
	}

	return ratePerDay.Mul(decimal.NewFromInt(days))
}
