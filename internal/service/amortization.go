package service

import (
	"time"

	"github.com/segyhp/finance-tracker/internal/domain"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	weeksPerYear  = decimal.NewFromInt(52)
)

// ScheduleTerms are the inputs of an amortization schedule
type ScheduleTerms struct {
	Principal   int64
	AnnualRate  decimal.Decimal // percent, e.g. 12 for 12%
	Tenure      int             // months
	Frequency   string
	Installment int64
	Start       time.Time
}

// periods returns the period count, the per-period rate and the date step.
// Weekly tenure assumes 4 weeks per month; unknown frequencies are monthly.
func (t ScheduleTerms) periods() (int, decimal.Decimal, func(time.Time) time.Time) {
	if t.Frequency == domain.FrequencyWeekly {
		return t.Tenure * 4,
			t.AnnualRate.Div(hundred).Div(weeksPerYear),
			func(d time.Time) time.Time { return d.AddDate(0, 0, 7) }
	}

	return t.Tenure,
		t.AnnualRate.Div(hundred).Div(monthsPerYear),
		func(d time.Time) time.Time { return utils.AddMonths(d, 1) }
}

// GenerateSchedule builds the pending repayment entries that retire the
// principal to exactly zero. The final period, and any period whose principal
// portion would overpay, is clamped to the remaining principal.
func GenerateSchedule(terms ScheduleTerms) ([]*domain.Repayment, error) {
	if terms.Principal <= 0 {
		return nil, customError.WrapValidation("principal must be greater than 0")
	}
	if terms.Tenure <= 0 {
		return nil, customError.WrapValidation("tenure must be greater than 0")
	}
	if terms.Installment <= 0 {
		return nil, customError.WrapValidation("installment must be greater than 0")
	}
	if terms.AnnualRate.IsNegative() {
		return nil, customError.WrapValidation("interest rate must not be negative")
	}

	count, rate, next := terms.periods()

	firstInterest := decimal.NewFromInt(terms.Principal).Mul(rate).Floor().IntPart()
	if terms.Installment <= firstInterest && count > 1 {
		return nil, customError.WrapValidation("installment does not cover the first period's interest")
	}

	remaining := terms.Principal
	date := utils.DateOf(terms.Start)
	schedule := make([]*domain.Repayment, 0, count)

	for period := 1; period <= count && remaining > 0; period++ {
		interest := decimal.NewFromInt(remaining).Mul(rate).Floor().IntPart()
		principal := terms.Installment - interest
		amount := terms.Installment

		if period == count || principal > remaining {
			principal = remaining
			amount = principal + interest
		}

		schedule = append(schedule, &domain.Repayment{
			ScheduledDate:   date,
			Amount:          amount,
			PrincipalAmount: principal,
			InterestAmount:  interest,
			Status:          domain.RepaymentStatusPending,
		})

		remaining -= principal
		date = next(date)
	}

	return schedule, nil
}
