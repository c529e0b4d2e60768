package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FrequencyMonthly = "monthly"
	FrequencyWeekly  = "weekly"
)

// Loan represents a loan entity. Amounts are in minor currency units.
type Loan struct {
	ID                 int64           `json:"id" db:"id"`
	OwnerID            uuid.UUID       `json:"user_id" db:"user_id"`
	Lender             string          `json:"lender" db:"lender"`
	PrincipalAmount    int64           `json:"principal_amount" db:"principal_amount"`
	RemainingPrincipal int64           `json:"remaining_principal" db:"remaining_principal"`
	InterestRate       decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TenureMonths       int             `json:"tenure_months" db:"tenure_months"`
	RepaymentFrequency string          `json:"repayment_frequency" db:"repayment_frequency"`
	EMI                int64           `json:"emi" db:"emi"`
	NextDueDate        time.Time       `json:"next_due_date" db:"next_due_date"`
	IsPaidOff          bool            `json:"is_paid_off" db:"is_paid_off"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// ApplyPrincipalPayment decrements the remaining principal, floored at zero,
// and flags the loan paid off once nothing remains.
func (l *Loan) ApplyPrincipalPayment(principal int64) {
	l.RemainingPrincipal -= principal
	if l.RemainingPrincipal < 0 {
		l.RemainingPrincipal = 0
	}
	if l.RemainingPrincipal == 0 {
		l.IsPaidOff = true
	}
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	Lender             string          `json:"lender" validate:"required,min=1,max=255"`
	PrincipalAmount    int64           `json:"principal_amount" validate:"required,gt=0"`
	RemainingPrincipal int64           `json:"remaining_principal" validate:"gte=0"`
	InterestRate       decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"`
	TenureMonths       int             `json:"tenure_months" validate:"required,gt=0"`
	RepaymentFrequency string          `json:"repayment_frequency" validate:"required"`
	EMI                int64           `json:"emi" validate:"required,gt=0"`
	NextDueDate        string          `json:"next_due_date" validate:"required,datetime=2006-01-02"`
	IsPaidOff          bool            `json:"is_paid_off"`
}

type UpdateLoanRequest struct {
	Lender             *string          `json:"lender" validate:"omitempty,min=1,max=255"`
	PrincipalAmount    *int64           `json:"principal_amount" validate:"omitempty,gt=0"`
	RemainingPrincipal *int64           `json:"remaining_principal" validate:"omitempty,gte=0"`
	InterestRate       *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	TenureMonths       *int             `json:"tenure_months" validate:"omitempty,gt=0"`
	RepaymentFrequency *string          `json:"repayment_frequency"`
	EMI                *int64           `json:"emi" validate:"omitempty,gt=0"`
	NextDueDate        *string          `json:"next_due_date" validate:"omitempty,datetime=2006-01-02"`
	IsPaidOff          *bool            `json:"is_paid_off"`
}

type LoanWithRepayments struct {
	*Loan
	Repayments []*Repayment `json:"repayments"`
	TotalPaid  int64        `json:"total_paid"`
}

type CreateLoanResponse struct {
	Loan     *Loan        `json:"loan"`
	Schedule []*Repayment `json:"schedule"`
}

type PaymentDueSummary struct {
	Count       int   `json:"count" db:"count"`
	TotalAmount int64 `json:"total_amount" db:"total_amount"`
}
