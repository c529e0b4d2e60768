package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business logic constants
const (
	RepaymentStatusPending = "pending"
	RepaymentStatusPaid    = "paid"
	RepaymentStatusOverdue = "overdue"
)

// Repayment represents a scheduled loan repayment entry
type Repayment struct {
	ID              int64     `json:"id" db:"id"`
	LoanID          int64     `json:"loan_id" db:"loan_id"`
	OwnerID         uuid.UUID `json:"user_id" db:"user_id"`
	ScheduledDate   time.Time `json:"scheduled_date" db:"scheduled_date"`
	Amount          int64     `json:"amount" db:"amount"`
	PrincipalAmount int64     `json:"principal_amount" db:"principal_amount"`
	InterestAmount  int64     `json:"interest_amount" db:"interest_amount"`
	Status          string    `json:"status" db:"status"` // pending, paid, overdue
	ExpenseID       *int64    `json:"expense_id" db:"expense_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type CreateRepaymentRequest struct {
	ScheduledDate   string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	PrincipalAmount int64  `json:"principal_amount" validate:"gte=0"`
	InterestAmount  int64  `json:"interest_amount" validate:"gte=0"`
	Status          string `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	ExpenseID       *int64 `json:"expense_id"`
}

type MarkRepaymentPaidRequest struct {
	PaymentDate *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	ExpenseName *string `json:"expense_name" validate:"omitempty,min=1,max=255"`
	BudgetID    *int64  `json:"budget_id"`
	TagID       *int64  `json:"tag_id"`
}
