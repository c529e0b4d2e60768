package domain

import (
	"time"

	"github.com/google/uuid"
)

// Income categories
const (
	IncomeCategorySalary      = "Salary"
	IncomeCategoryRental      = "Rental"
	IncomeCategoryInvestments = "Investments"
	IncomeCategoryFreelance   = "Freelance"
	IncomeCategoryGifts       = "Gifts"
	IncomeCategoryOther       = "Other"
)

// Income is a dated inflow in minor currency units
type Income struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Amount    int64     `json:"amount" db:"amount"`
	Category  string    `json:"category" db:"category"`
	TagID     *int64    `json:"tag_id" db:"tag_id"`
	Date      time.Time `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IncomeWithTag carries the display fields of the attached tag
type IncomeWithTag struct {
	Income
	TagName  *string `json:"tag_name" db:"tag_name"`
	TagColor *string `json:"tag_color" db:"tag_color"`
}

// Expense is a dated outflow in minor currency units
type Expense struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	BudgetID  *int64    `json:"budget_id" db:"budget_id"`
	TagID     *int64    `json:"tag_id" db:"tag_id"`
	Name      string    `json:"name" db:"name"`
	Amount    int64     `json:"amount" db:"amount"`
	Date      time.Time `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExpenseWithRelations carries the display fields of the budget and tag
type ExpenseWithRelations struct {
	Expense
	BudgetName *string `json:"budget_name" db:"budget_name"`
	TagName    *string `json:"tag_name" db:"tag_name"`
	TagColor   *string `json:"tag_color" db:"tag_color"`
}

type CreateIncomeRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Category string `json:"category" validate:"required,oneof=Salary Rental Investments Freelance Gifts Other"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TagID    *int64 `json:"tag_id"`
}

type UpdateIncomeRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Amount   *int64  `json:"amount" validate:"omitempty,gt=0"`
	Category *string `json:"category" validate:"omitempty,oneof=Salary Rental Investments Freelance Gifts Other"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TagID    *int64  `json:"tag_id"`
}

type CreateExpenseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	BudgetID *int64 `json:"budget_id"`
	TagID    *int64 `json:"tag_id"`
}

type UpdateExpenseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Amount   *int64  `json:"amount" validate:"omitempty,gt=0"`
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	BudgetID *int64  `json:"budget_id"`
	TagID    *int64  `json:"tag_id"`
}

// IncomeFilter narrows ListIncomes; zero values mean "any"
type IncomeFilter struct {
	Category  string
	TagID     int64
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseFilter narrows ListExpenses; zero values mean "any"
type ExpenseFilter struct {
	BudgetID  int64
	TagID     int64
	StartDate *time.Time
	EndDate   *time.Time
}

// RecalcOutcome reports the best-effort balance replay that follows a
// transaction mutation. Err is set when the replay failed; the mutation itself
// is committed regardless.
type RecalcOutcome struct {
	FromDate time.Time `json:"from_date"`
	Days     int       `json:"days"`
	Err      error     `json:"-"`
}

// OK reports whether the replay succeeded
func (o RecalcOutcome) OK() bool {
	return o.Err == nil
}
