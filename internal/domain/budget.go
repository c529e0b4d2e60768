package domain

import (
	"time"

	"github.com/google/uuid"
)

// Budget represents a spending envelope that expenses may be assigned to
type Budget struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Amount    int64     `json:"amount" db:"amount"`
	Icon      *string   `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type BudgetWithSpending struct {
	Budget
	Spent     int64 `json:"spent" db:"spent"`
	Remaining int64 `json:"remaining" db:"-"`
}

type CreateBudgetRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=255"`
	Amount int64   `json:"amount" validate:"required,gt=0"`
	Icon   *string `json:"icon" validate:"omitempty,max=50"`
}

type UpdateBudgetRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Amount *int64  `json:"amount" validate:"omitempty,gt=0"`
	Icon   *string `json:"icon" validate:"omitempty,max=50"`
}

// Tag is an owner-scoped label usable on both incomes and expenses
type Tag struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Color       *string   `json:"color" db:"color"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateTagRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Color       *string `json:"color" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Color       *string `json:"color" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

// Tag usage filters
const (
	TagUsedWithExpenses = "expenses"
	TagUsedWithIncomes  = "incomes"
	TagUsedWithBoth     = "both"
)

// TagFilter narrows ListTags; zero values mean "any". UsedWith keeps tags
// attached to at least one expense, one income, or one of each.
type TagFilter struct {
	BudgetID int64
	UsedWith string
}

// TagUsage summarizes the incomes and expenses carrying a tag
type TagUsage struct {
	ExpensesCount int64   `json:"expenses_count" db:"expenses_count"`
	IncomesCount  int64   `json:"incomes_count" db:"incomes_count"`
	TotalSpent    int64   `json:"total_spent" db:"total_spent"`
	TotalEarned   int64   `json:"total_earned" db:"total_earned"`
	BudgetsUsedIn []int64 `json:"budgets_used_in" db:"-"`
}

type TagWithStats struct {
	*Tag
	TagUsage
}
