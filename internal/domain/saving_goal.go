package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SavingGoal struct {
	ID           int64     `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"user_id" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	TargetAmount int64     `json:"target_amount" db:"target_amount"`
	TargetDate   time.Time `json:"target_date" db:"target_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type SavingContribution struct {
	ID        int64     `json:"id" db:"id"`
	GoalID    int64     `json:"goal_id" db:"goal_id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Date      time.Time `json:"date" db:"date"`
	ExpenseID *int64    `json:"expense_id" db:"expense_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SavingGoalWithContributions struct {
	*SavingGoal
	Contributions      []*SavingContribution `json:"contributions"`
	TotalContributed   int64                 `json:"total_contributed"`
	RemainingAmount    int64                 `json:"remaining_amount"`
	ProgressPercentage decimal.Decimal       `json:"progress_percentage"`
}

type CreateSavingGoalRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	TargetAmount int64  `json:"target_amount" validate:"required,gt=0"`
	TargetDate   string `json:"target_date" validate:"required,datetime=2006-01-02"`
}

type UpdateSavingGoalRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	TargetAmount *int64  `json:"target_amount" validate:"omitempty,gt=0"`
	TargetDate   *string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateContributionRequest struct {
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	ExpenseID *int64 `json:"expense_id"`
}
