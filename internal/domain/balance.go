package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyBalance is the ledger row for one owner and calendar date.
// Balance = previous record's Balance + TotalIncome - TotalExpense.
type DailyBalance struct {
	ID           int64     `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"user_id" db:"user_id"`
	Date         time.Time `json:"date" db:"date"`
	TotalIncome  int64     `json:"total_income" db:"total_income"`
	TotalExpense int64     `json:"total_expense" db:"total_expense"`
	Balance      int64     `json:"balance" db:"balance"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type RecalculateRequest struct {
	FromDate *string `json:"from_date" validate:"omitempty,datetime=2006-01-02"`
}

// RecalculationReport is the result of a bulk replay. FromDate is nil when the
// owner has no transactions and nothing was replayed.
type RecalculationReport struct {
	FromDate         *time.Time `json:"from_date"`
	DaysRecalculated int        `json:"days_recalculated"`
}

type BudgetSummary struct {
	TotalBudgets      int   `json:"total_budgets" db:"total_budgets"`
	TotalBudgetAmount int64 `json:"total_budget_amount" db:"total_budget_amount"`
	TotalSpent        int64 `json:"total_spent" db:"total_spent"`
	TotalRemaining    int64 `json:"total_remaining" db:"-"`
}

type IncomeExpenseSummary struct {
	TotalIncome  int64 `json:"total_income" db:"total_income"`
	TotalExpense int64 `json:"total_expense" db:"total_expense"`
	Balance      int64 `json:"balance" db:"-"`
}

type LoanSummary struct {
	ActiveLoansCount int               `json:"active_loans_count" db:"active_loans_count"`
	TotalEMI         int64             `json:"total_emi" db:"total_emi"`
	PaymentsDue      PaymentDueSummary `json:"payments_due" db:"-"`
}

type SavingGoalsSummary struct {
	ActiveGoalsCount          int             `json:"active_goals_count" db:"active_goals_count"`
	TotalTargetAmount         int64           `json:"total_target_amount" db:"total_target_amount"`
	TotalContributed          int64           `json:"total_contributed" db:"-"`
	OverallProgressPercentage decimal.Decimal `json:"overall_progress_percentage" db:"-"`
}

type DashboardSummary struct {
	Date          time.Time            `json:"date"`
	Budgets       BudgetSummary        `json:"budgets"`
	IncomeExpense IncomeExpenseSummary `json:"income_expense"`
	Loans         LoanSummary          `json:"loans"`
	SavingGoals   SavingGoalsSummary   `json:"saving_goals"`
}
