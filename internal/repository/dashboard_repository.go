package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type dashboardRepository struct {
	db sqlx.ExtContext
}

func NewDashboardRepository(db sqlx.ExtContext) DashboardRepository {
	return &dashboardRepository{db: db}
}

// BudgetSummary counts every expense of the owner as spent, budgeted or not
func (r *dashboardRepository) BudgetSummary(ctx context.Context, ownerID uuid.UUID) (domain.BudgetSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM budgets WHERE user_id = $1) AS total_budgets,
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM budgets WHERE user_id = $1) AS total_budget_amount,
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM expenses WHERE user_id = $1) AS total_spent
	`

	var summary domain.BudgetSummary
	if err := sqlx.GetContext(ctx, r.db, &summary, query, ownerID); err != nil {
		return summary, err
	}
	summary.TotalRemaining = summary.TotalBudgetAmount - summary.TotalSpent

	return summary, nil
}

func (r *dashboardRepository) IncomeExpenseSummary(ctx context.Context, ownerID uuid.UUID) (domain.IncomeExpenseSummary, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM incomes WHERE user_id = $1) AS total_income,
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM expenses WHERE user_id = $1) AS total_expense
	`

	var summary domain.IncomeExpenseSummary
	if err := sqlx.GetContext(ctx, r.db, &summary, query, ownerID); err != nil {
		return summary, err
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}

func (r *dashboardRepository) LoanSummary(ctx context.Context, ownerID uuid.UUID) (domain.LoanSummary, error) {
	query := `
		SELECT COUNT(*) AS active_loans_count, COALESCE(SUM(emi), 0)::BIGINT AS total_emi
		FROM loans
		WHERE user_id = $1 AND NOT is_paid_off
	`

	var summary domain.LoanSummary
	err := sqlx.GetContext(ctx, r.db, &summary, query, ownerID)
	return summary, err
}

func (r *dashboardRepository) SavingGoalsSummary(ctx context.Context, ownerID uuid.UUID) (domain.SavingGoalsSummary, error) {
	query := `
		SELECT COUNT(*) AS active_goals_count, COALESCE(SUM(target_amount), 0)::BIGINT AS total_target_amount
		FROM saving_goals
		WHERE user_id = $1
	`

	var summary domain.SavingGoalsSummary
	if err := sqlx.GetContext(ctx, r.db, &summary, query, ownerID); err != nil {
		return summary, err
	}

	err := r.db.QueryRowxContext(ctx,
		`SELECT COALESCE(SUM(amount), 0)::BIGINT FROM saving_contributions WHERE user_id = $1`, ownerID,
	).Scan(&summary.TotalContributed)

	return summary, err
}
