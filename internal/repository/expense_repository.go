package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type expenseRepository struct {
	db sqlx.ExtContext
}

func NewExpenseRepository(db sqlx.ExtContext) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `e.id, e.user_id, e.budget_id, e.tag_id, e.name, e.amount, e.date, e.created_at, e.updated_at`

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (user_id, budget_id, tag_id, name, amount, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		expense.OwnerID,
		expense.BudgetID,
		expense.TagID,
		expense.Name,
		expense.Amount,
		expense.Date,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
}

func (r *expenseRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e WHERE e.id = $1 AND e.user_id = $2`

	var expense domain.Expense
	if err := sqlx.GetContext(ctx, r.db, &expense, query, id, ownerID); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error) {
	where := newConditions("e.user_id", ownerID)
	if filter.BudgetID != 0 {
		where.add("e.budget_id = ?", filter.BudgetID)
	}
	if filter.TagID != 0 {
		where.add("e.tag_id = ?", filter.TagID)
	}
	if filter.StartDate != nil {
		where.add("e.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		where.add("e.date <= ?", *filter.EndDate)
	}

	query := `
		SELECT ` + expenseColumns + `,
			b.name AS budget_name, t.name AS tag_name, t.color AS tag_color
		FROM expenses e
		LEFT JOIN budgets b ON b.id = e.budget_id
		LEFT JOIN tags t ON t.id = e.tag_id
		WHERE ` + where.sql() + `
		ORDER BY e.date DESC, e.created_at DESC
	`

	expenses := []*domain.ExpenseWithRelations{}
	if err := sqlx.SelectContext(ctx, r.db, &expenses, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET budget_id = $3, tag_id = $4, name = $5, amount = $6, date = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		expense.ID,
		expense.OwnerID,
		expense.BudgetID,
		expense.TagID,
		expense.Name,
		expense.Amount,
		expense.Date,
	).Scan(&expense.UpdatedAt)
}

func (r *expenseRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

func (r *expenseRepository) EarliestDateForBudget(ctx context.Context, ownerID uuid.UUID, budgetID int64) (*time.Time, error) {
	var earliest sql.NullTime
	err := r.db.QueryRowxContext(ctx,
		`SELECT MIN(date) FROM expenses WHERE user_id = $1 AND budget_id = $2`, ownerID, budgetID,
	).Scan(&earliest)
	return nullableTime(earliest, err)
}
