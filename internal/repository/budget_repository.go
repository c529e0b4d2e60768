package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type budgetRepository struct {
	db sqlx.ExtContext
}

func NewBudgetRepository(db sqlx.ExtContext) BudgetRepository {
	return &budgetRepository{db: db}
}

const budgetWithSpendingQuery = `
	SELECT b.id, b.user_id, b.name, b.amount, b.icon, b.created_at, b.updated_at,
		COALESCE(SUM(e.amount), 0)::BIGINT AS spent
	FROM budgets b
	LEFT JOIN expenses e ON e.budget_id = b.id
	WHERE b.user_id = $1
`

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (user_id, name, amount, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		budget.OwnerID,
		budget.Name,
		budget.Amount,
		budget.Icon,
	).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
}

func (r *budgetRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Budget, error) {
	query := `
		SELECT id, user_id, name, amount, icon, created_at, updated_at
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`

	var budget domain.Budget
	if err := sqlx.GetContext(ctx, r.db, &budget, query, id, ownerID); err != nil {
		return nil, err
	}

	return &budget, nil
}

func (r *budgetRepository) GetWithSpending(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.BudgetWithSpending, error) {
	query := budgetWithSpendingQuery + ` AND b.id = $2 GROUP BY b.id`

	var budget domain.BudgetWithSpending
	if err := sqlx.GetContext(ctx, r.db, &budget, query, ownerID, id); err != nil {
		return nil, err
	}
	budget.Remaining = budget.Amount - budget.Spent

	return &budget, nil
}

func (r *budgetRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.BudgetWithSpending, error) {
	query := budgetWithSpendingQuery + ` GROUP BY b.id ORDER BY b.created_at DESC`

	budgets := []*domain.BudgetWithSpending{}
	if err := sqlx.SelectContext(ctx, r.db, &budgets, query, ownerID); err != nil {
		return nil, err
	}
	for _, budget := range budgets {
		budget.Remaining = budget.Amount - budget.Spent
	}

	return budgets, nil
}

func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET name = $3, amount = $4, icon = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		budget.ID,
		budget.OwnerID,
		budget.Name,
		budget.Amount,
		budget.Icon,
	).Scan(&budget.UpdatedAt)
}

func (r *budgetRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}
