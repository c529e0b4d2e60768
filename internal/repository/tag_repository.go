package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type tagRepository struct {
	db sqlx.ExtContext
}

func NewTagRepository(db sqlx.ExtContext) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (user_id, name, color, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		tag.OwnerID,
		tag.Name,
		tag.Color,
		tag.Description,
	).Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
}

func (r *tagRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Tag, error) {
	query := `
		SELECT id, user_id, name, color, description, created_at, updated_at
		FROM tags
		WHERE id = $1 AND user_id = $2
	`

	var tag domain.Tag
	if err := sqlx.GetContext(ctx, r.db, &tag, query, id, ownerID); err != nil {
		return nil, err
	}

	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error) {
	where := newConditions("t.user_id", ownerID)
	if filter.BudgetID != 0 {
		where.add(`EXISTS (SELECT 1 FROM expenses e WHERE e.tag_id = t.id AND e.user_id = t.user_id AND e.budget_id = ?)`, filter.BudgetID)
	}

	usedInExpenses := `EXISTS (SELECT 1 FROM expenses e WHERE e.tag_id = t.id AND e.user_id = t.user_id)`
	usedInIncomes := `EXISTS (SELECT 1 FROM incomes i WHERE i.tag_id = t.id AND i.user_id = t.user_id)`
	switch filter.UsedWith {
	case domain.TagUsedWithExpenses:
		where.add(usedInExpenses)
	case domain.TagUsedWithIncomes:
		where.add(usedInIncomes)
	case domain.TagUsedWithBoth:
		where.add(usedInExpenses)
		where.add(usedInIncomes)
	}

	query := `
		SELECT t.id, t.user_id, t.name, t.color, t.description, t.created_at, t.updated_at
		FROM tags t
		WHERE ` + where.sql() + `
		ORDER BY t.name
	`

	tags := []*domain.Tag{}
	if err := sqlx.SelectContext(ctx, r.db, &tags, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	query := `
		UPDATE tags
		SET name = $3, color = $4, description = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		tag.ID,
		tag.OwnerID,
		tag.Name,
		tag.Color,
		tag.Description,
	).Scan(&tag.UpdatedAt)
}

func (r *tagRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

func (r *tagRepository) Usage(ctx context.Context, ownerID uuid.UUID, id int64) (domain.TagUsage, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM expenses WHERE tag_id = $1 AND user_id = $2) AS expenses_count,
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM expenses WHERE tag_id = $1 AND user_id = $2) AS total_spent,
			(SELECT COUNT(*) FROM incomes WHERE tag_id = $1 AND user_id = $2) AS incomes_count,
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM incomes WHERE tag_id = $1 AND user_id = $2) AS total_earned
	`

	var usage domain.TagUsage
	if err := sqlx.GetContext(ctx, r.db, &usage, query, id, ownerID); err != nil {
		return usage, err
	}

	var budgets pq.Int64Array
	err := r.db.QueryRowxContext(ctx, `
		SELECT COALESCE(array_agg(DISTINCT budget_id ORDER BY budget_id), '{}')
		FROM expenses
		WHERE tag_id = $1 AND user_id = $2 AND budget_id IS NOT NULL
	`, id, ownerID).Scan(&budgets)
	usage.BudgetsUsedIn = []int64(budgets)

	return usage, err
}
