package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type incomeRepository struct {
	db sqlx.ExtContext
}

func NewIncomeRepository(db sqlx.ExtContext) IncomeRepository {
	return &incomeRepository{db: db}
}

const incomeColumns = `i.id, i.user_id, i.name, i.amount, i.category, i.tag_id, i.date, i.created_at, i.updated_at`

func (r *incomeRepository) Create(ctx context.Context, income *domain.Income) error {
	query := `
		INSERT INTO incomes (user_id, name, amount, category, tag_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		income.OwnerID,
		income.Name,
		income.Amount,
		income.Category,
		income.TagID,
		income.Date,
	).Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)
}

func (r *incomeRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes i WHERE i.id = $1 AND i.user_id = $2`

	var income domain.Income
	if err := sqlx.GetContext(ctx, r.db, &income, query, id, ownerID); err != nil {
		return nil, err
	}

	return &income, nil
}

func (r *incomeRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error) {
	where := newConditions("i.user_id", ownerID)
	if filter.Category != "" {
		where.add("i.category = ?", filter.Category)
	}
	if filter.TagID != 0 {
		where.add("i.tag_id = ?", filter.TagID)
	}
	if filter.StartDate != nil {
		where.add("i.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		where.add("i.date <= ?", *filter.EndDate)
	}

	query := `
		SELECT ` + incomeColumns + `, t.name AS tag_name, t.color AS tag_color
		FROM incomes i
		LEFT JOIN tags t ON t.id = i.tag_id
		WHERE ` + where.sql() + `
		ORDER BY i.date DESC, i.created_at DESC
	`

	incomes := []*domain.IncomeWithTag{}
	if err := sqlx.SelectContext(ctx, r.db, &incomes, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}

	return incomes, nil
}

func (r *incomeRepository) Update(ctx context.Context, income *domain.Income) error {
	query := `
		UPDATE incomes
		SET name = $3, amount = $4, category = $5, tag_id = $6, date = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		income.ID,
		income.OwnerID,
		income.Name,
		income.Amount,
		income.Category,
		income.TagID,
		income.Date,
	).Scan(&income.UpdatedAt)
}

func (r *incomeRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

// conditions accumulates AND-ed WHERE clauses written with ? placeholders
type conditions struct {
	clauses []string
	args    []interface{}
}

func newConditions(ownerColumn string, ownerID uuid.UUID) *conditions {
	c := &conditions{}
	c.add(ownerColumn+" = ?", ownerID)
	return c
}

func (c *conditions) add(clause string, args ...interface{}) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conditions) sql() string {
	return strings.Join(c.clauses, " AND ")
}

// requireAffected turns a zero-row mutation into sql.ErrNoRows
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
