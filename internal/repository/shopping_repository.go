package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type shoppingRepository struct {
	db sqlx.ExtContext
}

func NewShoppingRepository(db sqlx.ExtContext) ShoppingRepository {
	return &shoppingRepository{db: db}
}

const shoppingItemColumns = `
	i.id, i.plan_id, i.name, i.quantity, i.uom, i.need_want, i.estimate_price,
	i.actual_price, i.is_purchased, i.is_moved_to_next, i.is_out_of_plan, i.created_at
`

func (r *shoppingRepository) CreatePlan(ctx context.Context, plan *domain.ShoppingPlan) error {
	query := `
		INSERT INTO shopping_plans (user_id, plan_date, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		plan.OwnerID,
		plan.PlanDate,
		plan.Status,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *shoppingRepository) GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlan, error) {
	query := `
		SELECT id, user_id, plan_date, status, created_at, updated_at
		FROM shopping_plans
		WHERE id = $1 AND user_id = $2
	`

	var plan domain.ShoppingPlan
	if err := sqlx.GetContext(ctx, r.db, &plan, query, id, ownerID); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *shoppingRepository) ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error) {
	where := newConditions("user_id", ownerID)
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		where.add("plan_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		where.add("plan_date <= ?", *filter.EndDate)
	}

	query := `
		SELECT id, user_id, plan_date, status, created_at, updated_at
		FROM shopping_plans
		WHERE ` + where.sql() + `
		ORDER BY plan_date DESC, created_at DESC
	`

	plans := []*domain.ShoppingPlan{}
	if err := sqlx.SelectContext(ctx, r.db, &plans, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *shoppingRepository) UpdatePlan(ctx context.Context, plan *domain.ShoppingPlan) error {
	query := `
		UPDATE shopping_plans
		SET plan_date = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		plan.ID,
		plan.OwnerID,
		plan.PlanDate,
		plan.Status,
	).Scan(&plan.UpdatedAt)
}

func (r *shoppingRepository) DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_plans WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

func (r *shoppingRepository) CreateItem(ctx context.Context, item *domain.ShoppingItem) error {
	query := `
		INSERT INTO shopping_items (plan_id, name, quantity, uom, need_want, estimate_price,
			actual_price, is_purchased, is_moved_to_next, is_out_of_plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		item.PlanID,
		item.Name,
		item.Quantity,
		item.UOM,
		item.NeedWant,
		item.EstimatePrice,
		item.ActualPrice,
		item.IsPurchased,
		item.IsMovedToNext,
		item.IsOutOfPlan,
	).Scan(&item.ID, &item.CreatedAt)
}

// GetItem retrieves an item of one of the owner's plans
func (r *shoppingRepository) GetItem(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingItem, error) {
	query := `
		SELECT ` + shoppingItemColumns + `
		FROM shopping_items i
		JOIN shopping_plans p ON p.id = i.plan_id
		WHERE i.id = $1 AND p.user_id = $2
	`

	var item domain.ShoppingItem
	if err := sqlx.GetContext(ctx, r.db, &item, query, id, ownerID); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *shoppingRepository) ListItems(ctx context.Context, planID int64) ([]*domain.ShoppingItem, error) {
	query := `
		SELECT ` + shoppingItemColumns + `
		FROM shopping_items i
		WHERE i.plan_id = $1
		ORDER BY i.created_at DESC, i.id DESC
	`

	items := []*domain.ShoppingItem{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query, planID); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *domain.ShoppingItem) error {
	query := `
		UPDATE shopping_items
		SET name = $2, quantity = $3, uom = $4, need_want = $5, estimate_price = $6,
			actual_price = $7, is_purchased = $8, is_moved_to_next = $9, is_out_of_plan = $10
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Quantity,
		item.UOM,
		item.NeedWant,
		item.EstimatePrice,
		item.ActualPrice,
		item.IsPurchased,
		item.IsMovedToNext,
		item.IsOutOfPlan,
	)
	return requireAffected(res, err)
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error {
	query := `
		DELETE FROM shopping_items i
		USING shopping_plans p
		WHERE i.id = $1 AND p.id = i.plan_id AND p.user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	return requireAffected(res, err)
}
