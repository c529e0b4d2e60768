package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type savingGoalRepository struct {
	db sqlx.ExtContext
}

func NewSavingGoalRepository(db sqlx.ExtContext) SavingGoalRepository {
	return &savingGoalRepository{db: db}
}

const savingGoalColumns = `id, user_id, title, target_amount, target_date, created_at, updated_at`

func (r *savingGoalRepository) Create(ctx context.Context, goal *domain.SavingGoal) error {
	query := `
		INSERT INTO saving_goals (user_id, title, target_amount, target_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		goal.OwnerID,
		goal.Title,
		goal.TargetAmount,
		goal.TargetDate,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
}

func (r *savingGoalRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1 AND user_id = $2`

	var goal domain.SavingGoal
	if err := sqlx.GetContext(ctx, r.db, &goal, query, id, ownerID); err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *savingGoalRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE user_id = $1 ORDER BY created_at DESC`

	goals := []*domain.SavingGoal{}
	if err := sqlx.SelectContext(ctx, r.db, &goals, query, ownerID); err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *savingGoalRepository) Update(ctx context.Context, goal *domain.SavingGoal) error {
	query := `
		UPDATE saving_goals
		SET title = $3, target_amount = $4, target_date = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		goal.ID,
		goal.OwnerID,
		goal.Title,
		goal.TargetAmount,
		goal.TargetDate,
	).Scan(&goal.UpdatedAt)
}

func (r *savingGoalRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saving_goals WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

func (r *savingGoalRepository) CreateContribution(ctx context.Context, contribution *domain.SavingContribution) error {
	query := `
		INSERT INTO saving_contributions (goal_id, user_id, amount, date, expense_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		contribution.GoalID,
		contribution.OwnerID,
		contribution.Amount,
		contribution.Date,
		contribution.ExpenseID,
	).Scan(&contribution.ID, &contribution.CreatedAt)
}

func (r *savingGoalRepository) ListContributions(ctx context.Context, goalID int64) ([]*domain.SavingContribution, error) {
	query := `
		SELECT id, goal_id, user_id, amount, date, expense_id, created_at
		FROM saving_contributions
		WHERE goal_id = $1
		ORDER BY date DESC
	`

	contributions := []*domain.SavingContribution{}
	if err := sqlx.SelectContext(ctx, r.db, &contributions, query, goalID); err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *savingGoalRepository) DeleteContribution(ctx context.Context, ownerID uuid.UUID, id int64) error {
	query := `
		DELETE FROM saving_contributions c
		USING saving_goals g
		WHERE c.goal_id = g.id AND c.id = $1 AND g.user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	return requireAffected(res, err)
}
