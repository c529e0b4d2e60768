package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type balanceRepository struct {
	db sqlx.ExtContext
}

func NewBalanceRepository(db sqlx.ExtContext) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) PreviousBalance(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	query := `
		SELECT balance
		FROM balance_history
		WHERE user_id = $1 AND date < $2
		ORDER BY date DESC
		LIMIT 1
	`

	var balance int64
	err := r.db.QueryRowxContext(ctx, query, ownerID, day).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, record *domain.DailyBalance) error {
	query := `
		INSERT INTO balance_history (user_id, date, total_income, total_expense, balance)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE
		SET total_income = EXCLUDED.total_income,
			total_expense = EXCLUDED.total_expense,
			balance = EXCLUDED.balance,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		record.OwnerID,
		record.Date,
		record.TotalIncome,
		record.TotalExpense,
		record.Balance,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *balanceRepository) List(ctx context.Context, ownerID uuid.UUID, start, end *time.Time) ([]*domain.DailyBalance, error) {
	where := newConditions("user_id", ownerID)
	if start != nil {
		where.add("date >= ?", *start)
	}
	if end != nil {
		where.add("date <= ?", *end)
	}

	query := `
		SELECT id, user_id, date, total_income, total_expense, balance, created_at, updated_at
		FROM balance_history
		WHERE ` + where.sql() + `
		ORDER BY date DESC
	`

	records := []*domain.DailyBalance{}
	if err := sqlx.SelectContext(ctx, r.db, &records, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *balanceRepository) LatestDates(ctx context.Context) (map[uuid.UUID]time.Time, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT user_id, MAX(date) FROM balance_history GROUP BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[uuid.UUID]time.Time)
	for rows.Next() {
		var (
			ownerID uuid.UUID
			date    time.Time
		)
		if err := rows.Scan(&ownerID, &date); err != nil {
			return nil, err
		}
		latest[ownerID] = date
	}

	return latest, rows.Err()
}
