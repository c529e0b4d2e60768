package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"
)

type ledgerRepository struct {
	db sqlx.ExtContext
}

func NewLedgerRepository(db sqlx.ExtContext) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) SumIncomeOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	return r.sumOn(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM incomes WHERE user_id = $1 AND date = $2`, ownerID, day)
}

func (r *ledgerRepository) SumExpenseOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	return r.sumOn(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM expenses WHERE user_id = $1 AND date = $2`, ownerID, day)
}

func (r *ledgerRepository) sumOn(ctx context.Context, query string, ownerID uuid.UUID, day time.Time) (int64, error) {
	var total int64
	if err := r.db.QueryRowxContext(ctx, query, ownerID, day).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ledgerRepository) EarliestTransactionDate(ctx context.Context, ownerID uuid.UUID) (*time.Time, error) {
	query := `
		SELECT MIN(d) FROM (
			SELECT MIN(date) AS d FROM incomes WHERE user_id = $1
			UNION ALL
			SELECT MIN(date) AS d FROM expenses WHERE user_id = $1
		) AS earliest
	`

	var earliest sql.NullTime
	err := r.db.QueryRowxContext(ctx, query, ownerID).Scan(&earliest)
	return nullableTime(earliest, err)
}

func nullableTime(t sql.NullTime, err error) (*time.Time, error) {
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, nil
	}
	v := t.Time
	return &v, nil
}
