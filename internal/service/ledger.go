package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/sirupsen/logrus"
)

// BalanceRecalculator replays the income/expense ledger into daily balance
// records. The ledger reader and balance store are passed per call so the
// caller decides which transaction the replay runs in.
type BalanceRecalculator struct {
	now    func() time.Time
	logger *logrus.Logger
}

func NewBalanceRecalculator(logger *logrus.Logger) *BalanceRecalculator {
	return &BalanceRecalculator{now: time.Now, logger: logger}
}

// WithClock replaces the source of "today"
func (r *BalanceRecalculator) WithClock(now func() time.Time) *BalanceRecalculator {
	r.now = now
	return r
}

// InLocation makes "today" the calendar date in loc, the zone the scheduler
// fires in
func (r *BalanceRecalculator) InLocation(loc *time.Location) *BalanceRecalculator {
	now := r.now
	r.now = func() time.Time { return now().In(loc) }
	return r
}

// Today returns the current calendar date
func (r *BalanceRecalculator) Today() time.Time {
	return utils.DateOf(r.now())
}

// RecomputeBalance upserts the record for (owner, day) as the balance of the
// latest earlier record plus that day's income minus that day's expense.
func (r *BalanceRecalculator) RecomputeBalance(
	ctx context.Context,
	ledger repository.LedgerRepository,
	balances repository.BalanceRepository,
	ownerID uuid.UUID,
	day time.Time,
) (*domain.DailyBalance, error) {
	if ownerID == uuid.Nil {
		return nil, customError.WrapValidation("owner id is required")
	}
	day = utils.DateOf(day)

	income, err := ledger.SumIncomeOn(ctx, ownerID, day)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	expense, err := ledger.SumExpenseOn(ctx, ownerID, day)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	previous, err := balances.PreviousBalance(ctx, ownerID, day)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	record := &domain.DailyBalance{
		OwnerID:      ownerID,
		Date:         day,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      previous + income - expense,
	}
	if err := balances.Upsert(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return record, nil
}

// RecalculateFrom recomputes every day from `from` through today inclusive, in
// ascending order, and returns the number of days processed.
func (r *BalanceRecalculator) RecalculateFrom(
	ctx context.Context,
	ledger repository.LedgerRepository,
	balances repository.BalanceRepository,
	ownerID uuid.UUID,
	from time.Time,
) (int, error) {
	if ownerID == uuid.Nil {
		return 0, customError.WrapValidation("owner id is required")
	}

	today := r.Today()
	days := 0
	for day := utils.DateOf(from); !day.After(today); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return days, err
		}
		if _, err := r.RecomputeBalance(ctx, ledger, balances, ownerID, day); err != nil {
			return days, err
		}
		days++
	}

	return days, nil
}

// RecalculateAll replays from `from`, or from the owner's earliest income or
// expense when from is nil. An owner without transactions replays nothing.
func (r *BalanceRecalculator) RecalculateAll(
	ctx context.Context,
	ledger repository.LedgerRepository,
	balances repository.BalanceRepository,
	ownerID uuid.UUID,
	from *time.Time,
) (domain.RecalculationReport, error) {
	var report domain.RecalculationReport
	if ownerID == uuid.Nil {
		return report, customError.WrapValidation("owner id is required")
	}

	start := from
	if start == nil {
		earliest, err := ledger.EarliestTransactionDate(ctx, ownerID)
		if err != nil {
			return report, customError.WrapDatabaseError(err)
		}
		if earliest == nil {
			return report, nil
		}
		start = earliest
	}

	day := utils.DateOf(*start)
	report.FromDate = &day

	days, err := r.RecalculateFrom(ctx, ledger, balances, ownerID, day)
	report.DaysRecalculated = days

	return report, err
}

// Replay runs RecalculateFrom in its own transaction after a mutation has been
// committed. Failures are logged and reported, never returned as an error.
func (r *BalanceRecalculator) Replay(ctx context.Context, store repository.Store, ownerID uuid.UUID, from time.Time) domain.RecalcOutcome {
	outcome := domain.RecalcOutcome{FromDate: utils.DateOf(from)}

	outcome.Err = store.WithTx(ctx, func(repos *repository.Repositories) error {
		days, err := r.RecalculateFrom(ctx, repos.Ledger, repos.Balances, ownerID, outcome.FromDate)
		outcome.Days = days
		return err
	})

	if outcome.Err != nil {
		r.logger.WithFields(logrus.Fields{
			"owner_id":  ownerID,
			"from_date": outcome.FromDate.Format(utils.DateLayout),
		}).WithError(outcome.Err).Warn("balance recalculation failed; ledger left stale")
		outcome.Days = 0
	}

	return outcome
}
