package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateFrom_CarriesBalanceForward(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ledger := mocks.NewMemoryLedger()
	ledger.AddExpense(owner, mustDate("2024-03-01"), 500)
	ledger.AddIncome(owner, mustDate("2024-03-03"), 1200)

	r := recalculatorAt("2024-03-04")
	days, err := r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 4, days)

	records := ledger.Records(owner)
	require.Len(t, records, 4)

	want := []int64{-500, -500, 700, 700}
	for i, record := range records {
		assert.Equal(t, want[i], record.Balance, "balance on %s", record.Date)
	}
	assert.Equal(t, int64(500), records[0].TotalExpense)
	assert.Equal(t, int64(1200), records[2].TotalIncome)
}

func TestRecalculateFrom_Idempotent(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ledger := mocks.NewMemoryLedger()
	ledger.AddIncome(owner, mustDate("2024-03-01"), 1000)
	ledger.AddExpense(owner, mustDate("2024-03-02"), 250)

	r := recalculatorAt("2024-03-03")
	_, err := r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-03-01"))
	require.NoError(t, err)
	first := ledger.Records(owner)

	_, err = r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-03-01"))
	require.NoError(t, err)
	second := ledger.Records(owner)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Balance, second[i].Balance)
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRecalculateFrom_BalanceEqualsPreviousPlusNet(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ledger := mocks.NewMemoryLedger()
	ledger.AddIncome(owner, mustDate("2024-01-02"), 3000)
	ledger.AddExpense(owner, mustDate("2024-01-02"), 100)
	ledger.AddExpense(owner, mustDate("2024-01-05"), 900)
	ledger.AddIncome(owner, mustDate("2024-01-09"), 50)

	r := recalculatorAt("2024-01-10")
	_, err := r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-01-01"))
	require.NoError(t, err)

	var previous int64
	for _, record := range ledger.Records(owner) {
		assert.Equal(t, previous+record.TotalIncome-record.TotalExpense, record.Balance)
		previous = record.Balance
	}
	assert.Equal(t, int64(2050), previous)
}

func TestRecalculateFrom_PartialReplayUsesEarlierRecord(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ledger := mocks.NewMemoryLedger()
	ledger.AddIncome(owner, mustDate("2024-03-01"), 1000)

	r := recalculatorAt("2024-03-03")
	_, err := r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-03-01"))
	require.NoError(t, err)

	ledger.AddExpense(owner, mustDate("2024-03-02"), 300)
	days, err := r.RecalculateFrom(ctx, ledger, ledger, owner, mustDate("2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	assert.Equal(t, int64(700), ledger.Balance(owner, mustDate("2024-03-02")).Balance)
	assert.Equal(t, int64(700), ledger.Balance(owner, mustDate("2024-03-03")).Balance)
}

func TestRecalculateFrom_FutureStartDoesNothing(t *testing.T) {
	ledger := mocks.NewMemoryLedger()
	owner := uuid.New()

	days, err := recalculatorAt("2024-03-01").RecalculateFrom(context.Background(), ledger, ledger, owner, mustDate("2024-03-05"))
	require.NoError(t, err)
	assert.Zero(t, days)
	assert.Empty(t, ledger.Records(owner))
}

func TestRecalculator_RejectsNilOwner(t *testing.T) {
	ctx := context.Background()
	ledger := mocks.NewMemoryLedger()
	r := recalculatorAt("2024-03-01")

	_, err := r.RecomputeBalance(ctx, ledger, ledger, uuid.Nil, mustDate("2024-03-01"))
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))

	_, err = r.RecalculateFrom(ctx, ledger, ledger, uuid.Nil, mustDate("2024-03-01"))
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))

	_, err = r.RecalculateAll(ctx, ledger, ledger, uuid.Nil, nil)
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
}

func TestRecalculateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("no transactions", func(t *testing.T) {
		ledger := mocks.NewMemoryLedger()
		report, err := recalculatorAt("2024-03-04").RecalculateAll(ctx, ledger, ledger, uuid.New(), nil)
		require.NoError(t, err)
		assert.Nil(t, report.FromDate)
		assert.Zero(t, report.DaysRecalculated)
	})

	t.Run("starts at earliest transaction", func(t *testing.T) {
		owner := uuid.New()
		ledger := mocks.NewMemoryLedger()
		ledger.AddIncome(owner, mustDate("2024-03-03"), 10)
		ledger.AddExpense(owner, mustDate("2024-03-02"), 5)

		report, err := recalculatorAt("2024-03-04").RecalculateAll(ctx, ledger, ledger, owner, nil)
		require.NoError(t, err)
		require.NotNil(t, report.FromDate)
		assert.Equal(t, mustDate("2024-03-02"), *report.FromDate)
		assert.Equal(t, 3, report.DaysRecalculated)
	})

	t.Run("explicit from date", func(t *testing.T) {
		owner := uuid.New()
		ledger := mocks.NewMemoryLedger()
		from := mustDate("2024-02-28")

		report, err := recalculatorAt("2024-03-01").RecalculateAll(ctx, ledger, ledger, owner, &from)
		require.NoError(t, err)
		assert.Equal(t, from, *report.FromDate)
		assert.Equal(t, 3, report.DaysRecalculated)
	})
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("success", func(t *testing.T) {
		ledger := mocks.NewMemoryLedger()
		ledger.AddIncome(owner, mustDate("2024-03-01"), 100)
		store := mocks.NewFakeStore(&repository.Repositories{Ledger: ledger, Balances: ledger})

		outcome := recalculatorAt("2024-03-02").Replay(ctx, store, owner, mustDate("2024-03-01"))
		assert.True(t, outcome.OK())
		assert.Equal(t, 2, outcome.Days)
		assert.Equal(t, mustDate("2024-03-01"), outcome.FromDate)
	})

	t.Run("failure is reported, not returned", func(t *testing.T) {
		ledger := mocks.NewMemoryLedger()
		ledger.UpsertErr = errors.New("disk full")
		store := mocks.NewFakeStore(&repository.Repositories{Ledger: ledger, Balances: ledger})

		outcome := recalculatorAt("2024-03-02").Replay(ctx, store, owner, mustDate("2024-03-01"))
		assert.False(t, outcome.OK())
		assert.Zero(t, outcome.Days)
		assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(outcome.Err))
	})
}

func TestToday_FollowsConfiguredZone(t *testing.T) {
	instant := time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC)
	clock := func() time.Time { return instant }

	utc := NewBalanceRecalculator(quietLogger()).WithClock(clock)
	assert.Equal(t, mustDate("2024-03-01"), utc.Today())

	behind := NewBalanceRecalculator(quietLogger()).WithClock(clock).InLocation(time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, mustDate("2024-02-29"), behind.Today())
}
