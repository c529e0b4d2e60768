package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBalanceFixture(today string) (*mocks.MemoryLedger, *mocks.FakeStore, *BalanceService) {
	ledger := mocks.NewMemoryLedger()
	store := mocks.NewFakeStore(&repository.Repositories{Ledger: ledger, Balances: ledger})
	return ledger, store, NewBalanceService(store, recalculatorAt(today), quietLogger())
}

func TestListHistory_RejectsInvertedRange(t *testing.T) {
	_, _, service := newBalanceFixture("2024-03-05")
	start, end := "2024-03-05", "2024-03-01"

	_, err := service.ListHistory(context.Background(), uuid.New(), &start, &end)
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
}

func TestListHistory_NewestFirstWithinRange(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	ledger, _, service := newBalanceFixture("2024-03-05")
	ledger.AddIncome(owner, mustDate("2024-03-01"), 100)

	_, err := service.Recalculate(ctx, owner, nil)
	require.NoError(t, err)

	start, end := "2024-03-02", "2024-03-04"
	history, err := service.ListHistory(ctx, owner, &start, &end)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, mustDate("2024-03-04"), history[0].Date)
	assert.Equal(t, mustDate("2024-03-02"), history[2].Date)
}

func TestRecalculate_FromRequestDate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	_, _, service := newBalanceFixture("2024-03-05")
	from := "2024-03-03"

	report, err := service.Recalculate(ctx, owner, &domain.RecalculateRequest{FromDate: &from})
	require.NoError(t, err)
	assert.Equal(t, 3, report.DaysRecalculated)
	assert.Equal(t, mustDate(from), *report.FromDate)
}

func TestRollForward(t *testing.T) {
	ctx := context.Background()
	behind, current := uuid.New(), uuid.New()
	ledger, store, service := newBalanceFixture("2024-03-05")

	require.NoError(t, ledger.Upsert(ctx, &domain.DailyBalance{OwnerID: behind, Date: mustDate("2024-03-02"), Balance: 400}))
	require.NoError(t, ledger.Upsert(ctx, &domain.DailyBalance{OwnerID: current, Date: mustDate("2024-03-05"), Balance: 10}))

	owners, err := service.RollForward(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, owners)
	assert.Equal(t, 1, store.TxCalls())

	records := ledger.Records(behind)
	require.Len(t, records, 4)
	for _, record := range records {
		assert.Equal(t, int64(400), record.Balance)
	}
	assert.Len(t, ledger.Records(current), 1)
}

func TestRollForward_FailingOwnerDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	ledger, store, service := newBalanceFixture("2024-03-05")

	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.Upsert(ctx, &domain.DailyBalance{OwnerID: uuid.New(), Date: mustDate("2024-03-04")}))
	}
	store.TxErr = func(call int) error {
		if call == 1 {
			return errors.New("deadlock detected")
		}
		return nil
	}

	owners, err := service.RollForward(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, owners)
	assert.Equal(t, 3, store.TxCalls())
}
