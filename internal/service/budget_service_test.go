package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	setup := func() (*mocks.MockBudgetRepository, *mocks.MockExpenseRepository, *BudgetService) {
		budgets := &mocks.MockBudgetRepository{}
		expenses := &mocks.MockExpenseRepository{}
		ledger := mocks.NewMemoryLedger()
		store := mocks.NewFakeStore(&repository.Repositories{
			Budgets: budgets, Expenses: expenses, Ledger: ledger, Balances: ledger,
		})
		return budgets, expenses, NewBudgetService(store, recalculatorAt("2024-03-05"), nil, quietLogger())
	}

	t.Run("replays from oldest removed expense", func(t *testing.T) {
		budgets, expenses, service := setup()
		earliest := mustDate("2024-03-01")
		budgets.On("GetByID", ctx, owner, int64(1)).Return(&domain.Budget{ID: 1}, nil)
		expenses.On("EarliestDateForBudget", ctx, owner, int64(1)).Return(&earliest, nil)
		budgets.On("Delete", ctx, owner, int64(1)).Return(nil)

		outcome, err := service.DeleteBudget(ctx, owner, 1)
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, earliest, outcome.FromDate)
		assert.Equal(t, 5, outcome.Days)
	})

	t.Run("empty budget needs no replay", func(t *testing.T) {
		budgets, expenses, service := setup()
		budgets.On("GetByID", ctx, owner, int64(1)).Return(&domain.Budget{ID: 1}, nil)
		expenses.On("EarliestDateForBudget", ctx, owner, int64(1)).Return(nil, nil)
		budgets.On("Delete", ctx, owner, int64(1)).Return(nil)

		outcome, err := service.DeleteBudget(ctx, owner, 1)
		require.NoError(t, err)
		assert.Nil(t, outcome)
	})
}

func TestCreateBudget_RejectsNonPositiveAmount(t *testing.T) {
	service := NewBudgetService(mocks.NewFakeStore(&repository.Repositories{}), recalculatorAt("2024-03-05"), nil, quietLogger())

	_, err := service.CreateBudget(context.Background(), uuid.New(), &domain.CreateBudgetRequest{Name: "Food"})
	assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
}

func TestCreateTag_DuplicateName(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	tags := &mocks.MockTagRepository{}
	service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))

	tags.On("Create", ctx, mock.AnythingOfType("*domain.Tag")).Return(&pq.Error{Code: "23505"})

	_, err := service.CreateTag(ctx, owner, &domain.CreateTagRequest{Name: "Travel"})
	assert.Equal(t, customError.ErrCodeConflict, customError.CodeOf(err))
	assert.Equal(t, "Tag with name 'Travel' already exists", customError.MessageOf(err))
}

func TestGetTag_ReportsUsage(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("used tag", func(t *testing.T) {
		tags := &mocks.MockTagRepository{}
		service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))

		tags.On("GetByID", ctx, owner, int64(3)).Return(&domain.Tag{ID: 3, Name: "Travel"}, nil)
		tags.On("Usage", ctx, owner, int64(3)).Return(domain.TagUsage{
			ExpensesCount: 2, IncomesCount: 1, TotalSpent: 4500, TotalEarned: 10000, BudgetsUsedIn: []int64{1, 4},
		}, nil)

		tag, err := service.GetTag(ctx, owner, 3)
		require.NoError(t, err)
		assert.Equal(t, "Travel", tag.Name)
		assert.Equal(t, int64(2), tag.ExpensesCount)
		assert.Equal(t, int64(4500), tag.TotalSpent)
		assert.Equal(t, int64(10000), tag.TotalEarned)
		assert.Equal(t, []int64{1, 4}, tag.BudgetsUsedIn)
	})

	t.Run("unused tag lists no budgets", func(t *testing.T) {
		tags := &mocks.MockTagRepository{}
		service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))

		tags.On("GetByID", ctx, owner, int64(3)).Return(&domain.Tag{ID: 3}, nil)
		tags.On("Usage", ctx, owner, int64(3)).Return(domain.TagUsage{}, nil)

		tag, err := service.GetTag(ctx, owner, 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{}, tag.BudgetsUsedIn)
		assert.Zero(t, tag.ExpensesCount)
	})

	t.Run("missing tag", func(t *testing.T) {
		tags := &mocks.MockTagRepository{}
		service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))

		tags.On("GetByID", ctx, owner, int64(3)).Return(nil, sql.ErrNoRows)

		_, err := service.GetTag(ctx, owner, 3)
		assert.Equal(t, "Tag with ID 3 not found", customError.MessageOf(err))
		tags.AssertNotCalled(t, "Usage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListTags_Filters(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	for _, usedWith := range []string{"", domain.TagUsedWithExpenses, domain.TagUsedWithIncomes, domain.TagUsedWithBoth} {
		t.Run("used_with="+usedWith, func(t *testing.T) {
			tags := &mocks.MockTagRepository{}
			service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))
			filter := domain.TagFilter{BudgetID: 2, UsedWith: usedWith}

			tags.On("List", ctx, owner, filter).Return([]*domain.Tag{{ID: 1}}, nil)

			list, err := service.ListTags(ctx, owner, filter)
			require.NoError(t, err)
			assert.Len(t, list, 1)
			tags.AssertExpectations(t)
		})
	}

	t.Run("unknown used_with", func(t *testing.T) {
		tags := &mocks.MockTagRepository{}
		service := NewTagService(mocks.NewFakeStore(&repository.Repositories{Tags: tags}))

		_, err := service.ListTags(ctx, owner, domain.TagFilter{UsedWith: "loans"})
		assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
		tags.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}
