package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetGoal_Progress(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name          string
		contributions []int64
		remaining     int64
		progress      string
	}{
		{"no contributions", nil, 1000, "0"},
		{"partial", []int64{250, 125}, 625, "37.5"},
		{"overfunded", []int64{800, 700}, 0, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := &mocks.MockSavingGoalRepository{}
			service := NewSavingGoalService(mocks.NewFakeStore(&repository.Repositories{SavingGoals: goals}), nil, quietLogger())

			contributions := []*domain.SavingContribution{}
			for _, amount := range tt.contributions {
				contributions = append(contributions, &domain.SavingContribution{GoalID: 1, Amount: amount})
			}
			goals.On("GetByID", ctx, owner, int64(1)).Return(&domain.SavingGoal{ID: 1, TargetAmount: 1000}, nil)
			goals.On("ListContributions", ctx, int64(1)).Return(contributions, nil)

			goal, err := service.GetGoal(ctx, owner, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.remaining, goal.RemainingAmount)
			assert.True(t, decimal.RequireFromString(tt.progress).Equal(goal.ProgressPercentage),
				"progress %s", goal.ProgressPercentage)
		})
	}
}

func TestAddContribution_ForeignExpense(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	goals := &mocks.MockSavingGoalRepository{}
	expenses := &mocks.MockExpenseRepository{}
	service := NewSavingGoalService(mocks.NewFakeStore(&repository.Repositories{
		SavingGoals: goals, Expenses: expenses,
	}), nil, quietLogger())
	expenseID := int64(77)

	goals.On("GetByID", ctx, owner, int64(1)).Return(&domain.SavingGoal{ID: 1}, nil)
	expenses.On("GetByID", ctx, owner, expenseID).Return(nil, sql.ErrNoRows)

	_, err := service.AddContribution(ctx, owner, 1, &domain.CreateContributionRequest{
		Amount: 100, Date: "2024-03-01", ExpenseID: &expenseID,
	})
	assert.Equal(t, customError.ErrCodeNotFound, customError.CodeOf(err))
	goals.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}
