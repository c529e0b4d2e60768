package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"no rows", sql.ErrNoRows, customError.ErrCodeNotFound, "Budget with ID 4 not found"},
		{"unique", &pq.Error{Code: "23505"}, customError.ErrCodeConflict, "Budget already exists"},
		{
			"unknown owner",
			&pq.Error{Code: "23503", Constraint: "budgets_user_id_fkey"},
			customError.ErrCodeUnauthorized,
			"authenticated user is not registered",
		},
		{
			"dangling reference",
			&pq.Error{Code: "23503", Constraint: "expenses_budget_id_fkey"},
			customError.ErrCodeNotFound,
			"Budget references a record that does not exist",
		},
		{"other", errors.New("connection reset"), customError.ErrCodeDatabaseError, "database operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.err, "Budget", 4)
			assert.Equal(t, tt.code, customError.CodeOf(err))
			assert.Equal(t, tt.message, customError.MessageOf(err))
		})
	}

	assert.NoError(t, translate(nil, "Budget", 4))

	passthrough := customError.WrapValidation("bad")
	assert.Same(t, passthrough, translate(passthrough, "Budget", 4))
}

func TestCreateGoal_UnregisteredOwnerIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	goals := &mocks.MockSavingGoalRepository{}
	service := NewSavingGoalService(mocks.NewFakeStore(&repository.Repositories{SavingGoals: goals}), nil, quietLogger())

	goals.On("Create", ctx, mock.AnythingOfType("*domain.SavingGoal")).
		Return(&pq.Error{Code: "23503", Constraint: "saving_goals_user_id_fkey"})

	_, err := service.CreateGoal(ctx, uuid.New(), &domain.CreateSavingGoalRequest{
		Title: "Bike", TargetAmount: 50000, TargetDate: "2024-12-01",
	})
	assert.Equal(t, customError.ErrCodeUnauthorized, customError.CodeOf(err))
}
