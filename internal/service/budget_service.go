package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/sirupsen/logrus"
)

type BudgetService struct {
	store        repository.Store
	recalculator *BalanceRecalculator
	cache        DashboardCache
	logger       *logrus.Logger
}

func NewBudgetService(
	store repository.Store,
	recalculator *BalanceRecalculator,
	cache DashboardCache,
	logger *logrus.Logger,
) *BudgetService {
	return &BudgetService{
		store:        store,
		recalculator: recalculator,
		cache:        cache,
		logger:       logger,
	}
}

func (s *BudgetService) CreateBudget(ctx context.Context, ownerID uuid.UUID, request *domain.CreateBudgetRequest) (*domain.Budget, error) {
	if request.Amount <= 0 {
		return nil, customError.WrapValidation("amount must be greater than 0")
	}

	budget := &domain.Budget{
		OwnerID: ownerID,
		Name:    request.Name,
		Amount:  request.Amount,
		Icon:    request.Icon,
	}
	if err := s.store.Repositories().Budgets.Create(ctx, budget); err != nil {
		return nil, translate(err, "Budget", 0)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return budget, nil
}

// GetBudget returns the budget with the sum of its expenses and what remains
func (s *BudgetService) GetBudget(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.BudgetWithSpending, error) {
	budget, err := s.store.Repositories().Budgets.GetWithSpending(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Budget", id)
	}
	return budget, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*domain.BudgetWithSpending, error) {
	budgets, err := s.store.Repositories().Budgets.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateBudgetRequest) (*domain.Budget, error) {
	repos := s.store.Repositories()

	budget, err := repos.Budgets.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Budget", id)
	}

	if request.Name != nil {
		budget.Name = *request.Name
	}
	if request.Amount != nil {
		if *request.Amount <= 0 {
			return nil, customError.WrapValidation("amount must be greater than 0")
		}
		budget.Amount = *request.Amount
	}
	if request.Icon != nil {
		budget.Icon = request.Icon
	}

	if err := repos.Budgets.Update(ctx, budget); err != nil {
		return nil, translate(err, "Budget", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return budget, nil
}

// DeleteBudget removes the budget and its expenses. When expenses went with
// it the ledger is replayed from the oldest of them.
func (s *BudgetService) DeleteBudget(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.RecalcOutcome, error) {
	var earliest *time.Time

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Budgets.GetByID(ctx, ownerID, id); err != nil {
			return translate(err, "Budget", id)
		}

		var err error
		if earliest, err = repos.Expenses.EarliestDateForBudget(ctx, ownerID, id); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return translate(repos.Budgets.Delete(ctx, ownerID, id), "Budget", id)
	})
	if err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	if earliest == nil {
		return nil, nil
	}

	outcome := s.recalculator.Replay(ctx, s.store, ownerID, *earliest)
	return &outcome, nil
}
