package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/sirupsen/logrus"
)

type DashboardService struct {
	store        repository.Store
	recalculator *BalanceRecalculator
	cache        DashboardCache
	logger       *logrus.Logger
}

func NewDashboardService(
	store repository.Store,
	recalculator *BalanceRecalculator,
	cache DashboardCache,
	logger *logrus.Logger,
) *DashboardService {
	return &DashboardService{
		store:        store,
		recalculator: recalculator,
		cache:        cache,
		logger:       logger,
	}
}

// Summary returns the owner's dashboard, serving it from the cache when
// present. Cache failures fall through to the database.
func (s *DashboardService) Summary(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, error) {
	log := s.logger.WithField("owner_id", ownerID)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			log.WithError(err).Warn("dashboard cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.compute(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, summary); err != nil {
			log.WithError(err).Warn("dashboard cache write failed")
		}
	}

	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, error) {
	repos := s.store.Repositories()
	today := s.recalculator.Today()

	budgets, err := repos.Dashboard.BudgetSummary(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	incomeExpense, err := repos.Dashboard.IncomeExpenseSummary(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := repos.Dashboard.LoanSummary(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if loans.PaymentsDue, err = repos.Loans.PaymentsDue(ctx, ownerID, today); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	goals, err := repos.Dashboard.SavingGoalsSummary(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	goals.OverallProgressPercentage = utils.ProgressPercentage(goals.TotalContributed, goals.TotalTargetAmount)

	return &domain.DashboardSummary{
		Date:          today,
		Budgets:       budgets,
		IncomeExpense: incomeExpense,
		Loans:         loans,
		SavingGoals:   goals,
	}, nil
}
