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

type SavingGoalService struct {
	store  repository.Store
	cache  DashboardCache
	logger *logrus.Logger
}

func NewSavingGoalService(store repository.Store, cache DashboardCache, logger *logrus.Logger) *SavingGoalService {
	return &SavingGoalService{store: store, cache: cache, logger: logger}
}

func (s *SavingGoalService) CreateGoal(ctx context.Context, ownerID uuid.UUID, request *domain.CreateSavingGoalRequest) (*domain.SavingGoal, error) {
	if request.TargetAmount <= 0 {
		return nil, customError.WrapValidation("target amount must be greater than 0")
	}
	targetDate, err := parseDate("target_date", request.TargetDate)
	if err != nil {
		return nil, err
	}

	goal := &domain.SavingGoal{
		OwnerID:      ownerID,
		Title:        request.Title,
		TargetAmount: request.TargetAmount,
		TargetDate:   targetDate,
	}
	if err := s.store.Repositories().SavingGoals.Create(ctx, goal); err != nil {
		return nil, translate(err, "Saving goal", 0)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return goal, nil
}

// GetGoal returns the goal with its contributions and progress. Remaining is
// floored at zero and progress is capped at 100 percent.
func (s *SavingGoalService) GetGoal(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.SavingGoalWithContributions, error) {
	repos := s.store.Repositories()

	goal, err := repos.SavingGoals.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Saving goal", id)
	}

	contributions, err := repos.SavingGoals.ListContributions(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var total int64
	for _, contribution := range contributions {
		total += contribution.Amount
	}

	remaining := goal.TargetAmount - total
	if remaining < 0 {
		remaining = 0
	}

	return &domain.SavingGoalWithContributions{
		SavingGoal:         goal,
		Contributions:      contributions,
		TotalContributed:   total,
		RemainingAmount:    remaining,
		ProgressPercentage: utils.ProgressPercentage(total, goal.TargetAmount),
	}, nil
}

func (s *SavingGoalService) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*domain.SavingGoal, error) {
	goals, err := s.store.Repositories().SavingGoals.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return goals, nil
}

func (s *SavingGoalService) UpdateGoal(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateSavingGoalRequest) (*domain.SavingGoal, error) {
	repos := s.store.Repositories()

	goal, err := repos.SavingGoals.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Saving goal", id)
	}

	if request.Title != nil {
		goal.Title = *request.Title
	}
	if request.TargetAmount != nil {
		if *request.TargetAmount <= 0 {
			return nil, customError.WrapValidation("target amount must be greater than 0")
		}
		goal.TargetAmount = *request.TargetAmount
	}
	if request.TargetDate != nil {
		if goal.TargetDate, err = parseDate("target_date", *request.TargetDate); err != nil {
			return nil, err
		}
	}

	if err := repos.SavingGoals.Update(ctx, goal); err != nil {
		return nil, translate(err, "Saving goal", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return goal, nil
}

func (s *SavingGoalService) DeleteGoal(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if err := s.store.Repositories().SavingGoals.Delete(ctx, ownerID, id); err != nil {
		return translate(err, "Saving goal", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return nil
}

// AddContribution records money put toward a goal. A linked expense must
// belong to the same owner.
func (s *SavingGoalService) AddContribution(ctx context.Context, ownerID uuid.UUID, goalID int64, request *domain.CreateContributionRequest) (*domain.SavingContribution, error) {
	if request.Amount <= 0 {
		return nil, customError.WrapValidation("amount must be greater than 0")
	}
	date, err := parseDate("date", request.Date)
	if err != nil {
		return nil, err
	}

	contribution := &domain.SavingContribution{
		GoalID:  goalID,
		OwnerID: ownerID,
		Amount:  request.Amount,
		Date:    date,
	}

	err = s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.SavingGoals.GetByID(ctx, ownerID, goalID); err != nil {
			return translate(err, "Saving goal", goalID)
		}

		var err error
		if contribution.ExpenseID, err = resolveExpense(ctx, repos, ownerID, request.ExpenseID); err != nil {
			return err
		}

		return translate(repos.SavingGoals.CreateContribution(ctx, contribution), "Contribution", 0)
	})
	if err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return contribution, nil
}

func (s *SavingGoalService) DeleteContribution(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if err := s.store.Repositories().SavingGoals.DeleteContribution(ctx, ownerID, id); err != nil {
		return translate(err, "Contribution", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return nil
}
