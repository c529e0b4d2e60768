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

// TransactionService manages incomes and expenses. Every mutation commits
// first and then replays the balance ledger from the earliest affected date.
type TransactionService struct {
	store        repository.Store
	recalculator *BalanceRecalculator
	cache        DashboardCache
	logger       *logrus.Logger
}

func NewTransactionService(
	store repository.Store,
	recalculator *BalanceRecalculator,
	cache DashboardCache,
	logger *logrus.Logger,
) *TransactionService {
	return &TransactionService{
		store:        store,
		recalculator: recalculator,
		cache:        cache,
		logger:       logger,
	}
}

var incomeCategories = map[string]bool{
	domain.IncomeCategorySalary:      true,
	domain.IncomeCategoryRental:      true,
	domain.IncomeCategoryInvestments: true,
	domain.IncomeCategoryFreelance:   true,
	domain.IncomeCategoryGifts:       true,
	domain.IncomeCategoryOther:       true,
}

func validateEntry(name string, amount int64) error {
	if err := validateName(name); err != nil {
		return err
	}
	if amount <= 0 {
		return customError.WrapValidation("amount must be greater than 0")
	}
	return nil
}

// CreateIncome records an income and replays the ledger from its date
func (s *TransactionService) CreateIncome(ctx context.Context, ownerID uuid.UUID, request *domain.CreateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error) {
	if err := validateEntry(request.Name, request.Amount); err != nil {
		return nil, domain.RecalcOutcome{}, err
	}
	if !incomeCategories[request.Category] {
		return nil, domain.RecalcOutcome{}, customError.WrapValidation("unknown income category: " + request.Category)
	}
	date, err := parseDate("date", request.Date)
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	income := &domain.Income{
		OwnerID:  ownerID,
		Name:     request.Name,
		Amount:   request.Amount,
		Category: request.Category,
		Date:     date,
	}

	err = s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		tagID, err := resolveTag(ctx, repos, ownerID, request.TagID)
		if err != nil {
			return err
		}
		income.TagID = tagID

		return translate(repos.Incomes.Create(ctx, income), "Income", 0)
	})
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return income, s.recalculator.Replay(ctx, s.store, ownerID, date), nil
}

func (s *TransactionService) GetIncome(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error) {
	income, err := s.store.Repositories().Incomes.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Income", id)
	}
	return income, nil
}

func (s *TransactionService) ListIncomes(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error) {
	if filter.Category != "" && !incomeCategories[filter.Category] {
		return nil, customError.WrapValidation("unknown income category: " + filter.Category)
	}

	incomes, err := s.store.Repositories().Incomes.List(ctx, ownerID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return incomes, nil
}

// UpdateIncome applies the non-nil fields and replays from the earlier of the
// old and new dates
func (s *TransactionService) UpdateIncome(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error) {
	var (
		income  *domain.Income
		oldDate time.Time
	)

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		income, err = repos.Incomes.GetByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, "Income", id)
		}
		oldDate = income.Date

		if request.Name != nil {
			income.Name = *request.Name
		}
		if request.Amount != nil {
			income.Amount = *request.Amount
		}
		if request.Category != nil {
			if !incomeCategories[*request.Category] {
				return customError.WrapValidation("unknown income category: " + *request.Category)
			}
			income.Category = *request.Category
		}
		if request.Date != nil {
			if income.Date, err = parseDate("date", *request.Date); err != nil {
				return err
			}
		}
		if request.TagID != nil {
			if income.TagID, err = resolveTag(ctx, repos, ownerID, request.TagID); err != nil {
				return err
			}
		}
		if err := validateEntry(income.Name, income.Amount); err != nil {
			return err
		}

		return translate(repos.Incomes.Update(ctx, income), "Income", id)
	})
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return income, s.recalculator.Replay(ctx, s.store, ownerID, utils.MinDate(oldDate, income.Date)), nil
}

func (s *TransactionService) DeleteIncome(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error) {
	var income *domain.Income

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		if income, err = repos.Incomes.GetByID(ctx, ownerID, id); err != nil {
			return translate(err, "Income", id)
		}
		return translate(repos.Incomes.Delete(ctx, ownerID, id), "Income", id)
	})
	if err != nil {
		return domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return s.recalculator.Replay(ctx, s.store, ownerID, income.Date), nil
}

// CreateExpense records an expense and replays the ledger from its date
func (s *TransactionService) CreateExpense(ctx context.Context, ownerID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error) {
	if err := validateEntry(request.Name, request.Amount); err != nil {
		return nil, domain.RecalcOutcome{}, err
	}
	date, err := parseDate("date", request.Date)
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	expense := &domain.Expense{
		OwnerID: ownerID,
		Name:    request.Name,
		Amount:  request.Amount,
		Date:    date,
	}

	err = s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		if expense.BudgetID, err = resolveBudget(ctx, repos, ownerID, request.BudgetID); err != nil {
			return err
		}
		if expense.TagID, err = resolveTag(ctx, repos, ownerID, request.TagID); err != nil {
			return err
		}

		return translate(repos.Expenses.Create(ctx, expense), "Expense", 0)
	})
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return expense, s.recalculator.Replay(ctx, s.store, ownerID, date), nil
}

func (s *TransactionService) GetExpense(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error) {
	expense, err := s.store.Repositories().Expenses.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Expense", id)
	}
	return expense, nil
}

func (s *TransactionService) ListExpenses(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error) {
	expenses, err := s.store.Repositories().Expenses.List(ctx, ownerID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return expenses, nil
}

func (s *TransactionService) UpdateExpense(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error) {
	var (
		expense *domain.Expense
		oldDate time.Time
	)

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		expense, err = repos.Expenses.GetByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, "Expense", id)
		}
		oldDate = expense.Date

		if request.Name != nil {
			expense.Name = *request.Name
		}
		if request.Amount != nil {
			expense.Amount = *request.Amount
		}
		if request.Date != nil {
			if expense.Date, err = parseDate("date", *request.Date); err != nil {
				return err
			}
		}
		if request.BudgetID != nil {
			if expense.BudgetID, err = resolveBudget(ctx, repos, ownerID, request.BudgetID); err != nil {
				return err
			}
		}
		if request.TagID != nil {
			if expense.TagID, err = resolveTag(ctx, repos, ownerID, request.TagID); err != nil {
				return err
			}
		}
		if err := validateEntry(expense.Name, expense.Amount); err != nil {
			return err
		}

		return translate(repos.Expenses.Update(ctx, expense), "Expense", id)
	})
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return expense, s.recalculator.Replay(ctx, s.store, ownerID, utils.MinDate(oldDate, expense.Date)), nil
}

func (s *TransactionService) DeleteExpense(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error) {
	var expense *domain.Expense

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		if expense, err = repos.Expenses.GetByID(ctx, ownerID, id); err != nil {
			return translate(err, "Expense", id)
		}
		return translate(repos.Expenses.Delete(ctx, ownerID, id), "Expense", id)
	})
	if err != nil {
		return domain.RecalcOutcome{}, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return s.recalculator.Replay(ctx, s.store, ownerID, expense.Date), nil
}
