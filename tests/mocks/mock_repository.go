package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/stretchr/testify/mock"
)

var (
	_ repository.IncomeRepository     = (*MockIncomeRepository)(nil)
	_ repository.ExpenseRepository    = (*MockExpenseRepository)(nil)
	_ repository.LoanRepository       = (*MockLoanRepository)(nil)
	_ repository.BudgetRepository     = (*MockBudgetRepository)(nil)
	_ repository.TagRepository        = (*MockTagRepository)(nil)
	_ repository.ShoppingRepository   = (*MockShoppingRepository)(nil)
	_ repository.SavingGoalRepository = (*MockSavingGoalRepository)(nil)
	_ repository.DashboardRepository  = (*MockDashboardRepository)(nil)
)

type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IncomeWithTag), args.Error(1)
}

func (m *MockIncomeRepository) Update(ctx context.Context, income *domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExpenseWithRelations), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) EarliestDateForBudget(ctx context.Context, ownerID uuid.UUID, budgetID int64) (*time.Time, error) {
	args := m.Called(ctx, ownerID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Loan, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockLoanRepository) DecrementPrincipal(ctx context.Context, loanID int64, principal int64) (int64, bool, error) {
	args := m.Called(ctx, loanID, principal)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLoanRepository) SetNextDueDate(ctx context.Context, loanID int64, due time.Time) error {
	args := m.Called(ctx, loanID, due)
	return args.Error(0)
}

func (m *MockLoanRepository) CreateSchedule(ctx context.Context, repayments []*domain.Repayment) error {
	args := m.Called(ctx, repayments)
	return args.Error(0)
}

func (m *MockLoanRepository) CreateRepayment(ctx context.Context, repayment *domain.Repayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

func (m *MockLoanRepository) GetRepayment(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Repayment, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) ListRepayments(ctx context.Context, loanID int64) ([]*domain.Repayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) MarkRepaymentPaid(ctx context.Context, repaymentID int64, expenseID int64) error {
	args := m.Called(ctx, repaymentID, expenseID)
	return args.Error(0)
}

func (m *MockLoanRepository) NextPendingDate(ctx context.Context, loanID int64) (*time.Time, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockLoanRepository) TotalPaid(ctx context.Context, loanID int64) (int64, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) PaymentsDue(ctx context.Context, ownerID uuid.UUID, asOf time.Time) (domain.PaymentDueSummary, error) {
	args := m.Called(ctx, ownerID, asOf)
	return args.Get(0).(domain.PaymentDueSummary), args.Error(1)
}

func (m *MockLoanRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) GetWithSpending(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.BudgetWithSpending, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetWithSpending), args.Error(1)
}

func (m *MockBudgetRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.BudgetWithSpending, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BudgetWithSpending), args.Error(1)
}

func (m *MockBudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Tag, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTagRepository) Usage(ctx context.Context, ownerID uuid.UUID, id int64) (domain.TagUsage, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(domain.TagUsage), args.Error(1)
}

type MockShoppingRepository struct {
	mock.Mock
}

func (m *MockShoppingRepository) CreatePlan(ctx context.Context, plan *domain.ShoppingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockShoppingRepository) GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingRepository) ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingRepository) UpdatePlan(ctx context.Context, plan *domain.ShoppingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockShoppingRepository) DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockShoppingRepository) CreateItem(ctx context.Context, item *domain.ShoppingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingRepository) GetItem(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingItem, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingItem), args.Error(1)
}

func (m *MockShoppingRepository) ListItems(ctx context.Context, planID int64) ([]*domain.ShoppingItem, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShoppingItem), args.Error(1)
}

func (m *MockShoppingRepository) UpdateItem(ctx context.Context, item *domain.ShoppingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingRepository) DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockSavingGoalRepository struct {
	mock.Mock
}

func (m *MockSavingGoalRepository) Create(ctx context.Context, goal *domain.SavingGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingGoalRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.SavingGoal, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingGoal), args.Error(1)
}

func (m *MockSavingGoalRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.SavingGoal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavingGoal), args.Error(1)
}

func (m *MockSavingGoalRepository) Update(ctx context.Context, goal *domain.SavingGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingGoalRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockSavingGoalRepository) CreateContribution(ctx context.Context, contribution *domain.SavingContribution) error {
	args := m.Called(ctx, contribution)
	return args.Error(0)
}

func (m *MockSavingGoalRepository) ListContributions(ctx context.Context, goalID int64) ([]*domain.SavingContribution, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavingContribution), args.Error(1)
}

func (m *MockSavingGoalRepository) DeleteContribution(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) BudgetSummary(ctx context.Context, ownerID uuid.UUID) (domain.BudgetSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.BudgetSummary), args.Error(1)
}

func (m *MockDashboardRepository) IncomeExpenseSummary(ctx context.Context, ownerID uuid.UUID) (domain.IncomeExpenseSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.IncomeExpenseSummary), args.Error(1)
}

func (m *MockDashboardRepository) LoanSummary(ctx context.Context, ownerID uuid.UUID) (domain.LoanSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.LoanSummary), args.Error(1)
}

func (m *MockDashboardRepository) SavingGoalsSummary(ctx context.Context, ownerID uuid.UUID) (domain.SavingGoalsSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.SavingGoalsSummary), args.Error(1)
}

// MockDashboardCache mocks the per-owner dashboard cache
type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) Get(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Bool(1), args.Error(2)
}

func (m *MockDashboardCache) Set(ctx context.Context, ownerID uuid.UUID, summary *domain.DashboardSummary) error {
	args := m.Called(ctx, ownerID, summary)
	return args.Error(0)
}

func (m *MockDashboardCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}
