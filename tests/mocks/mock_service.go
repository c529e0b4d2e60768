package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error) {
	args := m.Called(ctx, ownerID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateLoanResponse), args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.LoanWithRepayments, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithRepayments), args.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockLoanService) ListRepayments(ctx context.Context, ownerID uuid.UUID, loanID int64) ([]*domain.Repayment, error) {
	args := m.Called(ctx, ownerID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repayment), args.Error(1)
}

func (m *MockLoanService) AddRepayment(ctx context.Context, ownerID uuid.UUID, loanID int64, request *domain.CreateRepaymentRequest) (*domain.Repayment, error) {
	args := m.Called(ctx, ownerID, loanID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockLoanService) MarkRepaymentPaid(ctx context.Context, ownerID uuid.UUID, repaymentID int64, request *domain.MarkRepaymentPaidRequest) (*domain.Repayment, domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, repaymentID, request)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RecalcOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Repayment), args.Get(1).(domain.RecalcOutcome), args.Error(2)
}

func (m *MockLoanService) PaymentsDue(ctx context.Context, ownerID uuid.UUID) (domain.PaymentDueSummary, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.PaymentDueSummary), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateIncome(ctx context.Context, ownerID uuid.UUID, request *domain.CreateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, request)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RecalcOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Income), args.Get(1).(domain.RecalcOutcome), args.Error(2)
}

func (m *MockTransactionService) GetIncome(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockTransactionService) ListIncomes(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IncomeWithTag), args.Error(1)
}

func (m *MockTransactionService) UpdateIncome(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RecalcOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Income), args.Get(1).(domain.RecalcOutcome), args.Error(2)
}

func (m *MockTransactionService) DeleteIncome(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(domain.RecalcOutcome), args.Error(1)
}

func (m *MockTransactionService) CreateExpense(ctx context.Context, ownerID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, request)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RecalcOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(domain.RecalcOutcome), args.Error(2)
}

func (m *MockTransactionService) GetExpense(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockTransactionService) ListExpenses(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExpenseWithRelations), args.Error(1)
}

func (m *MockTransactionService) UpdateExpense(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.RecalcOutcome), args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(domain.RecalcOutcome), args.Error(2)
}

func (m *MockTransactionService) DeleteExpense(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(domain.RecalcOutcome), args.Error(1)
}

type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) CreateTag(ctx context.Context, ownerID uuid.UUID, request *domain.CreateTagRequest) (*domain.Tag, error) {
	args := m.Called(ctx, ownerID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagService) GetTag(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.TagWithStats, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagWithStats), args.Error(1)
}

func (m *MockTagService) ListTags(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *MockTagService) UpdateTag(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateTagRequest) (*domain.Tag, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagService) DeleteTag(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) CreatePlan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateShoppingPlanRequest) (*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingService) GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlanWithItems, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingPlanWithItems), args.Error(1)
}

func (m *MockShoppingService) ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingService) UpdatePlan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingPlanRequest) (*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingService) SetPlanStatus(ctx context.Context, ownerID uuid.UUID, id int64, status string) (*domain.ShoppingPlan, error) {
	args := m.Called(ctx, ownerID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingPlan), args.Error(1)
}

func (m *MockShoppingService) DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockShoppingService) AddItem(ctx context.Context, ownerID uuid.UUID, planID int64, request *domain.CreateShoppingItemRequest) (*domain.ShoppingItem, error) {
	args := m.Called(ctx, ownerID, planID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingItem), args.Error(1)
}

func (m *MockShoppingService) UpdateItem(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingItemRequest) (*domain.ShoppingItem, error) {
	args := m.Called(ctx, ownerID, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingItem), args.Error(1)
}

func (m *MockShoppingService) DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
