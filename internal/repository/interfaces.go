package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
)

// IncomeRepository defines the interface for income data operations
type IncomeRepository interface {
	// Create inserts an income and fills ID and timestamps
	Create(ctx context.Context, income *domain.Income) error

	// GetByID retrieves an owner's income; sql.ErrNoRows when absent
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error)

	// List retrieves an owner's incomes newest first
	List(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error)

	// Update persists every mutable field of an income
	Update(ctx context.Context, income *domain.Income) error

	// Delete removes an owner's income; sql.ErrNoRows when absent
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// EarliestDateForBudget returns the oldest expense date in a budget, nil when empty
	EarliestDateForBudget(ctx context.Context, ownerID uuid.UUID, budgetID int64) (*time.Time, error)
}

// LedgerRepository reads the income/expense ledger the balance replay is built from
type LedgerRepository interface {
	// SumIncomeOn returns the total income of an owner on a calendar date
	SumIncomeOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error)

	// SumExpenseOn returns the total expense of an owner on a calendar date
	SumExpenseOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error)

	// EarliestTransactionDate returns the oldest income or expense date, nil when none
	EarliestTransactionDate(ctx context.Context, ownerID uuid.UUID) (*time.Time, error)
}

// BalanceRepository defines the interface for the daily balance ledger
type BalanceRepository interface {
	// PreviousBalance returns the balance of the latest record strictly before day, 0 when none
	PreviousBalance(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error)

	// Upsert writes the record keyed by (owner, date)
	Upsert(ctx context.Context, record *domain.DailyBalance) error

	// List retrieves an owner's records newest first within an optional range
	List(ctx context.Context, ownerID uuid.UUID, start, end *time.Time) ([]*domain.DailyBalance, error)

	// LatestDates returns, per owner with any record, the date of their newest record
	LatestDates(ctx context.Context) (map[uuid.UUID]time.Time, error)
}

// LoanRepository defines the interface for loan and repayment data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Loan, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// DecrementPrincipal atomically lowers remaining_principal (floored at 0),
	// sets is_paid_off at 0 and returns the new values
	DecrementPrincipal(ctx context.Context, loanID int64, principal int64) (remaining int64, paidOff bool, err error)

	// SetNextDueDate updates the loan's next due date
	SetNextDueDate(ctx context.Context, loanID int64, due time.Time) error

	// CreateSchedule bulk inserts generated repayment entries
	CreateSchedule(ctx context.Context, repayments []*domain.Repayment) error

	// CreateRepayment inserts a single repayment
	CreateRepayment(ctx context.Context, repayment *domain.Repayment) error

	// GetRepayment retrieves a repayment of one of the owner's loans
	GetRepayment(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Repayment, error)

	// ListRepayments retrieves a loan's repayments newest first
	ListRepayments(ctx context.Context, loanID int64) ([]*domain.Repayment, error)

	// MarkRepaymentPaid moves a repayment to paid and links its expense
	MarkRepaymentPaid(ctx context.Context, repaymentID int64, expenseID int64) error

	// NextPendingDate returns the earliest pending scheduled date, nil when none remain
	NextPendingDate(ctx context.Context, loanID int64) (*time.Time, error)

	// TotalPaid sums the amount of paid repayments of a loan
	TotalPaid(ctx context.Context, loanID int64) (int64, error)

	// PaymentsDue counts and sums unpaid repayments scheduled on or before asOf
	PaymentsDue(ctx context.Context, ownerID uuid.UUID, asOf time.Time) (domain.PaymentDueSummary, error)

	// MarkOverdue flips pending repayments scheduled before asOf to overdue
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// BudgetRepository defines the interface for budget data operations
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Budget, error)
	GetWithSpending(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.BudgetWithSpending, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.BudgetWithSpending, error)
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Tag, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// Usage counts and sums the owner's incomes and expenses carrying the tag
	Usage(ctx context.Context, ownerID uuid.UUID, id int64) (domain.TagUsage, error)
}

// ShoppingRepository defines the interface for shopping plans and their items
type ShoppingRepository interface {
	CreatePlan(ctx context.Context, plan *domain.ShoppingPlan) error
	GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlan, error)
	ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error)
	UpdatePlan(ctx context.Context, plan *domain.ShoppingPlan) error
	DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error

	CreateItem(ctx context.Context, item *domain.ShoppingItem) error
	GetItem(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingItem, error)
	ListItems(ctx context.Context, planID int64) ([]*domain.ShoppingItem, error)
	UpdateItem(ctx context.Context, item *domain.ShoppingItem) error
	DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// SavingGoalRepository defines the interface for saving goal data operations
type SavingGoalRepository interface {
	Create(ctx context.Context, goal *domain.SavingGoal) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.SavingGoal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.SavingGoal, error)
	Update(ctx context.Context, goal *domain.SavingGoal) error
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	CreateContribution(ctx context.Context, contribution *domain.SavingContribution) error
	ListContributions(ctx context.Context, goalID int64) ([]*domain.SavingContribution, error)
	DeleteContribution(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// DashboardRepository aggregates per-owner totals for the dashboard
type DashboardRepository interface {
	BudgetSummary(ctx context.Context, ownerID uuid.UUID) (domain.BudgetSummary, error)
	IncomeExpenseSummary(ctx context.Context, ownerID uuid.UUID) (domain.IncomeExpenseSummary, error)
	LoanSummary(ctx context.Context, ownerID uuid.UUID) (domain.LoanSummary, error)
	SavingGoalsSummary(ctx context.Context, ownerID uuid.UUID) (domain.SavingGoalsSummary, error)
}
