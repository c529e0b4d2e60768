package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repositories groups every repository bound to one connection or transaction
type Repositories struct {
	Incomes     IncomeRepository
	Expenses    ExpenseRepository
	Ledger      LedgerRepository
	Balances    BalanceRepository
	Loans       LoanRepository
	Budgets     BudgetRepository
	Tags        TagRepository
	SavingGoals SavingGoalRepository
	Shopping    ShoppingRepository
	Dashboard   DashboardRepository
}

// Store hands out repositories and makes the transaction boundary explicit
type Store interface {
	// Repositories returns repositories running outside any transaction
	Repositories() *Repositories

	// WithTx runs fn against repositories bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise
	WithTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type sqlStore struct {
	db    *sqlx.DB
	repos *Repositories
}

func NewStore(db *sqlx.DB) Store {
	return &sqlStore{db: db, repos: NewRepositories(db)}
}

// NewRepositories binds every repository to q, which may be a *sqlx.DB or *sqlx.Tx
func NewRepositories(q sqlx.ExtContext) *Repositories {
	return &Repositories{
		Incomes:     NewIncomeRepository(q),
		Expenses:    NewExpenseRepository(q),
		Ledger:      NewLedgerRepository(q),
		Balances:    NewBalanceRepository(q),
		Loans:       NewLoanRepository(q),
		Budgets:     NewBudgetRepository(q),
		Tags:        NewTagRepository(q),
		SavingGoals: NewSavingGoalRepository(q),
		Shopping:    NewShoppingRepository(q),
		Dashboard:   NewDashboardRepository(q),
	}
}

func (s *sqlStore) Repositories() *Repositories {
	return s.repos
}

func (s *sqlStore) WithTx(ctx context.Context, fn func(repos *Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}

	return tx.Commit()
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint violation
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// ForeignKeyViolation returns the violated constraint name when err is a
// Postgres foreign key violation
func ForeignKeyViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// IsOwnerViolation reports whether err is a foreign key violation on a
// user_id column, i.e. the owner has no users row
func IsOwnerViolation(err error) bool {
	constraint, ok := ForeignKeyViolation(err)
	return ok && strings.HasSuffix(constraint, "_user_id_fkey")
}
