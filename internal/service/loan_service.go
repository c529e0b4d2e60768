package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/sirupsen/logrus"
)

type LoanService struct {
	store        repository.Store
	recalculator *BalanceRecalculator
	cache        DashboardCache
	logger       *logrus.Logger
}

func NewLoanService(
	store repository.Store,
	recalculator *BalanceRecalculator,
	cache DashboardCache,
	logger *logrus.Logger,
) *LoanService {
	return &LoanService{
		store:        store,
		recalculator: recalculator,
		cache:        cache,
		logger:       logger,
	}
}

// CreateLoan stores the loan together with its full repayment schedule in one
// transaction. The schedule amortizes the remaining principal from next_due_date.
func (s *LoanService) CreateLoan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error) {
	if request.InterestRate.IsNegative() || request.InterestRate.GreaterThan(hundred) {
		return nil, customError.WrapValidation("interest rate must be between 0 and 100")
	}
	nextDue, err := parseDate("next_due_date", request.NextDueDate)
	if err != nil {
		return nil, err
	}

	remaining := request.RemainingPrincipal
	if remaining == 0 && !request.IsPaidOff {
		remaining = request.PrincipalAmount
	}
	if remaining > request.PrincipalAmount {
		return nil, customError.WrapValidation("remaining principal cannot exceed principal amount")
	}

	loan := &domain.Loan{
		OwnerID:            ownerID,
		Lender:             request.Lender,
		PrincipalAmount:    request.PrincipalAmount,
		RemainingPrincipal: remaining,
		InterestRate:       request.InterestRate,
		TenureMonths:       request.TenureMonths,
		RepaymentFrequency: request.RepaymentFrequency,
		EMI:                request.EMI,
		NextDueDate:        nextDue,
		IsPaidOff:          request.IsPaidOff || remaining == 0,
	}

	schedule := []*domain.Repayment{}
	if !loan.IsPaidOff {
		schedule, err = GenerateSchedule(ScheduleTerms{
			Principal:   loan.RemainingPrincipal,
			AnnualRate:  loan.InterestRate,
			Tenure:      loan.TenureMonths,
			Frequency:   loan.RepaymentFrequency,
			Installment: loan.EMI,
			Start:       loan.NextDueDate,
		})
		if err != nil {
			return nil, err
		}
	}

	err = s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Loans.Create(ctx, loan); err != nil {
			return translate(err, "Loan", 0)
		}

		for _, repayment := range schedule {
			repayment.LoanID = loan.ID
			repayment.OwnerID = ownerID
		}
		if err := repos.Loans.CreateSchedule(ctx, schedule); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"loan_id":  loan.ID,
		"entries":  len(schedule),
	}).Info("loan created")

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return &domain.CreateLoanResponse{Loan: loan, Schedule: schedule}, nil
}

// GetLoan returns the loan with its repayments and the sum of paid amounts
func (s *LoanService) GetLoan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.LoanWithRepayments, error) {
	repos := s.store.Repositories()

	loan, err := repos.Loans.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Loan", id)
	}

	repayments, err := repos.Loans.ListRepayments(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totalPaid, err := repos.Loans.TotalPaid(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.LoanWithRepayments{Loan: loan, Repayments: repayments, TotalPaid: totalPaid}, nil
}

func (s *LoanService) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	loans, err := s.store.Repositories().Loans.List(ctx, ownerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// UpdateLoan applies the non-nil fields. The existing schedule is left as is.
func (s *LoanService) UpdateLoan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	repos := s.store.Repositories()

	loan, err := repos.Loans.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Loan", id)
	}

	if request.Lender != nil {
		loan.Lender = *request.Lender
	}
	if request.PrincipalAmount != nil {
		loan.PrincipalAmount = *request.PrincipalAmount
	}
	if request.RemainingPrincipal != nil {
		loan.RemainingPrincipal = *request.RemainingPrincipal
	}
	if request.InterestRate != nil {
		if request.InterestRate.IsNegative() || request.InterestRate.GreaterThan(hundred) {
			return nil, customError.WrapValidation("interest rate must be between 0 and 100")
		}
		loan.InterestRate = *request.InterestRate
	}
	if request.TenureMonths != nil {
		loan.TenureMonths = *request.TenureMonths
	}
	if request.RepaymentFrequency != nil {
		loan.RepaymentFrequency = *request.RepaymentFrequency
	}
	if request.EMI != nil {
		loan.EMI = *request.EMI
	}
	if request.NextDueDate != nil {
		if loan.NextDueDate, err = parseDate("next_due_date", *request.NextDueDate); err != nil {
			return nil, err
		}
	}
	if request.IsPaidOff != nil {
		loan.IsPaidOff = *request.IsPaidOff
	}

	if err := repos.Loans.Update(ctx, loan); err != nil {
		return nil, translate(err, "Loan", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return loan, nil
}

// DeleteLoan removes the loan and, by cascade, its repayments
func (s *LoanService) DeleteLoan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if err := s.store.Repositories().Loans.Delete(ctx, ownerID, id); err != nil {
		return translate(err, "Loan", id)
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return nil
}

func (s *LoanService) ListRepayments(ctx context.Context, ownerID uuid.UUID, loanID int64) ([]*domain.Repayment, error) {
	repos := s.store.Repositories()

	if _, err := repos.Loans.GetByID(ctx, ownerID, loanID); err != nil {
		return nil, translate(err, "Loan", loanID)
	}

	repayments, err := repos.Loans.ListRepayments(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return repayments, nil
}

// AddRepayment records a manual repayment. A repayment recorded as paid
// decrements the loan's remaining principal immediately.
func (s *LoanService) AddRepayment(ctx context.Context, ownerID uuid.UUID, loanID int64, request *domain.CreateRepaymentRequest) (*domain.Repayment, error) {
	scheduled, err := parseDate("scheduled_date", request.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if request.Amount <= 0 {
		return nil, customError.WrapValidation("amount must be greater than 0")
	}
	if request.PrincipalAmount < 0 || request.InterestAmount < 0 {
		return nil, customError.WrapValidation("principal and interest amounts must not be negative")
	}

	status := request.Status
	if status == "" {
		status = domain.RepaymentStatusPending
	}

	repayment := &domain.Repayment{
		LoanID:          loanID,
		OwnerID:         ownerID,
		ScheduledDate:   scheduled,
		Amount:          request.Amount,
		PrincipalAmount: request.PrincipalAmount,
		InterestAmount:  request.InterestAmount,
		Status:          status,
	}

	err = s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Loans.GetByID(ctx, ownerID, loanID); err != nil {
			return translate(err, "Loan", loanID)
		}

		var err error
		if repayment.ExpenseID, err = resolveExpense(ctx, repos, ownerID, request.ExpenseID); err != nil {
			return err
		}

		if err := repos.Loans.CreateRepayment(ctx, repayment); err != nil {
			return customError.WrapDatabaseError(err)
		}

		if status == domain.RepaymentStatusPaid {
			if _, _, err := repos.Loans.DecrementPrincipal(ctx, loanID, repayment.PrincipalAmount); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return repayment, nil
}

// MarkRepaymentPaid moves a pending or overdue repayment to paid. The expense
// for the cash outflow, the principal decrement and the next_due_date advance
// commit together; failure of any of them leaves the repayment untouched.
// The balance ledger is then replayed from the payment date.
func (s *LoanService) MarkRepaymentPaid(ctx context.Context, ownerID uuid.UUID, repaymentID int64, request *domain.MarkRepaymentPaidRequest) (*domain.Repayment, domain.RecalcOutcome, error) {
	paymentDate := s.recalculator.Today()
	if request.PaymentDate != nil {
		date, err := parseDate("payment_date", *request.PaymentDate)
		if err != nil {
			return nil, domain.RecalcOutcome{}, err
		}
		paymentDate = date
	}

	var repayment *domain.Repayment

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		repayment, err = repos.Loans.GetRepayment(ctx, ownerID, repaymentID)
		if err != nil {
			return translate(err, "Repayment", repaymentID)
		}
		if repayment.Status == domain.RepaymentStatusPaid {
			return customError.WrapRepaymentAlreadyPaid(repaymentID)
		}

		loan, err := repos.Loans.GetByID(ctx, ownerID, repayment.LoanID)
		if err != nil {
			return translate(err, "Loan", repayment.LoanID)
		}

		expense := &domain.Expense{
			OwnerID: ownerID,
			Name:    fmt.Sprintf("Loan Payment - %s", loan.Lender),
			Amount:  repayment.Amount,
			Date:    paymentDate,
		}
		if request.ExpenseName != nil && *request.ExpenseName != "" {
			expense.Name = *request.ExpenseName
		}
		if expense.BudgetID, err = resolveBudget(ctx, repos, ownerID, request.BudgetID); err != nil {
			return err
		}
		if expense.TagID, err = resolveTag(ctx, repos, ownerID, request.TagID); err != nil {
			return err
		}
		if err := repos.Expenses.Create(ctx, expense); err != nil {
			return translate(err, "Expense", 0)
		}

		// zero rows here means a concurrent request paid it first
		if err := repos.Loans.MarkRepaymentPaid(ctx, repaymentID, expense.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapRepaymentAlreadyPaid(repaymentID)
			}
			return customError.WrapDatabaseError(err)
		}
		repayment.Status = domain.RepaymentStatusPaid
		repayment.ExpenseID = &expense.ID

		if _, _, err := repos.Loans.DecrementPrincipal(ctx, loan.ID, repayment.PrincipalAmount); err != nil {
			return customError.WrapDatabaseError(err)
		}

		next, err := repos.Loans.NextPendingDate(ctx, loan.ID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if next != nil {
			if err := repos.Loans.SetNextDueDate(ctx, loan.ID, *next); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, domain.RecalcOutcome{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id":     ownerID,
		"loan_id":      repayment.LoanID,
		"repayment_id": repaymentID,
	}).Info("repayment marked paid")

	invalidateDashboard(ctx, s.cache, s.logger, ownerID)
	return repayment, s.recalculator.Replay(ctx, s.store, ownerID, paymentDate), nil
}

// PaymentsDue counts and sums unpaid repayments scheduled on or before today
func (s *LoanService) PaymentsDue(ctx context.Context, ownerID uuid.UUID) (domain.PaymentDueSummary, error) {
	due, err := s.store.Repositories().Loans.PaymentsDue(ctx, ownerID, s.recalculator.Today())
	if err != nil {
		return due, customError.WrapDatabaseError(err)
	}
	return due, nil
}

// MarkOverdue flips every pending repayment scheduled before today to overdue
func (s *LoanService) MarkOverdue(ctx context.Context) (int64, error) {
	today := s.recalculator.Today()

	count, err := s.store.Repositories().Loans.MarkOverdue(ctx, today)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"as_of": today.Format(utils.DateLayout),
		"count": count,
	}).Info("marked repayments overdue")

	return count, nil
}
