package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type loanRepository struct {
	db sqlx.ExtContext
}

func NewLoanRepository(db sqlx.ExtContext) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, lender, principal_amount, remaining_principal, interest_rate, tenure_months,
	repayment_frequency, emi, next_due_date, is_paid_off, created_at, updated_at`

const repaymentColumns = `r.id, r.loan_id, r.user_id, r.scheduled_date, r.amount, r.principal_amount,
	r.interest_amount, r.status, r.expense_id, r.created_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (user_id, lender, principal_amount, remaining_principal, interest_rate, tenure_months,
			repayment_frequency, emi, next_due_date, is_paid_off)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		loan.OwnerID,
		loan.Lender,
		loan.PrincipalAmount,
		loan.RemainingPrincipal,
		loan.InterestRate,
		loan.TenureMonths,
		loan.RepaymentFrequency,
		loan.EMI,
		loan.NextDueDate,
		loan.IsPaidOff,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
}

func (r *loanRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND user_id = $2`

	var loan domain.Loan
	if err := sqlx.GetContext(ctx, r.db, &loan, query, id, ownerID); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_at DESC`

	loans := []*domain.Loan{}
	if err := sqlx.SelectContext(ctx, r.db, &loans, query, ownerID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET lender = $3, principal_amount = $4, remaining_principal = $5, interest_rate = $6, tenure_months = $7,
			repayment_frequency = $8, emi = $9, next_due_date = $10, is_paid_off = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		loan.ID,
		loan.OwnerID,
		loan.Lender,
		loan.PrincipalAmount,
		loan.RemainingPrincipal,
		loan.InterestRate,
		loan.TenureMonths,
		loan.RepaymentFrequency,
		loan.EMI,
		loan.NextDueDate,
		loan.IsPaidOff,
	).Scan(&loan.UpdatedAt)
}

func (r *loanRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1 AND user_id = $2`, id, ownerID)
	return requireAffected(res, err)
}

func (r *loanRepository) DecrementPrincipal(ctx context.Context, loanID int64, principal int64) (int64, bool, error) {
	query := `
		UPDATE loans
		SET remaining_principal = GREATEST(remaining_principal - $2, 0),
			is_paid_off = is_paid_off OR GREATEST(remaining_principal - $2, 0) = 0,
			updated_at = NOW()
		WHERE id = $1
		RETURNING remaining_principal, is_paid_off
	`

	var (
		remaining int64
		paidOff   bool
	)
	if err := r.db.QueryRowxContext(ctx, query, loanID, principal).Scan(&remaining, &paidOff); err != nil {
		return 0, false, err
	}

	return remaining, paidOff, nil
}

func (r *loanRepository) SetNextDueDate(ctx context.Context, loanID int64, due time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE loans SET next_due_date = $2, updated_at = NOW() WHERE id = $1`, loanID, due)
	return requireAffected(res, err)
}

func (r *loanRepository) CreateSchedule(ctx context.Context, repayments []*domain.Repayment) error {
	for _, repayment := range repayments {
		if err := r.CreateRepayment(ctx, repayment); err != nil {
			return err
		}
	}

	return nil
}

func (r *loanRepository) CreateRepayment(ctx context.Context, repayment *domain.Repayment) error {
	query := `
		INSERT INTO loan_repayments (loan_id, user_id, scheduled_date, amount, principal_amount, interest_amount, status, expense_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		repayment.LoanID,
		repayment.OwnerID,
		repayment.ScheduledDate,
		repayment.Amount,
		repayment.PrincipalAmount,
		repayment.InterestAmount,
		repayment.Status,
		repayment.ExpenseID,
	).Scan(&repayment.ID, &repayment.CreatedAt)
}

func (r *loanRepository) GetRepayment(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Repayment, error) {
	query := `
		SELECT ` + repaymentColumns + `
		FROM loan_repayments r
		JOIN loans l ON l.id = r.loan_id
		WHERE r.id = $1 AND l.user_id = $2
	`

	var repayment domain.Repayment
	if err := sqlx.GetContext(ctx, r.db, &repayment, query, id, ownerID); err != nil {
		return nil, err
	}

	return &repayment, nil
}

func (r *loanRepository) ListRepayments(ctx context.Context, loanID int64) ([]*domain.Repayment, error) {
	query := `
		SELECT ` + repaymentColumns + `
		FROM loan_repayments r
		WHERE r.loan_id = $1
		ORDER BY r.scheduled_date DESC
	`

	repayments := []*domain.Repayment{}
	if err := sqlx.SelectContext(ctx, r.db, &repayments, query, loanID); err != nil {
		return nil, err
	}

	return repayments, nil
}

func (r *loanRepository) MarkRepaymentPaid(ctx context.Context, repaymentID int64, expenseID int64) error {
	query := `
		UPDATE loan_repayments
		SET status = $2, expense_id = $3
		WHERE id = $1 AND status <> $2
	`

	res, err := r.db.ExecContext(ctx, query, repaymentID, domain.RepaymentStatusPaid, expenseID)
	return requireAffected(res, err)
}

func (r *loanRepository) NextPendingDate(ctx context.Context, loanID int64) (*time.Time, error) {
	query := `
		SELECT MIN(scheduled_date)
		FROM loan_repayments
		WHERE loan_id = $1 AND status = $2
	`

	var next sql.NullTime
	err := r.db.QueryRowxContext(ctx, query, loanID, domain.RepaymentStatusPending).Scan(&next)
	return nullableTime(next, err)
}

func (r *loanRepository) TotalPaid(ctx context.Context, loanID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::BIGINT
		FROM loan_repayments
		WHERE loan_id = $1 AND status = $2
	`

	var total int64
	if err := r.db.QueryRowxContext(ctx, query, loanID, domain.RepaymentStatusPaid).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *loanRepository) PaymentsDue(ctx context.Context, ownerID uuid.UUID, asOf time.Time) (domain.PaymentDueSummary, error) {
	query := `
		SELECT COUNT(r.id) AS count, COALESCE(SUM(r.amount), 0)::BIGINT AS total_amount
		FROM loan_repayments r
		JOIN loans l ON l.id = r.loan_id
		WHERE l.user_id = $1 AND r.status <> $2 AND r.scheduled_date <= $3
	`

	var due domain.PaymentDueSummary
	err := sqlx.GetContext(ctx, r.db, &due, query, ownerID, domain.RepaymentStatusPaid, asOf)
	return due, err
}

func (r *loanRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE loan_repayments
		SET status = $1
		WHERE status = $2 AND scheduled_date < $3
	`

	res, err := r.db.ExecContext(ctx, query, domain.RepaymentStatusOverdue, domain.RepaymentStatusPending, asOf)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
