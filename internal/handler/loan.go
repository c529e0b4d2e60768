package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type LoanService interface {
	CreateLoan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error)
	GetLoan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.LoanWithRepayments, error)
	ListLoans(ctx context.Context, ownerID uuid.UUID) ([]*domain.Loan, error)
	UpdateLoan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateLoanRequest) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, ownerID uuid.UUID, id int64) error
	ListRepayments(ctx context.Context, ownerID uuid.UUID, loanID int64) ([]*domain.Repayment, error)
	AddRepayment(ctx context.Context, ownerID uuid.UUID, loanID int64, request *domain.CreateRepaymentRequest) (*domain.Repayment, error)
	MarkRepaymentPaid(ctx context.Context, ownerID uuid.UUID, repaymentID int64, request *domain.MarkRepaymentPaidRequest) (*domain.Repayment, domain.RecalcOutcome, error)
	PaymentsDue(ctx context.Context, ownerID uuid.UUID) (domain.PaymentDueSummary, error)
}

type LoanHandler struct {
	service   LoanService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewLoanHandler(service LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: NewValidator(),
		logger:    logger,
	}
}

type RepaymentResult struct {
	Repayment     *domain.Repayment `json:"repayment"`
	Recalculation RecalculationView `json:"recalculation"`
}

// CreateLoan handles POST /loans and returns the loan with its generated schedule
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateLoanRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	created, err := h.service.CreateLoan(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, created)
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	loans, err := h.service.ListLoans(r.Context(), owner)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, loans)
}

func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.UpdateLoanRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := h.service.DeleteLoan(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}

func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	repayments, err := h.service.ListRepayments(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, repayments)
}

func (h *LoanHandler) AddRepayment(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateRepaymentRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	repayment, err := h.service.AddRepayment(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, repayment)
}

// MarkRepaymentPaid handles POST /repayments/{id}/pay. The body is optional.
func (h *LoanHandler) MarkRepaymentPaid(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.MarkRepaymentPaidRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, h.validator, &request); err != nil {
			writeError(w, h.logger, r, err)
			return
		}
	}

	repayment, outcome, err := h.service.MarkRepaymentPaid(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, RepaymentResult{Repayment: repayment, Recalculation: recalculationView(outcome)})
}

func (h *LoanHandler) PaymentsDue(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	due, err := h.service.PaymentsDue(r.Context(), owner)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, due)
}
