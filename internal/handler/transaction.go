package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/pkg/response"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// TransactionService is what the income and expense endpoints need
type TransactionService interface {
	CreateIncome(ctx context.Context, ownerID uuid.UUID, request *domain.CreateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error)
	GetIncome(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Income, error)
	ListIncomes(ctx context.Context, ownerID uuid.UUID, filter domain.IncomeFilter) ([]*domain.IncomeWithTag, error)
	UpdateIncome(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateIncomeRequest) (*domain.Income, domain.RecalcOutcome, error)
	DeleteIncome(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error)

	CreateExpense(ctx context.Context, ownerID uuid.UUID, request *domain.CreateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error)
	GetExpense(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Expense, error)
	ListExpenses(ctx context.Context, ownerID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.ExpenseWithRelations, error)
	UpdateExpense(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateExpenseRequest) (*domain.Expense, domain.RecalcOutcome, error)
	DeleteExpense(ctx context.Context, ownerID uuid.UUID, id int64) (domain.RecalcOutcome, error)
}

type TransactionHandler struct {
	service   TransactionService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewTransactionHandler(service TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		validator: NewValidator(),
		logger:    logger,
	}
}

type IncomeResult struct {
	Income        *domain.Income    `json:"income"`
	Recalculation RecalculationView `json:"recalculation"`
}

type ExpenseResult struct {
	Expense       *domain.Expense   `json:"expense"`
	Recalculation RecalculationView `json:"recalculation"`
}

type DeleteResult struct {
	Deleted       int64             `json:"deleted"`
	Recalculation RecalculationView `json:"recalculation"`
}

func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	start, err := queryTime(r, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err := queryTime(r, "end_date")
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw, err := queryDate(r, name)
	if err != nil || raw == nil {
		return nil, err
	}
	d, _ := utils.ParseDate(*raw)
	return &d, nil
}

func (h *TransactionHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateIncomeRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	income, outcome, err := h.service.CreateIncome(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, IncomeResult{Income: income, Recalculation: recalculationView(outcome)})
}

func (h *TransactionHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
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

	income, err := h.service.GetIncome(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, income)
}

func (h *TransactionHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	filter := domain.IncomeFilter{Category: r.URL.Query().Get("category")}
	if filter.TagID, err = queryInt(r, "tag_id"); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if filter.StartDate, filter.EndDate, err = dateRange(r); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	incomes, err := h.service.ListIncomes(r.Context(), owner, filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, incomes)
}

func (h *TransactionHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateIncomeRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	income, outcome, err := h.service.UpdateIncome(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, IncomeResult{Income: income, Recalculation: recalculationView(outcome)})
}

func (h *TransactionHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
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

	outcome, err := h.service.DeleteIncome(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, DeleteResult{Deleted: id, Recalculation: recalculationView(outcome)})
}

func (h *TransactionHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateExpenseRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	expense, outcome, err := h.service.CreateExpense(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, ExpenseResult{Expense: expense, Recalculation: recalculationView(outcome)})
}

func (h *TransactionHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
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

	expense, err := h.service.GetExpense(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, expense)
}

func (h *TransactionHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var filter domain.ExpenseFilter
	if filter.BudgetID, err = queryInt(r, "budget_id"); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if filter.TagID, err = queryInt(r, "tag_id"); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if filter.StartDate, filter.EndDate, err = dateRange(r); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	expenses, err := h.service.ListExpenses(r.Context(), owner, filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, expenses)
}

func (h *TransactionHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateExpenseRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	expense, outcome, err := h.service.UpdateExpense(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, ExpenseResult{Expense: expense, Recalculation: recalculationView(outcome)})
}

func (h *TransactionHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
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

	outcome, err := h.service.DeleteExpense(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, DeleteResult{Deleted: id, Recalculation: recalculationView(outcome)})
}
