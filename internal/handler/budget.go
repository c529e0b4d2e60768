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

type BudgetService interface {
	CreateBudget(ctx context.Context, ownerID uuid.UUID, request *domain.CreateBudgetRequest) (*domain.Budget, error)
	GetBudget(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.BudgetWithSpending, error)
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*domain.BudgetWithSpending, error)
	UpdateBudget(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.RecalcOutcome, error)
}

type TagService interface {
	CreateTag(ctx context.Context, ownerID uuid.UUID, request *domain.CreateTagRequest) (*domain.Tag, error)
	GetTag(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.TagWithStats, error)
	ListTags(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateTagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// BudgetHandler serves budgets and tags
type BudgetHandler struct {
	budgets   BudgetService
	tags      TagService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewBudgetHandler(budgets BudgetService, tags TagService, logger *logrus.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgets:   budgets,
		tags:      tags,
		validator: NewValidator(),
		logger:    logger,
	}
}

type BudgetDeleteResult struct {
	Deleted       int64              `json:"deleted"`
	Recalculation *RecalculationView `json:"recalculation,omitempty"`
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateBudgetRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	budget, err := h.budgets.CreateBudget(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, budget)
}

func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
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

	budget, err := h.budgets.GetBudget(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, budget)
}

func (h *BudgetHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	budgets, err := h.budgets.ListBudgets(r.Context(), owner)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, budgets)
}

func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateBudgetRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	budget, err := h.budgets.UpdateBudget(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, budget)
}

func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
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

	outcome, err := h.budgets.DeleteBudget(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	result := BudgetDeleteResult{Deleted: id}
	if outcome != nil {
		view := recalculationView(*outcome)
		result.Recalculation = &view
	}
	response.Success(w, result)
}

func (h *BudgetHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateTagRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	tag, err := h.tags.CreateTag(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, tag)
}

func (h *BudgetHandler) GetTag(w http.ResponseWriter, r *http.Request) {
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

	tag, err := h.tags.GetTag(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, tag)
}

func (h *BudgetHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	budgetID, err := queryInt(r, "budget_id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	filter := domain.TagFilter{BudgetID: budgetID, UsedWith: r.URL.Query().Get("used_with")}
	tags, err := h.tags.ListTags(r.Context(), owner, filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, tags)
}

func (h *BudgetHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateTagRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	tag, err := h.tags.UpdateTag(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, tag)
}

func (h *BudgetHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
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

	if err := h.tags.DeleteTag(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}
