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

type ShoppingService interface {
	CreatePlan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateShoppingPlanRequest) (*domain.ShoppingPlan, error)
	GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlanWithItems, error)
	ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error)
	UpdatePlan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingPlanRequest) (*domain.ShoppingPlan, error)
	SetPlanStatus(ctx context.Context, ownerID uuid.UUID, id int64, status string) (*domain.ShoppingPlan, error)
	DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error
	AddItem(ctx context.Context, ownerID uuid.UUID, planID int64, request *domain.CreateShoppingItemRequest) (*domain.ShoppingItem, error)
	UpdateItem(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingItemRequest) (*domain.ShoppingItem, error)
	DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error
}

type ShoppingHandler struct {
	shopping  ShoppingService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewShoppingHandler(shopping ShoppingService, logger *logrus.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shopping:  shopping,
		validator: NewValidator(),
		logger:    logger,
	}
}

func (h *ShoppingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateShoppingPlanRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	plan, err := h.shopping.CreatePlan(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, plan)
}

func (h *ShoppingHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
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

	plan, err := h.shopping.GetPlan(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, plan)
}

// ListPlans accepts status, start_date and end_date query filters
func (h *ShoppingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	filter := domain.ShoppingPlanFilter{Status: r.URL.Query().Get("status")}
	if filter.StartDate, filter.EndDate, err = dateRange(r); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	plans, err := h.shopping.ListPlans(r.Context(), owner, filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, plans)
}

func (h *ShoppingHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateShoppingPlanRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	plan, err := h.shopping.UpdatePlan(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, plan)
}

func (h *ShoppingHandler) SetPlanStatus(w http.ResponseWriter, r *http.Request) {
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

	var request domain.ShoppingStatusRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	plan, err := h.shopping.SetPlanStatus(r.Context(), owner, id, request.Status)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, plan)
}

func (h *ShoppingHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
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

	if err := h.shopping.DeletePlan(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}

func (h *ShoppingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	planID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateShoppingItemRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	item, err := h.shopping.AddItem(r.Context(), owner, planID, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, item)
}

func (h *ShoppingHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateShoppingItemRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	item, err := h.shopping.UpdateItem(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, item)
}

func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.shopping.DeleteItem(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}
