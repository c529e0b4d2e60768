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

type SavingGoalService interface {
	CreateGoal(ctx context.Context, ownerID uuid.UUID, request *domain.CreateSavingGoalRequest) (*domain.SavingGoal, error)
	GetGoal(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.SavingGoalWithContributions, error)
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*domain.SavingGoal, error)
	UpdateGoal(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateSavingGoalRequest) (*domain.SavingGoal, error)
	DeleteGoal(ctx context.Context, ownerID uuid.UUID, id int64) error
	AddContribution(ctx context.Context, ownerID uuid.UUID, goalID int64, request *domain.CreateContributionRequest) (*domain.SavingContribution, error)
	DeleteContribution(ctx context.Context, ownerID uuid.UUID, id int64) error
}

type SavingGoalHandler struct {
	service   SavingGoalService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewSavingGoalHandler(service SavingGoalService, logger *logrus.Logger) *SavingGoalHandler {
	return &SavingGoalHandler{
		service:   service,
		validator: NewValidator(),
		logger:    logger,
	}
}

func (h *SavingGoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.CreateSavingGoalRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, goal)
}

func (h *SavingGoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
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

	goal, err := h.service.GetGoal(r.Context(), owner, id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, goal)
}

func (h *SavingGoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	goals, err := h.service.ListGoals(r.Context(), owner)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, goals)
}

func (h *SavingGoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
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

	var request domain.UpdateSavingGoalRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	goal, err := h.service.UpdateGoal(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, goal)
}

func (h *SavingGoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteGoal(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}

func (h *SavingGoalHandler) AddContribution(w http.ResponseWriter, r *http.Request) {
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

	var request domain.CreateContributionRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	contribution, err := h.service.AddContribution(r.Context(), owner, id, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Created(w, contribution)
}

func (h *SavingGoalHandler) DeleteContribution(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteContribution(r.Context(), owner, id); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.NoContent(w)
}
