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

type BalanceService interface {
	ListHistory(ctx context.Context, ownerID uuid.UUID, start, end *string) ([]*domain.DailyBalance, error)
	Recalculate(ctx context.Context, ownerID uuid.UUID, request *domain.RecalculateRequest) (domain.RecalculationReport, error)
}

type DashboardService interface {
	Summary(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, error)
}

// BalanceHandler serves balance history, bulk recalculation and the dashboard
type BalanceHandler struct {
	balances  BalanceService
	dashboard DashboardService
	validator *validator.Validate
	logger    *logrus.Logger
}

func NewBalanceHandler(balances BalanceService, dashboard DashboardService, logger *logrus.Logger) *BalanceHandler {
	return &BalanceHandler{
		balances:  balances,
		dashboard: dashboard,
		validator: NewValidator(),
		logger:    logger,
	}
}

func (h *BalanceHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	history, err := h.balances.ListHistory(r.Context(), owner, start, end)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, history)
}

// Recalculate handles POST /balance-history/recalculate. An empty body replays
// from the earliest transaction.
func (h *BalanceHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var request domain.RecalculateRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, h.validator, &request); err != nil {
			writeError(w, h.logger, r, err)
			return
		}
	}

	report, err := h.balances.Recalculate(r.Context(), owner, &request)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, report)
}

func (h *BalanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), owner)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	response.Success(w, summary)
}
