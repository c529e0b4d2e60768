package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/finance-tracker/internal/domain"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func shoppingRouter(service *mocks.MockShoppingService) *mux.Router {
	h := NewShoppingHandler(service, quietLogger())
	router := mux.NewRouter()
	router.HandleFunc("/shopping-plans", h.CreatePlan).Methods("POST")
	router.HandleFunc("/shopping-plans", h.ListPlans).Methods("GET")
	router.HandleFunc("/shopping-plans/{id}", h.GetPlan).Methods("GET")
	router.HandleFunc("/shopping-plans/{id}/status", h.SetPlanStatus).Methods("PATCH")
	router.HandleFunc("/shopping-plans/{id}/items", h.AddItem).Methods("POST")
	router.HandleFunc("/shopping-items/{id}", h.UpdateItem).Methods("PATCH")
	return router
}

func TestCreateShoppingPlan_Created(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockShoppingService{}
	service.On("CreatePlan", mock.Anything, owner, &domain.CreateShoppingPlanRequest{PlanDate: "2024-03-09"}).
		Return(&domain.ShoppingPlan{ID: 1, Status: domain.ShoppingStatusDraft}, nil)

	req := authed(httptest.NewRequest(http.MethodPost, "/shopping-plans", strings.NewReader(`{"plan_date":"2024-03-09"}`)), owner)
	rec := httptest.NewRecorder()
	shoppingRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	service.AssertExpectations(t)
}

func TestListShoppingPlans_Filters(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockShoppingService{}
	start := mustParse(t, "2024-03-01")
	service.On("ListPlans", mock.Anything, owner, domain.ShoppingPlanFilter{Status: "ready", StartDate: &start}).
		Return([]*domain.ShoppingPlan{}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/shopping-plans?status=ready&start_date=2024-03-01", nil), owner)
	rec := httptest.NewRecorder()
	shoppingRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestGetShoppingPlan_EncodesDecimalTotals(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockShoppingService{}
	service.On("GetPlan", mock.Anything, owner, int64(4)).Return(&domain.ShoppingPlanWithItems{
		ShoppingPlan:   &domain.ShoppingPlan{ID: 4},
		Items:          []*domain.ShoppingItem{},
		TotalEstimated: 500,
		TotalActual:    decimal.RequireFromString("3.75"),
	}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/shopping-plans/4", nil), owner)
	rec := httptest.NewRecorder()
	shoppingRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			ID             int64  `json:"id"`
			TotalEstimated int64  `json:"total_estimated"`
			TotalActual    string `json:"total_actual"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(4), body.Data.ID)
	assert.Equal(t, int64(500), body.Data.TotalEstimated)
	assert.Equal(t, "3.75", body.Data.TotalActual)
}

func TestAddShoppingItem(t *testing.T) {
	owner := uuid.New()

	t.Run("created", func(t *testing.T) {
		service := &mocks.MockShoppingService{}
		service.On("AddItem", mock.Anything, owner, int64(2), mock.MatchedBy(func(r *domain.CreateShoppingItemRequest) bool {
			return r.Name == "Rice" && r.Quantity.Equal(decimal.RequireFromString("1.5"))
		})).Return(&domain.ShoppingItem{ID: 7, PlanID: 2}, nil)

		body := `{"name":"Rice","quantity":"1.5","need_want":"need","estimate_price":1200}`
		req := authed(httptest.NewRequest(http.MethodPost, "/shopping-plans/2/items", strings.NewReader(body)), owner)
		rec := httptest.NewRecorder()
		shoppingRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		service.AssertExpectations(t)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"name":"Rice","quantity":0,"need_want":"need","estimate_price":1200}`},
		{"unknown priority", `{"name":"Rice","quantity":1,"need_want":"nice","estimate_price":1200}`},
		{"missing estimate", `{"name":"Rice","quantity":1,"need_want":"want"}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			service := &mocks.MockShoppingService{}
			req := authed(httptest.NewRequest(http.MethodPost, "/shopping-plans/2/items", strings.NewReader(tt.body)), owner)
			rec := httptest.NewRecorder()
			shoppingRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			service.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateShoppingItem_RejectsNegativeActualPrice(t *testing.T) {
	service := &mocks.MockShoppingService{}
	req := authed(httptest.NewRequest(http.MethodPatch, "/shopping-items/7", strings.NewReader(`{"actual_price":"-2.00"}`)), uuid.New())
	rec := httptest.NewRecorder()
	shoppingRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetShoppingPlanStatus(t *testing.T) {
	owner := uuid.New()

	t.Run("known status", func(t *testing.T) {
		service := &mocks.MockShoppingService{}
		service.On("SetPlanStatus", mock.Anything, owner, int64(3), domain.ShoppingStatusShopping).
			Return(&domain.ShoppingPlan{ID: 3, Status: domain.ShoppingStatusShopping}, nil)

		req := authed(httptest.NewRequest(http.MethodPatch, "/shopping-plans/3/status", strings.NewReader(`{"status":"shopping"}`)), owner)
		rec := httptest.NewRecorder()
		shoppingRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		service := &mocks.MockShoppingService{}
		req := authed(httptest.NewRequest(http.MethodPatch, "/shopping-plans/3/status", strings.NewReader(`{"status":"paused"}`)), owner)
		rec := httptest.NewRecorder()
		shoppingRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "SetPlanStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign plan", func(t *testing.T) {
		service := &mocks.MockShoppingService{}
		service.On("SetPlanStatus", mock.Anything, owner, int64(3), domain.ShoppingStatusReady).
			Return(nil, customError.WrapNotFound("Shopping plan", 3))

		req := authed(httptest.NewRequest(http.MethodPatch, "/shopping-plans/3/status", strings.NewReader(`{"status":"ready"}`)), owner)
		rec := httptest.NewRecorder()
		shoppingRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
