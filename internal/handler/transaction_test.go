package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/pkg/utils"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func transactionRouter(service *mocks.MockTransactionService) *mux.Router {
	h := NewTransactionHandler(service, quietLogger())
	router := mux.NewRouter()
	router.HandleFunc("/incomes", h.CreateIncome).Methods("POST")
	router.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	router.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")
	return router
}

func TestCreateIncome_ReportsRecalculationFailure(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockTransactionService{}
	service.On("CreateIncome", mock.Anything, owner, mock.AnythingOfType("*domain.CreateIncomeRequest")).
		Return(&domain.Income{ID: 5, Name: "Salary", Amount: 1200},
			domain.RecalcOutcome{FromDate: mustParse(t, "2024-03-03"), Err: errors.New("deadlock")}, nil)

	body := `{"name":"Salary","amount":1200,"category":"Salary","date":"2024-03-03"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/incomes", strings.NewReader(body)), owner)
	rec := httptest.NewRecorder()
	transactionRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data IncomeResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(5), resp.Data.Income.ID)
	assert.False(t, resp.Data.Recalculation.OK)
	assert.Equal(t, "balance recalculation failed", resp.Data.Recalculation.Error)
}

func TestCreateIncome_InvalidCategory(t *testing.T) {
	service := &mocks.MockTransactionService{}
	body := `{"name":"Win","amount":10,"category":"Lottery","date":"2024-03-03"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/incomes", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	transactionRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "CreateIncome", mock.Anything, mock.Anything, mock.Anything)
}

func TestListExpenses_Filters(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockTransactionService{}
	start := mustParse(t, "2024-03-01")
	service.On("ListExpenses", mock.Anything, owner, mock.MatchedBy(func(f domain.ExpenseFilter) bool {
		return f.BudgetID == 2 && f.TagID == 0 && f.StartDate != nil && f.StartDate.Equal(start) && f.EndDate == nil
	})).Return([]*domain.ExpenseWithRelations{}, nil)

	req := authed(httptest.NewRequest(http.MethodGet, "/expenses?budget_id=2&start_date=2024-03-01", nil), owner)
	rec := httptest.NewRecorder()
	transactionRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestListExpenses_BadQuery(t *testing.T) {
	tests := []string{
		"/expenses?budget_id=x",
		"/expenses?tag_id=-1",
		"/expenses?end_date=tomorrow",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			service := &mocks.MockTransactionService{}
			req := authed(httptest.NewRequest(http.MethodGet, target, nil), uuid.New())
			rec := httptest.NewRecorder()
			transactionRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockTransactionService{}
	service.On("DeleteExpense", mock.Anything, owner, int64(4)).
		Return(domain.RecalcOutcome{FromDate: mustParse(t, "2024-03-02"), Days: 3}, nil)

	req := authed(httptest.NewRequest(http.MethodDelete, "/expenses/4", nil), owner)
	rec := httptest.NewRecorder()
	transactionRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data DeleteResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(4), resp.Data.Deleted)
	assert.Equal(t, 3, resp.Data.Recalculation.Days)
}
