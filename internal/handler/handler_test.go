package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/middleware"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/response"
	"github.com/segyhp/finance-tracker/tests/mocks"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func authed(r *http.Request, owner uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithOwnerID(r.Context(), owner))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{customError.ErrCodeValidation, http.StatusBadRequest},
		{customError.ErrCodeNotFound, http.StatusNotFound},
		{customError.ErrCodeConflict, http.StatusConflict},
		{customError.ErrCodeRepaymentAlreadyPaid, http.StatusConflict},
		{customError.ErrCodeUnauthorized, http.StatusUnauthorized},
		{customError.ErrCodeDatabaseError, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.code))
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)

	writeError(rec, quietLogger(), req, customError.WrapDatabaseError(errors.New("pq: relation \"loans\" does not exist")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, customError.ErrCodeDatabaseError, body.Error)
	assert.Equal(t, "internal server error", body.Message)
}

func TestNewValidator_DecimalBounds(t *testing.T) {
	v := NewValidator()

	type rate struct {
		Rate decimal.Decimal `validate:"gte=0,lte=100"`
	}

	assert.NoError(t, v.Struct(rate{Rate: decimal.RequireFromString("12.5")}))
	assert.Error(t, v.Struct(rate{Rate: decimal.NewFromInt(101)}))
	assert.Error(t, v.Struct(rate{Rate: decimal.NewFromInt(-1)}))
}

func loanRouter(service *mocks.MockLoanService) *mux.Router {
	h := NewLoanHandler(service, quietLogger())
	router := mux.NewRouter()
	router.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	router.HandleFunc("/loans/{id}", h.DeleteLoan).Methods("DELETE")
	router.HandleFunc("/repayments/{id}/pay", h.MarkRepaymentPaid).Methods("POST")
	return router
}

func TestCreateLoan_RejectsRateAbove100(t *testing.T) {
	service := &mocks.MockLoanService{}
	body := `{"lender":"Bank","principal_amount":1000,"interest_rate":150,"tenure_months":12,"repayment_frequency":"monthly","emi":100,"next_due_date":"2024-01-15"}`

	req := authed(httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	loanRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "InterestRate")
	service.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLoan_Created(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockLoanService{}
	body := `{"lender":"Bank","principal_amount":120000,"interest_rate":12,"tenure_months":12,"repayment_frequency":"monthly","emi":10652,"next_due_date":"2024-01-15"}`

	service.On("CreateLoan", mock.Anything, owner, mock.MatchedBy(func(r *domain.CreateLoanRequest) bool {
		return r.Lender == "Bank" && r.InterestRate.Equal(decimal.NewFromInt(12))
	})).Return(&domain.CreateLoanResponse{Loan: &domain.Loan{ID: 1, Lender: "Bank"}}, nil)

	req := authed(httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)), owner)
	rec := httptest.NewRecorder()
	loanRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	service.AssertExpectations(t)
}

func TestMarkRepaymentPaid_Handler(t *testing.T) {
	owner := uuid.New()

	t.Run("without body", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("MarkRepaymentPaid", mock.Anything, owner, int64(3), &domain.MarkRepaymentPaidRequest{}).
			Return(&domain.Repayment{ID: 3, Status: domain.RepaymentStatusPaid},
				domain.RecalcOutcome{FromDate: mustParse(t, "2024-02-20"), Days: 1}, nil)

		req := authed(httptest.NewRequest(http.MethodPost, "/repayments/3/pay", nil), owner)
		rec := httptest.NewRecorder()
		loanRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data RepaymentResult `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, domain.RepaymentStatusPaid, body.Data.Repayment.Status)
		assert.True(t, body.Data.Recalculation.OK)
		assert.Equal(t, "2024-02-20", body.Data.Recalculation.FromDate)
	})

	t.Run("already paid", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("MarkRepaymentPaid", mock.Anything, owner, int64(3), mock.Anything).
			Return(nil, domain.RecalcOutcome{}, customError.WrapRepaymentAlreadyPaid(3))

		req := authed(httptest.NewRequest(http.MethodPost, "/repayments/3/pay", strings.NewReader(`{}`)), owner)
		rec := httptest.NewRecorder()
		loanRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, customError.ErrCodeRepaymentAlreadyPaid, decodeError(t, rec).Error)
	})

	t.Run("bad payment date", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		req := authed(httptest.NewRequest(http.MethodPost, "/repayments/3/pay", strings.NewReader(`{"payment_date":"20/02/2024"}`)), owner)
		rec := httptest.NewRecorder()
		loanRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "MarkRepaymentPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non numeric id", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		req := authed(httptest.NewRequest(http.MethodPost, "/repayments/abc/pay", nil), owner)
		rec := httptest.NewRecorder()
		loanRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoanHandler_RequiresOwner(t *testing.T) {
	service := &mocks.MockLoanService{}
	req := httptest.NewRequest(http.MethodDelete, "/loans/1", nil)
	rec := httptest.NewRecorder()
	loanRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	service.AssertNotCalled(t, "DeleteLoan", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteLoan_NotFound(t *testing.T) {
	owner := uuid.New()
	service := &mocks.MockLoanService{}
	service.On("DeleteLoan", mock.Anything, owner, int64(9)).Return(customError.WrapNotFound("Loan", 9))

	req := authed(httptest.NewRequest(http.MethodDelete, "/loans/9", nil), owner)
	rec := httptest.NewRecorder()
	loanRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Loan with ID 9 not found", decodeError(t, rec).Message)
}
