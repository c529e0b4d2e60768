package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/middleware"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/response"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// NewValidator returns a validator that understands decimal.Decimal fields,
// so numeric tags such as gte/lte apply to interest rates
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// decodeAndValidate parses a JSON body into dst and runs its validate tags
func decodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return customError.WrapValidation("invalid request body")
	}
	if err := v.Struct(dst); err != nil {
		return customError.WrapValidation(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// statusFor maps a business error code to its HTTP status
func statusFor(code string) int {
	switch code {
	case customError.ErrCodeValidation:
		return http.StatusBadRequest
	case customError.ErrCodeNotFound:
		return http.StatusNotFound
	case customError.ErrCodeConflict, customError.ErrCodeRepaymentAlreadyPaid:
		return http.StatusConflict
	case customError.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err to the client. Anything that is not a client error is
// logged and reported without internal detail.
func writeError(w http.ResponseWriter, logger *logrus.Logger, r *http.Request, err error) {
	code := customError.CodeOf(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
		if code == "" {
			code = customError.ErrCodeDatabaseError
		}
		response.Error(w, status, code, "internal server error")
		return
	}

	response.Error(w, status, code, customError.MessageOf(err))
}

func ownerID(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, customError.WrapUnauthorized("missing authenticated user")
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation(name + " must be a positive integer")
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, customError.WrapValidation(name + " must be a non-negative integer")
	}
	return v, nil
}

func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func queryDate(r *http.Request, name string) (*string, error) {
	raw := queryString(r, name)
	if raw == nil {
		return nil, nil
	}
	if _, err := utils.ParseDate(*raw); err != nil {
		return nil, customError.WrapValidation(name + " must be a date in YYYY-MM-DD format")
	}
	return raw, nil
}

// RecalculationView is the client-facing form of a balance replay outcome
type RecalculationView struct {
	OK       bool   `json:"ok"`
	FromDate string `json:"from_date"`
	Days     int    `json:"days"`
	Error    string `json:"error,omitempty"`
}

func recalculationView(outcome domain.RecalcOutcome) RecalculationView {
	view := RecalculationView{
		OK:       outcome.OK(),
		FromDate: outcome.FromDate.Format(utils.DateLayout),
		Days:     outcome.Days,
	}
	if outcome.Err != nil {
		view.Error = "balance recalculation failed"
	}
	return view
}
