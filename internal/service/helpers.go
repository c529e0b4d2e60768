package service

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/sirupsen/logrus"
)

// DashboardCache stores computed dashboard summaries per owner
type DashboardCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, bool, error)
	Set(ctx context.Context, ownerID uuid.UUID, summary *domain.DashboardSummary) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// translate maps a repository error to a business error. Business errors
// pass through untouched.
func translate(err error, entity string, id interface{}) error {
	if err == nil {
		return nil
	}

	var be *customError.BusinessError
	if errors.As(err, &be) {
		return be
	}
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapNotFound(entity, id)
	}
	if repository.IsUniqueViolation(err) {
		return customError.WrapConflict(entity + " already exists")
	}
	if repository.IsOwnerViolation(err) {
		return customError.WrapUnauthorized("authenticated user is not registered")
	}
	if _, ok := repository.ForeignKeyViolation(err); ok {
		return customError.WrapDanglingReference(entity)
	}

	return customError.WrapDatabaseError(err)
}

// validateName checks the 1-255 character bound of name columns. Characters,
// not bytes, are counted.
func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > 255 {
		return customError.WrapValidation("name must be between 1 and 255 characters")
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	date, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, customError.WrapValidation(field + " must be a date in YYYY-MM-DD format")
	}
	return date, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	date, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// optionalRef normalizes an optional foreign key; nil and 0 both mean none
func optionalRef(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func resolveBudget(ctx context.Context, repos *repository.Repositories, ownerID uuid.UUID, id *int64) (*int64, error) {
	ref := optionalRef(id)
	if ref == nil {
		return nil, nil
	}
	if _, err := repos.Budgets.GetByID(ctx, ownerID, *ref); err != nil {
		return nil, translate(err, "Budget", *ref)
	}
	return ref, nil
}

func resolveTag(ctx context.Context, repos *repository.Repositories, ownerID uuid.UUID, id *int64) (*int64, error) {
	ref := optionalRef(id)
	if ref == nil {
		return nil, nil
	}
	if _, err := repos.Tags.GetByID(ctx, ownerID, *ref); err != nil {
		return nil, translate(err, "Tag", *ref)
	}
	return ref, nil
}

func resolveExpense(ctx context.Context, repos *repository.Repositories, ownerID uuid.UUID, id *int64) (*int64, error) {
	ref := optionalRef(id)
	if ref == nil {
		return nil, nil
	}
	if _, err := repos.Expenses.GetByID(ctx, ownerID, *ref); err != nil {
		return nil, translate(err, "Expense", *ref)
	}
	return ref, nil
}

// invalidateDashboard drops the owner's cached summary. Cache errors are
// logged only.
func invalidateDashboard(ctx context.Context, cache DashboardCache, logger *logrus.Logger, ownerID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ownerID); err != nil {
		logger.WithField("owner_id", ownerID).WithError(err).Warn("failed to invalidate dashboard cache")
	}
}
