package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type BalanceService struct {
	store        repository.Store
	recalculator *BalanceRecalculator
	logger       *logrus.Logger
}

func NewBalanceService(store repository.Store, recalculator *BalanceRecalculator, logger *logrus.Logger) *BalanceService {
	return &BalanceService{store: store, recalculator: recalculator, logger: logger}
}

// ListHistory returns the owner's daily balances newest first within an
// optional date range
func (s *BalanceService) ListHistory(ctx context.Context, ownerID uuid.UUID, start, end *string) ([]*domain.DailyBalance, error) {
	startDate, err := parseOptionalDate("start_date", start)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate("end_date", end)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, customError.WrapValidation("start_date must not be after end_date")
	}

	history, err := s.store.Repositories().Balances.List(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return history, nil
}

// Recalculate replays the owner's ledger from the requested date, or from the
// earliest transaction, through today in a single transaction
func (s *BalanceService) Recalculate(ctx context.Context, ownerID uuid.UUID, request *domain.RecalculateRequest) (domain.RecalculationReport, error) {
	var from *time.Time
	if request != nil {
		var err error
		if from, err = parseOptionalDate("from_date", request.FromDate); err != nil {
			return domain.RecalculationReport{}, err
		}
	}

	var report domain.RecalculationReport
	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		var err error
		report, err = s.recalculator.RecalculateAll(ctx, repos.Ledger, repos.Balances, ownerID, from)
		return err
	})
	if err != nil {
		return domain.RecalculationReport{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"days":     report.DaysRecalculated,
	}).Info("balance history recalculated")

	return report, nil
}

// RollForward extends every owner's ledger from their newest record through
// today so days without transactions carry the balance forward. It returns
// the number of owners replayed. Owners run in parallel, at most workers at a
// time, and a failing owner is logged without stopping the others.
func (s *BalanceService) RollForward(ctx context.Context, workers int) (int, error) {
	latest, err := s.store.Repositories().Balances.LatestDates(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var owners atomic.Int64
	for ownerID, last := range latest {
		ownerID, last := ownerID, last
		if !last.Before(s.recalculator.Today()) {
			continue
		}

		g.Go(func() error {
			outcome := s.recalculator.Replay(gctx, s.store, ownerID, last.AddDate(0, 0, 1))
			if outcome.OK() {
				owners.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	return int(owners.Load()), err
}
