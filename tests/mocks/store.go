package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
)

// FakeStore runs every transaction against the same in-memory repositories.
// TxErr, when set, is consulted before each WithTx call with the 1-based call
// number; a non-nil result aborts that call without running fn.
type FakeStore struct {
	Repos *repository.Repositories
	TxErr func(call int) error

	mu    sync.Mutex
	calls int
}

func NewFakeStore(repos *repository.Repositories) *FakeStore {
	return &FakeStore{Repos: repos}
}

func (s *FakeStore) Repositories() *repository.Repositories {
	return s.Repos
}

func (s *FakeStore) WithTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	if s.TxErr != nil {
		if err := s.TxErr(call); err != nil {
			return err
		}
	}
	return fn(s.Repos)
}

// TxCalls returns how many transactions were opened
func (s *FakeStore) TxCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var (
	_ repository.LedgerRepository  = (*MemoryLedger)(nil)
	_ repository.BalanceRepository = (*MemoryLedger)(nil)
)

type ownerDay struct {
	owner uuid.UUID
	day   time.Time
}

// MemoryLedger is an in-memory income/expense ledger and daily balance store
type MemoryLedger struct {
	mu       sync.Mutex
	incomes  map[ownerDay]int64
	expenses map[ownerDay]int64
	balances map[ownerDay]*domain.DailyBalance
	nextID   int64

	// UpsertErr, when set, is returned by every Upsert
	UpsertErr error
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		incomes:  make(map[ownerDay]int64),
		expenses: make(map[ownerDay]int64),
		balances: make(map[ownerDay]*domain.DailyBalance),
	}
}

func key(owner uuid.UUID, day time.Time) ownerDay {
	y, m, d := day.Date()
	return ownerDay{owner: owner, day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (l *MemoryLedger) AddIncome(owner uuid.UUID, day time.Time, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.incomes[key(owner, day)] += amount
}

func (l *MemoryLedger) AddExpense(owner uuid.UUID, day time.Time, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses[key(owner, day)] += amount
}

// RemoveIncome undoes AddIncome
func (l *MemoryLedger) RemoveIncome(owner uuid.UUID, day time.Time, amount int64) {
	l.AddIncome(owner, day, -amount)
}

// RemoveExpense undoes AddExpense
func (l *MemoryLedger) RemoveExpense(owner uuid.UUID, day time.Time, amount int64) {
	l.AddExpense(owner, day, -amount)
}

// Balance returns the stored record for (owner, day), nil when absent
func (l *MemoryLedger) Balance(owner uuid.UUID, day time.Time) *domain.DailyBalance {
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.balances[key(owner, day)]
	if !ok {
		return nil
	}
	copied := *record
	return &copied
}

// Records returns an owner's stored records oldest first
func (l *MemoryLedger) Records(owner uuid.UUID) []*domain.DailyBalance {
	l.mu.Lock()
	defer l.mu.Unlock()
	var records []*domain.DailyBalance
	for k, record := range l.balances {
		if k.owner == owner {
			copied := *record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records
}

func (l *MemoryLedger) SumIncomeOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.incomes[key(ownerID, day)], nil
}

func (l *MemoryLedger) SumExpenseOn(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.expenses[key(ownerID, day)], nil
}

func (l *MemoryLedger) EarliestTransactionDate(ctx context.Context, ownerID uuid.UUID) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var earliest *time.Time
	for _, entries := range []map[ownerDay]int64{l.incomes, l.expenses} {
		for k := range entries {
			if k.owner != ownerID {
				continue
			}
			if earliest == nil || k.day.Before(*earliest) {
				day := k.day
				earliest = &day
			}
		}
	}
	return earliest, nil
}

func (l *MemoryLedger) PreviousBalance(ctx context.Context, ownerID uuid.UUID, day time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	target := key(ownerID, day).day
	var latest *domain.DailyBalance
	for k, record := range l.balances {
		if k.owner != ownerID || !k.day.Before(target) {
			continue
		}
		if latest == nil || record.Date.After(latest.Date) {
			latest = record
		}
	}
	if latest == nil {
		return 0, nil
	}
	return latest.Balance, nil
}

func (l *MemoryLedger) Upsert(ctx context.Context, record *domain.DailyBalance) error {
	if l.UpsertErr != nil {
		return l.UpsertErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := key(record.OwnerID, record.Date)
	if existing, ok := l.balances[k]; ok {
		record.ID = existing.ID
	} else {
		l.nextID++
		record.ID = l.nextID
	}
	copied := *record
	copied.Date = k.day
	l.balances[k] = &copied
	return nil
}

func (l *MemoryLedger) List(ctx context.Context, ownerID uuid.UUID, start, end *time.Time) ([]*domain.DailyBalance, error) {
	all := l.Records(ownerID)
	records := make([]*domain.DailyBalance, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		record := all[i]
		if start != nil && record.Date.Before(*start) {
			continue
		}
		if end != nil && record.Date.After(*end) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (l *MemoryLedger) LatestDates(ctx context.Context) (map[uuid.UUID]time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	latest := make(map[uuid.UUID]time.Time)
	for k := range l.balances {
		if current, ok := latest[k.owner]; !ok || k.day.After(current) {
			latest[k.owner] = k.day
		}
	}
	return latest, nil
}
