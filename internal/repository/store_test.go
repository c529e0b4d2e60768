package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, applies the schema and creates a
// fresh owner. Tests are skipped when no database is configured.
func openTestDB(t *testing.T) (*sqlx.DB, uuid.UUID) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../scripts/init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	owner := uuid.New()
	_, err = db.Exec(`INSERT INTO users (id, email) VALUES ($1, $2)`, owner, owner.String()+"@example.com")
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE id = $1`, owner) })

	return db, owner
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestBalanceRepository_UpsertAndPrevious(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	first := &domain.DailyBalance{OwnerID: owner, Date: date(t, "2024-03-01"), TotalExpense: 500, Balance: -500}
	require.NoError(t, repos.Balances.Upsert(ctx, first))

	again := &domain.DailyBalance{OwnerID: owner, Date: date(t, "2024-03-01"), TotalExpense: 600, Balance: -600}
	require.NoError(t, repos.Balances.Upsert(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	previous, err := repos.Balances.PreviousBalance(ctx, owner, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, int64(-600), previous)

	previous, err = repos.Balances.PreviousBalance(ctx, owner, date(t, "2024-03-01"))
	require.NoError(t, err)
	assert.Zero(t, previous)

	latest, err := repos.Balances.LatestDates(ctx)
	require.NoError(t, err)
	assert.True(t, latest[owner].Equal(date(t, "2024-03-01")))
}

func TestLedgerRepository_Sums(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)
	day := date(t, "2024-03-03")

	require.NoError(t, repos.Incomes.Create(ctx, &domain.Income{OwnerID: owner, Name: "Salary", Amount: 1000, Category: domain.IncomeCategorySalary, Date: day}))
	require.NoError(t, repos.Incomes.Create(ctx, &domain.Income{OwnerID: owner, Name: "Gift", Amount: 200, Category: domain.IncomeCategoryGifts, Date: day}))
	require.NoError(t, repos.Expenses.Create(ctx, &domain.Expense{OwnerID: owner, Name: "Rent", Amount: 700, Date: date(t, "2024-03-01")}))

	income, err := repos.Ledger.SumIncomeOn(ctx, owner, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), income)

	expense, err := repos.Ledger.SumExpenseOn(ctx, owner, day)
	require.NoError(t, err)
	assert.Zero(t, expense)

	earliest, err := repos.Ledger.EarliestTransactionDate(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.True(t, earliest.Equal(date(t, "2024-03-01")))
}

func TestLoanRepository_RepaymentLifecycle(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	loan := &domain.Loan{
		OwnerID:            owner,
		Lender:             "Bank",
		PrincipalAmount:    1000,
		RemainingPrincipal: 1000,
		InterestRate:       decimal.NewFromInt(12),
		TenureMonths:       2,
		RepaymentFrequency: domain.FrequencyMonthly,
		EMI:                510,
		NextDueDate:        date(t, "2024-01-15"),
	}
	require.NoError(t, repos.Loans.Create(ctx, loan))

	schedule := []*domain.Repayment{
		{LoanID: loan.ID, OwnerID: owner, ScheduledDate: date(t, "2024-01-15"), Amount: 510, PrincipalAmount: 500, InterestAmount: 10, Status: domain.RepaymentStatusPending},
		{LoanID: loan.ID, OwnerID: owner, ScheduledDate: date(t, "2024-02-15"), Amount: 505, PrincipalAmount: 500, InterestAmount: 5, Status: domain.RepaymentStatusPending},
	}
	require.NoError(t, repos.Loans.CreateSchedule(ctx, schedule))

	marked, err := repos.Loans.MarkOverdue(ctx, date(t, "2024-02-01"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, marked, int64(1))

	due, err := repos.Loans.PaymentsDue(ctx, owner, date(t, "2024-02-20"))
	require.NoError(t, err)
	assert.Equal(t, 2, due.Count)
	assert.Equal(t, int64(1015), due.TotalAmount)

	expense := &domain.Expense{OwnerID: owner, Name: "Loan Payment - Bank", Amount: 510, Date: date(t, "2024-01-20")}
	require.NoError(t, repos.Expenses.Create(ctx, expense))

	repayment, err := repos.Loans.GetRepayment(ctx, owner, schedule[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RepaymentStatusOverdue, repayment.Status)

	require.NoError(t, repos.Loans.MarkRepaymentPaid(ctx, repayment.ID, expense.ID))
	assert.ErrorIs(t, repos.Loans.MarkRepaymentPaid(ctx, repayment.ID, expense.ID), sql.ErrNoRows)

	paid, err := repos.Loans.TotalPaid(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(510), paid)

	next, err := repos.Loans.NextPendingDate(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Equal(date(t, "2024-02-15")))

	remaining, paidOff, err := repos.Loans.DecrementPrincipal(ctx, loan.ID, 1500)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.True(t, paidOff)

	_, err = repos.Loans.GetRepayment(ctx, uuid.New(), schedule[0].ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTagRepository_UniqueName(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	require.NoError(t, repos.Tags.Create(ctx, &domain.Tag{OwnerID: owner, Name: "Travel"}))
	err := repos.Tags.Create(ctx, &domain.Tag{OwnerID: owner, Name: "Travel"})
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestStore_WithTxRollsBack(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	store := repository.NewStore(db)
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Budgets.Create(ctx, &domain.Budget{OwnerID: owner, Name: "Food", Amount: 100}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	budgets, err := store.Repositories().Budgets.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestDashboardRepository_BudgetSummaryCountsUnbudgetedSpend(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	budget := &domain.Budget{OwnerID: owner, Name: "Food", Amount: 1000}
	require.NoError(t, repos.Budgets.Create(ctx, budget))
	require.NoError(t, repos.Expenses.Create(ctx, &domain.Expense{OwnerID: owner, BudgetID: &budget.ID, Name: "Groceries", Amount: 300, Date: date(t, "2024-03-02")}))
	require.NoError(t, repos.Expenses.Create(ctx, &domain.Expense{OwnerID: owner, Name: "Taxi", Amount: 200, Date: date(t, "2024-03-02")}))

	summary, err := repos.Dashboard.BudgetSummary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalBudgets)
	assert.Equal(t, int64(500), summary.TotalSpent)
	assert.Equal(t, int64(500), summary.TotalRemaining)
}

func TestTagRepository_UsageAndFilters(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)
	day := date(t, "2024-03-04")

	travel := &domain.Tag{OwnerID: owner, Name: "Travel"}
	bonus := &domain.Tag{OwnerID: owner, Name: "Bonus"}
	idle := &domain.Tag{OwnerID: owner, Name: "Idle"}
	for _, tag := range []*domain.Tag{travel, bonus, idle} {
		require.NoError(t, repos.Tags.Create(ctx, tag))
	}

	budget := &domain.Budget{OwnerID: owner, Name: "Holiday", Amount: 5000}
	require.NoError(t, repos.Budgets.Create(ctx, budget))
	require.NoError(t, repos.Expenses.Create(ctx, &domain.Expense{OwnerID: owner, BudgetID: &budget.ID, TagID: &travel.ID, Name: "Flight", Amount: 4000, Date: day}))
	require.NoError(t, repos.Expenses.Create(ctx, &domain.Expense{OwnerID: owner, TagID: &travel.ID, Name: "Hotel", Amount: 500, Date: day}))
	require.NoError(t, repos.Incomes.Create(ctx, &domain.Income{OwnerID: owner, TagID: &travel.ID, Name: "Refund", Amount: 300, Category: domain.IncomeCategoryOther, Date: day}))
	require.NoError(t, repos.Incomes.Create(ctx, &domain.Income{OwnerID: owner, TagID: &bonus.ID, Name: "Bonus", Amount: 900, Category: domain.IncomeCategorySalary, Date: day}))

	usage, err := repos.Tags.Usage(ctx, owner, travel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.ExpensesCount)
	assert.Equal(t, int64(4500), usage.TotalSpent)
	assert.Equal(t, int64(1), usage.IncomesCount)
	assert.Equal(t, int64(300), usage.TotalEarned)
	assert.Equal(t, []int64{budget.ID}, usage.BudgetsUsedIn)

	usage, err = repos.Tags.Usage(ctx, owner, idle.ID)
	require.NoError(t, err)
	assert.Zero(t, usage.ExpensesCount)
	assert.Empty(t, usage.BudgetsUsedIn)

	names := func(filter domain.TagFilter) []string {
		tags, err := repos.Tags.List(ctx, owner, filter)
		require.NoError(t, err)
		out := []string{}
		for _, tag := range tags {
			out = append(out, tag.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Bonus", "Idle", "Travel"}, names(domain.TagFilter{}))
	assert.Equal(t, []string{"Travel"}, names(domain.TagFilter{BudgetID: budget.ID}))
	assert.Equal(t, []string{"Travel"}, names(domain.TagFilter{UsedWith: domain.TagUsedWithExpenses}))
	assert.Equal(t, []string{"Bonus", "Travel"}, names(domain.TagFilter{UsedWith: domain.TagUsedWithIncomes}))
	assert.Equal(t, []string{"Travel"}, names(domain.TagFilter{UsedWith: domain.TagUsedWithBoth}))
}

func TestShoppingRepository_PlanLifecycle(t *testing.T) {
	db, owner := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	plan := &domain.ShoppingPlan{OwnerID: owner, PlanDate: date(t, "2024-03-09"), Status: domain.ShoppingStatusDraft}
	require.NoError(t, repos.Shopping.CreatePlan(ctx, plan))

	item := &domain.ShoppingItem{
		PlanID:        plan.ID,
		Name:          "Flour",
		Quantity:      decimal.RequireFromString("1.25"),
		NeedWant:      domain.NeedWantNeed,
		EstimatePrice: 450,
	}
	require.NoError(t, repos.Shopping.CreateItem(ctx, item))

	stored, err := repos.Shopping.GetItem(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.25").Equal(stored.Quantity))
	assert.False(t, stored.ActualPrice.Valid)

	stored.ActualPrice = decimal.NewNullDecimal(decimal.RequireFromString("4.99"))
	stored.IsPurchased = true
	require.NoError(t, repos.Shopping.UpdateItem(ctx, stored))

	items, err := repos.Shopping.ListItems(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsPurchased)
	assert.True(t, decimal.RequireFromString("4.99").Equal(items[0].ActualPrice.Decimal))

	plan.Status = domain.ShoppingStatusShopping
	require.NoError(t, repos.Shopping.UpdatePlan(ctx, plan))

	plans, err := repos.Shopping.ListPlans(ctx, owner, domain.ShoppingPlanFilter{Status: domain.ShoppingStatusShopping})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, plan.ID, plans[0].ID)

	_, err = repos.Shopping.GetItem(ctx, uuid.New(), item.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, repos.Shopping.DeleteItem(ctx, uuid.New(), item.ID), sql.ErrNoRows)

	require.NoError(t, repos.Shopping.DeletePlan(ctx, owner, plan.ID))
	items, err = repos.Shopping.ListItems(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepository_UnknownOwnerIsForeignKeyViolation(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	err := repos.Budgets.Create(ctx, &domain.Budget{OwnerID: uuid.New(), Name: "Food", Amount: 100})
	constraint, ok := repository.ForeignKeyViolation(err)
	require.True(t, ok)
	assert.Equal(t, "budgets_user_id_fkey", constraint)
	assert.True(t, repository.IsOwnerViolation(err))
}
