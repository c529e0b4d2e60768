package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/finance-tracker/internal/cache"
	"github.com/segyhp/finance-tracker/internal/config"
	"github.com/segyhp/finance-tracker/internal/handler"
	"github.com/segyhp/finance-tracker/internal/middleware"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/internal/service"
	"github.com/segyhp/finance-tracker/pkg/response"
	"github.com/sirupsen/logrus"
)

type handlers struct {
	transactions *handler.TransactionHandler
	loans        *handler.LoanHandler
	budgets      *handler.BudgetHandler
	goals        *handler.SavingGoalHandler
	shopping     *handler.ShoppingHandler
	balances     *handler.BalanceHandler
	health       *handler.HealthHandler
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	store := repository.NewStore(db)
	dashboardCache := cache.NewDashboardCache(redisClient, cfg.Cache.DashboardTTL)
	recalculator := service.NewBalanceRecalculator(logger).InLocation(cfg.Location())

	// Initialize services
	transactionService := service.NewTransactionService(store, recalculator, dashboardCache, logger)
	loanService := service.NewLoanService(store, recalculator, dashboardCache, logger)
	budgetService := service.NewBudgetService(store, recalculator, dashboardCache, logger)
	tagService := service.NewTagService(store)
	goalService := service.NewSavingGoalService(store, dashboardCache, logger)
	shoppingService := service.NewShoppingService(store, logger)
	balanceService := service.NewBalanceService(store, recalculator, logger)
	dashboardService := service.NewDashboardService(store, recalculator, dashboardCache, logger)

	h := handlers{
		transactions: handler.NewTransactionHandler(transactionService, logger),
		loans:        handler.NewLoanHandler(loanService, logger),
		budgets:      handler.NewBudgetHandler(budgetService, tagService, logger),
		goals:        handler.NewSavingGoalHandler(goalService, logger),
		shopping:     handler.NewShoppingHandler(shoppingService, logger),
		balances:     handler.NewBalanceHandler(balanceService, dashboardService, logger),
		health:       handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout),
	}

	// Setup routes
	router := setupRoutes(h, cfg, logger)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.URL != "" {
		if opts, err := redis.ParseURL(cfg.Redis.URL); err == nil {
			return redis.NewClient(opts)
		}
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(h handlers, cfg *config.Config, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware, response.LoggingMiddleware(logger))

	// Health check
	router.HandleFunc("/health", h.health.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.health.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticated(cfg.Auth.JWTSecret, logger))

	api.HandleFunc("/incomes", h.transactions.CreateIncome).Methods("POST")
	api.HandleFunc("/incomes", h.transactions.ListIncomes).Methods("GET")
	api.HandleFunc("/incomes/{id}", h.transactions.GetIncome).Methods("GET")
	api.HandleFunc("/incomes/{id}", h.transactions.UpdateIncome).Methods("PATCH", "PUT")
	api.HandleFunc("/incomes/{id}", h.transactions.DeleteIncome).Methods("DELETE")

	api.HandleFunc("/expenses", h.transactions.CreateExpense).Methods("POST")
	api.HandleFunc("/expenses", h.transactions.ListExpenses).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.transactions.GetExpense).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.transactions.UpdateExpense).Methods("PATCH", "PUT")
	api.HandleFunc("/expenses/{id}", h.transactions.DeleteExpense).Methods("DELETE")

	api.HandleFunc("/loans", h.loans.CreateLoan).Methods("POST")
	api.HandleFunc("/loans", h.loans.ListLoans).Methods("GET")
	api.HandleFunc("/loans/payments-due", h.loans.PaymentsDue).Methods("GET")
	api.HandleFunc("/loans/{id}", h.loans.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{id}", h.loans.UpdateLoan).Methods("PATCH", "PUT")
	api.HandleFunc("/loans/{id}", h.loans.DeleteLoan).Methods("DELETE")
	api.HandleFunc("/loans/{id}/repayments", h.loans.ListRepayments).Methods("GET")
	api.HandleFunc("/loans/{id}/repayments", h.loans.AddRepayment).Methods("POST")
	api.HandleFunc("/repayments/{id}/pay", h.loans.MarkRepaymentPaid).Methods("POST")

	api.HandleFunc("/budgets", h.budgets.CreateBudget).Methods("POST")
	api.HandleFunc("/budgets", h.budgets.ListBudgets).Methods("GET")
	api.HandleFunc("/budgets/{id}", h.budgets.GetBudget).Methods("GET")
	api.HandleFunc("/budgets/{id}", h.budgets.UpdateBudget).Methods("PATCH", "PUT")
	api.HandleFunc("/budgets/{id}", h.budgets.DeleteBudget).Methods("DELETE")

	api.HandleFunc("/tags", h.budgets.CreateTag).Methods("POST")
	api.HandleFunc("/tags", h.budgets.ListTags).Methods("GET")
	api.HandleFunc("/tags/{id}", h.budgets.GetTag).Methods("GET")
	api.HandleFunc("/tags/{id}", h.budgets.UpdateTag).Methods("PATCH", "PUT")
	api.HandleFunc("/tags/{id}", h.budgets.DeleteTag).Methods("DELETE")

	api.HandleFunc("/saving-goals", h.goals.CreateGoal).Methods("POST")
	api.HandleFunc("/saving-goals", h.goals.ListGoals).Methods("GET")
	api.HandleFunc("/saving-goals/{id}", h.goals.GetGoal).Methods("GET")
	api.HandleFunc("/saving-goals/{id}", h.goals.UpdateGoal).Methods("PATCH", "PUT")
	api.HandleFunc("/saving-goals/{id}", h.goals.DeleteGoal).Methods("DELETE")
	api.HandleFunc("/saving-goals/{id}/contributions", h.goals.AddContribution).Methods("POST")
	api.HandleFunc("/contributions/{id}", h.goals.DeleteContribution).Methods("DELETE")

	api.HandleFunc("/shopping-plans", h.shopping.CreatePlan).Methods("POST")
	api.HandleFunc("/shopping-plans", h.shopping.ListPlans).Methods("GET")
	api.HandleFunc("/shopping-plans/{id}", h.shopping.GetPlan).Methods("GET")
	api.HandleFunc("/shopping-plans/{id}", h.shopping.UpdatePlan).Methods("PATCH", "PUT")
	api.HandleFunc("/shopping-plans/{id}", h.shopping.DeletePlan).Methods("DELETE")
	api.HandleFunc("/shopping-plans/{id}/status", h.shopping.SetPlanStatus).Methods("PATCH")
	api.HandleFunc("/shopping-plans/{id}/items", h.shopping.AddItem).Methods("POST")
	api.HandleFunc("/shopping-items/{id}", h.shopping.UpdateItem).Methods("PATCH", "PUT")
	api.HandleFunc("/shopping-items/{id}", h.shopping.DeleteItem).Methods("DELETE")

	api.HandleFunc("/balance-history", h.balances.ListHistory).Methods("GET")
	api.HandleFunc("/balance-history/recalculate", h.balances.Recalculate).Methods("POST")
	api.HandleFunc("/dashboard", h.balances.Dashboard).Methods("GET")

	return router
}
