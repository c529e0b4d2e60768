package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/finance-tracker/internal/config"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 30 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()
	logger.Info("Starting finance scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	store := repository.NewStore(db)
	recalculator := service.NewBalanceRecalculator(logger).InLocation(cfg.Location())
	loanService := service.NewLoanService(store, recalculator, nil, logger)
	balanceService := service.NewBalanceService(store, recalculator, logger)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
	)

	if err := setupCronJobs(c, cfg, logger, loanService, balanceService); err != nil {
		logger.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	logger.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logger.Info("Scheduler stopped")
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	logger *logrus.Logger,
	loans *service.LoanService,
	balances *service.BalanceService,
) error {
	// Daily job flipping past-due pending repayments to overdue
	if _, err := c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		logger.Info("Running daily overdue repayment job...")
		if _, err := loans.MarkOverdue(ctx); err != nil {
			logger.WithError(err).Error("overdue repayment job failed")
		}
	}); err != nil {
		return err
	}

	// Daily job carrying every owner's balance forward to today
	if _, err := c.AddFunc(cfg.Scheduler.RollForwardSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		logger.Info("Running daily balance roll-forward job...")
		owners, err := balances.RollForward(ctx, cfg.Scheduler.Workers)
		if err != nil {
			logger.WithError(err).Error("balance roll-forward job failed")
			return
		}
		logger.WithField("owners", owners).Info("balance roll-forward finished")
	}); err != nil {
		return err
	}

	logger.Info("Cron jobs scheduled successfully")
	return nil
}
