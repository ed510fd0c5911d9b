package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"family-budget-go/internal/config"
	"family-budget-go/internal/database"
	httpserver "family-budget-go/internal/http"
	"family-budget-go/internal/logging"
	"family-budget-go/internal/notify"
	"family-budget-go/internal/repository"
	"family-budget-go/internal/services"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	repos := repository.NewGormManager(db)

	notifiers := notify.Multi{notify.NewDBNotifier(repos.Notifications())}
	if cfg.AMQPUrl != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQPUrl, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, alerts stay in-app only", "error", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	deps := httpserver.Deps{
		Repos:        repos,
		Transactions: services.NewTransactionService(repos, notifiers, logger),
		Categories:   services.NewCategoryService(repos),
		Budgets:      services.NewBudgetService(repos),
		Rules:        services.NewRuleService(repos),
		Analytics:    services.NewAnalyticsService(repos),
		Logger:       logger,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewServer(cfg, deps),
		ReadTimeout:  time.Duration(cfg.ReqTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.ReqTimeoutSec) * time.Second,
	}
	logger.Info("listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
