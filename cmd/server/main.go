package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/application/job"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/application/service"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/api"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/cache"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/config"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/db"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/handler"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/middleware"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/receipt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting Clever-Bank transaction engine", map[string]interface{}{
		"addr": cfg.ServerAddr,
	})

	badgerOpts := badger.DefaultOptions(cfg.DBPath)
	badgerOpts.Logger = nil

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"path":  cfg.DBPath,
			"error": err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing database", map[string]interface{}{"error": err.Error()})
		}
	}()

	// Repositories share the one injected store handle
	accountRepo := db.NewBadgerAccountRepository(badgerDB)
	bankRepo := db.NewBadgerBankRepository(badgerDB)
	userRepo := db.NewBadgerUserRepository(badgerDB)
	txRepo := db.NewBadgerTransactionRepository(badgerDB)
	rateRepo := cache.NewExchangeRateCache(db.NewBadgerExchangeRateRepository(badgerDB), time.Minute)

	sink, err := receipt.NewFileSink(cfg.ReceiptDir)
	if err != nil {
		log.Fatal("Failed to prepare receipt directory", map[string]interface{}{
			"dir":   cfg.ReceiptDir,
			"error": err.Error(),
		})
	}

	exchangeService := service.NewExchangeService(rateRepo, log)
	txService := service.NewTransactionService(accountRepo, bankRepo, txRepo, exchangeService, sink, log)
	statementService := service.NewStatementService(accountRepo, bankRepo, userRepo, txRepo, sink, log)

	if err := seed(context.Background(), accountRepo, bankRepo, userRepo, rateRepo); err != nil {
		log.Fatal("Failed to seed initial data", map[string]interface{}{"error": err.Error()})
	}

	// Background jobs: explicit objects, started and stopped with the process
	rateFeed := api.NewNBRBClient(cfg.RateFeedURL, &http.Client{Timeout: cfg.RateFeedTimeout})
	refreshJob := job.NewRateRefreshJob(rateFeed, rateRepo, cfg.TrackedCurrencies, cfg.RateFeedTimeout, log)
	accrualJob := job.NewAccrualJob(accountRepo, txService, cfg.AccrualMonthlyPercent, cfg.AccrualWindow, log)

	scheduler := cron.New()
	scheduler.Schedule(cron.Every(cfg.RateRefreshInterval), refreshJob)
	scheduler.Schedule(cron.Every(cfg.AccrualCheckInterval), accrualJob)
	scheduler.Start()

	txHandler := handler.NewTransactionHandler(txService, log)
	statementHandler := handler.NewStatementHandler(statementService, log)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	txHandler.RegisterRoutes(router)
	statementHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.ServerAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down", nil)
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
