package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shgledger/internal/config"
	"shgledger/internal/db"
	"shgledger/internal/handlers"
	"shgledger/internal/logger"
	"shgledger/internal/notify"
	"shgledger/internal/services"
	"shgledger/internal/store"
	"shgledger/internal/websocket"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer func() { _ = logger.Log.Sync() }()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close()

	groups := store.NewGroupStore(database)
	members := store.NewMemberStore(database)
	deposits := store.NewDepositStore(database)
	loans := store.NewLoanStore(database)
	payments := store.NewLoanPaymentStore(database)
	passbook := store.NewPassbookStore(database)
	notifications := store.NewNotificationStore(database)
	reports := store.NewReportStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	dispatcher := notify.NewDispatcher(cfg.SMSGatewayURL, cfg.SMSAPIKey, cfg.SMSEnabled, notifications, logger.Log)

	registry := services.NewRegistryService(txRunner, groups, members)
	ledger := services.NewLedgerService(txRunner, members, deposits, loans, payments, passbook, dispatcher, hub, logger.Log)

	handler := handlers.New(cfg, registry, ledger, groups, loans, passbook, reports, notifications, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("shg ledger API listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
}
