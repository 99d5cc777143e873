package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"income-tax-tracker/internal/auth"
	"income-tax-tracker/internal/config"
	"income-tax-tracker/internal/entries"
	"income-tax-tracker/internal/server"
	"income-tax-tracker/internal/storage"
	"income-tax-tracker/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := cfg.SetupLogger(); err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	var authService *auth.Service
	if cfg.Auth.Enabled {
		db, err := storage.NewSQLite(cfg.DatabaseDSN)
		if err != nil {
			logrus.Fatalf("failed to open database: %v", err)
		}
		authService = auth.NewService(db, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	} else {
		logrus.Warnf("sign-in disabled, serving everything as owner %q", server.LocalOwner)
	}

	ledger := entries.NewLedger()

	if cfg.Telegram.Token != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			logrus.Fatalf("failed to start telegram bot: %v", err)
		}
		go telegram.NewBot(bot, telegram.NewCommander(ledger), cfg.Telegram.Timeout).Consume(ctx)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.SetupRouter(ledger, authService, cfg.Auth.TokenTTL),
	}

	go func() {
		logrus.Infof("Server started at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}
