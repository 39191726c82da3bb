package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iums-ph/iums/internal/account"
	accountStore "github.com/iums-ph/iums/internal/account/store"
	"github.com/iums-ph/iums/internal/alert"
	alertStore "github.com/iums-ph/iums/internal/alert/store"
	"github.com/iums-ph/iums/internal/auth"
	"github.com/iums-ph/iums/internal/config"
	"github.com/iums-ph/iums/internal/database"
	"github.com/iums-ph/iums/internal/duedate"
	duedateStore "github.com/iums-ph/iums/internal/duedate/store"
	iumsHttp "github.com/iums-ph/iums/internal/http"
	accountHandler "github.com/iums-ph/iums/internal/http/account"
	alertHandler "github.com/iums-ph/iums/internal/http/alert"
	duedateHandler "github.com/iums-ph/iums/internal/http/duedate"
	settingsHandler "github.com/iums-ph/iums/internal/http/settings"
	txHandler "github.com/iums-ph/iums/internal/http/transaction"
	"github.com/iums-ph/iums/internal/ledger"
	ledgerStore "github.com/iums-ph/iums/internal/ledger/store"
	"github.com/iums-ph/iums/internal/mail"
	"github.com/iums-ph/iums/internal/settings"
	settingsStore "github.com/iums-ph/iums/internal/settings/store"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTPConfigured() {
		mailer = mail.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.App.Name)
	} else {
		slog.Warn("SMTP credentials not set, OTP and reminder emails disabled")
	}

	acctStore := accountStore.New(db)

	var (
		settingsService = settings.NewService(settingsStore.New(db))
		alertService    = alert.NewService(alertStore.New(db), acctStore)
		accountService  = account.NewService(acctStore, settingsService, alertService)
		duedateService  = duedate.NewService(duedateStore.New(db), accountService, alertService, mailer, settingsService)
		ledgerService   = ledger.NewService(ledgerStore.New(db), accountService, alertService, mailer, duedateService, settingsService)
	)

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		accountH  = accountHandler.NewHandler(accountService, ledgerService, tokens)
		txH       = txHandler.NewHandler(ledgerService, accountService, duedateService)
		duedateH  = duedateHandler.NewHandler(duedateService, accountService)
		alertH    = alertHandler.NewHandler(alertService)
		settingsH = settingsHandler.NewHandler(settingsService)
	)

	router := iumsHttp.New(accountH, txH, duedateH, alertH, settingsH, tokens)

	if cfg.Reminder.Interval > 0 {
		go runReminderSweep(duedateService, cfg.Reminder.Interval, cfg.Server.Timeout)
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// runReminderSweep periodically sends due-date reminders to customers with
// outstanding debt.
func runReminderSweep(svc *duedate.Service, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		result, err := svc.SendReminders(ctx)
		cancel()

		if err != nil {
			slog.Error("reminder sweep failed", "error", err)
			continue
		}

		slog.Info("reminder sweep finished",
			"checked", result.Checked,
			"alerts", result.AlertsSent,
			"emails", result.EmailsSent,
		)
	}
}
