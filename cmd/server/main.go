package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"accounting_docs_service/internal/app"
	"accounting_docs_service/internal/infra/config"
	idb "accounting_docs_service/internal/infra/database"
	"accounting_docs_service/internal/infra/httpapi"
	"accounting_docs_service/internal/infra/logger"
	"accounting_docs_service/internal/infra/scheduler"
	"accounting_docs_service/internal/infra/telegram"

	"github.com/gin-gonic/gin"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run owns every resource, so its deferred cleanup has finished by the
	// time a failure is reported here.
	if err := run(cfg); err != nil {
		mainLogger.Fatalf("Application stopped with error: %v", err)
	}
	mainLogger.Info("Application shut down gracefully.")
}

func run(cfg *config.AppConfig) error {
	mainLogger := logger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer db.Close()
	if err := idb.Migrate(ctx, db); err != nil {
		return fmt.Errorf("could not apply database migrations: %w", err)
	}
	mainLogger.Info("Database connection established and schema up to date.")

	// Initialize Repositories
	notificationRepo := idb.NewPostgresNotificationRepository(db)
	documentRepo := idb.NewPostgresDocumentRepository(db)
	companyRepo := idb.NewPostgresCompanyRepository(db)

	// Optional Telegram delivery for the admin inbox
	var (
		bot       *telebot.Bot
		forwarder app.Forwarder
	)
	if cfg.TelegramEnabled() {
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				entry := logger.Component("telebot").WithError(err)
				if c != nil && c.Sender() != nil {
					entry = entry.WithField("sender_id", c.Sender().ID)
				}
				entry.Error("Telegram handler error")
			},
		})
		if err != nil {
			return fmt.Errorf("could not create Telegram bot: %w", err)
		}
		forwarder = telegram.NewAdminForwarder(telegram.NewTelebotAdapter(bot), cfg.AdminUserID, cfg.AdminTelegramID)
		mainLogger.Info("Telegram delivery enabled for admin notifications.")
	}

	// Initialize Services
	notificationService := app.NewNotificationService(notificationRepo, forwarder, logger.Component("notifications"))
	documentService := app.NewDocumentService(documentRepo, companyRepo, notificationService, logger.Component("documents"), cfg.AllowReprocess, cfg.AdminUserID)
	directoryService := app.NewDirectoryService(companyRepo, notificationService, logger.Component("directory"), cfg.AdminUserID)

	reminderScheduler := scheduler.NewReminderScheduler(
		documentService,
		logger.Component("scheduler"),
		cfg.CronSpecPendingReminder,
		cfg.PendingReminderAge,
	)
	if err := reminderScheduler.Start(); err != nil {
		return fmt.Errorf("could not start scheduler: %w", err)
	}
	defer reminderScheduler.Stop()

	if bot != nil {
		handlers := telegram.NewCommandHandlers(notificationService, cfg.AdminUserID, cfg.AdminTelegramID, logger.Component("telegram"))
		handlers.Register(ctx, bot)
		go bot.Start()
		defer bot.Stop()
	}

	server := httpapi.NewServer(notificationService, documentService, directoryService, cfg.JWTSecret, logger.Component("http"))
	err = server.Run(ctx, cfg.HTTPAddr)
	mainLogger.Info("Shutting down application...")
	if err != nil {
		return fmt.Errorf("HTTP server stopped: %w", err)
	}
	return nil
}
