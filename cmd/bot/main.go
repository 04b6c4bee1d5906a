// Package main contains the entrypoint for the behavioral analytics bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/introbot/introspect/internal/analysis"
	"github.com/introbot/introspect/internal/bot"
	"github.com/introbot/introspect/internal/bot/handlers"
	"github.com/introbot/introspect/internal/bot/tasks"
	"github.com/introbot/introspect/internal/config"
	"github.com/introbot/introspect/internal/database"
	"github.com/introbot/introspect/internal/logger"
	"github.com/introbot/introspect/internal/sentiment"
	"github.com/introbot/introspect/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// analytics engine, bot, scheduler), handles graceful shutdown, and returns
// an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db) // Ensure DB is closed on function exit
	store := database.NewStore(db, log)

	scorer := analysis.NewScorer(sentiment.NewVaderAnalyzer())
	engine := analysis.NewEngine(log, store, scorer)

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Engine: engine,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Engine: engine,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	// Retrieve bot info and store it in the config for runtime use
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, db, store, engine, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	// Check if the error is significant (not just context cancellation)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
