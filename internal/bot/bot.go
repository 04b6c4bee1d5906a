// Package bot implements the application orchestrator: it ties the
// Telegram listener and the task scheduler together and manages their
// lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/introbot/introspect/internal/analysis"
	"github.com/introbot/introspect/internal/config"
	"github.com/introbot/introspect/internal/database"
)

// Bot represents the running application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	db        *sqlx.DB
	store     database.Store
	engine    *analysis.Engine
	tgBot     *tgbot.Bot
	scheduler *Scheduler
}

// NewBot creates the orchestrator with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	db *sqlx.DB,
	store database.Store,
	engine *analysis.Engine,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "orchestrator"),
		cfg:       cfg,
		db:        db,
		store:     store,
		engine:    engine,
		tgBot:     tgBot,
		scheduler: scheduler,
	}
}

// Run starts the bot and all its components and blocks until the context is
// cancelled or a component fails. Open analytics state is flushed on the
// way out.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram listener...")
		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram listener stopped.")

		if gCtx.Err() == nil {
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()

	// Final flush so open daily records survive the shutdown even if the
	// last ingest's persistence failed.
	flushCtx := context.WithoutCancel(ctx)
	if flushErr := b.engine.Flush(flushCtx); flushErr != nil {
		b.logger.Error("Final analytics flush failed", "error", flushErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Orchestrator stopped gracefully.")
	return nil
}
