package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/introbot/introspect/internal/analysis"
	"github.com/introbot/introspect/internal/config"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Engine *analysis.Engine
}

// sendReply sends a plain text reply and logs delivery failures.
func sendReply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// sendError sends the configured general error message.
func sendError(ctx context.Context, b *bot.Bot, deps HandlerDeps, log *slog.Logger, chatID int64) {
	sendReply(ctx, b, log, chatID, deps.Config.Messages.GeneralError)
}
