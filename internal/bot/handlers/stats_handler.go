package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for the /stats command.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	report, err := h.deps.Engine.Stats(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build stats report", "error", err, "user_id", userID)
		sendError(ctx, b, h.deps, log, chatID)
		return
	}

	if report.Empty {
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.NoStats)
		return
	}

	sendReply(ctx, b, log, chatID, formatStats(report))
}
