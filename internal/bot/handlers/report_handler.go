package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewReportHandler returns a handler for the /report command.
func NewReportHandler(deps HandlerDeps) bot.HandlerFunc {
	return reportHandler{deps}.Handle
}

type reportHandler struct {
	deps HandlerDeps
}

func (h reportHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "report")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Report handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	replyComprehensive(ctx, b, h.deps, log, update.Message.Chat.ID, update.Message.From.ID)
}
