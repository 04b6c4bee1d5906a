package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewEraseHandler returns a handler for the /erase command, the
// user-initiated privacy erase of all their stored data.
func NewEraseHandler(deps HandlerDeps) bot.HandlerFunc {
	return eraseHandler{deps}.Handle
}

type eraseHandler struct {
	deps HandlerDeps
}

func (h eraseHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "erase")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Erase handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	log.InfoContext(ctx, "User requested data erase", "user_id", userID)

	if err := h.deps.Engine.Erase(ctx, userID); err != nil {
		log.ErrorContext(ctx, "Failed to erase user data", "error", err, "user_id", userID)
		sendError(ctx, b, h.deps, log, chatID)
		return
	}

	sendReply(ctx, b, log, chatID, h.deps.Config.Messages.Erased)
}
