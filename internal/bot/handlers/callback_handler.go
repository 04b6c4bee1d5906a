package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCallbackHandler returns a handler for the inline keyboard callbacks
// attached to the welcome message.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Callback handler received update with nil callback query", "update_id", update.ID)
		return
	}

	query := update.CallbackQuery

	// Stop the client-side loading spinner before doing any work.
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err, "callback_id", query.ID)
	}

	if query.Message.Message == nil {
		log.WarnContext(ctx, "Callback query has no accessible message", "callback_id", query.ID)
		return
	}

	chatID := query.Message.Message.Chat.ID
	userID := query.From.ID

	switch query.Data {
	case callbackMood:
		replyMood(ctx, b, h.deps, log, chatID, userID)
	case callbackPersonality:
		replyPersonality(ctx, b, h.deps, log, chatID, userID)
	case callbackReport:
		replyComprehensive(ctx, b, h.deps, log, chatID, userID)
	default:
		log.WarnContext(ctx, "Unknown callback data", "data", query.Data, "user_id", userID)
	}
}
