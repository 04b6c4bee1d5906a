package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMoodHandler returns a handler for the /mood command.
func NewMoodHandler(deps HandlerDeps) bot.HandlerFunc {
	return moodHandler{deps}.Handle
}

type moodHandler struct {
	deps HandlerDeps
}

func (h moodHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "mood")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Mood handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	replyMood(ctx, b, h.deps, log, update.Message.Chat.ID, update.Message.From.ID)
}
