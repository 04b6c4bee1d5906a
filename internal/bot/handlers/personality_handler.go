package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewPersonalityHandler returns a handler for the /personality command.
func NewPersonalityHandler(deps HandlerDeps) bot.HandlerFunc {
	return personalityHandler{deps}.Handle
}

type personalityHandler struct {
	deps HandlerDeps
}

func (h personalityHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "personality")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Personality handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	replyPersonality(ctx, b, h.deps, log, update.Message.Chat.ID, update.Message.From.ID)
}
