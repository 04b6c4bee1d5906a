package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command. It registers
// the user and presents the inline report keyboard.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", userID)

	if err := h.deps.Engine.Register(ctx, userID); err != nil {
		log.ErrorContext(ctx, "Failed to register user", "error", err, "user_id", userID)
		sendError(ctx, b, h.deps, log, chatID)
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📊 Analyze My Mood", CallbackData: callbackMood}},
			{{Text: "🧠 Personality Test", CallbackData: callbackPersonality}},
			{{Text: "📈 Get Report", CallbackData: callbackReport}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.deps.Config.Messages.Welcome,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", chatID)
	}
}
