package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/introbot/introspect/internal/analysis"
)

// NewMessageHandler returns the default handler that ingests every plain
// text message into the analytics engine. It is registered via
// bot.WithDefaultHandler so it sees everything the command matchers skip.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	if msg.From.IsBot || strings.HasPrefix(msg.Text, "/") {
		return
	}

	userID := msg.From.ID
	ts := time.Unix(int64(msg.Date), 0).UTC()

	result, err := h.deps.Engine.Ingest(ctx, userID, msg.Text, ts)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrInvalidInput):
			log.DebugContext(ctx, "Skipped non-analyzable message", "user_id", userID)
			return
		case errors.Is(err, analysis.ErrClosedPeriod):
			log.WarnContext(ctx, "Rejected message for closed day", "user_id", userID, "error", err)
			return
		case errors.Is(err, analysis.ErrPersistence):
			// Scores were applied in memory; the rollup flush task will
			// reconcile storage. Still worth answering the user.
			log.ErrorContext(ctx, "Persistence failed during ingest", "user_id", userID, "error", err)
		default:
			log.ErrorContext(ctx, "Failed to ingest message", "user_id", userID, "error", err)
			return
		}
	}

	interval := h.deps.Config.Analytics.FeedbackInterval
	if interval <= 0 || result.TotalMessages == 0 || result.TotalMessages%interval != 0 {
		return
	}

	sendReply(ctx, b, log, msg.Chat.ID, formatQuickFeedback(result))
}
