package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// Shared report flows, reachable both from the slash commands and from the
// inline keyboard callbacks.

func replyMood(ctx context.Context, b *bot.Bot, deps HandlerDeps, log *slog.Logger, chatID, userID int64) {
	report, err := deps.Engine.QuickAnalysis(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build mood analysis", "error", err, "user_id", userID)
		sendError(ctx, b, deps, log, chatID)
		return
	}

	if report.Empty {
		sendReply(ctx, b, log, chatID, deps.Config.Messages.NeedMoreMood)
		return
	}

	sendReply(ctx, b, log, chatID, formatQuick(report))
}

func replyPersonality(ctx context.Context, b *bot.Bot, deps HandlerDeps, log *slog.Logger, chatID, userID int64) {
	report, err := deps.Engine.Personality(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build personality report", "error", err, "user_id", userID)
		sendError(ctx, b, deps, log, chatID)
		return
	}

	if report.Empty {
		sendReply(ctx, b, log, chatID, deps.Config.Messages.NeedMoreTrait)
		return
	}

	sendReply(ctx, b, log, chatID, formatPersonality(report))
}

func replyComprehensive(ctx context.Context, b *bot.Bot, deps HandlerDeps, log *slog.Logger, chatID, userID int64) {
	report, err := deps.Engine.Comprehensive(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build comprehensive report", "error", err, "user_id", userID)
		sendError(ctx, b, deps, log, chatID)
		return
	}

	minMessages := deps.Config.Analytics.ReportMinMessages
	if report.Empty || report.TotalMessages < minMessages {
		sendReply(ctx, b, log, chatID, fmt.Sprintf(deps.Config.Messages.NeedMoreData, minMessages))
		return
	}

	sendReply(ctx, b, log, chatID, formatComprehensive(report))
}
