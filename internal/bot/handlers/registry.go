// Package handlers contains the Telegram command, message, and callback
// handlers along with their registration logic.
package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// Callback data values for the inline keyboard buttons.
const (
	callbackMood        = "mood"
	callbackPersonality = "personality"
	callbackReport      = "report"
)

// RegisteredHandler represents a handler with its registration metadata.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns the map of all bot handlers.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	command := func(pattern string, handler tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		}
	}

	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/help"] = command("help", NewHelpHandler(deps))
	handlers["/mood"] = command("mood", NewMoodHandler(deps))
	handlers["/personality"] = command("personality", NewPersonalityHandler(deps))
	handlers["/report"] = command("report", NewReportHandler(deps))
	handlers["/stats"] = command("stats", NewStatsHandler(deps))
	handlers["/erase"] = command("erase", NewEraseHandler(deps))

	handlers["callback"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		Handler:     NewCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
