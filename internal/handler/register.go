package handler

import "github.com/go-telegram/bot"

// Register registers all command handlers on the bot instance. The default
// free-text handler is registered in main.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, h.handleClear)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ventas", bot.MatchTypePrefix, h.handleVentas)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/misventas", bot.MatchTypePrefix, h.handleMisVentas)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/buscar", bot.MatchTypePrefix, h.handleBuscar)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schema", bot.MatchTypePrefix, h.handleSchema)
}
