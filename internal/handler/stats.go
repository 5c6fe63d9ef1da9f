package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/dispatcher"
	"github.com/luiscast/ventasbot/internal/format"
	tg "github.com/luiscast/ventasbot/internal/telegram"
)

const statsQuestion = "Dame un resumen completo de estadísticas: total de facturas, " +
	"total de clientes únicos, fecha de la primera y última venta. " +
	"Formatea la respuesta de manera clara."

// handleStats answers with company-wide statistics. The SQL agent is tried
// first; when it exhausts its budget the fixed total-stats query answers.
func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "📊 Consultando estadísticas...",
	})

	if h.agent != nil {
		answer, err := h.agent.Ask(ctx, statsQuestion)
		if err == nil && answer != "" {
			tg.SendLongMessage(ctx, b, chatID, "📊 Estadísticas Generales\n\n"+answer)
			return
		}
		slog.Warn("sql agent stats failed, using fixed query", "error", err)
	}

	stats, err := h.data.TotalStats(ctx)
	if err != nil {
		slog.Error("total stats", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   dispatcher.GenericFailure,
		})
		return
	}

	reply := format.TotalStats(stats)
	if stats.TotalRecords == 0 {
		reply = "❌ No hay registros de ventas en el sistema"
	}
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: reply})
}

// handleVentas shows the calling user's sales statistics.
func (h *Handler) handleVentas(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	user := username(update.Message)
	if user == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "❌ No tienes un username configurado en Telegram.\n" +
				"Por favor configura uno en tu perfil de Telegram para ver tus ventas.",
		})
		return
	}

	stats, err := h.data.StatsForUser(ctx, user)
	if err != nil {
		slog.Error("stats for user", "error", err, "username", user)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   dispatcher.GenericFailure,
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   format.UserStats(user, stats),
	})
}

// handleMisVentas lists the calling user's most recent sales.
func (h *Handler) handleMisVentas(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	user := username(update.Message)
	if user == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "❌ No tienes un username configurado en Telegram.\n" +
				"Por favor configura uno en tu perfil de Telegram.",
		})
		return
	}

	sales, err := h.data.RecentForUser(ctx, user, config.UserRecentLimit)
	if err != nil {
		slog.Error("recent for user", "error", err, "username", user)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   dispatcher.GenericFailure,
		})
		return
	}

	tg.SendLongMessage(ctx, b, chatID, format.UserRecent(user, sales))
}

// handleBuscar searches the calling user's sales for a keyword.
func (h *Handler) handleBuscar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	user := username(update.Message)
	if user == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "❌ No tienes un username configurado en Telegram.\n" +
				"Por favor configura uno en tu perfil de Telegram.",
		})
		return
	}

	keyword := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/buscar"))
	if keyword == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Por favor especifica una palabra clave.\nEjemplo: /buscar producto",
		})
		return
	}

	results, err := h.data.SearchByKeywordForUser(ctx, user, keyword, config.SearchLimit)
	if err != nil {
		slog.Error("search for user", "error", err, "username", user, "keyword", keyword)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   dispatcher.GenericFailure,
		})
		return
	}

	tg.SendLongMessage(ctx, b, chatID, format.SearchResults(keyword, results))
}

// handleSchema shows the structure of the consumed table.
func (h *Handler) handleSchema(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🗄️ Estructura de la base de datos:\n\n" + h.agent.TableInfo(),
	})
}
