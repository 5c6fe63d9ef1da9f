package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = `🤖 ¡Bienvenido al Asistente Inteligente de Ventas!

Puedo ayudarte con:

📊 Consultas de Datos:
• ¿Cuántas facturas tenemos?
• ¿Cuántos clientes únicos hay?
• Muéstrame las últimas ventas
• ¿Quién es el cliente con más ventas?
• Busca ventas de [producto]

💬 Conversación General:
• Información sobre productos
• Preguntas frecuentes
• Asistencia general

Solo pregúntame lo que necesites y yo buscaré la información automáticamente.

Comandos disponibles:
/start - Ver este mensaje
/help - Obtener ayuda
/clear - Limpiar historial de conversación
/stats - Estadísticas generales
/schema - Ver estructura de la base de datos`

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	// A fresh /start also starts a fresh conversation.
	if update.Message.From != nil {
		h.sessions.Reset(update.Message.From.ID)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})

	if update.Message.From != nil {
		slog.Info("user started the bot",
			"user_id", update.Message.From.ID,
			"username", update.Message.From.Username,
		)
	}
}

const helpText = `🆘 Ayuda del Bot

Ejemplos de preguntas que puedes hacer:

📈 Estadísticas:
- ¿Cuántas facturas tenemos en total?
- ¿Cuántos clientes únicos hay?
- Dame el total de ventas

👥 Clientes:
- ¿Quién es el cliente con más ventas?
- ¿Quiénes son los mejores clientes?

📋 Ventas:
- Muéstrame las últimas ventas
- Busca ventas de [producto]

Comandos:
/clear - Limpiar historial de conversación
/stats - Estadísticas generales
/ventas - Tus estadísticas de ventas
/misventas - Tus ventas recientes
/buscar <palabra> - Buscar en tus ventas
/schema - Estructura de la base de datos

¡No necesitas saber SQL, solo pregunta en lenguaje natural!`

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
	if err != nil {
		slog.Error("send help", "error", err)
	}
}

func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.sessions.Reset(update.Message.From.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "Historial de conversación limpiado. ¡Empecemos de nuevo!",
	})
}

func username(msg *models.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.Username
}
