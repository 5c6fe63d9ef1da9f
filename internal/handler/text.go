package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tg "github.com/luiscast/ventasbot/internal/telegram"
)

// HandleText routes free-form text messages through the dispatcher. A reply
// is always sent, even on failure.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reply := h.dispatcher.Handle(ctx, userID, username(msg), msg.Text)

	if err := tg.SendLongMessage(ctx, b, chatID, reply); err != nil {
		slog.Error("send reply", "error", err, "chat_id", chatID)
	}
}
