package handlers

import (
	"context"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/messages"
)

// HandleText completes the admin registration conversation. Any text outside
// that conversation is ignored; the workflow has no free-form text input.
func (h *Handlers) HandleText(ctx context.Context, tg Transport, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	awaiting, err := h.sessions.AwaitingAdminPassword(userID)
	if err != nil {
		h.log.Error("failed to read admin registration state", zap.Error(err), zap.Int64("user_id", userID))
		return
	}
	if !awaiting {
		h.log.Debug("ignoring text outside a conversation", zap.Int64("user_id", userID))
		return
	}

	// Single shot: either outcome ends the conversation. Re-invoking the
	// registration command starts a fresh attempt.
	if err := h.sessions.SetAwaitingAdminPassword(userID, false); err != nil {
		h.log.Error("failed to clear admin registration state", zap.Error(err), zap.Int64("user_id", userID))
	}

	if update.Message.Text != h.cfg.AdminPassword {
		h.sendText(ctx, tg, chatID, messages.AdminPasswordIncorrect())
		return
	}

	if err := h.admins.SetAdminChatID(chatID); err != nil {
		h.log.Error("failed to register admin", zap.Error(err), zap.Int64("chat_id", chatID))
		h.sendText(ctx, tg, chatID, messages.ErrorDefault())
		return
	}

	h.log.Info("admin registered", zap.Int64("chat_id", chatID))
	h.sendText(ctx, tg, chatID, messages.AdminRegistered())
}
