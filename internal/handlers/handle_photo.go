package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/callbacks"
	"github.com/jemalhussen/template-market-bot/internal/contextkeys"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/store"
)

// HandlePhoto forwards a payment screenshot to the admin for verification.
// Photos outside an active purchase are ignored.
func (h *Handlers) HandlePhoto(ctx context.Context, tg Transport, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	session, err := h.sessions.GetPurchase(userID)
	if err != nil {
		h.log.Error("failed to load purchase session", zap.Error(err), zap.Int64("user_id", userID))
		h.sendText(ctx, tg, chatID, messages.ErrorDefault())
		return
	}
	if session == nil {
		h.log.Debug("photo without an active purchase", zap.Int64("user_id", userID))
		return
	}

	adminChatID, err := h.admins.GetAdminChatID()
	if err != nil {
		if !errors.Is(err, store.ErrNoAdmin) {
			h.log.Error("failed to look up admin", zap.Error(err))
		}
		h.sendText(ctx, tg, chatID, messages.AdminUnavailable())
		_ = h.sessions.ClearPurchase(userID)
		return
	}

	fileID, _ := contextkeys.GetPhotoFileID(ctx)
	if fileID == "" && len(update.Message.Photo) > 0 {
		fileID = update.Message.Photo[len(update.Message.Photo)-1].FileID
	}

	buyer := messages.Mention(userID, buyerDisplayName(update.Message.From))
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Accept Payment", CallbackData: callbacks.EncodePayment(callbacks.ActionAccept, session.BuyingID, chatID)},
				{Text: "Reject Payment", CallbackData: callbacks.EncodePayment(callbacks.ActionReject, session.BuyingID, chatID)},
			},
		},
	}

	_, err = tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      adminChatID,
		Photo:       &models.InputFileString{Data: fileID},
		Caption:     messages.PaymentCaption(session.BuyingID, buyer),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		// Session stays open so the buyer can simply resend the screenshot.
		h.log.Error("failed to forward screenshot to admin", zap.Error(err),
			zap.String("template_id", session.BuyingID), zap.Int64("buyer_id", userID))
		h.sendText(ctx, tg, chatID, messages.ErrorDefault())
		return
	}

	if err := h.sessions.ClearPurchase(userID); err != nil {
		h.log.Error("failed to clear purchase session", zap.Error(err), zap.Int64("user_id", userID))
	}
	h.sendText(ctx, tg, chatID, messages.ScreenshotReceived())
}

func buyerDisplayName(u *models.User) string {
	name := strings.TrimSpace(u.FirstName)
	if u.LastName != "" {
		name = strings.TrimSpace(name + " " + u.LastName)
	}
	if name == "" {
		name = u.Username
	}
	return name
}
