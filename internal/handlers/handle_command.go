package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/display"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/store"
	"github.com/jemalhussen/template-market-bot/types"
)

func (h *Handlers) HandleCommand(ctx context.Context, tg Transport, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	fields := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	switch cmd {
	case "/" + h.cfg.AdminCommand:
		h.startAdminRegistration(ctx, tg, userID, chatID)
	case "/start":
		arg := ""
		if len(fields) >= 2 {
			arg = strings.TrimSpace(fields[1])
		}
		h.startPurchase(ctx, tg, userID, chatID, arg)
	default:
		h.log.Debug("ignoring unknown command", zap.String("command", cmd))
	}
}

// startAdminRegistration enters the one-shot password conversation. The
// command name itself comes from configuration so it is not discoverable.
func (h *Handlers) startAdminRegistration(ctx context.Context, tg Transport, userID, chatID int64) {
	if err := h.sessions.SetAwaitingAdminPassword(userID, true); err != nil {
		h.log.Error("failed to set admin registration state", zap.Error(err), zap.Int64("user_id", userID))
		h.sendText(ctx, tg, chatID, messages.ErrorDefault())
		return
	}
	h.sendText(ctx, tg, chatID, messages.AdminPasswordPrompt())
}

// startPurchase handles /start. With a resolvable template id it opens a
// purchase session and sends payment instructions; otherwise it ends with
// the generic welcome and no purchase in progress.
func (h *Handlers) startPurchase(ctx context.Context, tg Transport, userID, chatID int64, templateID string) {
	if templateID == "" {
		h.sendText(ctx, tg, chatID, messages.Welcome())
		return
	}

	template, err := h.templates.GetTemplate(templateID)
	if err != nil {
		if !errors.Is(err, store.ErrTemplateNotFound) {
			h.log.Error("failed to load template", zap.Error(err), zap.String("template_id", templateID))
		}
		h.sendText(ctx, tg, chatID, messages.Welcome())
		return
	}

	session := &types.PurchaseSession{
		ID:        uuid.New().String(),
		BuyerID:   userID,
		ChatID:    chatID,
		BuyingID:  template.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.sessions.SetPurchase(userID, session); err != nil {
		h.log.Error("failed to save purchase session", zap.Error(err), zap.Int64("user_id", userID))
		h.sendText(ctx, tg, chatID, messages.ErrorDefault())
		return
	}

	amount := display.Price(template.Price)
	h.sendText(ctx, tg, chatID, messages.PaymentInstructions(h.cfg.PayeeAccount, h.cfg.PayeeName, h.cfg.PayeeBank, amount))
}
