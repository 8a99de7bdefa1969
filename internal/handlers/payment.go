package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/callbacks"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/store"
)

// HandlePaymentVerification releases the download link to the buyer or asks
// for a re-upload. The callback payload carries everything needed; no
// payment state is written back to the template record.
func (h *Handlers) HandlePaymentVerification(ctx context.Context, tg Transport, update *models.Update, data string) {
	h.answerCallback(ctx, tg, update, "")

	payload, err := callbacks.ParsePayment(data)
	if err != nil {
		h.log.Warn("malformed payment callback", zap.Error(err))
		h.editCaption(ctx, tg, update, messages.ErrorDefault())
		return
	}

	if payload.Action == callbacks.ActionReject {
		h.sendText(ctx, tg, payload.BuyerChatID, messages.PaymentRejected())
		h.editCaption(ctx, tg, update, messages.PaymentRejectedAdmin())
		return
	}

	template, err := h.templates.GetTemplate(payload.TemplateID)
	if err != nil {
		if errors.Is(err, store.ErrTemplateNotFound) {
			h.editCaption(ctx, tg, update, messages.TemplateMissing())
			return
		}
		h.log.Error("failed to load template", zap.Error(err), zap.String("template_id", payload.TemplateID))
		h.editCaption(ctx, tg, update, messages.ErrorDefault())
		return
	}

	link := template.DownloadLink()
	if link == "" {
		link = messages.DownloadLinkMissing()
	}
	h.sendText(ctx, tg, payload.BuyerChatID, messages.DownloadLinkReleased(link))
	h.editCaption(ctx, tg, update, messages.PaymentAccepted())

	h.log.Info("payment verified, download link released",
		zap.String("template_id", payload.TemplateID),
		zap.Int64("buyer_chat_id", payload.BuyerChatID))
}
