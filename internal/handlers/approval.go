package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/callbacks"
	"github.com/jemalhussen/template-market-bot/internal/display"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/store"
	"github.com/jemalhussen/template-market-bot/types"
)

// HandleAdminApproval moves a template out of review: waiting -> accepted
// publishes it to the public channel, waiting -> rejected only records the
// decision. Both outcomes are terminal.
func (h *Handlers) HandleAdminApproval(ctx context.Context, tg Transport, update *models.Update, data string) {
	h.answerCallback(ctx, tg, update, "")

	payload, err := callbacks.ParseApproval(data)
	if err != nil {
		h.log.Warn("malformed approval callback", zap.Error(err))
		h.editCaption(ctx, tg, update, messages.ErrorDefault())
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

	if payload.Action == callbacks.ActionReject {
		if err := h.templates.UpdateTemplateStatus(template.ID, types.StatusRejected); err != nil {
			h.log.Error("failed to reject template", zap.Error(err), zap.String("template_id", template.ID))
			h.editCaption(ctx, tg, update, messages.ErrorDefault())
			return
		}
		h.log.Info("template rejected", zap.String("template_id", template.ID))
		h.editCaption(ctx, tg, update, messages.TemplateRejected())
		return
	}

	if err := h.templates.UpdateTemplateStatus(template.ID, types.StatusAccepted); err != nil {
		h.log.Error("failed to accept template", zap.Error(err), zap.String("template_id", template.ID))
		h.editCaption(ctx, tg, update, messages.ErrorDefault())
		return
	}

	if err := h.publishToChannel(ctx, tg, template); err != nil {
		h.log.Error("failed to publish template to channel", zap.Error(err), zap.String("template_id", template.ID))
		h.editCaption(ctx, tg, update, messages.ErrorDefault())
		return
	}

	h.log.Info("template published", zap.String("template_id", template.ID))
	h.editCaption(ctx, tg, update, messages.TemplatePosted())
}

func (h *Handlers) publishToChannel(ctx context.Context, tg Transport, template *types.Template) error {
	me, err := tg.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("resolve bot handle: %w", err)
	}
	buyURL := fmt.Sprintf("https://t.me/%s?start=%s", me.Username, template.ID)

	row := make([]models.InlineKeyboardButton, 0, 2)
	if template.HasPreview() {
		row = append(row, models.InlineKeyboardButton{Text: "Preview", URL: template.PreviewLink})
	}
	row = append(row, models.InlineKeyboardButton{Text: "Buy", URL: buyURL})

	_, err = tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      h.cfg.PublicChannelID,
		Photo:       &models.InputFileString{Data: display.DirectDriveLink(template.ImageDriveLink)},
		Caption:     display.TemplateCaption(template),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}},
	})
	return err
}
