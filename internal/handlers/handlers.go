package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/callbacks"
	"github.com/jemalhussen/template-market-bot/internal/config"
	"github.com/jemalhussen/template-market-bot/internal/contextkeys"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/types"
)

// Transport is the slice of the bot API the handlers actually use.
// *bot.Bot satisfies it; tests substitute a fake.
type Transport interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	EditMessageCaption(ctx context.Context, params *bot.EditMessageCaptionParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetMe(ctx context.Context) (*models.User, error)
}

type Handlers struct {
	templates types.TemplateStore
	admins    types.AdminStore
	sessions  types.SessionStore
	cfg       *config.Config
	log       *zap.Logger
}

func NewHandlers(templates types.TemplateStore, admins types.AdminStore, sessions types.SessionStore, cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		templates: templates,
		admins:    admins,
		sessions:  sessions,
		cfg:       cfg,
		log:       log,
	}
}

// MainHandler is the single entry point registered with the bot.
func (h *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.Handle(ctx, b, update)
}

func (h *Handlers) Handle(ctx context.Context, tg Transport, update *models.Update) {
	messageType, _ := contextkeys.GetMessageType(ctx)

	switch messageType {
	case contextkeys.MessageTypeCommand:
		h.HandleCommand(ctx, tg, update)
	case contextkeys.MessageTypeText:
		h.HandleText(ctx, tg, update)
	case contextkeys.MessageTypePhoto:
		h.HandlePhoto(ctx, tg, update)
	case contextkeys.MessageTypeClickButton:
		data, _ := contextkeys.GetCallbackData(ctx)
		if data == "" && update.CallbackQuery != nil {
			data = update.CallbackQuery.Data
		}
		data = strings.TrimSpace(data)
		switch {
		case strings.HasPrefix(data, callbacks.DomainApproval+"_"):
			h.HandleAdminApproval(ctx, tg, update, data)
		case strings.HasPrefix(data, callbacks.DomainPayment+"_"):
			h.HandlePaymentVerification(ctx, tg, update, data)
		default:
			h.log.Warn("unrecognized callback data", zap.String("data", data))
			h.answerCallback(ctx, tg, update, "")
		}
	default:
		h.log.Debug("ignoring unsupported update")
	}
}

func (h *Handlers) sendText(ctx context.Context, tg Transport, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		h.log.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (h *Handlers) answerCallback(ctx context.Context, tg Transport, update *models.Update, text string) {
	if update.CallbackQuery == nil {
		return
	}
	_, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
	if err != nil {
		h.log.Error("failed to answer callback", zap.Error(err))
	}
}

// editCaption rewrites the caption of the admin message a callback came from.
func (h *Handlers) editCaption(ctx context.Context, tg Transport, update *models.Update, caption string) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	_, err := tg.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Caption:   caption,
	})
	if err != nil {
		h.log.Error("failed to edit message caption", zap.Error(err),
			zap.Int64("chat_id", msg.Chat.ID), zap.Int("message_id", msg.ID))
	}
}
