package middleware

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/jemalhussen/template-market-bot/internal/contextkeys"
)

type Middlewares struct{}

func NewMessageAnalyzer() *Middlewares {
	return &Middlewares{}
}

// AnalyzeMessageMiddleware classifies the update before it reaches the
// handlers so they can switch on a single message type instead of probing
// the update shape themselves.
func (ma *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery != nil && update.CallbackQuery.Data != "" {
			newCtx := contextkeys.WithMessageType(ctx, contextkeys.MessageTypeClickButton)
			newCtx = contextkeys.WithCallbackData(newCtx, update.CallbackQuery.Data)
			next(newCtx, b, update)
			return
		}

		if update.Message == nil {
			next(contextkeys.WithMessageType(ctx, contextkeys.MessageTypeUnknown), b, update)
			return
		}

		msg := update.Message
		switch {
		case msg.Text != "" && strings.HasPrefix(msg.Text, "/"):
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeCommand)
		case len(msg.Photo) > 0:
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypePhoto)
			// Telegram delivers photos in ascending resolution; forward the best one.
			ctx = contextkeys.WithPhotoFileID(ctx, msg.Photo[len(msg.Photo)-1].FileID)
		case msg.Text != "":
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeText)
		default:
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeUnknown)
		}

		next(ctx, b, update)
	}
}
