package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/callbacks"
	"github.com/jemalhussen/template-market-bot/internal/display"
	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/store"
	"github.com/jemalhussen/template-market-bot/types"
)

// Transport is the slice of the bot API the poller needs.
type Transport interface {
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

// Poller scans the store for pending templates on a fixed interval and fans
// them out to the registered admin for review. Dispatched records are flipped
// to waiting so the next tick ignores them.
type Poller struct {
	templates  types.TemplateStore
	admins     types.AdminStore
	tg         Transport
	log        *zap.Logger
	interval   time.Duration
	firstDelay time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

type Config struct {
	Interval   time.Duration
	FirstDelay time.Duration
}

func NewPoller(templates types.TemplateStore, admins types.AdminStore, tg Transport, log *zap.Logger, config Config) *Poller {
	if config.Interval <= 0 {
		config.Interval = 60 * time.Second
	}
	if config.FirstDelay <= 0 {
		config.FirstDelay = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		templates:  templates,
		admins:     admins,
		tg:         tg,
		log:        log,
		interval:   config.Interval,
		firstDelay: config.FirstDelay,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.log.Info("poller started", zap.Duration("interval", p.interval))

	p.wg.Add(1)
	go p.loop()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.log.Info("poller stopped")
}

func (p *Poller) loop() {
	defer p.wg.Done()

	select {
	case <-p.ctx.Done():
		return
	case <-time.After(p.firstDelay):
	}
	p.Tick(p.ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.Tick(p.ctx)
		}
	}
}

// Tick runs one pending-template scan. Per-record failures are logged and
// skipped; a failed record stays pending and is retried next tick.
func (p *Poller) Tick(ctx context.Context) {
	adminChatID, err := p.admins.GetAdminChatID()
	if err != nil {
		if errors.Is(err, store.ErrNoAdmin) {
			p.log.Warn("poll tick ran but no admin is registered yet")
		} else {
			p.log.Error("failed to look up admin", zap.Error(err))
		}
		return
	}

	templates, err := p.templates.ListTemplatesByStatus(types.StatusPending)
	if err != nil {
		p.log.Error("failed to list pending templates", zap.Error(err))
		return
	}

	for _, template := range templates {
		if err := p.dispatch(ctx, adminChatID, template); err != nil {
			p.log.Error("failed to dispatch pending template", zap.Error(err),
				zap.String("template_id", template.ID))
			continue
		}

		// Conditional flip after a successful dispatch: a record another
		// actor already moved out of pending is left alone.
		flipped, err := p.templates.MarkTemplateWaiting(template.ID)
		if err != nil {
			p.log.Error("failed to mark template waiting", zap.Error(err),
				zap.String("template_id", template.ID))
			continue
		}
		if !flipped {
			p.log.Warn("template left pending status during dispatch", zap.String("template_id", template.ID))
			continue
		}
		p.log.Info("template sent for review", zap.String("template_id", template.ID))
	}
}

func (p *Poller) dispatch(ctx context.Context, adminChatID int64, template *types.Template) error {
	rows := [][]models.InlineKeyboardButton{
		{
			{Text: "Accept", CallbackData: callbacks.EncodeApproval(callbacks.ActionAccept, template.ID)},
			{Text: "Reject", CallbackData: callbacks.EncodeApproval(callbacks.ActionReject, template.ID)},
		},
	}
	if template.HasPreview() {
		rows = append(rows, []models.InlineKeyboardButton{{Text: "Preview", URL: template.PreviewLink}})
	}

	_, err := p.tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      adminChatID,
		Photo:       &models.InputFileString{Data: display.DirectDriveLink(template.ImageDriveLink)},
		Caption:     display.TemplateCaption(template),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	return err
}
