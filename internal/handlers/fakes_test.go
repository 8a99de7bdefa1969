package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/config"
	"github.com/jemalhussen/template-market-bot/store"
	"github.com/jemalhussen/template-market-bot/types"
)

type fakeTemplateStore struct {
	templates     map[string]*types.Template
	statusUpdates int
}

func (f *fakeTemplateStore) GetTemplate(id string) (*types.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, store.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakeTemplateStore) ListTemplatesByStatus(status types.TemplateStatus) ([]*types.Template, error) {
	out := make([]*types.Template, 0)
	for _, t := range f.templates {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTemplateStore) UpdateTemplateStatus(id string, status types.TemplateStatus) error {
	t, ok := f.templates[id]
	if !ok {
		return store.ErrTemplateNotFound
	}
	t.Status = status
	f.statusUpdates++
	return nil
}

func (f *fakeTemplateStore) MarkTemplateWaiting(id string) (bool, error) {
	t, ok := f.templates[id]
	if !ok || t.Status != types.StatusPending {
		return false, nil
	}
	t.Status = types.StatusWaiting
	f.statusUpdates++
	return true, nil
}

type fakeAdminStore struct {
	chatID     int64
	registered bool
}

func (f *fakeAdminStore) GetAdminChatID() (int64, error) {
	if !f.registered {
		return 0, store.ErrNoAdmin
	}
	return f.chatID, nil
}

func (f *fakeAdminStore) SetAdminChatID(chatID int64) error {
	f.chatID = chatID
	f.registered = true
	return nil
}

type fakeSessionStore struct {
	purchases map[int64]*types.PurchaseSession
	awaiting  map[int64]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		purchases: make(map[int64]*types.PurchaseSession),
		awaiting:  make(map[int64]bool),
	}
}

func (f *fakeSessionStore) GetPurchase(userID int64) (*types.PurchaseSession, error) {
	return f.purchases[userID], nil
}

func (f *fakeSessionStore) SetPurchase(userID int64, session *types.PurchaseSession) error {
	f.purchases[userID] = session
	return nil
}

func (f *fakeSessionStore) ClearPurchase(userID int64) error {
	delete(f.purchases, userID)
	return nil
}

func (f *fakeSessionStore) AwaitingAdminPassword(userID int64) (bool, error) {
	return f.awaiting[userID], nil
}

func (f *fakeSessionStore) SetAwaitingAdminPassword(userID int64, awaiting bool) error {
	if !awaiting {
		delete(f.awaiting, userID)
		return nil
	}
	f.awaiting[userID] = true
	return nil
}

type fakeTransport struct {
	messages []*bot.SendMessageParams
	photos   []*bot.SendPhotoParams
	captions []*bot.EditMessageCaptionParams
	answers  []*bot.AnswerCallbackQueryParams
	photoErr error
	username string
}

func (f *fakeTransport) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.messages = append(f.messages, params)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeTransport) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	if f.photoErr != nil {
		return nil, f.photoErr
	}
	f.photos = append(f.photos, params)
	return &models.Message{ID: len(f.photos)}, nil
}

func (f *fakeTransport) EditMessageCaption(ctx context.Context, params *bot.EditMessageCaptionParams) (*models.Message, error) {
	f.captions = append(f.captions, params)
	return &models.Message{ID: len(f.captions)}, nil
}

func (f *fakeTransport) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.answers = append(f.answers, params)
	return true, nil
}

func (f *fakeTransport) GetMe(ctx context.Context) (*models.User, error) {
	name := f.username
	if name == "" {
		name = "market_bot"
	}
	return &models.User{Username: name}, nil
}

func (f *fakeTransport) lastMessageTo(chatID int64) *bot.SendMessageParams {
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].ChatID == any(chatID) {
			return f.messages[i]
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		BotToken:        "test-token",
		PublicChannelID: "@templates_channel",
		AdminCommand:    "hidden_admin_cmd",
		AdminPassword:   "s3cret",
		PayeeAccount:    "1000649561382",
		PayeeName:       "Jemal Hussen Hassen",
		PayeeBank:       "CBE",
	}
}

func newTestHandlers(templates *fakeTemplateStore, admins *fakeAdminStore, sessions *fakeSessionStore) *Handlers {
	return NewHandlers(templates, admins, sessions, testConfig(), zap.NewNop())
}

func commandUpdate(userID, chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			From: &models.User{ID: userID, FirstName: "Abel", LastName: "Tesfaye"},
			Chat: models.Chat{ID: chatID},
			Text: text,
		},
	}
}

func photoUpdate(userID, chatID int64, fileID string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:    2,
			From:  &models.User{ID: userID, FirstName: "Abel", LastName: "Tesfaye"},
			Chat:  models.Chat{ID: chatID},
			Photo: []models.PhotoSize{{FileID: fileID}},
		},
	}
}

func callbackUpdate(data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   fmt.Sprintf("cb-%s", data),
			From: models.User{ID: 777},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   42,
					Chat: models.Chat{ID: 777},
				},
			},
			Data: data,
		},
	}
}
