package types

import (
	"strings"
	"time"
)

type TemplateStatus string

const (
	StatusPending  TemplateStatus = "pending"
	StatusWaiting  TemplateStatus = "waiting"
	StatusAccepted TemplateStatus = "accepted"
	StatusRejected TemplateStatus = "rejected"
)

type Template struct {
	ID             string
	Name           string
	Description    string
	Price          string
	ImageDriveLink string
	PreviewLink    string
	ZipDriveLink   string
	WebsiteZip     string
	Status         TemplateStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DownloadLink returns the protected deliverable, preferring the drive
// archive over the website bundle.
func (t *Template) DownloadLink() string {
	if link := strings.TrimSpace(t.ZipDriveLink); link != "" {
		return link
	}
	if link := strings.TrimSpace(t.WebsiteZip); link != "" {
		return link
	}
	return ""
}

// HasPreview reports whether the preview link is usable as a URL button.
// Telegram rejects inline URL buttons whose target is not an absolute URL.
func (t *Template) HasPreview() bool {
	return strings.HasPrefix(strings.TrimSpace(t.PreviewLink), "http")
}

type PurchaseSession struct {
	ID        string    `json:"id"`
	BuyerID   int64     `json:"buyer_id"`
	ChatID    int64     `json:"chat_id"`
	BuyingID  string    `json:"buying_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TemplateStore interface {
	GetTemplate(id string) (*Template, error)
	ListTemplatesByStatus(status TemplateStatus) ([]*Template, error)
	UpdateTemplateStatus(id string, status TemplateStatus) error

	// MarkTemplateWaiting flips pending -> waiting and reports whether the
	// record was still pending at update time.
	MarkTemplateWaiting(id string) (bool, error)
}

type AdminStore interface {
	GetAdminChatID() (int64, error)
	SetAdminChatID(chatID int64) error
}

type SessionStore interface {
	GetPurchase(userID int64) (*PurchaseSession, error)
	SetPurchase(userID int64, session *PurchaseSession) error
	ClearPurchase(userID int64) error

	AwaitingAdminPassword(userID int64) (bool, error)
	SetAwaitingAdminPassword(userID int64, awaiting bool) error
}
