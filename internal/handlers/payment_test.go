package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/jemalhussen/template-market-bot/internal/messages"
	"github.com/jemalhussen/template-market-bot/types"
)

func TestPaymentAcceptReleasesDownloadLink(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*types.Template{
		"T1": {
			ID:           "T1",
			ZipDriveLink: "https://drive.google.com/file/d/zip1/view",
			WebsiteZip:   "https://example.com/site.zip",
			Status:       types.StatusAccepted,
		},
	}}
	tg := &fakeTransport{}
	h := newTestHandlers(templates, &fakeAdminStore{}, newFakeSessionStore())

	data := "pay_acc_T1_555"
	h.HandlePaymentVerification(context.Background(), tg, callbackUpdate(data), data)

	buyerMsg := tg.lastMessageTo(555)
	if buyerMsg == nil {
		t.Fatal("buyer did not receive the download link")
	}
	if !strings.Contains(buyerMsg.Text, "https://drive.google.com/file/d/zip1/view") {
		t.Fatalf("zip drive link preferred field not used: %q", buyerMsg.Text)
	}
	if len(tg.captions) != 1 || tg.captions[0].Caption != messages.PaymentAccepted() {
		t.Fatalf("admin message not confirmed: %+v", tg.captions)
	}
}

func TestPaymentAcceptFallsBackToWebsiteZip(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*types.Template{
		"T1": {ID: "T1", WebsiteZip: "https://example.com/site.zip", Status: types.StatusAccepted},
	}}
	tg := &fakeTransport{}
	h := newTestHandlers(templates, &fakeAdminStore{}, newFakeSessionStore())

	data := "pay_acc_T1_555"
	h.HandlePaymentVerification(context.Background(), tg, callbackUpdate(data), data)

	buyerMsg := tg.lastMessageTo(555)
	if buyerMsg == nil || !strings.Contains(buyerMsg.Text, "https://example.com/site.zip") {
		t.Fatalf("website zip fallback not used: %+v", buyerMsg)
	}
}

func TestPaymentAcceptWithoutDeliverable(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*types.Template{
		"T1": {ID: "T1", Status: types.StatusAccepted},
	}}
	tg := &fakeTransport{}
	h := newTestHandlers(templates, &fakeAdminStore{}, newFakeSessionStore())

	data := "pay_acc_T1_555"
	h.HandlePaymentVerification(context.Background(), tg, callbackUpdate(data), data)

	buyerMsg := tg.lastMessageTo(555)
	if buyerMsg == nil || !strings.Contains(buyerMsg.Text, messages.DownloadLinkMissing()) {
		t.Fatalf("placeholder for missing deliverable not used: %+v", buyerMsg)
	}
}

func TestPaymentRejectAsksForReupload(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*types.Template{
		"T1": {ID: "T1", ZipDriveLink: "https://x/zip", Status: types.StatusAccepted},
	}}
	tg := &fakeTransport{}
	h := newTestHandlers(templates, &fakeAdminStore{}, newFakeSessionStore())

	data := "pay_rej_T1_555"
	h.HandlePaymentVerification(context.Background(), tg, callbackUpdate(data), data)

	buyerMsg := tg.lastMessageTo(555)
	if buyerMsg == nil || buyerMsg.Text != messages.PaymentRejected() {
		t.Fatalf("re-upload request not sent: %+v", buyerMsg)
	}
	if strings.Contains(buyerMsg.Text, "https://x/zip") {
		t.Fatal("rejection must not leak the download link")
	}
	if len(tg.captions) != 1 || tg.captions[0].Caption != messages.PaymentRejectedAdmin() {
		t.Fatalf("admin message not confirmed: %+v", tg.captions)
	}
}

func TestPaymentMissingTemplate(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*types.Template{}}
	tg := &fakeTransport{}
	h := newTestHandlers(templates, &fakeAdminStore{}, newFakeSessionStore())

	data := "pay_acc_GONE_555"
	h.HandlePaymentVerification(context.Background(), tg, callbackUpdate(data), data)

	if tg.lastMessageTo(555) != nil {
		t.Fatal("buyer must not be messaged for a missing template")
	}
	if len(tg.captions) != 1 || !strings.Contains(tg.captions[0].Caption, "no longer exists") {
		t.Fatalf("missing-template error not shown: %+v", tg.captions)
	}
}
