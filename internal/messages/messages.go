package messages

import (
	"fmt"
	"strings"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

// Mention renders a clickable reference to a user without needing a username.
func Mention(userID int64, name string) string {
	display := strings.TrimSpace(name)
	if display == "" {
		display = fmt.Sprintf("%d", userID)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, Escape(display))
}

func Welcome() string {
	return "Welcome! Browse our channel to find templates to purchase."
}

func AdminPasswordPrompt() string {
	return "Please enter the Admin Password:"
}

func AdminRegistered() string {
	return "✅ Registration Successful. You are now the bot admin."
}

func AdminPasswordIncorrect() string {
	return "❌ Incorrect password."
}

func PaymentInstructions(account, name, bank string, amount float64) string {
	return fmt.Sprintf(
		"Please transfer the required amount to the following account:\n\n"+
			"<b>Account:</b> <code>%s</code>\n"+
			"<b>Name:</b> <code>%s</code>\n"+
			"<b>Bank:</b> <code>%s</code>\n"+
			"<b>Amount:</b> %.2f Birr\n\n"+
			"Please upload a screenshot of your payment below.",
		Escape(account), Escape(name), Escape(bank), amount,
	)
}

func ScreenshotReceived() string {
	return "Screenshot received! The admin will verify it shortly."
}

func AdminUnavailable() string {
	return "Admin is not available. Please try again later."
}

func PaymentCaption(templateID string, buyerMention string) string {
	return fmt.Sprintf("Payment for: <code>%s</code>\nFrom: %s", Escape(templateID), buyerMention)
}

func DownloadLinkReleased(link string) string {
	return fmt.Sprintf("✅ Payment Verified! Here is your download link:\n\n%s", link)
}

func DownloadLinkMissing() string {
	return "Link not found."
}

func PaymentRejected() string {
	return "❌ Payment verification failed. Please re-upload a valid payment screenshot."
}

func TemplatePosted() string {
	return "✅ Template Posted to Channel."
}

func TemplateRejected() string {
	return "❌ Template Rejected."
}

func TemplateMissing() string {
	return "❌ Error: Template no longer exists in the store."
}

func PaymentAccepted() string {
	return "✅ Payment Accepted. Download link sent."
}

func PaymentRejectedAdmin() string {
	return "❌ Payment Rejected. User notified."
}

func ErrorDefault() string {
	return "🚫 Something went wrong. Please try again."
}
