package display

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/jemalhussen/template-market-bot/types"
)

// Price converts a currency string such as "$17.00" into the displayed
// Birr amount. The x10 factor is the business-defined conversion rate.
// Malformed input yields 0.0 so a bad record never breaks a caller.
func Price(priceStr string) float64 {
	clean := strings.ReplaceAll(priceStr, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0.0
	}
	return v * 10
}

// TemplateCaption renders the three-line display block shown with every
// template photo. Fields are HTML-escaped independently so stored user
// content cannot break the markup.
func TemplateCaption(t *types.Template) string {
	name := t.Name
	if strings.TrimSpace(name) == "" {
		name = "N/A"
	}
	price := t.Price
	if strings.TrimSpace(price) == "" {
		price = "$0"
	}
	desc := t.Description
	if strings.TrimSpace(desc) == "" {
		desc = "No description"
	}

	return fmt.Sprintf(
		"<pre>Name: %s</pre>\n<pre>Price: %.2f Birr</pre>\n<pre>Description: %s</pre>\n",
		html.EscapeString(name),
		Price(price),
		html.EscapeString(desc),
	)
}

var driveFileID = regexp.MustCompile(`d/([^/]+)`)

// DirectDriveLink rewrites a Google Drive sharing link into a direct-fetch
// link Telegram can load as a photo. Anything else passes through unchanged.
func DirectDriveLink(link string) string {
	if link == "" || !strings.Contains(link, "drive.google.com") {
		return link
	}
	m := driveFileID.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return "https://drive.google.com/uc?id=" + m[1]
}
