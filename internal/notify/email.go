package notify

import (
	"fmt"
	"path"
	"strings"
	"time"
)

const emailSubject = "Your photo restore is complete"

// composeEmail renders the text and HTML alternatives of the restore
// notification. urls pairs positionally with objectKeys; zipURL is
// empty when no bundle was created.
func composeEmail(objectKeys, urls []string, zipURL string, expiry time.Duration) (subject, textBody, htmlBody string) {
	hours := int(expiry.Hours())
	if hours < 1 {
		hours = 1
	}

	var text strings.Builder
	text.WriteString("Your photo restore is complete\n\n")
	text.WriteString("The following files you requested are ready to download:\n\n")
	for i, key := range objectKeys {
		if i >= len(urls) {
			break
		}
		fmt.Fprintf(&text, "- %s: %s\n", path.Base(key), urls[i])
	}
	if zipURL != "" {
		fmt.Fprintf(&text, "\nDownload everything as one zip: %s\n", zipURL)
	}
	fmt.Fprintf(&text, "\nDownload links are valid for %d hours. If they expire, request the restore again from the app.\n", hours)
	text.WriteString("\nThis is an automated message; replies are not monitored.\n")

	var html strings.Builder
	html.WriteString(`<html><head><style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    h2 { color: #2c3e50; }
    ul { padding-left: 20px; }
    li { margin-bottom: 10px; }
    .button { display: inline-block; background-color: #3498db; color: white;
              padding: 10px 15px; text-decoration: none; border-radius: 5px; }
    .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; }
  </style></head><body><div class="container">`)
	html.WriteString("<h2>Your photo restore is complete</h2>")
	html.WriteString("<p>The following files you requested are ready to download:</p><ul>")
	for i, key := range objectKeys {
		if i >= len(urls) {
			break
		}
		fmt.Fprintf(&html, `<li><a href="%s">%s</a></li>`, urls[i], path.Base(key))
	}
	html.WriteString("</ul>")
	if zipURL != "" {
		html.WriteString("<p>You can also download everything at once:</p>")
		fmt.Fprintf(&html, `<p><a href="%s" class="button">Download all as zip</a></p>`, zipURL)
	}
	fmt.Fprintf(&html, "<p>Download links are valid for %d hours. If they expire, request the restore again from the app.</p>", hours)
	html.WriteString(`<div class="footer"><p>This is an automated message; replies are not monitored.</p></div>`)
	html.WriteString("</div></body></html>")

	return emailSubject, text.String(), html.String()
}
