package chat

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/omnichat/providers/channel"
)

// htmlMarkers are the tags whose presence makes a reply a candidate for
// Markdown conversion. Deliberately conservative: a stray "<" in prose or a
// code sample must not trigger a rewrite.
var htmlMarkers = []string{
	"<p>", "<br", "<b>", "<i>", "<em>", "<strong>",
	"<ul>", "<ol>", "<li>", "<a href", "<h1>", "<h2>", "<h3>",
}

// formatReply adapts a model reply to the destination channel. Messaging
// channels (WhatsApp, Telegram, Instagram, Facebook) cannot render HTML, so
// HTML-looking output is converted to Markdown; the web channel receives the
// reply untouched. Conversion failures fall back to the original text.
func formatReply(ch, reply string) string {
	if ch == channel.Web || !looksLikeHTML(reply) {
		return reply
	}

	markdown, err := htmltomarkdown.ConvertString(reply)
	if err != nil {
		return reply
	}

	return strings.TrimSpace(markdown)
}

// looksLikeHTML reports whether text contains any of the known HTML markers.
func looksLikeHTML(text string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range htmlMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
