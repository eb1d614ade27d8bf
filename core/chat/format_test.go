package chat

import (
	"strings"
	"testing"

	"github.com/leofalp/omnichat/providers/channel"
)

func TestFormatReply_WebPassesThrough(t *testing.T) {
	reply := "<p>Hello <b>there</b></p>"

	got := formatReply(channel.Web, reply)

	if got != reply {
		t.Fatalf("web replies must not be rewritten, got %q", got)
	}
}

func TestFormatReply_PlainTextUntouched(t *testing.T) {
	reply := "2 < 3 and that's fine"

	got := formatReply(channel.WhatsApp, reply)

	if got != reply {
		t.Fatalf("plain text must not be rewritten, got %q", got)
	}
}

func TestFormatReply_MessagingChannelConvertsHTML(t *testing.T) {
	got := formatReply(channel.Telegram, "<p>Hello <strong>world</strong></p>")

	if strings.Contains(got, "<p>") || strings.Contains(got, "<strong>") {
		t.Fatalf("expected HTML stripped, got %q", got)
	}
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "world") {
		t.Fatalf("expected text content preserved, got %q", got)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"plain text", false},
		{"a < b", false},
		{"<p>paragraph</p>", true},
		{"line<br/>break", true},
		{"<A HREF=\"x\">link</A>", true},
		{"", false},
	}

	for _, tc := range cases {
		if got := looksLikeHTML(tc.text); got != tc.want {
			t.Errorf("looksLikeHTML(%q) = %v, expected %v", tc.text, got, tc.want)
		}
	}
}
