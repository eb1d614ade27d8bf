// Package twilio normalizes Twilio-style WhatsApp webhook form posts into the
// canonical channel message shape.
package twilio

import (
	"fmt"
	"net/http"

	"github.com/leofalp/omnichat/providers/channel"
)

// Normalizer implements [channel.Normalizer] for Twilio WhatsApp webhooks,
// which arrive as flat urlencoded form fields.
type Normalizer struct{}

// New returns a Twilio WhatsApp webhook normalizer.
func New() *Normalizer { return &Normalizer{} }

var _ channel.Normalizer = (*Normalizer)(nil)

// Name returns the whatsapp channel identifier.
func (n *Normalizer) Name() string { return channel.WhatsApp }

// Normalize extracts the sender ("From") and body ("Body") form fields.
// Missing fields pass through as empty strings rather than being rejected;
// this normalizer reshapes, it does not validate.
func (n *Normalizer) Normalize(r *http.Request) (*channel.Message, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parsing twilio form payload: %w", err)
	}

	return &channel.Message{
		UserID:  r.PostForm.Get("From"),
		Channel: channel.WhatsApp,
		Text:    r.PostForm.Get("Body"),
	}, nil
}
