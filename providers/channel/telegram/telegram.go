// Package telegram normalizes Telegram bot webhook updates into the canonical
// channel message shape.
package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/leofalp/omnichat/providers/channel"
)

// update mirrors the subset of the Telegram Update object the relay cares
// about. Everything else in the payload is ignored.
type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64 `json:"message_id"`
		From      struct {
			ID int64 `json:"id"`
		} `json:"from"`
		Text string `json:"text"`
	} `json:"message"`
}

// Normalizer implements [channel.Normalizer] for Telegram webhooks.
type Normalizer struct{}

// New returns a Telegram webhook normalizer.
func New() *Normalizer { return &Normalizer{} }

var _ channel.Normalizer = (*Normalizer)(nil)

// Name returns the telegram channel identifier.
func (n *Normalizer) Name() string { return channel.Telegram }

// Normalize decodes a Telegram update. Updates without a message field (edited
// messages, channel posts, callbacks the bot is not subscribed to) yield
// (nil, nil): Telegram's webhook contract requires acknowledging updates the
// bot does not care about, so the caller must still respond with success.
// A missing text field passes through as an empty string.
func (n *Normalizer) Normalize(r *http.Request) (*channel.Message, error) {
	var u update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decoding telegram update: %w", err)
	}

	if u.Message == nil {
		return nil, nil
	}

	return &channel.Message{
		UserID:  strconv.FormatInt(u.Message.From.ID, 10),
		Channel: channel.Telegram,
		Text:    u.Message.Text,
	}, nil
}
