package channel

import "net/http"

// Supported channel identifiers. These are the values accepted by the chat
// endpoint and stamped onto normalized webhook messages.
const (
	WhatsApp  = "whatsapp"
	Telegram  = "telegram"
	Web       = "web"
	Instagram = "instagram"
	Facebook  = "facebook"
)

// allowed is the closed set of channels the relay accepts.
var allowed = map[string]bool{
	WhatsApp:  true,
	Telegram:  true,
	Web:       true,
	Instagram: true,
	Facebook:  true,
}

// IsAllowed reports whether name is a supported channel identifier.
func IsAllowed(name string) bool {
	return allowed[name]
}

// Allowed returns the supported channel identifiers in a stable order,
// suitable for error messages.
func Allowed() []string {
	return []string{WhatsApp, Telegram, Web, Instagram, Facebook}
}

// Message is the canonical inbound message every normalizer produces.
type Message struct {
	UserID  string
	Channel string
	Text    string
}

// Normalizer maps a channel-specific webhook request onto a canonical
// [Message].
//
// A (nil, nil) return is the no-op signal: the payload carries nothing to
// relay (e.g. a Telegram update without a message), and the caller must still
// acknowledge the webhook with success. Errors are reserved for payloads that
// cannot be decoded at all.
type Normalizer interface {
	// Name returns the channel identifier stamped on normalized messages.
	Name() string

	// Normalize reshapes the request payload into a canonical Message.
	// Missing optional fields pass through as empty strings; normalizers do
	// not validate.
	Normalize(r *http.Request) (*Message, error)
}
