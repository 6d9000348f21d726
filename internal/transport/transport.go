// Package transport abstracts the messaging client. The bot core only
// depends on the interfaces here; the production adapter (session
// lifecycle, pairing, reconnects) plugs in behind them.
package transport

import (
	"context"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
)

// Presence is a chat-level typing indicator state.
type Presence string

const (
	PresenceComposing Presence = "composing"
	PresencePaused    Presence = "paused"
)

// Message is outgoing content: plain text, or an image with a caption.
type Message struct {
	Text    string
	Image   []byte
	Caption string
}

// SendOptions controls per-send behavior.
type SendOptions struct {
	// DisableEphemeral forces the message to be durably visible even in
	// chats with disappearing messages enabled. Collection commands must
	// not self-destruct.
	DisableEphemeral bool
}

// GroupInfo is the subset of group metadata the bot uses.
type GroupInfo struct {
	Name string
}

// Client is the outbound surface of the messaging transport.
type Client interface {
	SendMessage(ctx context.Context, chatID string, msg Message, opts SendOptions) error
	SendPresence(ctx context.Context, chatID string, p Presence) error
	GroupMetadata(ctx context.Context, chatID string) (*GroupInfo, error)
	DownloadMedia(ctx context.Context, env *message.Envelope) ([]byte, error)
}

// Listener is the inbound surface: a stream of message envelopes. The
// channel closes when the transport shuts down.
type Listener interface {
	Messages() <-chan message.Envelope
}
