package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
)

// Console is a development transport: it reads lines from an io.Reader as
// inbound conversation messages from the owner and logs all outbound
// traffic. Useful for exercising the pipeline without a live session.
type Console struct {
	ownerJID string
	chatID   string
	out      chan message.Envelope
}

// NewConsole starts a console transport reading from r.
func NewConsole(r io.Reader, ownerJID string) *Console {
	c := &Console{
		ownerJID: ownerJID,
		chatID:   ownerJID,
		out:      make(chan message.Envelope),
	}
	go c.read(r)
	return c
}

func (c *Console) read(r io.Reader) {
	defer close(c.out)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		c.out <- message.Envelope{
			ChatID:    c.chatID,
			SenderID:  c.ownerJID,
			Timestamp: time.Now(),
			Payload:   message.Payload{Conversation: scanner.Text()},
		}
	}
}

// Messages implements Listener.
func (c *Console) Messages() <-chan message.Envelope {
	return c.out
}

// SendMessage logs the outgoing message instead of delivering it.
func (c *Console) SendMessage(ctx context.Context, chatID string, msg Message, opts SendOptions) error {
	if msg.Text != "" {
		log.Printf("[Console] -> %s: %s", chatID, msg.Text)
	} else {
		log.Printf("[Console] -> %s: image (%d bytes) caption=%q", chatID, len(msg.Image), msg.Caption)
	}
	return nil
}

// SendPresence logs the presence change.
func (c *Console) SendPresence(ctx context.Context, chatID string, p Presence) error {
	log.Printf("[Console] presence %s -> %s", p, chatID)
	return nil
}

// GroupMetadata always fails: the console has no groups.
func (c *Console) GroupMetadata(ctx context.Context, chatID string) (*GroupInfo, error) {
	return nil, errors.New("console transport has no group metadata")
}

// DownloadMedia always fails: the console carries no media.
func (c *Console) DownloadMedia(ctx context.Context, env *message.Envelope) ([]byte, error) {
	return nil, errors.New("console transport has no media")
}

// Ensure Console implements both transport surfaces
var (
	_ Client   = (*Console)(nil)
	_ Listener = (*Console)(nil)
)
