package transport

import (
	"context"
	"log"
)

// OwnerNotifier sends out-of-band notifications to the owner's direct chat.
// Send failures here are logged, never propagated: the owner channel being
// down must not stall collection.
type OwnerNotifier struct {
	client   Client
	ownerJID string
}

// NewOwnerNotifier creates a notifier targeting the owner's JID.
func NewOwnerNotifier(client Client, ownerJID string) *OwnerNotifier {
	return &OwnerNotifier{client: client, ownerJID: ownerJID}
}

// Text sends a plain-text notification to the owner.
func (n *OwnerNotifier) Text(ctx context.Context, text string) {
	n.Send(ctx, Message{Text: text})
}

// Send sends arbitrary content to the owner.
func (n *OwnerNotifier) Send(ctx context.Context, msg Message) {
	err := n.client.SendMessage(ctx, n.ownerJID, msg, SendOptions{DisableEphemeral: true})
	if err != nil {
		log.Printf("[OwnerNotifier] CRITICAL: failed to reach owner DM (%s): %v", n.ownerJID, err)
	}
}
