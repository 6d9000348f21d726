package command

import (
	"context"
	"log"
	"strings"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
)

// Capabilities is the mutation surface handed to plugin commands. Handlers
// receive it instead of the dispatcher so plugins can't reach into routing
// state.
type Capabilities struct {
	// Reply sends text to the owner DM.
	Reply func(ctx context.Context, text string)

	// Mode and SetMode read and change the operational mode.
	Mode    func() model.Mode
	SetMode func(model.Mode)

	// CardEnabled and CreatureEnabled resolve the collection policy for a
	// chat, group override first.
	CardEnabled     func(chatID string) bool
	CreatureEnabled func(chatID string) bool

	// Inventory lists collected items of a kind in append order.
	Inventory func(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error)

	// QueueDepth reports the outgoing action queue depth.
	QueueDepth func() int

	// Uptime formats the bot's elapsed runtime.
	Uptime func() string

	// IsOwner reports whether the invoking sender is the owner.
	IsOwner bool
}

// PluginCommand is a programmatically registered command. Pattern is the
// literal first word including the "!" prefix; the handler gets the raw
// argument string after it.
type PluginCommand struct {
	Pattern     string
	Description string
	OwnerOnly   bool
	Handler     func(ctx context.Context, env *message.Envelope, args string, caps Capabilities) error
}

// runPlugin tries the registered plugin commands. Returns true when one
// matched, even if its handler failed.
func (d *Dispatcher) runPlugin(ctx context.Context, env *message.Envelope, text string, isOwner bool) bool {
	word := text
	if i := strings.IndexByte(text, ' '); i >= 0 {
		word = text[:i]
	}

	for _, cmd := range d.plugins {
		if cmd.Pattern != word {
			continue
		}
		if cmd.OwnerOnly && !isOwner {
			d.owner.Text(ctx, "🚫 *Permission Denied!* ⛔\n\nOnly the bot owner can use this command.")
			return true
		}

		args := strings.TrimSpace(strings.TrimPrefix(text, word))
		caps := Capabilities{
			Reply:           d.owner.Text,
			Mode:            d.store.Mode,
			SetMode:         d.store.SetMode,
			CardEnabled:     d.store.CardEnabled,
			CreatureEnabled: d.store.CreatureEnabled,
			Inventory:       d.repo.List,
			QueueDepth:      d.queue.Pending,
			Uptime:          d.uptime,
			IsOwner:         isOwner,
		}
		if err := cmd.Handler(ctx, env, args, caps); err != nil {
			log.Printf("[Command] Plugin %s failed: %v", cmd.Pattern, err)
			d.owner.Text(ctx, "❌ *Command Error!* ⛔\n\nSomething went wrong running that command.")
		}
		return true
	}
	return false
}
