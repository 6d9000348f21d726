// Package collector is the message-driven collection pipeline: it turns
// inbound spawn announcements into queued collection actions.
package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/dispatch"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/names"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/parse"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/uid"
)

// Collector gates inbound envelopes through the enablement policy, parses
// spawn announcements, and enqueues collection actions.
type Collector struct {
	store  *state.Store
	queue  *dispatch.Dispatcher
	client transport.Client
	names  *names.Resolver
	owner  *transport.OwnerNotifier

	cardSenders     []string
	creatureSenders []string
	maxAge          time.Duration

	now func() time.Time
}

// New creates a collector.
func New(
	store *state.Store,
	queue *dispatch.Dispatcher,
	client transport.Client,
	resolver *names.Resolver,
	owner *transport.OwnerNotifier,
	cardSenders, creatureSenders []string,
	maxAge time.Duration,
) *Collector {
	return &Collector{
		store:           store,
		queue:           queue,
		client:          client,
		names:           resolver,
		owner:           owner,
		cardSenders:     cardSenders,
		creatureSenders: creatureSenders,
		maxAge:          maxAge,
		now:             time.Now,
	}
}

// monitored reports whether sender is eligible. An empty allow-list means
// every sender is monitored.
func monitored(list []string, sender string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if s == sender {
			return true
		}
	}
	return false
}

// Handle inspects one envelope. It returns true when the envelope was
// consumed (a spawn, or stale) and downstream command handling should be
// skipped.
func (c *Collector) Handle(ctx context.Context, env *message.Envelope) bool {
	if !env.Timestamp.IsZero() && c.now().Sub(env.Timestamp) > c.maxAge {
		log.Printf("[Collector] Ignoring old message from %s (%.1fs old)",
			env.ChatID, c.now().Sub(env.Timestamp).Seconds())
		return true
	}

	body := env.Text()

	if c.handleCreatureSpawn(ctx, env, body) {
		return true
	}
	return c.handleCardSpawn(ctx, env, body)
}

// handleCreatureSpawn runs the manual-identification flow: capture the
// spawn image, store the single-slot pending context, and ask the owner
// for a name. A newer spawn overwrites an unconsumed context.
func (c *Collector) handleCreatureSpawn(ctx context.Context, env *message.Envelope, body string) bool {
	if !c.store.CreatureEnabled(env.ChatID) ||
		!monitored(c.creatureSenders, env.SenderID) ||
		!parse.IsCreatureSpawn(body) ||
		!env.Payload.HasImage {
		return false
	}

	image, err := c.client.DownloadMedia(ctx, env)
	if err != nil {
		log.Printf("[Collector] Error downloading creature image: %v", err)
		c.owner.Text(ctx, fmt.Sprintf(
			"❌ *Creature Image Download Failed!* ⛔\n\nI detected a creature spawn but couldn't fetch the image. Error: %v", err))
		return true
	}

	c.store.SetPending(state.PendingIdentification{
		ChatID:       env.ChatID,
		Image:        image,
		OriginalText: body,
	})

	location := "Private Chat"
	if env.IsGroup {
		location = "Group: " + env.ChatID
	}
	c.owner.Send(ctx, transport.Message{
		Image: image,
		Caption: fmt.Sprintf(
			"⚡️ *%s* 🐾\n\n*Location:* %s\n*Original Chat ID:* `%s`\n\n%s Please reply to *this message* with `!catch <CreatureName>` to catch it manually.",
			parse.NoticeAppearedMark, location, env.ChatID, parse.NoticeIdentifyMark),
	})
	log.Printf("[Collector] Creature spawn in %s, awaiting owner identification", env.ChatID)
	return true
}

// handleCardSpawn parses a card announcement and enqueues the collect
// command with the captcha.
func (c *Collector) handleCardSpawn(ctx context.Context, env *message.Envelope, body string) bool {
	if !c.store.CardEnabled(env.ChatID) || !monitored(c.cardSenders, env.SenderID) {
		return false
	}

	card := parse.ParseCard(body)
	if card == nil {
		return false
	}

	c.queue.Enqueue(model.PendingAction{
		ID:           uid.New(),
		Kind:         model.KindCard,
		TargetChatID: env.ChatID,
		Command:      "#collect " + card.Captcha,
		Item: model.CollectedItem{
			Kind:        model.KindCard,
			Card:        card,
			CollectedAt: c.now(),
			ChatID:      env.ChatID,
			ChatName:    c.names.ChatName(ctx, env.ChatID, env.IsGroup),
		},
	})
	return true
}
