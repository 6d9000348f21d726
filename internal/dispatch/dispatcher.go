// Package dispatch serializes outgoing collection commands. One drain
// goroutine at a time walks the queue, pacing sends with randomized delays
// and presence signals so outgoing traffic doesn't look machine-timed.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/storage"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/uid"
)

// Config holds the randomized delay ranges.
type Config struct {
	InitialMin time.Duration // think time before the send
	InitialMax time.Duration
	InterMin   time.Duration // spacing between consecutive sends
	InterMax   time.Duration
}

// Dispatcher owns the FIFO action queue and its single consumer. Actions
// are attempted exactly once; a failed send is counted, reported, and
// discarded, never retried.
type Dispatcher struct {
	mu       sync.Mutex
	queue    []model.PendingAction
	draining bool
	wg       sync.WaitGroup

	client transport.Client
	store  *state.Store
	repo   storage.InventoryRepository
	owner  *transport.OwnerNotifier
	cfg    Config

	// injection points for tests
	sleep func(time.Duration)
	rng   *rand.Rand
}

// New creates a dispatcher. No goroutine runs until the first Enqueue.
func New(client transport.Client, store *state.Store, repo storage.InventoryRepository, owner *transport.OwnerNotifier, cfg Config) *Dispatcher {
	return &Dispatcher{
		client: client,
		store:  store,
		repo:   repo,
		owner:  owner,
		cfg:    cfg,
		sleep:  time.Sleep,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Enqueue appends an action and starts a drain if none is active. It never
// blocks and never fails.
func (d *Dispatcher) Enqueue(action model.PendingAction) {
	d.mu.Lock()
	d.queue = append(d.queue, action)
	depth := len(d.queue)
	start := !d.draining
	if start {
		d.draining = true
		d.wg.Add(1)
	}
	d.mu.Unlock()

	log.Printf("[Dispatcher] Queued %s action %s for %s (depth=%d)",
		action.Kind, uid.Short(action.ID), action.TargetChatID, depth)
	if start {
		go d.drain()
	}
}

// Pending returns the current queue depth.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Wait blocks until any active drain finishes. Used during shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// drain processes actions head-first until the queue is observed empty.
// The draining flag is cleared under the same lock as that observation, so
// a racing Enqueue either sees the flag still set or starts a new drain.
func (d *Dispatcher) drain() {
	defer d.wg.Done()
	log.Printf("[Dispatcher] Drain started")

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.draining = false
			d.mu.Unlock()
			log.Printf("[Dispatcher] Queue empty, drain stopped")
			return
		}
		action := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.process(action)

		d.mu.Lock()
		more := len(d.queue) > 0
		d.mu.Unlock()
		if more {
			d.sleep(d.jitter(d.cfg.InterMin, d.cfg.InterMax))
		}
	}
}

// process attempts one action to completion: presence, think-time delay,
// send, accounting, presence again.
func (d *Dispatcher) process(action model.PendingAction) {
	ctx := context.Background()

	if err := d.client.SendPresence(ctx, action.TargetChatID, transport.PresenceComposing); err != nil {
		log.Printf("[Dispatcher] Presence update failed for %s: %v", action.TargetChatID, err)
	}

	d.sleep(d.jitter(d.cfg.InitialMin, d.cfg.InitialMax))

	err := d.client.SendMessage(ctx, action.TargetChatID,
		transport.Message{Text: action.Command},
		transport.SendOptions{DisableEphemeral: true})

	if err == nil {
		d.store.RecordSuccess()
		if appendErr := d.repo.Append(ctx, action.Item); appendErr != nil {
			// Inventory write failure is degraded operation, not a send
			// failure: the command went out and the counter stands.
			log.Printf("[Dispatcher] Error persisting inventory item: %v", appendErr)
		}
		log.Printf("[Dispatcher] Sent %q to %s", action.Command, action.TargetChatID)
	} else {
		d.store.RecordFailure()
		log.Printf("[Dispatcher] Error sending %q to %s: %v", action.Command, action.TargetChatID, err)
		d.owner.Text(ctx, fmt.Sprintf(
			"❌ *Auto-Collection Failed!* ⛔\n\n*Type:* %s\n*Command:* `%s`\n*Target:* %s\n*Error:* %v",
			action.Kind, action.Command, action.TargetChatID, err))
	}

	if err := d.client.SendPresence(ctx, action.TargetChatID, transport.PresencePaused); err != nil {
		log.Printf("[Dispatcher] Presence update failed for %s: %v", action.TargetChatID, err)
	}
}

// jitter returns a uniformly random duration in [min, max].
func (d *Dispatcher) jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	d.mu.Lock()
	n := d.rng.Int63n(int64(max-min) + 1)
	d.mu.Unlock()
	return min + time.Duration(n)
}
