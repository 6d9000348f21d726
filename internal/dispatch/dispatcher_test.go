package dispatch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
)

const testOwnerJID = "owner@s.whatsapp.net"

// fakeClient records outbound traffic and fails sends whose text contains
// failSubstring. Failures are scoped to non-owner chats so the owner
// notification channel stays reachable.
type fakeClient struct {
	mu            sync.Mutex
	sent          []sentMessage
	presences     []string
	failSubstring string
}

type sentMessage struct {
	chatID string
	text   string
}

func (c *fakeClient) SendMessage(ctx context.Context, chatID string, msg transport.Message, opts transport.SendOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSubstring != "" && chatID != testOwnerJID && strings.Contains(msg.Text, c.failSubstring) {
		return errors.New("simulated send failure")
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: msg.Text})
	return nil
}

func (c *fakeClient) SendPresence(ctx context.Context, chatID string, p transport.Presence) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presences = append(c.presences, string(p))
	return nil
}

func (c *fakeClient) GroupMetadata(ctx context.Context, chatID string) (*transport.GroupInfo, error) {
	return &transport.GroupInfo{Name: "Test Group"}, nil
}

func (c *fakeClient) DownloadMedia(ctx context.Context, env *message.Envelope) ([]byte, error) {
	return []byte("image"), nil
}

func (c *fakeClient) sentTexts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	for i, s := range c.sent {
		out[i] = s.text
	}
	return out
}

// fakeRepo records appended items.
type fakeRepo struct {
	mu        sync.Mutex
	items     []model.CollectedItem
	appendErr error
}

func (r *fakeRepo) Append(ctx context.Context, item model.CollectedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.CollectedItem(nil), r.items...), nil
}

func (r *fakeRepo) Clear(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                    { return nil }

func newTestDispatcher(t *testing.T, client *fakeClient, repo *fakeRepo) (*Dispatcher, *state.Store) {
	t.Helper()
	store := state.New(filepath.Join(t.TempDir(), "settings.json"), model.ModePrivate)
	owner := transport.NewOwnerNotifier(client, testOwnerJID)

	d := New(client, store, repo, owner, Config{
		InitialMin: 3 * time.Second,
		InitialMax: 6 * time.Second,
		InterMin:   1 * time.Second,
		InterMax:   2 * time.Second,
	})
	d.sleep = func(time.Duration) {}
	return d, store
}

func action(id, target, command string) model.PendingAction {
	return model.PendingAction{
		ID:           id,
		Kind:         model.KindCard,
		TargetChatID: target,
		Command:      command,
		Item: model.CollectedItem{
			Kind:   model.KindCard,
			Card:   &model.CardSpawn{Name: "Card " + id, Captcha: id},
			ChatID: target,
		},
	}
}

func TestDispatcher_FIFOOrder(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{}
	d, _ := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Enqueue(action("B2", "chat@g.us", "#collect B2"))
	d.Enqueue(action("C3", "chat@g.us", "#collect C3"))
	d.Wait()

	assert.Equal(t, []string{"#collect A1", "#collect B2", "#collect C3"}, client.sentTexts())
	assert.Zero(t, d.Pending())
}

func TestDispatcher_SuccessAccounting(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{}
	d, store := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Wait()

	success, failure := store.Counters()
	assert.Equal(t, int64(1), success)
	assert.Zero(t, failure)

	require.Len(t, repo.items, 1)
	assert.Equal(t, "Card A1", repo.items[0].Card.Name)
}

func TestDispatcher_FailureIsAtMostOnce(t *testing.T) {
	client := &fakeClient{failSubstring: "B2"}
	repo := &fakeRepo{}
	d, store := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Enqueue(action("B2", "chat@g.us", "#collect B2"))
	d.Enqueue(action("C3", "chat@g.us", "#collect C3"))
	d.Wait()

	success, failure := store.Counters()
	assert.Equal(t, int64(2), success)
	assert.Equal(t, int64(1), failure)

	// The failed action is discarded, not retried, and never persisted.
	require.Len(t, repo.items, 2)
	for _, item := range repo.items {
		assert.NotEqual(t, "Card B2", item.Card.Name)
	}

	// The owner got a failure notification.
	var ownerMsgs []string
	for _, s := range client.sent {
		if s.chatID == testOwnerJID {
			ownerMsgs = append(ownerMsgs, s.text)
		}
	}
	require.Len(t, ownerMsgs, 1)
	assert.Contains(t, ownerMsgs[0], "#collect B2")
}

func TestDispatcher_InventoryWriteFailureStillCountsSuccess(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{appendErr: errors.New("disk full")}
	d, store := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Wait()

	success, failure := store.Counters()
	assert.Equal(t, int64(1), success)
	assert.Zero(t, failure)
}

func TestDispatcher_PresenceAroundEachSend(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{}
	d, _ := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Wait()

	assert.Equal(t, []string{string(transport.PresenceComposing), string(transport.PresencePaused)}, client.presences)
}

func TestDispatcher_SleepsWithinConfiguredRanges(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{}
	d, _ := newTestDispatcher(t, client, repo)

	var mu sync.Mutex
	var slept []time.Duration
	d.sleep = func(dur time.Duration) {
		mu.Lock()
		slept = append(slept, dur)
		mu.Unlock()
	}

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Enqueue(action("B2", "chat@g.us", "#collect B2"))
	d.Wait()

	// Two initial delays plus one inter-send delay.
	require.Len(t, slept, 3)
	assert.GreaterOrEqual(t, slept[0], 3*time.Second)
	assert.LessOrEqual(t, slept[0], 6*time.Second)
	assert.GreaterOrEqual(t, slept[1], 1*time.Second)
	assert.LessOrEqual(t, slept[1], 2*time.Second)
	assert.GreaterOrEqual(t, slept[2], 3*time.Second)
	assert.LessOrEqual(t, slept[2], 6*time.Second)
}

func TestDispatcher_NewDrainAfterIdle(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{}
	d, _ := newTestDispatcher(t, client, repo)

	d.Enqueue(action("A1", "chat@g.us", "#collect A1"))
	d.Wait()
	d.Enqueue(action("B2", "chat@g.us", "#collect B2"))
	d.Wait()

	assert.Equal(t, []string{"#collect A1", "#collect B2"}, client.sentTexts())
}
