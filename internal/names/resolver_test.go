package names

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/cache"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
)

type fakeClient struct {
	mu      sync.Mutex
	name    string
	err     error
	lookups int
}

func (c *fakeClient) SendMessage(ctx context.Context, chatID string, msg transport.Message, opts transport.SendOptions) error {
	return nil
}

func (c *fakeClient) SendPresence(ctx context.Context, chatID string, p transport.Presence) error {
	return nil
}

func (c *fakeClient) GroupMetadata(ctx context.Context, chatID string) (*transport.GroupInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.err != nil {
		return nil, c.err
	}
	return &transport.GroupInfo{Name: c.name}, nil
}

func (c *fakeClient) DownloadMedia(ctx context.Context, env *message.Envelope) ([]byte, error) {
	return nil, nil
}

func TestChatName_PrivateChat(t *testing.T) {
	client := &fakeClient{name: "ignored"}
	r := New(client, cache.NewMemoryCache(), time.Minute)

	name := r.ChatName(context.Background(), "123@s.whatsapp.net", false)
	assert.Equal(t, "Private Chat", name)
	assert.Zero(t, client.lookups)
}

func TestChatName_GroupLookupCached(t *testing.T) {
	client := &fakeClient{name: "Card Hunters"}
	r := New(client, cache.NewMemoryCache(), time.Minute)

	ctx := context.Background()
	assert.Equal(t, "Card Hunters", r.ChatName(ctx, "123@g.us", true))
	assert.Equal(t, "Card Hunters", r.ChatName(ctx, "123@g.us", true))
	assert.Equal(t, 1, client.lookups)
}

func TestChatName_EmptyNameNotCachedAcrossCalls(t *testing.T) {
	client := &fakeClient{name: ""}
	r := New(client, cache.NewMemoryCache(), time.Minute)

	ctx := context.Background()
	assert.Equal(t, "123@g.us", r.ChatName(ctx, "123@g.us", true))

	// The nameless result was evicted, so a later call retries the lookup
	// and picks up the real name.
	client.mu.Lock()
	client.name = "Card Hunters"
	client.mu.Unlock()

	assert.Equal(t, "Card Hunters", r.ChatName(ctx, "123@g.us", true))
	assert.Equal(t, 2, client.lookups)
}

func TestChatName_LookupFailureFallsBackToChatID(t *testing.T) {
	client := &fakeClient{err: errors.New("not a participant")}
	r := New(client, cache.NewMemoryCache(), time.Minute)

	name := r.ChatName(context.Background(), "123@g.us", true)
	assert.Equal(t, "123@g.us", name)
}
