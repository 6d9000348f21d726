// Package names resolves chat identifiers to human display names for
// inventory entries and status reports.
package names

import (
	"context"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/cache"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
)

const privateChatName = "Private Chat"

// Resolver looks up group display names through the transport, caching
// results so status reports don't hammer the metadata endpoint.
type Resolver struct {
	client transport.Client
	cache  cache.Cache
	ttl    time.Duration
}

// New creates a resolver with the given cache backend and TTL.
func New(client transport.Client, c cache.Cache, ttl time.Duration) *Resolver {
	return &Resolver{client: client, cache: c, ttl: ttl}
}

// ChatName returns a display name for a chat. Private chats get a fixed
// label; group lookups that fail fall back to the raw chat id.
func (r *Resolver) ChatName(ctx context.Context, chatID string, isGroup bool) string {
	if !isGroup {
		return privateChatName
	}

	key := "name:" + chatID
	value, err := r.cache.GetOrSet(ctx, key, r.ttl, func() ([]byte, error) {
		info, err := r.client.GroupMetadata(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return []byte(info.Name), nil
	})
	if err != nil {
		return chatID
	}
	if len(value) == 0 {
		// A nameless group shouldn't occupy the cache for a full TTL;
		// evict so the next request retries the lookup.
		_ = r.cache.Delete(ctx, key)
		return chatID
	}
	return string(value)
}
