package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/dispatch"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/handler"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
)

const testAdminKey = "test-admin-key"

type fixedQueue int

func (q fixedQueue) Pending() int { return int(q) }

type fakeRepo struct {
	items []model.CollectedItem
}

func (r *fakeRepo) Append(ctx context.Context, item model.CollectedItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error) {
	var out []model.CollectedItem
	for _, item := range r.items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) Clear(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                    { return nil }

func newTestServer(t *testing.T, adminKey string) (*httptest.Server, *state.Store) {
	t.Helper()
	store := state.New(filepath.Join(t.TempDir(), "settings.json"), model.ModePrivate)
	repo := &fakeRepo{items: []model.CollectedItem{
		{Kind: model.KindCard, Card: &model.CardSpawn{Name: "Dragon", Captcha: "AB12"}},
		{Kind: model.KindCreature, Creature: &model.CreatureSpawn{Name: "Snorlax"}},
	}}

	r := New(Config{
		Handler:          handler.New(fixedQueue(2), "2.0.0"),
		StatsHandler: handler.NewStatsHandler(store, fixedQueue(2), dispatch.Config{
			InitialMin: 3 * time.Second,
			InitialMax: 6 * time.Second,
			InterMin:   time.Second,
			InterMax:   2 * time.Second,
		}),
		InventoryHandler: handler.NewInventoryHandler(repo),
		AdminKey:         adminKey,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func get(t *testing.T, url, adminKey string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestStatusIsPublic(t *testing.T) {
	srv, _ := newTestServer(t, testAdminKey)

	resp, body := get(t, srv.URL+"/api/status", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "2.0.0", data["version"])

	checks := data["checks"].(map[string]any)
	assert.Equal(t, float64(2), checks["queue_depth"])
}

func TestStatsRequiresAdminKey(t *testing.T) {
	srv, _ := newTestServer(t, testAdminKey)

	resp, body := get(t, srv.URL+"/api/v1/stats", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = get(t, srv.URL+"/api/v1/stats", "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatsWithAdminKey(t *testing.T) {
	srv, store := newTestServer(t, testAdminKey)
	store.SetCardGlobal(true)
	store.RecordSuccess()

	resp, body := get(t, srv.URL+"/api/v1/stats", testAdminKey)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "private", data["mode"])
	assert.Equal(t, true, data["card_global"])
	assert.Equal(t, float64(1), data["success_count"])
}

func TestInventoryEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, testAdminKey)

	resp, body := get(t, srv.URL+"/api/v1/inventory/cards", testAdminKey)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["count"])

	resp, body = get(t, srv.URL+"/api/v1/inventory/creatures", testAdminKey)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	creature := items[0].(map[string]any)["creature"].(map[string]any)
	assert.Equal(t, "Snorlax", creature["name"])
}

func TestEmptyAdminKeyDisablesAdminAPI(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp, _ := get(t, srv.URL+"/api/v1/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// An empty header never matches an empty key either.
	resp, _ = get(t, srv.URL+"/api/v1/stats", "anything")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestIDHeaderSet(t *testing.T) {
	srv, _ := newTestServer(t, testAdminKey)

	resp, _ := get(t, srv.URL+"/api/status", "")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
