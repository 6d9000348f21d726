package handler

import (
	"net/http"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/dispatch"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/response"
)

// StatsHandler serves collection statistics and policy state.
type StatsHandler struct {
	store  *state.Store
	queue  QueueDepther
	delays dispatch.Config
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(store *state.Store, queue QueueDepther, delays dispatch.Config) *StatsHandler {
	return &StatsHandler{store: store, queue: queue, delays: delays}
}

// DelayRanges reports the configured randomized send delays.
type DelayRanges struct {
	InitialMin string `json:"initial_min"`
	InitialMax string `json:"initial_max"`
	InterMin   string `json:"inter_min"`
	InterMax   string `json:"inter_max"`
}

// StatsResponse is the GET /api/v1/stats payload.
type StatsResponse struct {
	Mode              string          `json:"mode"`
	CardGlobal        bool            `json:"card_global"`
	CreatureGlobal    bool            `json:"creature_global"`
	CardOverrides     map[string]bool `json:"card_overrides"`
	CreatureOverrides map[string]bool `json:"creature_overrides"`
	SuccessCount      int64           `json:"success_count"`
	FailureCount      int64           `json:"failure_count"`
	QueueDepth        int             `json:"queue_depth"`
	Delays            DelayRanges     `json:"delays"`
	Timestamp         time.Time       `json:"timestamp"`
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	settings := h.store.Settings()

	response.OK(w, StatsResponse{
		Mode:              string(settings.Mode),
		CardGlobal:        settings.CardGlobal,
		CreatureGlobal:    settings.CreatureGlobal,
		CardOverrides:     settings.CardOverrides,
		CreatureOverrides: settings.CreatureOverrides,
		SuccessCount:      settings.SuccessCount,
		FailureCount:      settings.FailureCount,
		QueueDepth:        h.queue.Pending(),
		Delays: DelayRanges{
			InitialMin: h.delays.InitialMin.String(),
			InitialMax: h.delays.InitialMax.String(),
			InterMin:   h.delays.InterMin.String(),
			InterMax:   h.delays.InterMax.String(),
		},
		Timestamp: time.Now().UTC(),
	})
}
