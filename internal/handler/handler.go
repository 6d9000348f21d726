// Package handler exposes the read-only admin HTTP surface: process
// health plus collection stats and inventory listings.
package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/response"
)

// QueueDepther reports the outgoing action queue depth.
type QueueDepther interface {
	Pending() int
}

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	startedAt time.Time
	queue     QueueDepther
	version   string
}

// New creates a new handler.
func New(queue QueueDepther, version string) *Handler {
	return &Handler{
		startedAt: time.Now(),
		queue:     queue,
		version:   version,
	}
}

// StatusChecks represents the checks in status response.
type StatusChecks struct {
	QueueDepth int     `json:"queue_depth"`
	MemoryMB   float64 `json:"memory_mb"`
	Goroutines int     `json:"goroutines"`
}

// StatusResponse represents the unified status response for monitoring.
type StatusResponse struct {
	Service       string       `json:"service"`
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Checks        StatusChecks `json:"checks"`
}

// Status handles GET /api/status - unified health check for monitoring.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	resp := StatusResponse{
		Service:       "auto-claim-bot",
		Status:        "ok",
		Version:       h.version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Checks: StatusChecks{
			QueueDepth: h.queue.Pending(),
			MemoryMB:   float64(int(memoryMB*100)) / 100,
			Goroutines: runtime.NumGoroutine(),
		},
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
