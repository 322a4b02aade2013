// Package handlers serves the read-only status endpoints exposed in
// daemon mode. The worker has no write API; products are managed by the
// companion application directly against the database.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime"
	"time"

	"shopscout/scheduler"
)

// ProductCounter reports product counts per lifecycle status.
type ProductCounter interface {
	StatusCounts() (map[string]int, error)
}

// OfferCounter reports how many comparison offers currently carry a price.
type OfferCounter interface {
	CountAvailable() (int, error)
}

// StatsSource exposes the last check-cycle snapshot.
type StatsSource interface {
	Stats() scheduler.RunStats
}

type Handlers struct {
	products  ProductCounter
	offers    OfferCounter
	checker   StatsSource
	startedAt time.Time
}

func NewHandlers(products ProductCounter, offers OfferCounter, checker StatsSource) *Handlers {
	return &Handlers{
		products:  products,
		offers:    offers,
		checker:   checker,
		startedAt: time.Now(),
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Status reports product counts, comparison coverage and the last cycle.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	counts, err := h.products.StatusCounts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count products")
		return
	}

	available, err := h.offers.CountAvailable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count offers")
		return
	}

	stats := h.checker.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":         counts,
		"available_offers": available,
		"last_cycle": map[string]interface{}{
			"run_at":   stats.LastRun,
			"duration": stats.LastDuration.String(),
			"checked":  stats.Checked,
			"failed":   stats.Failed,
		},
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Metrics reports process-level runtime figures.
func (h *Handlers) Metrics(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goroutines":     runtime.NumGoroutine(),
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
		"gc_runs":        m.NumGC,
		"uptime":         time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
