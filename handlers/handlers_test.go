package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopscout/scheduler"
)

type fakeProductCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeProductCounter) StatusCounts() (map[string]int, error) { return f.counts, f.err }

type fakeOfferCounter struct {
	available int
	err       error
}

func (f *fakeOfferCounter) CountAvailable() (int, error) { return f.available, f.err }

type fakeStats struct {
	stats scheduler.RunStats
}

func (f *fakeStats) Stats() scheduler.RunStats { return f.stats }

func TestHealthCheck(t *testing.T) {
	h := NewHandlers(&fakeProductCounter{}, &fakeOfferCounter{}, &fakeStats{})

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestStatus(t *testing.T) {
	t.Run("aggregates counts and last cycle", func(t *testing.T) {
		h := NewHandlers(
			&fakeProductCounter{counts: map[string]int{"tracking": 7, "scrape_failed": 2}},
			&fakeOfferCounter{available: 19},
			&fakeStats{stats: scheduler.RunStats{
				LastRun:      time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC),
				LastDuration: 90 * time.Second,
				Checked:      9,
				Failed:       2,
			}},
		)

		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body struct {
			Products        map[string]int `json:"products"`
			AvailableOffers int            `json:"available_offers"`
			LastCycle       struct {
				Checked int `json:"checked"`
				Failed  int `json:"failed"`
			} `json:"last_cycle"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body.Products["tracking"] != 7 {
			t.Errorf("tracking = %d, want 7", body.Products["tracking"])
		}
		if body.AvailableOffers != 19 {
			t.Errorf("available_offers = %d, want 19", body.AvailableOffers)
		}
		if body.LastCycle.Checked != 9 || body.LastCycle.Failed != 2 {
			t.Errorf("last_cycle = %+v, want 9 checked, 2 failed", body.LastCycle)
		}
	})

	t.Run("database failure returns 500", func(t *testing.T) {
		h := NewHandlers(&fakeProductCounter{err: errors.New("connection refused")}, &fakeOfferCounter{}, &fakeStats{})

		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})
}

func TestMetrics(t *testing.T) {
	h := NewHandlers(&fakeProductCounter{}, &fakeOfferCounter{}, &fakeStats{})

	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := body["goroutines"]; !ok {
		t.Error("missing goroutines field")
	}
}
