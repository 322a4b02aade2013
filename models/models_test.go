package models

import (
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductPriceHelpers(t *testing.T) {
	t.Run("without a price", func(t *testing.T) {
		p := Product{}
		if p.HasPrice() {
			t.Error("HasPrice = true, want false")
		}
		if p.GetCurrentPrice() != 0 {
			t.Errorf("GetCurrentPrice = %v, want 0", p.GetCurrentPrice())
		}
	})

	t.Run("with a price", func(t *testing.T) {
		p := Product{CurrentPrice: sql.NullFloat64{Float64: 49.99, Valid: true}}
		if !p.HasPrice() {
			t.Error("HasPrice = false, want true")
		}
		if p.GetCurrentPrice() != 49.99 {
			t.Errorf("GetCurrentPrice = %v, want 49.99", p.GetCurrentPrice())
		}
	})
}

func TestProductMarshalJSON(t *testing.T) {
	t.Run("null columns render as JSON null", func(t *testing.T) {
		p := Product{ID: 1, Name: "Kettle", Currency: "USD", Status: StatusQueued}
		data, err := json.Marshal(&p)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		s := string(data)
		if !strings.Contains(s, `"current_price":null`) {
			t.Errorf("current_price not null: %s", s)
		}
		if !strings.Contains(s, `"url":null`) {
			t.Errorf("url not null: %s", s)
		}
	})

	t.Run("valid columns render as plain values", func(t *testing.T) {
		p := Product{
			ID:           2,
			Name:         "Kettle",
			URL:          sql.NullString{String: "https://example.com/kettle", Valid: true},
			CurrentPrice: sql.NullFloat64{Float64: 24.5, Valid: true},
		}
		data, err := json.Marshal(&p)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		s := string(data)
		if !strings.Contains(s, `"current_price":24.5`) {
			t.Errorf("current_price not plain: %s", s)
		}
		if strings.Contains(s, `"Valid"`) {
			t.Errorf("sql.Null envelope leaked: %s", s)
		}
	})
}
