package scraper

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"us format with symbol", "$1,234.56", 1234.56, true},
		{"european comma decimal", "12,99", 12.99, true},
		{"european with period thousands", "1.234,56", 1234.56, true},
		{"european with space thousands", "1 234,56", 1234.56, true},
		{"plain decimal", "29.99", 29.99, true},
		{"pound symbol", "£12.99", 12.99, true},
		{"euro with thousands", "€1.299,00", 1299.00, true},
		{"embedded in text", "Now only $49.99 today", 49.99, true},
		{"integer price", "450", 450, true},
		{"too large", "999999", 0, false},
		{"zero", "0", 0, false},
		{"negative band", "100000", 0, false},
		{"no digits", "call for price", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikePrice(t *testing.T) {
	if !looksLikePrice("$19.99") {
		t.Error("$19.99 should look like a price")
	}
	if looksLikePrice("out of stock") {
		t.Error("plain text should not look like a price")
	}
}
