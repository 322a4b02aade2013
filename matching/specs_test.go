package matching

import (
	"testing"
)

func hasToken(specs ProductSpecs, tok string) bool {
	for _, t := range specs.Tokens {
		if t == tok {
			return true
		}
	}
	return false
}

func TestExtractSpecs(t *testing.T) {
	t.Run("storage capacity", func(t *testing.T) {
		specs := ExtractSpecs("Samsung Galaxy S24 256GB Phantom Black")
		if !hasToken(specs, "256gb") {
			t.Errorf("tokens = %v, want 256gb", specs.Tokens)
		}
	})

	t.Run("volume", func(t *testing.T) {
		specs := ExtractSpecs("Hydro Flask Water Bottle 32oz")
		if !hasToken(specs, "32oz") {
			t.Errorf("tokens = %v, want 32oz", specs.Tokens)
		}
	})

	t.Run("screen size from quote mark", func(t *testing.T) {
		specs := ExtractSpecs(`LG OLED TV 55" 4K`)
		if !hasToken(specs, "55 inch") {
			t.Errorf("tokens = %v, want \"55 inch\"", specs.Tokens)
		}
	})

	t.Run("screen size from inch word", func(t *testing.T) {
		specs := ExtractSpecs("Dell Monitor 27 inch IPS")
		if !hasToken(specs, "27 inch") {
			t.Errorf("tokens = %v, want \"27 inch\"", specs.Tokens)
		}
	})

	t.Run("implausible screen sizes filtered", func(t *testing.T) {
		// 2020 reads like a year, not a display size.
		specs := ExtractSpecs(`Calendar 2020" Edition`)
		if hasToken(specs, "2020 inch") {
			t.Errorf("tokens = %v, 2020 inch should be filtered", specs.Tokens)
		}
	})

	t.Run("size class", func(t *testing.T) {
		specs := ExtractSpecs("Cotton T-Shirt Large Blue")
		if !hasToken(specs, "large") {
			t.Errorf("tokens = %v, want large", specs.Tokens)
		}
	})

	t.Run("brand is first meaningful word", func(t *testing.T) {
		specs := ExtractSpecs("Sony WH-1000XM5 Headphones")
		if specs.Brand != "Sony" {
			t.Errorf("Brand = %q, want Sony", specs.Brand)
		}
	})

	t.Run("short first word is not a brand", func(t *testing.T) {
		specs := ExtractSpecs("4K Streaming Stick")
		if specs.Brand != "" {
			t.Errorf("Brand = %q, want empty", specs.Brand)
		}
	})

	t.Run("duplicate tokens collapsed", func(t *testing.T) {
		specs := ExtractSpecs("SSD 512GB portable 512GB")
		count := 0
		for _, tok := range specs.Tokens {
			if tok == "512gb" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("512gb appears %d times, want 1", count)
		}
	})

	t.Run("plain name yields no tokens", func(t *testing.T) {
		specs := ExtractSpecs("Wooden Cutting Board")
		if len(specs.Tokens) != 0 {
			t.Errorf("tokens = %v, want none", specs.Tokens)
		}
	})
}

func TestBuildSearchQuery(t *testing.T) {
	t.Run("keeps significant keywords", func(t *testing.T) {
		got := BuildSearchQuery("Sony Wireless Headphones")
		if got != "sony wireless headphones" {
			t.Errorf("BuildSearchQuery = %q", got)
		}
	})

	t.Run("caps keyword count", func(t *testing.T) {
		got := BuildSearchQuery("alpha bravo charlie delta echo foxtrot golf")
		if got != "alpha bravo charlie delta echo" {
			t.Errorf("BuildSearchQuery = %q", got)
		}
	})

	t.Run("spec tokens survive truncation", func(t *testing.T) {
		got := BuildSearchQuery("Apple MacBook Pro Laptop Computer Silver Portable 512GB")
		if got != "apple macbook pro laptop computer 512gb" {
			t.Errorf("BuildSearchQuery = %q", got)
		}
	})

	t.Run("empty name yields empty query", func(t *testing.T) {
		if got := BuildSearchQuery(""); got != "" {
			t.Errorf("BuildSearchQuery = %q, want empty", got)
		}
	})
}
