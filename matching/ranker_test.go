package matching

import "testing"

func TestNewRanker(t *testing.T) {
	t.Run("zero weights fall back to defaults", func(t *testing.T) {
		r := NewRanker(Weights{})
		if r.weights != DefaultWeights() {
			t.Errorf("weights = %+v, want defaults", r.weights)
		}
	})

	t.Run("explicit weights are kept", func(t *testing.T) {
		w := Weights{Title: 0.5, Keyword: 0.2, Position: 0.2, Price: 0.1, Threshold: 0.4}
		r := NewRanker(w)
		if r.weights != w {
			t.Errorf("weights = %+v, want %+v", r.weights, w)
		}
	})

	t.Run("partial weights fill only the gaps", func(t *testing.T) {
		r := NewRanker(Weights{Title: 0.7})
		if r.weights.Title != 0.7 {
			t.Errorf("Title = %v, want 0.7", r.weights.Title)
		}
		if r.weights.Keyword != DefaultWeights().Keyword {
			t.Errorf("Keyword = %v, want default", r.weights.Keyword)
		}
	})
}

func TestRank(t *testing.T) {
	target := "Sony WH-1000XM5 Wireless Noise Canceling Headphones"

	candidates := []Candidate{
		{Title: "Sony WH-CH720N Headphones", Price: 98.00, Position: 0},
		{Title: "Sony WH-1000XM5 Wireless Noise Canceling Headphones Black", Price: 328.00, Position: 1},
		{Title: "Headphone Case for Sony WH-1000XM5", Price: 15.99, Position: 2},
	}

	t.Run("picks the true match over accessories and siblings", func(t *testing.T) {
		r := NewRanker(DefaultWeights())
		best := r.Rank(candidates, target, 348.00)
		if best == nil {
			t.Fatal("Rank returned nil, want a match")
		}
		if best.Title != candidates[1].Title {
			t.Errorf("best = %q, want %q", best.Title, candidates[1].Title)
		}
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		r := NewRanker(DefaultWeights())
		first := r.Rank(candidates, target, 348.00)
		second := r.Rank(candidates, target, 348.00)
		if first.Title != second.Title || first.Score != second.Score {
			t.Errorf("results differ: %+v vs %+v", first, second)
		}
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		r := NewRanker(DefaultWeights())
		before := make([]Candidate, len(candidates))
		copy(before, candidates)
		r.Rank(candidates, target, 348.00)
		for i := range candidates {
			if candidates[i] != before[i] {
				t.Fatalf("candidate %d changed: %+v", i, candidates[i])
			}
		}
	})

	t.Run("empty candidate list returns nil", func(t *testing.T) {
		r := NewRanker(DefaultWeights())
		if got := r.Rank(nil, target, 348.00); got != nil {
			t.Errorf("Rank = %+v, want nil", got)
		}
	})

	t.Run("best below threshold returns nil", func(t *testing.T) {
		strict := NewRanker(Weights{Title: 0.4, Keyword: 0.3, Position: 0.2, Price: 0.1, Threshold: 0.99})
		got := strict.Rank([]Candidate{
			{Title: "Garden Hose 50ft", Price: 24.99, Position: 0},
		}, target, 348.00)
		if got != nil {
			t.Errorf("Rank = %+v, want nil below threshold", got)
		}
	})

	t.Run("works without a reference price", func(t *testing.T) {
		r := NewRanker(DefaultWeights())
		best := r.Rank(candidates, target, 0)
		if best == nil {
			t.Fatal("Rank returned nil, want a match")
		}
		if best.Title != candidates[1].Title {
			t.Errorf("best = %q, want %q", best.Title, candidates[1].Title)
		}
	})
}

func TestPricePlausibility(t *testing.T) {
	tests := []struct {
		name      string
		candidate float64
		reference float64
		want      float64
	}{
		{"no reference is neutral", 50, 0, 0.5},
		{"exact match is perfect", 100, 100, 1.0},
		{"close price scores high", 90, 100, 0.9},
		{"far too cheap is an accessory", 10, 100, 0.2},
		{"far too expensive is a bundle", 300, 100, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pricePlausibility(tt.candidate, tt.reference); !almostEqual(got, tt.want) {
				t.Errorf("pricePlausibility(%v, %v) = %v, want %v", tt.candidate, tt.reference, got, tt.want)
			}
		})
	}
}
