package matching

import "sort"

// Weights holds the candidate-scoring weights and acceptance threshold.
// The defaults are a deliberate precision/recall tradeoff: comparison rows
// are advisory links, so a wrong match is worse than no match.
type Weights struct {
	Title     float64
	Keyword   float64
	Position  float64
	Price     float64
	Threshold float64
}

// DefaultWeights returns the tuned scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Title:     0.4,
		Keyword:   0.3,
		Position:  0.2,
		Price:     0.1,
		Threshold: 0.3,
	}
}

// Candidate is one raw search result offered to the ranker.
type Candidate struct {
	Title    string
	Price    float64
	Position int
}

// RankedCandidate is a scored candidate. Never persisted; it exists only
// within one Rank invocation.
type RankedCandidate struct {
	Candidate
	Score float64
}

// Ranker scores search-result candidates against a target product.
type Ranker struct {
	weights Weights
}

// NewRanker creates a ranker; zero-valued weights fall back to the
// defaults so a partially filled config cannot silently zero out a signal.
func NewRanker(w Weights) *Ranker {
	def := DefaultWeights()
	if w.Title <= 0 {
		w.Title = def.Title
	}
	if w.Keyword <= 0 {
		w.Keyword = def.Keyword
	}
	if w.Position <= 0 {
		w.Position = def.Position
	}
	if w.Price <= 0 {
		w.Price = def.Price
	}
	if w.Threshold <= 0 {
		w.Threshold = def.Threshold
	}
	return &Ranker{weights: w}
}

// Rank scores every candidate against the target name and optional
// reference price (0 means unknown) and returns the best one, or nil when
// no candidate clears the acceptance threshold.
func (r *Ranker) Rank(candidates []Candidate, targetName string, referencePrice float64) *RankedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, RankedCandidate{
			Candidate: c,
			Score:     r.score(c, targetName, referencePrice),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	best := ranked[0]
	if best.Score < r.weights.Threshold {
		return nil
	}
	return &best
}

func (r *Ranker) score(c Candidate, targetName string, referencePrice float64) float64 {
	titleScore := Similarity(targetName, c.Title)
	keywordScore := KeywordOverlap(targetName, c.Title)

	// Earlier results carry the store's own relevance signal.
	positionScore := 1.0 - 0.05*float64(c.Position)
	if positionScore < 0 {
		positionScore = 0
	}

	priceScore := pricePlausibility(c.Price, referencePrice)

	return titleScore*r.weights.Title +
		keywordScore*r.weights.Keyword +
		positionScore*r.weights.Position +
		priceScore*r.weights.Price
}

// pricePlausibility scores how believable a candidate price is against the
// product's own last known price. Far-too-cheap usually means an accessory
// or wrong variant; far-too-expensive usually means a bundle.
func pricePlausibility(candidatePrice, referencePrice float64) float64 {
	if referencePrice <= 0 {
		return 0.5 // no reference, neutral
	}

	ratio := candidatePrice / referencePrice
	switch {
	case ratio < 0.5:
		return 0.2
	case ratio > 1.5:
		return 0.3
	default:
		diff := 1.0 - ratio
		if diff < 0 {
			diff = -diff
		}
		return 1.0 - diff
	}
}
