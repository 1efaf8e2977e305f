package blogdesk

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Scorer assigns the placeholder quality score at creation time.
// A nil result means the blog is unscored.
type Scorer interface {
	Score(b Blog) *int
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(b Blog) *int

func (f ScorerFunc) Score(b Blog) *int { return f(b) }

// RandomScorer returns a uniform integer in [0,100).
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScorer seeds a RandomScorer. Pass the same seeds for repeatable scores.
func NewRandomScorer(seed1, seed2 uint64) *RandomScorer {
	return &RandomScorer{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s *RandomScorer) Score(Blog) *int {
	s.mu.Lock()
	v := s.rng.IntN(100)
	s.mu.Unlock()
	return &v
}

// NoScorer leaves every new blog unscored.
var NoScorer = ScorerFunc(func(Blog) *int { return nil })

// ContentScorer is a deterministic heuristic over the blog's shape:
// title length, summary length, body length, tag count and cover image.
var ContentScorer = ScorerFunc(func(b Blog) *int {
	score := 0

	title := len([]rune(strings.TrimSpace(b.Title)))
	switch {
	case title >= 30 && title <= 65:
		score += 20
	case title >= 10:
		score += 10
	}

	summary := len([]rune(strings.TrimSpace(b.Summary)))
	switch {
	case summary >= 80 && summary <= 160:
		score += 20
	case summary > 0:
		score += 10
	}

	words := len(strings.Fields(b.Content))
	switch {
	case words >= 600:
		score += 30
	case words >= 300:
		score += 20
	case words > 0:
		score += 10
	}

	tags := len(b.Tags)
	if tags > 5 {
		tags = 5
	}
	score += tags * 4

	if b.CoverImage != "" && b.CoverImage != DefaultCoverImage {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return &score
})

// scorerByName maps the config value to a Scorer.
func scorerByName(name string) (Scorer, bool) {
	switch strings.ToLower(name) {
	case "", "random":
		return NewRandomScorer(rand.Uint64(), rand.Uint64()), true
	case "content":
		return ContentScorer, true
	case "none":
		return NoScorer, true
	}
	return nil, false
}
