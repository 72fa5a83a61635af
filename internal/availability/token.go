package availability

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator produces request-correlation tokens. Every public
// engine operation is stamped with one token that appears on all of
// its log lines.
//
// Implemented by UUIDGenerator (production) and FixedGenerator
// (tests, for deterministic log and golden output).
type TokenGenerator interface {
	Generate() string
}

// UUIDGenerator issues time-sortable UUIDv7 tokens. Stateless and
// safe for concurrent use.
type UUIDGenerator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order. Safe for
// concurrent use via an internal mutex. Panics when exhausted to
// fail fast on test misconfiguration.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that yields tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
