package runtime

import (
	"math/rand/v2"
	"roomcast/contract"
	"roomcast/domain"
	"sync/atomic"
)

var (
	_ contract.IDGenerator = (*RandomIDGenerator)(nil)
	_ contract.IDGenerator = (*SequentialIDGenerator)(nil)
)

// RandomIDGenerator draws uniformly distributed ids.
type RandomIDGenerator struct{}

func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{}
}

func (g *RandomIDGenerator) Next() domain.MemberID {
	return domain.MemberID(rand.Uint64())
}

// SequentialIDGenerator hands out 1, 2, 3... and keeps tests deterministic.
type SequentialIDGenerator struct {
	last atomic.Uint64
}

func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

func (g *SequentialIDGenerator) Next() domain.MemberID {
	return domain.MemberID(g.last.Add(1))
}

// NewIDGenerator resolves the ID_STRATEGY configuration value.
func NewIDGenerator(strategy string) contract.IDGenerator {
	if strategy == "sequential" {
		return NewSequentialIDGenerator()
	}
	return NewRandomIDGenerator()
}
