package invalidation

import "sync"

// Generations records when each key was last invalidated on this instance.
// A reader takes a Mark before loading from the store and checks Superseded
// before caching the result, so a load that raced an invalidation is not
// written back. A nil *Generations tracks nothing.
type Generations struct {
	mu     sync.Mutex
	seq    uint64
	bumped map[string]uint64
}

func NewGenerations() *Generations {
	return &Generations{bumped: map[string]uint64{}}
}

func (g *Generations) Bump(keys ...string) {
	if g == nil || len(keys) == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	for _, key := range keys {
		g.bumped[key] = g.seq
	}
}

func (g *Generations) Mark() uint64 {
	if g == nil {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Superseded reports whether key was invalidated after mark was taken.
func (g *Generations) Superseded(key string, mark uint64) bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bumped[key] > mark
}
