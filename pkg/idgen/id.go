package idgen

import "sync/atomic"

// Generator hands out monotonically increasing IDs, safe for concurrent
// callers.
type Generator struct {
	id int64
}

// New returns a generator whose first Next is start+1.
func New(start int64) *Generator {
	return &Generator{id: start}
}

func (g *Generator) Next() int64 {
	return atomic.AddInt64(&g.id, 1)
}
