package storage

import "sync/atomic"

// IDGenerator hands out monotonically increasing ids starting at 1.
// It is safe for concurrent use. The zero value is ready to use
type IDGenerator struct {
	last atomic.Int64
}

// Next returns the next id
func (g *IDGenerator) Next() int64 {
	return g.last.Add(1)
}

// Last returns the most recently issued id, 0 if none was issued yet
func (g *IDGenerator) Last() int64 {
	return g.last.Load()
}
