// Package pool provides a small type-safe object pool used to recycle
// per-parse scratch state (result builders, token buffers) across sequential
// parses of a reused parser.
package pool

import "sync"

// Pool is a generic object pool. Objects handed out by Get are reset with
// the configured reset function before reuse.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// New creates a pool backed by the given factory.
func New[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return factory() },
		},
	}
}

// NewWithReset creates a pool whose objects are passed through reset before
// every reuse.
func NewWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := New(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool, creating one if necessary.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}
