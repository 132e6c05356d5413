// Package idgen mints transcript message ids. Ids combine a millisecond
// timestamp with a process-wide counter so two ids created within the same
// instant still differ and sort in creation order.
package idgen

import (
	"fmt"
	"sync"
	"time"
)

type Generator struct {
	mu      sync.Mutex
	counter uint64
	now     func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is for tests that need a fixed clock.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns an id of the form msg-<unix-millis>-<counter>. The counter
// is zero-padded so lexicographic order matches creation order within one
// millisecond.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("msg-%013d-%06d", g.now().UnixMilli(), g.counter)
}
