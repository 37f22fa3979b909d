// Package cloneid issues the unique identifiers stamped onto normalized
// template elements.
package cloneid

import (
	"strconv"
	"sync/atomic"
)

// DefaultPrefix is prepended to every issued identifier.
const DefaultPrefix = "content-"

// shared is the process-wide counter behind Default.
var shared = New(DefaultPrefix)

// Default returns the process-wide counter. Every registry that is not given
// its own counter stamps ids from it, so ids never repeat within a process.
func Default() *Counter {
	return shared
}

// Counter hands out monotonically increasing identifiers.
//
// A Counter is safe for concurrent use. Registries that share one Counter
// never issue the same identifier twice; give each test its own Counter
// (or call Reset) to get deterministic values.
type Counter struct {
	prefix string
	next   atomic.Uint64
}

// New creates a counter whose identifiers start with prefix.
// An empty prefix selects DefaultPrefix.
func New(prefix string) *Counter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Counter{prefix: prefix}
}

// Next returns the next identifier, e.g. "content-0", "content-1".
func (c *Counter) Next() string {
	n := c.next.Add(1) - 1
	return c.prefix + strconv.FormatUint(n, 10)
}

// Issued reports how many identifiers have been handed out.
func (c *Counter) Issued() uint64 {
	return c.next.Load()
}

// Reset starts the sequence over from zero.
func (c *Counter) Reset() {
	c.next.Store(0)
}

// Prefix returns the identifier prefix.
func (c *Counter) Prefix() string {
	return c.prefix
}
