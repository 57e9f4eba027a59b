// Package warnings collects the non-fatal diagnostics a dispatch produces
// along the way. Every component appends to the same Collector so they can
// be flushed once into the final systemMessage, in the order raised.
package warnings

import (
	"fmt"
	"strings"
)

// Collector accumulates warning strings for a single dispatch. It is not
// safe for concurrent use — a dispatch runs single-threaded.
type Collector struct {
	messages []string
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add formats and appends a warning.
func (c *Collector) Add(format string, args ...any) {
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

// All returns the accumulated warnings in the order they were raised.
func (c *Collector) All() []string {
	return c.messages
}

// Len reports how many warnings have been collected.
func (c *Collector) Len() int {
	return len(c.messages)
}

// Find returns the first warning containing substr, and whether one was found.
func (c *Collector) Find(substr string) (string, bool) {
	for _, m := range c.messages {
		if strings.Contains(m, substr) {
			return m, true
		}
	}
	return "", false
}
