// Package timing collects labeled duration samples for latency reporting.
package timing

import (
	"sync"
	"time"
)

// Collector accumulates duration samples grouped by label. Safe for
// concurrent use.
type Collector struct {
	mu      sync.Mutex
	samples map[string][]time.Duration
}

func NewCollector() *Collector {
	return &Collector{samples: make(map[string][]time.Duration)}
}

// Observe records a single sample under the given label.
func (c *Collector) Observe(label string, d time.Duration) {
	c.mu.Lock()
	c.samples[label] = append(c.samples[label], d)
	c.mu.Unlock()
}

// Track records the time elapsed since start under the given label. Meant
// for use with defer: defer c.Track(time.Now(), "sign").
func (c *Collector) Track(start time.Time, label string) {
	c.Observe(label, time.Since(start))
}

// Millis returns the samples for label converted to milliseconds.
func (c *Collector) Millis(label string) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ds := c.samples[label]
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d.Microseconds()) / 1000.0
	}
	return out
}

// SnapshotAndReset returns all collected samples and clears the collector.
func (c *Collector) SnapshotAndReset() map[string][]time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.samples
	c.samples = make(map[string][]time.Duration)
	return out
}
