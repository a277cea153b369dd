// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package metrics provides performance monitoring and observability for the
// checked memory operations.
//
// This package implements thread-safe metrics collection using a buffered
// channel and a background processor. It tracks compare counts per element
// width, mismatch counts, scanned element totals, constraint-violation counts
// per kind, and compare latencies in a bounded ring buffer.
//
// # Key Features
//
//   - Non-blocking event recording (full buffer drops events rather than stalling a compare)
//   - Background processing keeps the compare path allocation- and lock-free
//   - Violation accounting per error kind for auditing bounds misuse
//   - Latency percentiles from a bounded ring buffer
//   - JSON-exportable snapshots for external monitoring systems
//
// # Usage Examples
//
//	m := metrics.NewMetrics()
//	defer m.Close()
//
//	start := time.Now()
//	// ... perform a checked compare ...
//	m.RecordCompare("u32", time.Since(start), scanned, mismatch)
//
//	stats := m.GetStats()
//	fmt.Printf("compares: %d, violations: %d\n",
//	    stats.Compares["u32"], stats.Violations["nil_buffer"])
//
// # Dangers and Warnings
//
//   - **Background Goroutine**: Requires proper cleanup with Close()
//   - **Event Loss**: If the buffer is full, events are dropped (non-blocking behavior)
//   - **Stats Latency**: Snapshots may trail recording slightly due to background processing
//
// # Thread Safety
//
// All operations are safe for concurrent use from multiple goroutines.
package metrics

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// LatencyStats provides latency statistics over the retained samples.
type LatencyStats struct {
	Count uint64        `json:"count"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"p50"`
	P95   time.Duration `json:"p95"`
	P99   time.Duration `json:"p99"`
}

// Snapshot provides a complete point-in-time view of all metrics.
type Snapshot struct {
	Compares        map[string]uint64 `json:"compares"`
	Mismatches      uint64            `json:"mismatches"`
	ElementsScanned uint64            `json:"elements_scanned"`
	Violations      map[string]uint64 `json:"violations"`
	Latency         LatencyStats      `json:"latency"`
}

// Event represents a single metric event.
type Event struct {
	Type      string // "compare" or "violation"
	Width     string // element width label: "u8", "u16", "u32", "u64"
	Kind      string // violation kind name
	Duration  time.Duration
	Elements  uint64
	Mismatch  bool
	Timestamp time.Time
}

// DurationRingBuffer is a thread-safe bounded ring buffer for time.Duration.
type DurationRingBuffer struct {
	buffer []time.Duration
	head   int
	tail   int
	size   int
	count  int
	mu     sync.RWMutex
}

// NewDurationRingBuffer creates a ring buffer with the specified capacity.
func NewDurationRingBuffer(capacity int) *DurationRingBuffer {
	return &DurationRingBuffer{
		buffer: make([]time.Duration, capacity),
		size:   capacity,
	}
}

// Push adds an item, evicting the oldest once full.
func (rb *DurationRingBuffer) Push(item time.Duration) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buffer[rb.tail] = item
	rb.tail = (rb.tail + 1) % rb.size

	if rb.count < rb.size {
		rb.count++
	} else {
		rb.head = (rb.head + 1) % rb.size
	}
}

// GetStats calculates latency statistics over the retained samples.
func (rb *DurationRingBuffer) GetStats() LatencyStats {
	rb.mu.RLock()
	values := make([]time.Duration, rb.count)
	for i := 0; i < rb.count; i++ {
		values[i] = rb.buffer[(rb.head+i)%rb.size]
	}
	rb.mu.RUnlock()

	if len(values) == 0 {
		return LatencyStats{}
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var total time.Duration
	for _, v := range values {
		total += v
	}

	return LatencyStats{
		Count: uint64(len(values)),
		Min:   values[0],
		Max:   values[len(values)-1],
		Mean:  total / time.Duration(len(values)),
		P50:   percentile(values, 0.50),
		P95:   percentile(values, 0.95),
		P99:   percentile(values, 0.99),
	}
}

// percentile picks the nth percentile from sorted values.
func percentile(values []time.Duration, p float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	index := int(float64(len(values)-1) * p)
	return values[index]
}

// Config provides configuration options for metrics collection.
type Config struct {
	BufferSize    int // size of the event channel
	LatencyBuffer int // ring buffer capacity for compare latencies
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:    10000,
		LatencyBuffer: 1000,
	}
}

// Metrics tracks compare and violation metrics using a buffered channel and
// a background processor.
type Metrics struct {
	config Config

	eventChan chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu sync.RWMutex

	compareCounts   map[string]uint64
	mismatches      uint64
	elementsScanned uint64
	violationCounts map[string]uint64
	compareLatency  *DurationRingBuffer
}

// NewMetrics creates a metrics instance with default configuration.
func NewMetrics() *Metrics {
	return NewMetricsWithConfig(DefaultConfig())
}

// NewMetricsWithConfig creates a metrics instance with custom configuration.
func NewMetricsWithConfig(config Config) *Metrics {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Metrics{
		config:          config,
		eventChan:       make(chan Event, config.BufferSize),
		ctx:             ctx,
		cancel:          cancel,
		compareCounts:   make(map[string]uint64),
		violationCounts: make(map[string]uint64),
		compareLatency:  NewDurationRingBuffer(config.LatencyBuffer),
	}

	m.wg.Add(1)
	go m.processEvents()

	return m
}

// processEvents runs in a background goroutine to process metric events.
func (m *Metrics) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case event := <-m.eventChan:
			m.processEvent(event)
		case <-m.ctx.Done():
			return
		}
	}
}

// processEvent handles a single metric event.
func (m *Metrics) processEvent(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case "compare":
		m.compareCounts[event.Width]++
		m.elementsScanned += event.Elements
		if event.Mismatch {
			m.mismatches++
		}
		m.compareLatency.Push(event.Duration)
	case "violation":
		m.violationCounts[event.Kind]++
	}
}

// RecordCompare records one successful compare: its element width label,
// duration, number of elements scanned, and whether a mismatch was found.
func (m *Metrics) RecordCompare(width string, duration time.Duration, elements uint64, mismatch bool) {
	select {
	case m.eventChan <- Event{
		Type:      "compare",
		Width:     width,
		Duration:  duration,
		Elements:  elements,
		Mismatch:  mismatch,
		Timestamp: time.Now(),
	}:
	default:
		// Channel full, drop the event to avoid blocking
	}
}

// RecordViolation records one constraint violation by kind name.
func (m *Metrics) RecordViolation(kind string) {
	select {
	case m.eventChan <- Event{Type: "violation", Kind: kind, Timestamp: time.Now()}:
	default:
		// Channel full, drop the event to avoid blocking
	}
}

// GetStats returns a snapshot of all metrics.
func (m *Metrics) GetStats() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	compares := make(map[string]uint64, len(m.compareCounts))
	for k, v := range m.compareCounts {
		compares[k] = v
	}
	violations := make(map[string]uint64, len(m.violationCounts))
	for k, v := range m.violationCounts {
		violations[k] = v
	}

	return Snapshot{
		Compares:        compares,
		Mismatches:      m.mismatches,
		ElementsScanned: m.elementsScanned,
		Violations:      violations,
		Latency:         m.compareLatency.GetStats(),
	}
}

// ExportJSON returns the current snapshot serialized as JSON.
func (m *Metrics) ExportJSON() (string, error) {
	data, err := json.MarshalIndent(m.GetStats(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close drains pending events and stops the background processor. Must be
// called when the metrics instance is no longer needed.
func (m *Metrics) Close() {
	for {
		select {
		case event := <-m.eventChan:
			m.processEvent(event)
		default:
			m.cancel()
			m.wg.Wait()
			return
		}
	}
}
