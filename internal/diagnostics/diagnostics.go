// Package diagnostics defines the structured records the build core emits
// for user-visible conditions, and the sinks that receive them. The core
// never renders or persists diagnostics itself; it hands records to a Sink
// and moves on.
package diagnostics

import "sync"

// Severity classifies a diagnostic record.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic codes emitted by the build core.
const (
	// CodeDuplicateOutputPath reports two or more items claiming the same
	// output path.
	CodeDuplicateOutputPath = "DUP_OUTPUT_PATH"

	// CodeEmptySource reports a source file with no content.
	CodeEmptySource = "EMPTY_SOURCE"
)

// Record is one structured diagnostic: what happened, how bad it is, and
// which source files are involved.
type Record struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Sources  []string `json:"sources,omitempty"`
}

// Sink receives diagnostic records. Implementations must be safe for
// concurrent use; the core may emit from multiple goroutines.
type Sink interface {
	Emit(Record)
}

// Collector is a Sink that accumulates records in memory, for post-build
// reporting and for tests.
type Collector struct {
	mu      sync.Mutex
	records []Record
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Emit implements Sink.
func (c *Collector) Emit(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// Records returns a copy of the collected records in emission order.
func (c *Collector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]Record, len(c.records))
	copy(records, c.records)
	return records
}

// Count returns the number of collected records.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// CountBySeverity returns the number of collected records with the given
// severity.
func (c *Collector) CountBySeverity(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, rec := range c.records {
		if rec.Severity == sev {
			n++
		}
	}
	return n
}
