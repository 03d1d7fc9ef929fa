package diagnostics

import (
	"io"
	"sync"
)

// Bag collects diagnostics during one compilation. A single bag is shared by
// the lexer, parser and semantic analyzer; emission is synchronous and only
// happens once the pipeline has finished or hit a fatal stage.
type Bag struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
	errorCount  int
	warnCount   int
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add records a diagnostic and updates the running error/warning counts.
func (b *Bag) Add(d *Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = append(b.diagnostics, d)
	switch d.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of Error-severity diagnostics.
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of Warning-severity diagnostics.
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a snapshot of all recorded diagnostics in emission order.
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	return out
}

// EmitAll renders every recorded diagnostic to w in the plain-text format.
func (b *Bag) EmitAll(w io.Writer, lines LineSource) {
	emitter := NewEmitter(w, lines)
	for _, d := range b.Diagnostics() {
		emitter.Emit(d)
	}
}

// Clear discards all recorded diagnostics and resets the counters.
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = nil
	b.errorCount = 0
	b.warnCount = 0
}
