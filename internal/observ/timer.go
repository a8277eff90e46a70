// Package observ collects per-phase wall time of a pdfsyn run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// phase accumulates every measurement taken under one name. A phase that
// runs once per file (lex, parse, diagnose) ends up with Count == files.
type phase struct {
	name  string
	total time.Duration
	max   time.Duration
	count int
	bytes int64
}

// Timer collects phase durations. Workers of a parallel run report into
// one Timer; a nil *Timer only runs the measured functions.
type Timer struct {
	mu     sync.Mutex
	order  []*phase
	byName map[string]*phase
}

func NewTimer() *Timer {
	return &Timer{byName: make(map[string]*phase, 4)}
}

func (t *Timer) record(name string, d time.Duration, bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.byName[name]
	if !ok {
		p = &phase{name: name}
		t.byName[name] = p
		t.order = append(t.order, p)
	}
	p.total += d
	p.max = max(p.max, d)
	p.count++
	p.bytes += bytes
}

// Add folds one measured duration into the phase called name.
func (t *Timer) Add(name string, d time.Duration) {
	if t != nil {
		t.record(name, d, 0)
	}
}

// Measure runs fn and adds its duration to the phase called name.
func (t *Timer) Measure(name string, fn func()) {
	t.MeasureBytes(name, 0, fn)
}

// MeasureBytes is Measure for a phase that consumes n input bytes;
// the report then carries throughput.
func (t *Timer) MeasureBytes(name string, n int, fn func()) {
	if t == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	t.record(name, time.Since(start), int64(n))
}

// PhaseReport is the serialised form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	MaxMS      float64 `json:"max_ms"`
	Count      int     `json:"count"`
	Bytes      int64   `json:"bytes,omitempty"`
	MBPerSec   float64 `json:"mb_per_sec,omitempty"`
}

// Report lists phases in first-seen order. Phases of parallel workers
// overlap in wall time, so TotalMS sums work rather than elapsed time.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, p := range t.order {
		total += p.total
		pr := PhaseReport{
			Name:       p.name,
			DurationMS: millis(p.total),
			MaxMS:      millis(p.max),
			Count:      p.count,
			Bytes:      p.bytes,
		}
		if p.bytes > 0 && p.total > 0 {
			pr.MBPerSec = float64(p.bytes) / (1 << 20) / p.total.Seconds()
		}
		r.Phases = append(r.Phases, pr)
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report for --timings:
//
//	timings:
//	  parse          12.40 ms  x3  max 6.10 ms  41.2 MB/s
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d  max %.2f ms", p.Count, p.MaxMS)
		}
		if p.MBPerSec > 0 {
			fmt.Fprintf(&sb, "  %.1f MB/s", p.MBPerSec)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
