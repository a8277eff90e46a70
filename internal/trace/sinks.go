package trace

import (
	"errors"
	"io"
	"sync"
)

// leveled carries the level shared by all sinks.
type leveled struct{ level Level }

func (l leveled) Level() Level  { return l.level }
func (l leveled) Enabled() bool { return l.level > LevelOff }

func (l leveled) accepts(ev *Event) bool {
	return ev.Kind == KindHeartbeat || l.level.ShouldEmit(ev.Scope)
}

// StreamTracer writes every accepted event to w immediately.
// Write errors are dropped: tracing never fails a run.
type StreamTracer struct {
	leveled
	mu    sync.Mutex
	w     io.Writer
	enc   encoder
	count int
	buf   []byte
}

// NewStreamTracer writes the format header right away.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{leveled: leveled{level}, w: w, enc: encoderFor(format)}
	if h := t.enc.header(); h != nil {
		_, _ = w.Write(h)
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = t.buf[:0]
	if t.count > 0 {
		t.buf = append(t.buf, t.enc.separator()...)
	}
	t.buf = t.enc.append(t.buf, ev)
	t.count++
	_, _ = t.w.Write(t.buf)
}

// Flush forwards to writers that buffer.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close writes the format footer, flushes and closes w when it is a Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if f := t.enc.footer(); f != nil {
		_, _ = t.w.Write(f)
	}
	t.mu.Unlock()

	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// Events returns how many events were written.
func (t *StreamTracer) Events() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// RingTracer keeps the last N events in memory; the CLI dumps them on exit.
type RingTracer struct {
	leveled
	mu     sync.Mutex
	events []Event
	next   int
	filled bool
}

// NewRingTracer creates a ring of the given capacity (DefaultRingSize if <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{leveled: leveled{level}, events: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.events[t.next] = stored
	t.next++
	if t.next == len(t.events) {
		t.next, t.filled = 0, true
	}
	t.mu.Unlock()
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the snapshot to w as a complete document in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	enc := encoderFor(format)
	buf := append([]byte(nil), enc.header()...)
	for i, ev := range t.Snapshot() {
		if i > 0 {
			buf = append(buf, enc.separator()...)
		}
		buf = enc.append(buf, &ev)
	}
	buf = append(buf, enc.footer()...)
	_, err := w.Write(buf)
	return err
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// fanout feeds every event to all tracers (ModeBoth).
type fanout struct {
	leveled
	tracers []Tracer
}

func (t *fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *fanout) Flush() error {
	var err error
	for _, tr := range t.tracers {
		err = errors.Join(err, tr.Flush())
	}
	return err
}

func (t *fanout) Close() error {
	var err error
	for _, tr := range t.tracers {
		err = errors.Join(err, tr.Close())
	}
	return err
}
