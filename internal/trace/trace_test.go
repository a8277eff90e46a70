package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(l.String(), name) {
			t.Errorf("ParseLevel(%q).String() = %q", name, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeToken, false},
		{LevelDebug, ScopeToken, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected mode error")
	}
	if f, err := ParseFormat(""); err != nil || f != FormatAuto {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if f, err := ParseFormat("chrome"); err != nil || f != FormatChrome {
		t.Errorf("ParseFormat(chrome) = %v, %v", f, err)
	}
}

func TestResolveFormat(t *testing.T) {
	for path, want := range map[string]Format{
		"":             FormatText,
		"-":            FormatText,
		"run.ndjson":   FormatNDJSON,
		"run.json":     FormatChrome,
		"run.log":      FormatText,
		"dir/RUN.JSON": FormatChrome,
	} {
		if got := (Config{OutputPath: path}).resolveFormat(); got != want {
			t.Errorf("resolveFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	span := Begin(tr, ScopePass, "parse", 0)
	Begin(tr, ScopeFile, "a.pdf", span.ID()).End("")
	Token(tr, "NameLiteralToken", "a.pdf", 3, 5)
	span.WithExtra("tokens", "12").End("done")

	if tr.Events() != 2 {
		t.Fatalf("events = %d, want 2:\n%s", tr.Events(), buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (done) {tokens=12}") {
		t.Errorf("unexpected text trace:\n%s", out)
	}
}

func TestTokenEventIsLocated(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Token(tr, "IntegerLiteralToken", "a.pdf", 0, 2)

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", buf.String(), err)
	}
	if ev["scope"] != "token" || ev["file"] != "a.pdf" || ev["offset"] != float64(0) || ev["width"] != float64(2) {
		t.Errorf("event = %v", ev)
	}

	text := FormatEvent(&Event{Kind: KindPoint, Scope: ScopeToken, Name: "BadToken", File: "b.pdf", Offset: 7, Width: 1}, FormatText)
	if !strings.Contains(string(text), "• BadToken b.pdf@7+1") {
		t.Errorf("text = %q", text)
	}
}

func TestChromeDocumentIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatChrome)
	s := Begin(tr, ScopeDriver, "diagnose", 0)
	Begin(tr, ScopeFile, "a.pdf", s.ID()).End("")
	s.End("1 files")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		TraceEvents []chromeEvent `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 4 || doc.TraceEvents[0].Ph != "B" || doc.TraceEvents[3].Args["detail"] != "1 files" {
		t.Errorf("events = %+v", doc.TraceEvents)
	}
}

func TestRingTracerWrapsAndDumps(t *testing.T) {
	ring := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePass, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("snapshot = %+v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatChrome); err != nil {
		t.Fatal(err)
	}
	var doc map[string][]chromeEvent
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil || len(doc["traceEvents"]) != 3 {
		t.Fatalf("dump = %s, err = %v", buf.String(), err)
	}
}

func TestNewModes(t *testing.T) {
	if tr, err := New(Config{Level: LevelOff, Mode: ModeStream}); err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give Nop: %v %v", tr, err)
	}

	var buf bytes.Buffer
	both, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(both, ScopeDriver, "start", "", 0)
	ring := RingOf(both)
	if ring == nil || len(ring.Snapshot()) != 1 {
		t.Fatal("ModeBoth must keep a ring")
	}
	if !strings.Contains(buf.String(), "start") {
		t.Errorf("stream side empty: %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "t.ndjson")
	file, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(file) != nil {
		t.Error("stream mode has no ring")
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	if FromContext(WithTracer(context.Background(), ring)) != Tracer(ring) {
		t.Error("tracer lost in context")
	}
	if FromContext(WithTracer(context.Background(), nil)) != Nop {
		t.Error("nil tracer must store Nop")
	}
}

func TestInertSpan(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.WithExtra("k", "v").End("") != 0 {
		t.Error("span from Nop must be inert")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat on Nop must be nil")
	}
	ring := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := ring.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("snapshot = %+v", snap)
	}
}
