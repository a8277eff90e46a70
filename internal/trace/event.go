package trace

import (
	"fmt"
	"strings"
	"time"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only the ring dump on failure
	LevelPhase               // driver run + lex/parse passes
	LevelDetail              // + one span per file
	LevelDebug               // + one point per token
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass the level filter.
// LevelError keeps nothing in the stream: ring contents are dumped instead.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one diag/tokenize/parse run
	ScopePass                    // lex or parse of a file
	ScopeFile                    // per-file work inside a run
	ScopeToken                   // a single lexed token
)

var scopeNames = [...]string{"", "driver", "pass", "file", "token"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "parse", "diagnose", a file path or a token kind
	Detail   string
	// File, Offset and Width locate token events in the input.
	File   string
	Offset uint32
	Width  uint32
	Extra  map[string]string
}

// located reports whether the event points into a source file.
func (ev *Event) located() bool {
	return ev.File != "" && ev.Scope == ScopeToken
}
