package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
	FormatChrome               // chrome://tracing event array
)

var formatNames = [...]string{"auto", "text", "ndjson", "chrome"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// ParseFormat converts a --trace-format value; "" means auto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|chrome)", s)
}

// FormatEvent renders a single event without document framing.
func FormatEvent(ev *Event, format Format) []byte {
	return encoderFor(format).append(nil, ev)
}

// encoder renders events into a document of one format.
type encoder interface {
	header() []byte
	separator() []byte
	append(dst []byte, ev *Event) []byte
	footer() []byte
}

func encoderFor(f Format) encoder {
	switch f {
	case FormatNDJSON:
		return ndjsonEncoder{}
	case FormatChrome:
		return chromeEncoder{}
	}
	return textEncoder{}
}

type textEncoder struct{}

func (textEncoder) header() []byte    { return nil }
func (textEncoder) separator() []byte { return nil }
func (textEncoder) footer() []byte    { return nil }

// append renders "[   seq] → name (detail) path@off+width {k=v}".
func (textEncoder) append(dst []byte, ev *Event) []byte {
	dst = append(dst, '[')
	seq := strconv.FormatUint(ev.Seq, 10)
	for i := len(seq); i < 6; i++ {
		dst = append(dst, ' ')
	}
	dst = append(dst, seq...)
	dst = append(dst, "] "...)
	if ev.ParentID > 0 {
		dst = append(dst, "  "...)
	}
	switch ev.Kind {
	case KindSpanBegin:
		dst = append(dst, "→ "...)
	case KindSpanEnd:
		dst = append(dst, "← "...)
	case KindPoint:
		dst = append(dst, "• "...)
	case KindHeartbeat:
		dst = append(dst, "♡ "...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	if ev.located() {
		dst = fmt.Appendf(dst, " %s@%d+%d", ev.File, ev.Offset, ev.Width)
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, k...)
			dst = append(dst, '=')
			dst = append(dst, ev.Extra[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}

type ndjsonEncoder struct{}

type ndjsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	File     string            `json:"file,omitempty"`
	Offset   *uint32           `json:"offset,omitempty"`
	Width    uint32            `json:"width,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func (ndjsonEncoder) header() []byte    { return nil }
func (ndjsonEncoder) separator() []byte { return nil }
func (ndjsonEncoder) footer() []byte    { return nil }

func (ndjsonEncoder) append(dst []byte, ev *Event) []byte {
	j := ndjsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	}
	if ev.located() {
		off := ev.Offset
		j.File, j.Offset, j.Width = ev.File, &off, ev.Width
	}
	data, err := json.Marshal(j)
	if err != nil {
		return dst
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}

type chromeEncoder struct{}

type chromeEvent struct {
	Name string            `json:"name"`
	Cat  string            `json:"cat"`
	Ph   string            `json:"ph"`
	Ts   int64             `json:"ts"`
	Pid  int               `json:"pid"`
	Tid  uint64            `json:"tid"`
	Args map[string]string `json:"args,omitempty"`
}

func (chromeEncoder) header() []byte    { return []byte("{\"traceEvents\":[\n") }
func (chromeEncoder) separator() []byte { return []byte(",\n") }
func (chromeEncoder) footer() []byte    { return []byte("\n]}\n") }

func (chromeEncoder) append(dst []byte, ev *Event) []byte {
	ph := "i"
	switch ev.Kind {
	case KindSpanBegin:
		ph = "B"
	case KindSpanEnd:
		ph = "E"
	}
	args := ev.Extra
	if ev.Detail != "" || ev.located() {
		args = maps.Clone(ev.Extra)
		if args == nil {
			args = make(map[string]string, 2)
		}
		if ev.Detail != "" {
			args["detail"] = ev.Detail
		}
		if ev.located() {
			args["at"] = fmt.Sprintf("%s@%d+%d", ev.File, ev.Offset, ev.Width)
		}
	}
	data, err := json.Marshal(chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		Ph:   ph,
		Ts:   ev.Time.UnixMicro(),
		Pid:  1,
		Tid:  ev.GID,
		Args: args,
	})
	if err != nil {
		return dst
	}
	return append(dst, data...)
}
