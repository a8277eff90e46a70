package diag

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"golang.org/x/text/language"
)

// Info is a diagnostic without a location: a code, its effective severity and
// the formatting arguments. Arguments may themselves be Info values; they are
// rendered recursively.
type Info struct {
	provider MessageProvider
	code     Code
	severity Severity
	args     []any
}

// NewInfo builds an Info with the provider's default severity.
func NewInfo(p MessageProvider, code Code, args ...any) Info {
	if p == nil {
		p = fallbackProvider{}
	}
	return Info{
		provider: p,
		code:     code,
		severity: p.Severity(code),
		args:     args,
	}
}

// Nested wraps inner as the argument of a WarnNestedDiagnostic info.
func Nested(p MessageProvider, inner Info) Info {
	return NewInfo(p, WarnNestedDiagnostic, inner)
}

func (i Info) Provider() MessageProvider {
	if i.provider == nil {
		return fallbackProvider{}
	}
	return i.provider
}

func (i Info) Code() Code { return i.code }

// ID renders the code with the provider's prefix.
func (i Info) ID() string { return i.code.IDWithPrefix(i.Provider().CodePrefix()) }

// Severity is the effective severity after escalation.
func (i Info) Severity() Severity { return i.severity }

// DefaultSeverity is the severity the provider assigns to the code.
func (i Info) DefaultSeverity() Severity { return i.Provider().Severity(i.code) }

func (i Info) IsWarning() bool { return i.severity == SevWarning }
func (i Info) IsError() bool   { return i.severity == SevError }

// Args returns the arguments. The slice must not be modified.
func (i Info) Args() []any { return i.args }

// WithSeverity returns a copy with the effective severity replaced.
func (i Info) WithSeverity(s Severity) Info {
	i.severity = s
	return i
}

// Escalate promotes a warning to an error; other severities are unchanged.
func (i Info) Escalate() Info {
	if i.severity == SevWarning {
		i.severity = SevError
	}
	return i
}

// Format renders the message in tag. Unknown codes and missing translations
// render as the empty string.
func (i Info) Format(tag language.Tag) string {
	p := i.Provider()
	format, ok := p.Message(i.code, tag)
	if !ok || format == "" {
		return ""
	}
	if len(i.args) == 0 {
		return format
	}
	rendered := make([]any, len(i.args))
	for k, a := range i.args {
		if inner, isInfo := a.(Info); isInfo {
			rendered[k] = inner.Format(tag)
			continue
		}
		rendered[k] = a
	}
	if r, isRenderer := p.(Renderer); isRenderer {
		if out, ok := r.Render(i.code, tag, rendered); ok {
			return out
		}
	}
	return fmt.Sprintf(format, rendered...)
}

// Message renders the message in the provider's default language.
func (i Info) Message() string { return i.Format(language.Und) }

func (i Info) String() string {
	return fmt.Sprintf("%s %s: %s", i.severity.Label(), i.ID(), i.Message())
}

// Equal compares code and arguments structurally. Severity and provider are
// not part of identity.
func (i Info) Equal(other Info) bool {
	if i.code != other.code || len(i.args) != len(other.args) {
		return false
	}
	for k := range i.args {
		if !argEqual(i.args[k], other.args[k]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (i Info) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], uint16(i.code))
	_, _ = h.Write(buf[:2])
	for _, a := range i.args {
		binary.LittleEndian.PutUint64(buf[:], argHash(a))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func argEqual(a, b any) bool {
	switch x := a.(type) {
	case Info:
		y, ok := b.(Info)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && string(x) == string(y)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, Code, Severity:
		return a == b
	case nil:
		return b == nil
	}
	if _, ok := b.(Info); ok {
		return false
	}
	return fmt.Sprintf("%T:%v", a, a) == fmt.Sprintf("%T:%v", b, b)
}

func argHash(a any) uint64 {
	switch x := a.(type) {
	case Info:
		return x.Hash()
	case float64:
		return math.Float64bits(x)
	case nil:
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%T:%v", a, a)))
	return h.Sum64()
}

// FormatArgs is a debugging helper listing arguments as Go values.
func (i Info) FormatArgs() string {
	var sb strings.Builder
	for k, a := range i.args {
		if k > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", a)
	}
	return sb.String()
}
