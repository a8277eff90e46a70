package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"pdfsyntax/internal/source"
)

// goldenLine is one diagnostic reduced to what golden files compare.
type goldenLine struct {
	sev, id, path string
	line, col     uint32
	msg           string
}

func (g goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", g.sev, g.id, g.path, g.line, g.col, g.msg)
}

// FormatGoldenDiagnostics renders one `<severity> <ID> path:line:col <message>`
// line per diagnostic, ordered by position. Paths are relative to baseDir
// when possible; messages are folded onto one printable line.
func FormatGoldenDiagnostics(diags []Diagnostic, baseDir string, tag language.Tag) string {
	lines := make([]goldenLine, 0, len(diags))
	for _, d := range diags {
		g := goldenLine{sev: d.Severity().Label(), id: d.ID(), path: "-", msg: oneLine(d.Format(tag))}
		if pos, ok := d.Position(); ok {
			g.path = goldenPath(pos.Path, baseDir)
			g.line, g.col = pos.Lines.Start.Line, pos.Lines.Start.Col
		}
		lines = append(lines, g)
	}
	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			strings.Compare(a.sev, b.sev),
			strings.Compare(a.id, b.id),
			strings.Compare(a.msg, b.msg),
		)
	})

	var b strings.Builder
	for i, g := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.String())
	}
	return b.String()
}

func goldenPath(path, baseDir string) string {
	if path == "" {
		return "-"
	}
	if baseDir != "" {
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			path = rel
		}
	}
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return path
}

// oneLine collapses whitespace runs (PDF end-of-lines included) to a single
// space and replaces other control bytes quoted from the input with '.'.
func oneLine(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '.'
		}
		return r
	}, msg)
}
