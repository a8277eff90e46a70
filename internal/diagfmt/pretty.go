package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
// <path>:<line>:<col>: <severity> <ID>: <message>
// затем строку исходника с подчёркиванием ^~~~ по Span.
// fs может быть nil, тогда контекст не выводится.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range diags {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	sev := p.severity(d.Severity())
	msg := d.Format(opts.Language)
	pos, ok := d.Position()
	if !ok {
		_, err := fmt.Fprintf(w, "%s %s\n", sev.Sprintf("%s %s:", d.Severity().Label(), d.ID()), msg)
		return err
	}

	where := fmt.Sprintf("%s:%d:%d:", formatPath(pos.Path, opts.PathMode, opts.BaseDir), pos.Lines.Start.Line, pos.Lines.Start.Col)
	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.path.Sprint(where), sev.Sprintf("%s %s:", d.Severity().Label(), d.ID()), msg); err != nil {
		return err
	}
	if opts.NoSource || fs == nil {
		return nil
	}
	file, found := fs.GetByPath(pos.Path)
	if !found || pos.Lines.Start.Line == 0 {
		return nil
	}
	return writeSnippet(w, file, pos, opts.Width, p, sev)
}

func writeSnippet(w io.Writer, file *source.File, pos diag.Position, width int, p palette, sev *color.Color) error {
	lineNo := pos.Lines.Start.Line
	line := printable(file.GetLine(lineNo))
	col := int(pos.Lines.Start.Col) - 1
	col = max(min(col, len(line)), 0)

	underline := 1
	if pos.Lines.End.Line == lineNo && pos.Lines.End.Col > pos.Lines.Start.Col {
		underline = int(pos.Lines.End.Col - pos.Lines.Start.Col)
	} else if pos.Lines.End.Line > lineNo && len(line) > col {
		underline = len(line) - col
	}

	line, col = window(line, col, width)
	if width > 0 {
		underline = max(min(underline, width-col), 1)
	}

	num := strconv.FormatUint(uint64(lineNo), 10)
	pad := strings.Repeat(" ", len(num))
	bar := p.gutter.Sprint("|")
	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), bar, line); err != nil {
		return err
	}
	marker := "^" + strings.Repeat("~", underline-1)
	_, err := fmt.Fprintf(w, "%s %s %s%s\n", pad, bar, strings.Repeat(" ", col), sev.Sprint(marker))
	return err
}

// printable заменяет управляющие и не-ASCII байты точкой, табуляцию пробелом,
// чтобы колонка в байтах совпадала с позицией на экране.
func printable(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c == '\t':
			b[i] = ' '
		case c < 0x20 || c >= 0x7f:
			b[i] = '.'
		}
	}
	return string(b)
}

// window cuts line to width bytes around col and returns col shifted into it.
func window(line string, col, width int) (string, int) {
	const ellipsis = "..."
	if width <= 2*len(ellipsis) || len(line) <= width {
		return line, col
	}
	start := max(col-width/2, 0)
	end := min(start+width, len(line))
	start = max(end-width, 0)
	out := line[start:end]
	if start > 0 {
		out = ellipsis + out[len(ellipsis):]
	}
	if end < len(line) {
		out = out[:len(out)-len(ellipsis)] + ellipsis
	}
	return out, col - start
}

// Short prints one line per diagnostic in the stable golden layout.
func Short(w io.Writer, diags []diag.Diagnostic, opts PrettyOpts) error {
	out := diag.FormatGoldenDiagnostics(diags, opts.BaseDir, opts.Language)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// Summary prints the closing "N error(s), M warning(s)" line.
func Summary(w io.Writer, errors, warnings int, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	if errors == 0 && warnings == 0 {
		_, err := fmt.Fprintln(w, "no problems found")
		return err
	}
	_, err := fmt.Fprintf(w, "%s, %s\n",
		p.err.Sprint(plural(errors, "error")),
		p.warn.Sprint(plural(warnings, "warning")))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
