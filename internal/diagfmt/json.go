package diagfmt

import (
	"encoding/json"
	"io"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/observ"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Timings     *observ.Report   `json:"timings,omitempty"`
}

func makeLocation(d diag.Diagnostic, opts JSONOpts) *LocationJSON {
	pos, ok := d.Position()
	if !ok {
		return nil
	}
	loc := &LocationJSON{
		File:      formatPath(pos.Path, opts.PathMode, opts.BaseDir),
		StartByte: pos.Span.Start,
		EndByte:   pos.Span.End,
	}
	if opts.IncludePositions {
		loc.StartLine = pos.Lines.Start.Line
		loc.StartCol = pos.Lines.Start.Col
		loc.EndLine = pos.Lines.End.Line
		loc.EndCol = pos.Lines.End.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Errors и Warnings считаются по всем диагностикам, а не только по выведенным.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for i, d := range diags {
		switch d.Severity() {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
		if i >= n {
			continue
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity().String(),
			Code:     d.ID(),
			Name:     d.Code().Name(),
			Message:  d.Format(opts.Language),
			Location: makeLocation(d, opts),
		})
	}
	out.Count = len(out.Diagnostics)
	if opts.Timer != nil {
		report := opts.Timer.Report()
		out.Timings = &report
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, opts))
}
