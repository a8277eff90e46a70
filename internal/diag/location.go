package diag

import (
	"fmt"

	"pdfsyntax/internal/source"
)

type LocationKind uint8

const (
	LocationNone LocationKind = iota
	LocationSource
	LocationExternal
)

// SourceTree is what a SourceLocation needs from a syntax tree.
type SourceTree interface {
	FilePath() string
	LineCol(off uint32) source.LineCol
}

// LineSpan is a resolved start/end pair.
type LineSpan struct {
	Start source.LineCol
	End   source.LineCol
}

// Position is a fully resolved location.
type Position struct {
	Path  string
	Span  source.Span
	Lines LineSpan
}

// Location is a closed set: NoLocation, SourceLocation, ExternalLocation.
type Location interface {
	Kind() LocationKind
	// Resolve returns the path and line/column range; ok is false for NoLocation.
	Resolve() (Position, bool)
	String() string
	isLocation()
}

type NoLocation struct{}

func (NoLocation) Kind() LocationKind        { return LocationNone }
func (NoLocation) Resolve() (Position, bool) { return Position{}, false }
func (NoLocation) String() string            { return "<no location>" }
func (NoLocation) isLocation()               {}

// SourceLocation points into a parsed tree.
type SourceLocation struct {
	Tree SourceTree
	Span source.Span
}

func (SourceLocation) Kind() LocationKind { return LocationSource }

func (l SourceLocation) Resolve() (Position, bool) {
	if l.Tree == nil {
		return Position{Span: l.Span}, false
	}
	return Position{
		Path: l.Tree.FilePath(),
		Span: l.Span,
		Lines: LineSpan{
			Start: l.Tree.LineCol(l.Span.Start),
			End:   l.Tree.LineCol(l.Span.End),
		},
	}, true
}

func (l SourceLocation) String() string {
	p, ok := l.Resolve()
	if !ok {
		return l.Span.String()
	}
	return p.String()
}

func (SourceLocation) isLocation() {}

// ExternalLocation refers to a file that has no tree in this session.
type ExternalLocation struct {
	Path  string
	Span  source.Span
	Lines LineSpan
}

func (ExternalLocation) Kind() LocationKind { return LocationExternal }

func (l ExternalLocation) Resolve() (Position, bool) {
	return Position{Path: l.Path, Span: l.Span, Lines: l.Lines}, true
}

func (l ExternalLocation) String() string {
	p, _ := l.Resolve()
	return p.String()
}

func (ExternalLocation) isLocation() {}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Lines.Start.Line, p.Lines.Start.Col)
}

func sameLocation(a, b Location) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	pa, _ := a.Resolve()
	pb, _ := b.Resolve()
	return pa.Path == pb.Path && pa.Span == pb.Span
}
