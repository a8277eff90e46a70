package diagfmt

import (
	"fmt"
	"path/filepath"

	"golang.org/x/text/language"

	"pdfsyntax/internal/observ"
	"pdfsyntax/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts the names used by the --path-mode flag.
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	Language language.Tag
	// Width ограничивает ширину строки контекста, 0 - без ограничений
	Width int
	// NoSource отключает вывод строки с подчёркиванием
	NoSource bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Language         language.Tag
	Max              int // обрезка вывода, не Bag
	// Timer добавляет отчёт о фазах в поле "timings"
	Timer *observ.Timer
}

func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return "-"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(path)
	case PathModeAuto:
		if len(path) >= 40 && filepath.IsAbs(path) {
			return source.BaseName(path)
		}
	}
	return path
}
