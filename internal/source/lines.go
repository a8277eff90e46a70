package source

import (
	"bytes"
	"path/filepath"
)

// buildLineIndex records every PDF end-of-line: "\r\n" counts once (at the '\n'),
// a lone '\r' or '\n' counts at its own offset.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'})+1)
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			out = append(out, uint32(i))
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			out = append(out, uint32(i))
		}
	}
	return out
}

// ToLineCol converts a byte offset to a 1-based line/column using a line index
// produced for the same content.
func ToLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим количество концов строк строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo
	if line == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[line-1] + 1
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func isBinary(content []byte) bool {
	for _, b := range content {
		if b >= 0x80 || (b < 0x20 && b != '\n' && b != '\r' && b != '\t' && b != '\f' && b != 0) {
			return true
		}
	}
	return false
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths that escape baseDir
// fall back to their absolute form.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}
