package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of one run. IDs are dense indexes into files;
// adding the same path twice yields two IDs and the path index follows the
// newest one.
type FileSet struct {
	files  []File
	byPath map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// Add stores content as-is, indexes its line ends and hashes it.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file larger than 4 GiB: %w", path, err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.byPath[path] = id
	return id
}

// Load reads path from disk. PDF bytes are never CRLF- or BOM-normalised:
// xref offsets and stream lengths count the raw bytes.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	var flags FileFlags
	if isBinary(content) {
		flags |= FileBinary
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (tests, stdin) flagged FileVirtual.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil for an unknown id.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// GetByPath returns the newest file added under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fileSet.byPath[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fileSet.files[id], true
}

// Resolve converts a span into 1-based line/column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// LineCol resolves a single offset inside the file.
func (f *File) LineCol(off uint32) LineCol {
	return ToLineCol(f.LineIdx, off)
}

// Lines returns the number of lines; a trailing end-of-line does not open a new one.
func (f *File) Lines() uint32 {
	n := uint32(len(f.LineIdx))
	if len(f.Content) == 0 {
		return 0
	}
	if last := len(f.Content) - 1; n > 0 && f.LineIdx[n-1] == uint32(last) {
		return n
	}
	return n + 1
}

// LineSpan returns the byte range of line n (1-based) without its end-of-line.
func (f *File) LineSpan(n uint32) (Span, bool) {
	if n == 0 || n > f.Lines() {
		return Span{}, false
	}
	start := uint32(0)
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content))
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
		// CRLF is indexed at the '\n'
		if end > start && f.Content[end] == '\n' && f.Content[end-1] == '\r' {
			end--
		}
	}
	return Span{File: f.ID, Start: start, End: end}, true
}

// GetLine returns line n (1-based) without its end-of-line, "" when out of range.
func (f *File) GetLine(n uint32) string {
	sp, ok := f.LineSpan(n)
	if !ok {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}
