package driver

import (
	"time"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
)

// FileResult is the outcome for one input file.
type FileResult struct {
	Path   string
	FileID source.FileID // 0 when the file could not be loaded
	Bag    *diag.Bag
	// Tree is set only with Options.KeepTrees.
	Tree    *syntax.Tree
	Tokens  int
	Cached  bool
	Elapsed time.Duration
}

type DiagnoseResult struct {
	FileSet  *source.FileSet
	Files    []FileResult
	Cache    green.CacheStats
	Interned uint64
	// DiskErrors counts cache entries that could not be read or written.
	// They never fail the run.
	DiskErrors int
}

func (r *DiagnoseResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of severity s over all files.
func (r *DiagnoseResult) Count(s diag.Severity) int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Bag.Count(s)
	}
	return n
}

// Diagnostics concatenates every file's diagnostics in file order.
func (r *DiagnoseResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		out = append(out, r.Files[i].Bag.Items()...)
	}
	return out
}

// Paths lists the input paths in result order.
func (r *DiagnoseResult) Paths() []string {
	out := make([]string, len(r.Files))
	for i := range r.Files {
		out[i] = r.Files[i].Path
	}
	return out
}
