package driver

import (
	"context"
	"fmt"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/parser"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Tokens  int
	Bag     *diag.Bag
	Cache   green.CacheStats
}

// Parse loads path and builds its syntax tree.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := ParseFile(ctx, fs.Get(fileID), opts)
	res.FileSet = fs
	return res, nil
}

// ParseFile parses an already loaded file with a fresh factory.
func ParseFile(ctx context.Context, file *source.File, opts Options) *ParseResult {
	f := opts.newFactory()
	r := parseWith(ctx, file, f, &opts)
	return &ParseResult{
		File:   file,
		Tree:   r.Tree,
		Tokens: r.Tokens,
		Bag:    finishBag(r.Tree.Diagnostics(), &opts),
		Cache:  f.Cache().Stats(),
	}
}

func parseWith(ctx context.Context, file *source.File, f *green.Factory, opts *Options) parser.Result {
	var res parser.Result
	opts.Timer.MeasureBytes("parse", len(file.Content), func() {
		res = parser.ParseFile(ctx, file, parser.Options{
			Factory:   f,
			Messages:  opts.messages(),
			MaxErrors: opts.maxErrors(),
		})
	})
	return res
}
