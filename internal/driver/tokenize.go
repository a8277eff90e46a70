package driver

import (
	"context"
	"fmt"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/lexer"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
	"pdfsyntax/internal/token"
	"pdfsyntax/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []*green.Token
	// Offsets[i] is where the full text (leading trivia included) of
	// Tokens[i] starts.
	Offsets []uint32
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to the end.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := TokenizeFile(ctx, fs.Get(fileID), opts)
	res.FileSet = fs
	return res, nil
}

// TokenizeFile lexes an already loaded file.
func TokenizeFile(ctx context.Context, file *source.File, opts Options) *TokenizeResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "tokenize", 0)
	defer span.End("")

	lx := lexer.New(file, lexer.Options{
		Factory:  opts.newFactory(),
		Messages: opts.messages(),
		Tracer:   tracer,
	})

	res := &TokenizeResult{File: file}
	var ds []diag.Diagnostic
	locator := syntax.NewTree(nil, file)
	opts.Timer.MeasureBytes("lex", len(file.Content), func() {
		var off uint32
		for {
			tok := lx.Next()
			res.Tokens = append(res.Tokens, tok)
			res.Offsets = append(res.Offsets, off)
			if infos := tok.Diagnostics(); len(infos) > 0 {
				start := off + tok.LeadingWidth()
				loc := diag.SourceLocation{
					Tree: locator,
					Span: source.Span{File: file.ID, Start: start, End: start + tok.Width()},
				}
				for _, info := range infos {
					ds = append(ds, diag.New(info, loc))
				}
			}
			off += tok.FullWidth()
			if tok.Kind() == token.EndOfFileToken {
				break
			}
		}
	})
	res.Bag = finishBag(ds, &opts)
	span.WithExtra("tokens", fmt.Sprint(len(res.Tokens)))
	return res
}

// finishBag applies the policy, then bounds, dedups and sorts.
func finishBag(ds []diag.Diagnostic, opts *Options) *diag.Bag {
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, d := range opts.Policy.ApplyAll(ds) {
		bag.Add(d)
	}
	bag.Dedup()
	bag.Sort()
	return bag
}
