package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/trace"
)

var defaultExtensions = []string{".pdf", ".fdf"}

// ListFiles возвращает отсортированный список файлов с нужными расширениями.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = defaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) }) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// DiagnoseDir diagnoses every matching file under dir.
func DiagnoseDir(ctx context.Context, dir string, opts Options) (*DiagnoseResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return diagnose(ctx, source.NewFileSet(), files, opts)
}

// DiagnosePaths accepts files and directories; directories are expanded in
// place, and a file named twice is diagnosed once.
func DiagnosePaths(ctx context.Context, paths []string, opts Options) (*DiagnoseResult, error) {
	files, err := ExpandPaths(paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return DiagnoseFiles(ctx, files, opts)
}

// ExpandPaths resolves directories to the files DiagnoseDir would pick.
func ExpandPaths(paths, exts []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	var files []string
	add := func(p string) {
		key := filepath.Clean(p)
		if !seen[key] {
			seen[key] = true
			files = append(files, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// несуществующие файлы попадут в результат как IO-ошибки
			add(p)
			continue
		}
		listed, err := ListFiles(p, exts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", p, err)
		}
		for _, f := range listed {
			add(f)
		}
	}
	return files, nil
}

// DiagnoseFiles lexes and parses files in parallel. All files share one
// green factory, so equal subtrees across files share nodes.
func DiagnoseFiles(ctx context.Context, files []string, opts Options) (*DiagnoseResult, error) {
	return diagnose(ctx, source.NewFileSet(), files, opts)
}

func diagnose(ctx context.Context, fileSet *source.FileSet, files []string, opts Options) (*DiagnoseResult, error) {
	res := &DiagnoseResult{FileSet: fileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return res, nil
	}
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "diagnose", 0)
	defer runSpan.End(fmt.Sprintf("%d files", len(files)))

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	opts.Timer.Measure("load", func() {
		for i, path := range files {
			fileIDs[i], loadErrors[i] = fileSet.Load(path)
		}
	})
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	factory := opts.newFactory()
	var diskErrors atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			var fr FileResult
			if err := loadErrors[i]; err != nil {
				fr = loadFailure(path, err, &opts)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			} else {
				fr = diagnoseOne(gctx, fileSet.Get(fileIDs[i]), path, factory, &opts, runSpan.ID(), &diskErrors)
				status := StatusDone
				if fr.Cached {
					status = StatusCached
				}
				emit(opts.Progress, Event{
					File: path, Stage: StageDiagnose, Status: status, Elapsed: time.Since(start),
					Errors: fr.Bag.Count(diag.SevError), Warnings: fr.Bag.Count(diag.SevWarning),
				})
			}
			fr.Elapsed = time.Since(start)
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = fr
			return nil
		})
	}

	err := g.Wait()
	res.Cache = factory.Cache().Stats()
	res.Interned = factory.Interned()
	res.DiskErrors = int(diskErrors.Load())
	return res, err
}

func loadFailure(path string, err error, opts *Options) FileResult {
	info := diag.NewInfo(opts.messages(), diag.IOLoadFileError, err.Error())
	d := diag.New(info, diag.ExternalLocation{Path: path})
	return FileResult{Path: path, Bag: finishBag([]diag.Diagnostic{d}, opts)}
}

func diagnoseOne(
	ctx context.Context,
	file *source.File,
	path string,
	factory *green.Factory,
	opts *Options,
	parent uint64,
	diskErrors *atomic.Int64,
) FileResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parent)
	defer span.End("")

	useDisk := opts.Disk != nil && !opts.KeepTrees
	key := cacheKey(file, opts.maxErrors())
	if useDisk {
		var payload DiskPayload
		ok, err := opts.Disk.Get(key, &payload)
		if err != nil {
			diskErrors.Add(1)
		}
		if ok {
			span.WithExtra("cache", "hit")
			ds := fromPayload(&payload, file, opts.messages())
			return FileResult{Path: path, FileID: file.ID, Bag: finishBag(ds, opts), Tokens: payload.Tokens, Cached: true}
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	r := parseWith(ctx, file, factory, opts)

	var ds []diag.Diagnostic
	var bag *diag.Bag
	opts.Timer.Measure("diagnose", func() {
		ds = r.Tree.Diagnostics()
		bag = finishBag(ds, opts)
	})
	if useDisk {
		if err := opts.Disk.Put(key, toPayload(path, r.Tokens, ds)); err != nil {
			diskErrors.Add(1)
		}
	}

	fr := FileResult{Path: path, FileID: file.ID, Bag: bag, Tokens: r.Tokens}
	if opts.KeepTrees {
		fr.Tree = r.Tree
	}
	return fr
}
