package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest keys a cache entry.
type Digest [32]byte

// DiskCache хранит сводку диагностик по хэшу содержимого файла.
// Деревья на диск не пишутся: при попадании в кэш дерево не строится.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of diagnosing one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Tokens      int
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic before policy, with its span offsets.
// Lines are recomputed from the file on load.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Args     []any
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "diags".
	return filepath.Join(c.dir, "diags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema are reported as misses.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the content hash with everything that changes the
// diagnostics produced for the same bytes.
func cacheKey(file *source.File, maxErrors uint) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])
	fmt.Fprintf(h, "/schema=%d/max=%d", diskCacheSchemaVersion, maxErrors)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// toPayload keeps diagnostics located in file; others cannot be restored.
func toPayload(path string, tokens int, ds []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		Tokens:      tokens,
		Diagnostics: make([]CachedDiagnostic, 0, len(ds)),
	}
	for _, d := range ds {
		loc, ok := d.Location.(diag.SourceLocation)
		if !ok {
			continue
		}
		payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
			Code:     uint16(d.Code()),
			Severity: uint8(d.Severity()),
			Start:    loc.Span.Start,
			End:      loc.Span.End,
			Args:     d.Info.Args(),
		})
	}
	return payload
}

// fromPayload rebuilds diagnostics against file.
func fromPayload(payload *DiskPayload, file *source.File, p diag.MessageProvider) []diag.Diagnostic {
	locator := syntax.NewTree(nil, file)
	out := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		info := diag.NewInfo(p, diag.Code(cd.Code), cd.Args...)
		if sev := diag.Severity(cd.Severity); sev != info.Severity() {
			info = info.WithSeverity(sev)
		}
		span := source.Span{File: file.ID, Start: cd.Start, End: cd.End}
		out = append(out, diag.New(info, diag.SourceLocation{Tree: locator, Span: span}))
	}
	return out
}
