// Package config loads pdfsyn.toml, the per-directory settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/msgs"
	"pdfsyntax/internal/trace"
)

// FileName is the settings file looked up by Find.
const FileName = "pdfsyn.toml"

type Config struct {
	Diagnostics Diagnostics `toml:"diagnostics"`
	Driver      Driver      `toml:"driver"`
	Cache       Cache       `toml:"cache"`
	Trace       Trace       `toml:"trace"`

	// Path is the file the config was read from; empty for Default().
	Path string `toml:"-"`
}

type Diagnostics struct {
	Max              int      `toml:"max"`
	WarningsAsErrors []string `toml:"warnings_as_errors"`
	Suppress         []string `toml:"suppress"`
	Language         string   `toml:"language"`
}

type Driver struct {
	Jobs       int      `toml:"jobs"` // 0 = GOMAXPROCS
	Extensions []string `toml:"extensions"`
	Cache      bool     `toml:"cache"`
	CacheDir   string   `toml:"cache_dir"`
}

type Cache struct {
	Bits int `toml:"bits"` // node cache size is 1<<bits
}

type Trace struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

var (
	// ErrUnknownKey reports keys the file sets that Config does not know.
	ErrUnknownKey = errors.New("unknown key")
)

// Default returns the settings used when no pdfsyn.toml is found.
func Default() Config {
	return Config{
		Diagnostics: Diagnostics{Max: 100},
		Driver: Driver{
			Extensions: []string{".pdf", ".fdf"},
			Cache:      true,
		},
		Cache: Cache{Bits: green.DefaultCacheBits},
		Trace: Trace{Level: "off", Mode: "stream", Format: "auto"},
	}
}

// Load decodes path over Default(), so absent keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir to locate pdfsyn.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads explicit when it is set, else the nearest pdfsyn.toml above
// startDir, else Default().
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("diagnostics.max must not be negative")
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	if _, err := msgs.ParseLanguage(c.Diagnostics.Language); err != nil {
		return fmt.Errorf("diagnostics.language: %w", err)
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("driver.jobs must not be negative")
	}
	if c.Cache.Bits != 0 && (c.Cache.Bits < 4 || c.Cache.Bits > 24) {
		return fmt.Errorf("cache.bits must be within 4..24, got %d", c.Cache.Bits)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("trace.level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("trace.mode: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("trace.format: %w", err)
	}
	return nil
}

// Policy builds the diagnostics policy described by the config.
func (c *Config) Policy() (*diag.Policy, error) {
	return diag.NewPolicy(c.Diagnostics.WarningsAsErrors, c.Diagnostics.Suppress)
}

// HasExtension reports whether path should be picked up when walking
// directories.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Driver.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes Default() to dir/pdfsyn.toml unless it already exists.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	cfg := Default()
	data, err := cfg.Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
