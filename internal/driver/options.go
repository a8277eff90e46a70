package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/text/language"

	"pdfsyntax/internal/config"
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/msgs"
	"pdfsyntax/internal/observ"
)

type Options struct {
	// MaxDiagnostics bounds the diagnostics kept per file; <=0 is unbounded.
	MaxDiagnostics int
	// Jobs is the number of files processed at once; <=0 means GOMAXPROCS.
	Jobs int
	// CacheBits sizes the shared node cache; 0 means green.DefaultCacheBits.
	CacheBits  int
	Extensions []string

	Policy   *diag.Policy
	Messages diag.MessageProvider
	Language language.Tag

	Timer    *observ.Timer
	Progress ProgressSink
	Disk     *DiskCache
	// KeepTrees keeps each file's syntax tree in the result.
	KeepTrees bool
}

// OptionsFromConfig maps a loaded pdfsyn.toml onto driver options. The disk
// cache is not opened here.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return Options{}, err
	}
	tag, err := msgs.ParseLanguage(cfg.Diagnostics.Language)
	if err != nil {
		return Options{}, fmt.Errorf("diagnostics.language: %w", err)
	}
	return Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		Jobs:           cfg.Driver.Jobs,
		CacheBits:      cfg.Cache.Bits,
		Extensions:     cfg.Driver.Extensions,
		Policy:         policy,
		Language:       tag,
	}, nil
}

func (o *Options) messages() diag.MessageProvider {
	if o.Messages == nil {
		return msgs.Default()
	}
	return o.Messages
}

func (o *Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// maxErrors is the parser's error cap derived from MaxDiagnostics.
func (o *Options) maxErrors() uint {
	if o.MaxDiagnostics <= 0 {
		return 0
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}

// newFactory creates the session factory shared by every file of one run.
func (o *Options) newFactory() *green.Factory {
	bits := o.CacheBits
	if bits == 0 {
		bits = green.DefaultCacheBits
	}
	return green.NewFactory(green.NewCache(bits))
}
