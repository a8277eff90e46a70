package msgs

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"pdfsyntax/internal/diag"
)

// Provider implements diag.MessageProvider and diag.Renderer.
type Provider struct {
	cat       *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
	texts     map[language.Tag]map[diag.Code]string
	sev       map[diag.Code]diag.Severity

	mu       sync.Mutex
	printers map[language.Tag]*message.Printer
}

var (
	defaultOnce sync.Once
	defaultProv *Provider
)

// Default returns the process-wide provider with every built-in language.
func Default() *Provider {
	defaultOnce.Do(func() {
		defaultProv = New()
	})
	return defaultProv
}

// New builds a provider with English (the fallback) and Russian texts.
func New() *Provider {
	p := &Provider{
		cat:       catalog.NewBuilder(catalog.Fallback(language.English)),
		supported: []language.Tag{language.English, language.Russian},
		texts:     make(map[language.Tag]map[diag.Code]string),
		sev:       make(map[diag.Code]diag.Severity, len(english)),
		printers:  make(map[language.Tag]*message.Printer),
	}
	p.matcher = language.NewMatcher(p.supported)

	en := make(map[diag.Code]string, len(english))
	for _, e := range english {
		en[e.code] = e.text
		p.sev[e.code] = e.sev
		p.set(language.English, e.code, e.text)
	}
	p.texts[language.English] = en

	ru := make(map[diag.Code]string, len(russian))
	for code, text := range russian {
		ru[code] = text
		p.set(language.Russian, code, text)
	}
	p.texts[language.Russian] = ru
	return p
}

func (p *Provider) set(tag language.Tag, code diag.Code, text string) {
	// ошибка возможна только при некорректном ключе; ключи берутся из таблицы кодов
	if err := p.cat.SetString(tag, code.Name(), text); err != nil {
		panic(err)
	}
}

func (p *Provider) CodePrefix() string { return diag.DefaultCodePrefix }

func (p *Provider) Severity(code diag.Code) diag.Severity {
	if s, ok := p.sev[code]; ok {
		return s
	}
	if code.IsWarning() {
		return diag.SevWarning
	}
	return diag.SevError
}

// Match resolves tag to one of the supported languages; Und and unknown
// languages resolve to English.
func (p *Provider) Match(tag language.Tag) language.Tag {
	_, idx, conf := p.matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return p.supported[idx]
}

// Message returns the format string for code, falling back to English when
// the matched language has no translation.
func (p *Provider) Message(code diag.Code, tag language.Tag) (string, bool) {
	lang := p.Match(tag)
	if s, ok := p.texts[lang][code]; ok {
		return s, true
	}
	s, ok := p.texts[language.English][code]
	return s, ok
}

// Render formats through an x/text printer, which applies locale rules to
// numeric arguments.
func (p *Provider) Render(code diag.Code, tag language.Tag, args []any) (string, bool) {
	if _, ok := p.Message(code, tag); !ok {
		return "", false
	}
	return p.printer(p.Match(tag)).Sprintf(code.Name(), args...), true
}

func (p *Provider) printer(tag language.Tag) *message.Printer {
	p.mu.Lock()
	defer p.mu.Unlock()
	pr, ok := p.printers[tag]
	if !ok {
		pr = message.NewPrinter(tag, message.Catalog(p.cat))
		p.printers[tag] = pr
	}
	return pr
}

// Languages lists the supported languages, fallback first.
func (p *Provider) Languages() []language.Tag {
	return append([]language.Tag(nil), p.supported...)
}

// ParseLanguage parses a BCP 47 tag; the empty string yields language.Und.
func ParseLanguage(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, nil
	}
	return language.Parse(s)
}
