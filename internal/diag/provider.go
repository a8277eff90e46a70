package diag

import "golang.org/x/text/language"

// MessageProvider supplies the per-code default severity and the message
// text. Diagnostics carry only codes and arguments; text is looked up at
// render time.
type MessageProvider interface {
	CodePrefix() string
	Severity(code Code) Severity
	// Message returns the format string for code in the requested language.
	// ok is false when the provider has no text for the code.
	Message(code Code, tag language.Tag) (format string, ok bool)
}

// Renderer is implemented by providers that format messages themselves, for
// example with locale-aware number formatting. Arguments are already
// rendered when they were nested infos.
type Renderer interface {
	Render(code Code, tag language.Tag, args []any) (string, bool)
}

// fallbackProvider is used when an Info has no provider. It classifies codes
// by range and has no text.
type fallbackProvider struct{}

func (fallbackProvider) CodePrefix() string { return DefaultCodePrefix }

func (fallbackProvider) Severity(code Code) Severity {
	if code.IsWarning() {
		return SevWarning
	}
	return SevError
}

func (fallbackProvider) Message(Code, language.Tag) (string, bool) { return "", false }

// FallbackProvider returns a provider without message text.
func FallbackProvider() MessageProvider { return fallbackProvider{} }
