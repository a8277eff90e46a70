package diag

import (
	"fmt"

	"golang.org/x/text/language"
)

// Diagnostic is an Info placed at a Location.
type Diagnostic struct {
	Info     Info
	Location Location
}

// New builds a Diagnostic; a nil location becomes NoLocation.
func New(info Info, loc Location) Diagnostic {
	if loc == nil {
		loc = NoLocation{}
	}
	return Diagnostic{Info: info, Location: loc}
}

func (d Diagnostic) Code() Code         { return d.Info.Code() }
func (d Diagnostic) ID() string         { return d.Info.ID() }
func (d Diagnostic) Severity() Severity { return d.Info.Severity() }
func (d Diagnostic) Message() string    { return d.Info.Message() }

func (d Diagnostic) Format(tag language.Tag) string { return d.Info.Format(tag) }

// Position resolves the location; ok is false for NoLocation.
func (d Diagnostic) Position() (Position, bool) {
	if d.Location == nil {
		return Position{}, false
	}
	return d.Location.Resolve()
}

// String renders `<severity> <ID>: <message>`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity().Label(), d.ID(), d.Message())
}

// Equal compares info structurally and locations by path and span.
func (d Diagnostic) Equal(other Diagnostic) bool {
	return d.Info.Equal(other.Info) && sameLocation(d.Location, other.Location)
}
