package diag

// Policy escalates and suppresses diagnostics by code.
type Policy struct {
	AllWarningsAsErrors bool
	WarningsAsErrors    map[Code]bool
	Suppress            map[Code]bool
}

// NewPolicy builds a policy from code lists. The literal "all" in
// warningsAsErrors escalates every warning.
func NewPolicy(warningsAsErrors, suppress []string) (*Policy, error) {
	p := &Policy{
		WarningsAsErrors: make(map[Code]bool),
		Suppress:         make(map[Code]bool),
	}
	for _, s := range warningsAsErrors {
		if s == "all" {
			p.AllWarningsAsErrors = true
			continue
		}
		c, err := ParseCode(s)
		if err != nil {
			return nil, err
		}
		p.WarningsAsErrors[c] = true
	}
	for _, s := range suppress {
		c, err := ParseCode(s)
		if err != nil {
			return nil, err
		}
		p.Suppress[c] = true
	}
	return p, nil
}

// Apply returns the diagnostic with the policy applied and whether it should
// be kept. Errors are never suppressed.
func (p *Policy) Apply(d Diagnostic) (Diagnostic, bool) {
	if p == nil {
		return d, true
	}
	code := d.Code()
	if p.Suppress[code] && d.Severity() < SevError {
		return d, false
	}
	if d.Severity() == SevWarning && (p.AllWarningsAsErrors || p.WarningsAsErrors[code]) {
		d.Info = d.Info.Escalate()
	}
	return d, true
}

// ApplyAll filters and escalates ds into a new slice.
func (p *Policy) ApplyAll(ds []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		if d2, keep := p.Apply(d); keep {
			out = append(out, d2)
		}
	}
	return out
}
