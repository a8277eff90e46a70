package diag

// Reporter — минимальный контракт получения диагностик от производителей вне дерева
// (ввод-вывод, драйвер). Лексические и синтаксические ошибки живут в самих узлах.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// PolicyReporter applies a Policy before forwarding.
type PolicyReporter struct {
	Policy *Policy
	Next   Reporter
}

func (r PolicyReporter) Report(d Diagnostic) {
	if r.Next == nil {
		return
	}
	if r.Policy != nil {
		var keep bool
		if d, keep = r.Policy.Apply(d); !keep {
			return
		}
	}
	r.Next.Report(d)
}

// ReporterFunc adapts a plain function.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }
