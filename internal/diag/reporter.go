package diag

// Reporter is the minimal contract through which pipeline phases emit
// diagnostics. Implementations: BagReporter, NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores every reported diagnostic in a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
