package cartesian

// LoadMoreHandler is told which categories are visible after every render.
// It decides on its own whether the data source should fetch more rows.
type LoadMoreHandler interface {
	ViewportChanged(r ViewportDataRange, loaded int)
}

// LoadMoreFunc adapts a function to LoadMoreHandler.
type LoadMoreFunc func(r ViewportDataRange, loaded int)

func (f LoadMoreFunc) ViewportChanged(r ViewportDataRange, loaded int) { f(r, loaded) }

// ThresholdLoader requests more rows once the visible window comes within
// Threshold categories of the last loaded one. It asks at most once per
// loaded size.
type ThresholdLoader struct {
	Threshold int
	Request   func(loaded int)

	requestedAt int
}

func (t *ThresholdLoader) ViewportChanged(r ViewportDataRange, loaded int) {
	if loaded <= t.requestedAt || t.Request == nil {
		return
	}
	if r.EndIndex >= loaded-1-t.Threshold {
		t.requestedAt = loaded
		t.Request(loaded)
	}
}

// Reset forgets earlier requests, for example after the data source was
// replaced.
func (t *ThresholdLoader) Reset() { t.requestedAt = 0 }
