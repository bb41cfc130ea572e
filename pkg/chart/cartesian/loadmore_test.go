package cartesian

import "testing"

func TestThresholdLoader(t *testing.T) {
	var requests []int
	l := &ThresholdLoader{Threshold: 5, Request: func(loaded int) { requests = append(requests, loaded) }}

	l.ViewportChanged(ViewportDataRange{StartIndex: 0, EndIndex: 19}, 100)
	if len(requests) != 0 {
		t.Fatalf("requested too early: %v", requests)
	}
	l.ViewportChanged(ViewportDataRange{StartIndex: 75, EndIndex: 94}, 100)
	l.ViewportChanged(ViewportDataRange{StartIndex: 80, EndIndex: 99}, 100)
	if len(requests) != 1 || requests[0] != 100 {
		t.Fatalf("requests = %v, want [100]", requests)
	}
	l.ViewportChanged(ViewportDataRange{StartIndex: 180, EndIndex: 199}, 200)
	if len(requests) != 2 || requests[1] != 200 {
		t.Errorf("requests = %v, want [100 200]", requests)
	}

	l.Reset()
	l.ViewportChanged(ViewportDataRange{StartIndex: 180, EndIndex: 199}, 200)
	if len(requests) != 3 {
		t.Errorf("Reset did not allow a new request: %v", requests)
	}
}

func TestLoadMoreFunc(t *testing.T) {
	var got ViewportDataRange
	var h LoadMoreHandler = LoadMoreFunc(func(r ViewportDataRange, _ int) { got = r })
	h.ViewportChanged(ViewportDataRange{StartIndex: 3, EndIndex: 9}, 10)
	if got.Len() != 7 {
		t.Errorf("Len = %d, want 7", got.Len())
	}
}
