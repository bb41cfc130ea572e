package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/cartesian/pkg/buildinfo"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := quietLogger()
	ts := httptest.NewServer(newServer(pipeline.NewRunner(nil, nil, logger), logger).routes())
	t.Cleanup(ts.Close)
	return ts
}

const inlineChart = `{
  "chart": {"title": "Regions", "viewport": {"width": 400, "height": 300}, "layers": [{"type": "column"}]},
  "data": [{"categories": ["North", "South", "East"], "series": [{"name": "Sales", "values": [3, 5, 2]}]}]
}`

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("missing request ID header")
	}
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version != buildinfo.Version {
		t.Errorf("health = %+v", body)
	}
}

func TestServeRender(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/render", inlineChart)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	b, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"<svg", ">North<", "Regions"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestServeLayout(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/layout", inlineChart)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}
	var doc struct {
		Range struct {
			Start int `json:"start_index"`
			End   int `json:"end_index"`
		} `json:"range"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Range.Start != 0 || doc.Range.End != 2 {
		t.Errorf("range = %+v, want 0..2", doc.Range)
	}
}

func TestServeErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed body", `{"chart":`, "INVALID_INPUT"},
		{"missing chart", `{"data": []}`, "INVALID_INPUT"},
		{"data count mismatch", `{"chart": {"layers": [{"type": "column"}]}, "data": []}`, "INVALID_INPUT"},
		{"unknown chart type", `{"chart": {"layers": [{"type": "pie"}]}, "data": [{"categories": ["a"], "series": [{"name": "s", "values": [1]}]}]}`, "INVALID_CHART_TYPE"},
		{"bad viewport", `{"chart": {"layers": [{"type": "column"}]}, "width": -5, "data": [{"categories": ["a"], "series": [{"name": "s", "values": [1]}]}]}`, "INVALID_VIEWPORT"},
	}
	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if string(body.Code) != tt.wantCode {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.wantCode, body.Message)
			}
			if body.RequestID == "" || body.RequestID != resp.Header.Get(requestIDHeader) {
				t.Errorf("request_id = %q, header = %q", body.RequestID, resp.Header.Get(requestIDHeader))
			}
		})
	}
}

func TestServeKeepsClientRequestID(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}
