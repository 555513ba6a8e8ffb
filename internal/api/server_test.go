package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stagewalk/stagewalk/pkg/pipeline"
	"github.com/stagewalk/stagewalk/pkg/report"
	"github.com/stagewalk/stagewalk/pkg/store"
)

const testConfig = `
[game]
version = 1
skills = ["dash"]

[[stage]]
id = "start"
begin = true
unlock-skills = ["dash"]

[stage.next-stage]
"goal" = ["dash"]

[[stage]]
id = "goal"
end = true
`

const testConfigYAML = `
game:
  version: 1
  skills: [dash]
stage:
  - id: start
    begin: true
    next-stage:
      goal: [dash]
  - id: goal
    end: true
`

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := NewServer(pipeline.NewRunner(nil, nil), st, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAnalyze(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/analyze", "application/toml", strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rep.ID == "" {
		t.Error("response report has no id")
	}
	if rep.Summary.Paths != 1 || rep.Summary.Finished != 1 {
		t.Errorf("summary = %+v", rep.Summary)
	}

	// The report must have been persisted under its id.
	if _, err := st.Get(context.Background(), rep.ID); err != nil {
		t.Errorf("report not persisted: %v", err)
	}
}

func TestAnalyzeYAMLByContentType(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/analyze", "application/yaml", strings.NewReader(testConfigYAML))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatal(err)
	}
	// The ungated start stage dead-ends without dash; the gated edge is
	// closed. One dead end, not winnable.
	if rep.Summary.DeadEnds != 1 {
		t.Errorf("summary = %+v, want one dead end", rep.Summary)
	}
}

func TestAnalyzeBadDocument(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "MissingGameSection",
			body:       "[[stage]]\nid = \"a\"\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnsupportedVersion",
			body:       "[game]\nversion = 99\n\n[[stage]]\nid = \"a\"\nend = true\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NoEndStage",
			body:       "[game]\nversion = 1\n\n[[stage]]\nid = \"a\"\nbegin = true\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed",
			body:       "[game\n",
			wantStatus: http.StatusBadRequest,
		},
	}

	ts, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/analyze", "application/toml", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error == "" {
				t.Error("error response has no message")
			}
		})
	}
}

func TestAnalyzeTooLarge(t *testing.T) {
	ts, _ := newTestServer(t)

	big := strings.Repeat("#", maxConfigBytes+1)
	resp, err := http.Post(ts.URL+"/api/analyze", "application/toml", strings.NewReader(big))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestGetReport(t *testing.T) {
	ts, st := newTestServer(t)

	saved := &report.Report{ID: "known"}
	if err := st.Save(context.Background(), saved); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/api/reports/known")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	missing, err := http.Get(ts.URL + "/api/reports/unknown")
	if err != nil {
		t.Fatal(err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missing.StatusCode)
	}
}
