package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kwv/mazerover/maze"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app := newSimulatorApp(t, "corridor")
	handler := newHTTPServer(app)

	rec := get(t, handler, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("/health status = %d", rec.Code)
	}

	var status struct {
		Status string `json:"status"`
		HasRun bool   `json:"hasRun"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if status.Status != "ok" || status.HasRun {
		t.Errorf("health = %+v", status)
	}

	app.Tracker.UpdateRun(solveForTest(t, app))
	rec = get(t, handler, "/health")
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if !status.HasRun {
		t.Error("hasRun still false after a run")
	}
}

func TestRenderEndpointsWithoutRun(t *testing.T) {
	app := newSimulatorApp(t, "corridor")
	handler := newHTTPServer(app)

	for _, path := range []string{"/maze.png", "/maze.svg", "/maze.geojson", "/report.html"} {
		if rec := get(t, handler, path); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s before any run: status %d, want 503", path, rec.Code)
		}
	}
}

func TestRenderEndpointsWithRun(t *testing.T) {
	app := newSimulatorApp(t, "default")
	app.Tracker.UpdateRun(solveForTest(t, app))
	handler := newHTTPServer(app)

	cases := []struct {
		path        string
		contentType string
		sniff       string
	}{
		{"/maze.png", "image/png", "\x89PNG"},
		{"/maze.svg", "image/svg+xml", "<svg"},
		{"/maze.geojson", "application/geo+json", "FeatureCollection"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, handler, tc.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != tc.contentType {
				t.Errorf("content type = %q, want %q", got, tc.contentType)
			}
			if !strings.Contains(rec.Body.String(), tc.sniff) {
				t.Errorf("body does not look like %s", tc.contentType)
			}
		})
	}
}

func TestReportEndpoint(t *testing.T) {
	app := newSimulatorApp(t, "corridor")
	app.Tracker.UpdateBenchmark(&maze.Benchmark{
		Mode:    "omniscient",
		Repeat:  2,
		Entries: []maze.BenchmarkEntry{{Label: "A*", Completed: 2, MeanSteps: 4}},
	})
	handler := newHTTPServer(app)

	rec := get(t, handler, "/report.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("/report.html status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A*") {
		t.Error("report missing the benchmark label")
	}
}

func TestStateEndpoint(t *testing.T) {
	app := newSimulatorApp(t, "default")
	handler := newHTTPServer(app)

	rec := get(t, handler, "/api/state")
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/state status = %d", rec.Code)
	}
	var empty struct {
		Run   *maze.Run        `json:"run"`
		Robot *maze.RobotState `json:"robot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if empty.Run != nil || empty.Robot != nil {
		t.Errorf("fresh state = %+v", empty)
	}

	run := solveForTest(t, app)
	app.finishRun(run)

	rec = get(t, handler, "/api/state")
	var state struct {
		Run *struct {
			Mode       string `json:"mode"`
			Pathfinder string `json:"pathfinder"`
		} `json:"run"`
		Robot *maze.RobotState `json:"robot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if state.Run == nil || state.Run.Mode != "omniscient" || state.Run.Pathfinder != "A*" {
		t.Errorf("state run = %+v", state.Run)
	}
	if state.Robot == nil {
		t.Error("state robot missing after a simulator run")
	}
}

func TestResultsEndpoint(t *testing.T) {
	app := newSimulatorApp(t, "default")
	handler := newHTTPServer(app)

	if rec := get(t, handler, "/api/results"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("/api/results without a store: status %d, want 503", rec.Code)
	}

	store, err := maze.OpenResultsStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenResultsStore: %v", err)
	}
	app.Store = store
	app.finishRun(solveForTest(t, app))

	rec := get(t, handler, "/api/results")
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/results status = %d", rec.Code)
	}
	var records []maze.RunRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decoding results: %v", err)
	}
	if len(records) != 1 || records[0].Pathfinder != "A*" {
		t.Errorf("results = %+v", records)
	}
}

func TestIndexPage(t *testing.T) {
	app := newSimulatorApp(t, "corridor")
	handler := newHTTPServer(app)

	rec := get(t, handler, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("/ status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, "/maze.svg") {
		t.Error("index page does not embed the maze render")
	}

	if rec := get(t, handler, "/no-such-page"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
