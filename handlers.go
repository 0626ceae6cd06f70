package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kwv/mazerover/maze"
)

// newHTTPServer creates an HTTP server with all endpoints
func newHTTPServer(app *App) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := struct {
			Status    string    `json:"status"`
			Timestamp time.Time `json:"timestamp"`
			HasRun    bool      `json:"hasRun"`
		}{
			Status:    "ok",
			Timestamp: time.Now(),
			HasRun:    app.Tracker.HasRun(),
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("Error encoding health status: %v", err)
		}
	})

	// Raster render of the last solve
	mux.HandleFunc("/maze.png", func(w http.ResponseWriter, r *http.Request) {
		run := app.Tracker.LastRun()
		if run == nil {
			http.Error(w, "No completed run", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := maze.NewMazeRenderer(run).WritePNG(w); err != nil {
			log.Printf("Error encoding maze PNG: %v", err)
		}
	})

	// Vector render of the last solve
	mux.HandleFunc("/maze.svg", func(w http.ResponseWriter, r *http.Request) {
		run := app.Tracker.LastRun()
		if run == nil {
			http.Error(w, "No completed run", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-cache")
		if err := maze.NewVectorMazeRenderer(run).RenderToSVG(w); err != nil {
			log.Printf("Error encoding maze SVG: %v", err)
		}
	})

	// GeoJSON export of the last solve
	mux.HandleFunc("/maze.geojson", func(w http.ResponseWriter, r *http.Request) {
		run := app.Tracker.LastRun()
		if run == nil {
			http.Error(w, "No completed run", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := maze.WriteGeoJSON(w, run); err != nil {
			log.Printf("Error encoding maze GeoJSON: %v", err)
		}
	})

	// Benchmark report
	mux.HandleFunc("/report.html", func(w http.ResponseWriter, r *http.Request) {
		b := app.Tracker.LastBenchmark()
		if b == nil {
			http.Error(w, "No completed benchmark", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if err := maze.WriteBenchmarkReport(w, b); err != nil {
			log.Printf("Error writing benchmark report: %v", err)
		}
	})

	// Last run and robot position
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		state := struct {
			Run   *maze.Run        `json:"run"`
			Robot *maze.RobotState `json:"robot"`
		}{
			Run:   app.Tracker.LastRun(),
			Robot: app.Tracker.Robot(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			log.Printf("Error encoding state: %v", err)
		}
	})

	// Recorded runs from the results store
	mux.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		if app.Store == nil {
			http.Error(w, "Results store not configured", http.StatusServiceUnavailable)
			return
		}

		records, err := app.Store.RecentRuns(50)
		if err != nil {
			log.Printf("Error loading results: %v", err)
			http.Error(w, "Error loading results", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Printf("Error encoding results: %v", err)
		}
	})

	// Default route serves HTML page embedding the SVG maze
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>mazerover</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
html,body{width:100%;height:100%;overflow:hidden;background:#1a1a1a}
img{display:block;width:100vw;height:100vh;object-fit:contain}
</style>
</head>
<body>
<img src="/maze.svg" alt="Maze">
</body>
</html>`)
	})

	// Wrap mux with logging middleware
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[HTTP] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		mux.ServeHTTP(w, r)
	})
}
