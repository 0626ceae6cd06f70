package maze

import (
	"sync"
	"time"
)

// RobotState is the robot's last reported position for HTTP state reporting.
type RobotState struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Timestamp time.Time `json:"timestamp"`
}

// RunTracker tracks the latest solve and benchmark outcomes for the HTTP
// endpoints.
type RunTracker struct {
	mu        sync.RWMutex
	lastRun   *Run
	benchmark *Benchmark
	robot     *RobotState
}

// NewRunTracker creates a new run tracker.
func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// UpdateRun stores the latest completed run.
func (rt *RunTracker) UpdateRun(run *Run) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.lastRun = run
}

// LastRun returns the latest completed run, or nil if none exists.
func (rt *RunTracker) LastRun() *Run {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.lastRun
}

// HasRun returns true if at least one run has completed.
func (rt *RunTracker) HasRun() bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.lastRun != nil
}

// UpdateBenchmark stores the latest benchmark outcome.
func (rt *RunTracker) UpdateBenchmark(b *Benchmark) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.benchmark = b
}

// LastBenchmark returns the latest benchmark, or nil if none exists.
func (rt *RunTracker) LastBenchmark() *Benchmark {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.benchmark
}

// UpdateRobot records the robot's current position.
func (rt *RunTracker) UpdateRobot(pos Position) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.robot = &RobotState{Row: pos.Row, Col: pos.Col, Timestamp: time.Now()}
}

// Robot returns the robot's last reported position, or nil if unknown.
func (rt *RunTracker) Robot() *RobotState {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if rt.robot == nil {
		return nil
	}
	copy := *rt.robot
	return &copy
}
