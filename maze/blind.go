package maze

import (
	"context"
	"fmt"
	"log"
	"time"
)

// explorationStepLimit bounds the exploration loop so a cycling strategy
// cannot run forever.
const explorationStepLimit = 10000

// BlindSolver solves a maze it cannot see. It explores with a sensor-driven
// strategy while building a map of everything observed, then plans on the
// discovered map, resets the robot and replays the planned path.
type BlindSolver struct {
	transport  Transport
	explorer   Explorer
	pathfinder Pathfinder
	delay      time.Duration
}

// NewBlindSolver wires an exploration strategy and a pathfinder to a
// transport.
func NewBlindSolver(t Transport, e Explorer, p Pathfinder, delay time.Duration) *BlindSolver {
	return &BlindSolver{transport: t, explorer: e, pathfinder: p, delay: delay}
}

// Solve runs the explore, convert, plan, execute cycle.
func (s *BlindSolver) Solve(ctx context.Context) (*Run, error) {
	s.explorer.Reset()

	origin := FreePosition{}
	frontier, target, steps, exploration, err := s.explore(ctx, origin)
	if err != nil {
		return nil, err
	}
	log.Printf("%s explored %d cells in %d steps", s.explorer.Name(), frontier.Len(), steps)

	grid, start, goal, err := frontier.ToBounded(origin, target)
	if err != nil {
		return nil, err
	}

	planStart := time.Now()
	path := s.pathfinder.FindPath(grid, start, goal)
	planning := time.Since(planStart)
	if path == nil {
		return nil, ErrNoPath
	}
	log.Printf("%s planned %d steps in %v", s.pathfinder.Name(), len(path), planning)

	if err := s.transport.Reset(ctx, false, ""); err != nil {
		return nil, fmt.Errorf("resetting robot: %w", err)
	}
	if err := s.resyncSensors(ctx); err != nil {
		return nil, err
	}

	execStart := time.Now()
	if err := executePath(ctx, s.transport, path, s.delay); err != nil {
		return nil, err
	}
	execution := time.Since(execStart)

	return &Run{
		Mode:             "blind",
		Explorer:         s.explorer.Name(),
		Pathfinder:       s.pathfinder.Name(),
		Grid:             grid,
		Start:            start,
		Target:           goal,
		Path:             path,
		ExplorationSteps: steps,
		Result: Result{
			Steps:         steps + len(path),
			PlanningTime:  planning,
			ExecutionTime: execution,
			TotalTime:     exploration + planning + execution,
		},
	}, nil
}

// resyncSensors waits for one fresh reading after a reset so execution starts
// from the robot's post-reset cell rather than a stale in-flight frame.
func (s *BlindSolver) resyncSensors(ctx context.Context) error {
	stream := s.transport.SubscribeSensors()
	defer stream.Close()
	stream.Drain()
	if _, err := stream.Recv(ctx); err != nil {
		return fmt.Errorf("resynchronizing sensors: %w", err)
	}
	return nil
}

// explore drives the strategy until it reports completion, recording every
// observation in a frontier map. Readings for positions already observed are
// served from a cache; fresh positions drain the stream first so the reading
// matches the robot's current cell rather than a stale frame.
func (s *BlindSolver) explore(ctx context.Context, origin FreePosition) (*Frontier, FreePosition, int, time.Duration, error) {
	stream := s.transport.SubscribeSensors()
	defer stream.Close()

	start := time.Now()
	frontier := NewFrontier()
	cache := make(map[FreePosition]SensorReadings)

	pos := origin
	var target FreePosition
	targetSeen := false
	steps := 0

	for {
		readings, known := cache[pos]
		if !known {
			stream.Drain()
			var err error
			readings, err = stream.Recv(ctx)
			if err != nil {
				return nil, FreePosition{}, 0, 0, fmt.Errorf("reading sensors: %w", err)
			}
			cache[pos] = readings
			frontier.UpdateFromSensors(pos, readings)

			if t, ok := readings.DetectTarget(pos); ok && !targetSeen {
				target = t
				targetSeen = true
				log.Printf("target sighted at (%d,%d) after %d steps", t.Row, t.Col, steps)
			}
		}

		dir, more, err := s.explorer.NextMove(pos, readings, frontier)
		if err != nil {
			return nil, FreePosition{}, 0, 0, err
		}
		if !more {
			break
		}

		moved, err := s.transport.Move(ctx, dir)
		if err != nil {
			return nil, FreePosition{}, 0, 0, fmt.Errorf("move %d (%s): %w", steps+1, dir, err)
		}
		if !moved {
			return nil, FreePosition{}, 0, 0, &MoveError{Step: steps + 1, Dir: dir}
		}

		frontier.Set(pos, Free)
		pos = pos.Step(dir)
		frontier.Set(pos, Robot)

		steps++
		if steps >= explorationStepLimit {
			return nil, FreePosition{}, 0, 0, ErrLoopGuard
		}
		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, FreePosition{}, 0, 0, ctx.Err()
			}
		}
	}

	if !targetSeen {
		return nil, FreePosition{}, 0, 0, &NotFoundError{What: Target}
	}
	return frontier, target, steps, time.Since(start), nil
}
