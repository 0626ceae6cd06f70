package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPath means the requested target is unreachable from the start
	// under the grid's walkability rules.
	ErrNoPath = errors.New("no path to target")

	// ErrSurrounded means an exploration algorithm found all four cardinal
	// directions blocked and cannot move at all.
	ErrSurrounded = errors.New("completely surrounded, no legal move")

	// ErrLoopGuard aborts a solve whose step count exceeded the safety
	// ceiling, which points at algorithmic non-termination.
	ErrLoopGuard = errors.New("step ceiling exceeded, possible infinite loop")

	// ErrSensorStreamClosed is returned by SensorStream.Recv once the
	// underlying transport stops delivering readings.
	ErrSensorStreamClosed = errors.New("sensor stream closed")
)

// ShapeError reports a malformed flattened grid: a shape that is not
// [height, width] or a cell count that does not match it.
type ShapeError struct {
	Shape []int
	Cells int
}

func (e *ShapeError) Error() string {
	if len(e.Shape) != 2 {
		return fmt.Sprintf("invalid shape: expected [height, width], got %v", e.Shape)
	}
	return fmt.Sprintf("grid size mismatch: shape %v wants %d cells, got %d",
		e.Shape, e.Shape[0]*e.Shape[1], e.Cells)
}

// NotFoundError reports that a required unique cell (robot or target) is
// absent from a bounded grid.
type NotFoundError struct {
	What Cell
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in grid", e.What)
}

// MoveError reports a remote move that the maze rejected. Steps are 1-based
// so the message matches the operator's step log.
type MoveError struct {
	Step int
	Dir  Direction
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move failed at step %d: %s", e.Step, e.Dir)
}
