package maze

import "fmt"

// Direction is one of the four cardinal moves the robot can make.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all moves in the fixed order used for deterministic
// neighbor expansion: Up, Down, Left, Right.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the (row, col) unit offset of the direction. Up decreases the
// row, matching the flattened row-major map layout.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// TurnLeft returns the direction 90 degrees counter-clockwise.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	default:
		return Up
	}
}

// TurnRight returns the direction 90 degrees clockwise.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// ParseDirection converts a wire string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Up, fmt.Errorf("invalid move direction %q", s)
	}
}

// Position addresses a cell in a bounded grid. Rows and columns are
// non-negative and only valid within a grid's declared height and width.
type Position struct {
	Row int
	Col int
}

// Index converts the position to its linear offset in a row-major flattened
// grid of the given width.
func (p Position) Index(width int) int {
	return p.Row*width + p.Col
}

// PositionFromIndex is the inverse of Index.
func PositionFromIndex(index, width int) Position {
	return Position{Row: index / width, Col: index % width}
}

// ManhattanDistance is the L1 distance between two positions. It is an
// admissible heuristic on unit-cost grids restricted to cardinal moves.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// Step returns the position one cell in the given direction, or false when
// that would leave the (height, width) bounds.
func (p Position) Step(d Direction, height, width int) (Position, bool) {
	dr, dc := d.Delta()
	next := Position{Row: p.Row + dr, Col: p.Col + dc}
	if next.Row < 0 || next.Row >= height || next.Col < 0 || next.Col >= width {
		return Position{}, false
	}
	return next, true
}

// Neighbor pairs an adjacent position with the direction that reaches it.
type Neighbor struct {
	Pos Position
	Dir Direction
}

// Neighbors returns the in-bounds cardinal neighbors of p.
func (p Position) Neighbors(height, width int) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, d := range Directions {
		if next, ok := p.Step(d, height, width); ok {
			out = append(out, Neighbor{Pos: next, Dir: d})
		}
	}
	return out
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// FreePosition addresses a cell in the unbounded frontier. Coordinates are
// signed: exploration starts at the origin and may move in any direction
// before the discovered footprint is known.
type FreePosition struct {
	Row int
	Col int
}

// Step returns the position one cell in the given direction. There are no
// bounds to respect.
func (p FreePosition) Step(d Direction) FreePosition {
	dr, dc := d.Delta()
	return FreePosition{Row: p.Row + dr, Col: p.Col + dc}
}

// FreeNeighbor pairs an adjacent frontier position with its direction.
type FreeNeighbor struct {
	Pos FreePosition
	Dir Direction
}

// Neighbors returns all four cardinal neighbors unconditionally.
func (p FreePosition) Neighbors() [4]FreeNeighbor {
	return [4]FreeNeighbor{
		{Pos: FreePosition{Row: p.Row - 1, Col: p.Col}, Dir: Up},
		{Pos: FreePosition{Row: p.Row + 1, Col: p.Col}, Dir: Down},
		{Pos: FreePosition{Row: p.Row, Col: p.Col - 1}, Dir: Left},
		{Pos: FreePosition{Row: p.Row, Col: p.Col + 1}, Dir: Right},
	}
}

func (p FreePosition) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
