package maze

// Grid is a dense, fully-known rectangular maze. It is the planning frame:
// immutable once constructed, read concurrently without synchronization.
type Grid struct {
	cells  []Cell
	height int
	width  int
}

// GridFromFlattened builds a Grid from a row-major flattened cell code slice
// and a [height, width] shape. Construction fails with a ShapeError when the
// shape is malformed or the cell count does not match it.
func GridFromFlattened(cells []string, shape []int) (*Grid, error) {
	if len(shape) != 2 {
		return nil, &ShapeError{Shape: shape, Cells: len(cells)}
	}
	height, width := shape[0], shape[1]
	if height < 0 || width < 0 || len(cells) != height*width {
		return nil, &ShapeError{Shape: shape, Cells: len(cells)}
	}

	grid := make([]Cell, len(cells))
	for i, code := range cells {
		grid[i] = ParseCell(code)
	}
	return &Grid{cells: grid, height: height, width: width}, nil
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

// Get returns the cell at pos, or false when pos is out of bounds.
func (g *Grid) Get(pos Position) (Cell, bool) {
	if pos.Row < 0 || pos.Row >= g.height || pos.Col < 0 || pos.Col >= g.width {
		return Unknown, false
	}
	return g.cells[pos.Index(g.width)], true
}

// IsWalkable reports whether pos is in bounds and holds a walkable cell.
func (g *Grid) IsWalkable(pos Position) bool {
	cell, ok := g.Get(pos)
	return ok && cell.Walkable()
}

// Neighbors returns the in-bounds, walkable cardinal neighbors of pos paired
// with the direction that reaches them.
func (g *Grid) Neighbors(pos Position) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, n := range pos.Neighbors(g.height, g.width) {
		if g.IsWalkable(n.Pos) {
			out = append(out, n)
		}
	}
	return out
}

// FindRobot locates the unique Robot cell. Its absence is fatal for planning.
func (g *Grid) FindRobot() (Position, error) {
	return g.find(Robot)
}

// FindTarget locates the unique Target cell.
func (g *Grid) FindTarget() (Position, error) {
	return g.find(Target)
}

func (g *Grid) find(want Cell) (Position, error) {
	for i, c := range g.cells {
		if c == want {
			return PositionFromIndex(i, g.width), nil
		}
	}
	return Position{}, &NotFoundError{What: want}
}

// Flattened returns the grid as row-major cell codes with its shape, the
// same wire form GridFromFlattened accepts.
func (g *Grid) Flattened() ([]string, []int) {
	codes := make([]string, len(g.cells))
	for i, c := range g.cells {
		codes[i] = c.Code()
	}
	return codes, []int{g.height, g.width}
}
