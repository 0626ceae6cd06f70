package maze

import "fmt"

// Frontier is the sparse, signed-coordinate maze grown incrementally from
// sensor readings during blind exploration. An absent key means Unknown.
// Growth is unbounded in principle; in practice the blind solver's step
// ceiling bounds how much territory one run can discover.
type Frontier struct {
	cells map[FreePosition]Cell
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{cells: make(map[FreePosition]Cell)}
}

// Get never fails: unobserved positions read as Unknown.
func (f *Frontier) Get(pos FreePosition) Cell {
	if c, ok := f.cells[pos]; ok {
		return c
	}
	return Unknown
}

// Set records an observation, overwriting any prior value.
func (f *Frontier) Set(pos FreePosition, c Cell) {
	f.cells[pos] = c
}

// Len returns the number of observed cells.
func (f *Frontier) Len() int {
	return len(f.cells)
}

// IsWalkable reports whether pos has been observed as walkable terrain.
func (f *Frontier) IsWalkable(pos FreePosition) bool {
	return f.Get(pos).Walkable()
}

// Neighbors returns the walkable cardinal neighbors of pos. Unlike the
// bounded grid there is no bounds check to make first.
func (f *Frontier) Neighbors(pos FreePosition) []FreeNeighbor {
	out := make([]FreeNeighbor, 0, 4)
	for _, n := range pos.Neighbors() {
		if f.IsWalkable(n.Pos) {
			out = append(out, n)
		}
	}
	return out
}

// Bounds returns the inclusive bounding box of every observed cell, or
// ok=false when nothing has been written yet.
func (f *Frontier) Bounds() (minRow, maxRow, minCol, maxCol int, ok bool) {
	if len(f.cells) == 0 {
		return 0, 0, 0, 0, false
	}
	first := true
	for pos := range f.cells {
		if first {
			minRow, maxRow, minCol, maxCol = pos.Row, pos.Row, pos.Col, pos.Col
			first = false
			continue
		}
		if pos.Row < minRow {
			minRow = pos.Row
		}
		if pos.Row > maxRow {
			maxRow = pos.Row
		}
		if pos.Col < minCol {
			minCol = pos.Col
		}
		if pos.Col > maxCol {
			maxCol = pos.Col
		}
	}
	return minRow, maxRow, minCol, maxCol, true
}

// UpdateFromSensors writes the robot's cell and all eight surrounding cells
// from one readings frame. Sensor data is authoritative: it overwrites
// whatever was recorded before.
func (f *Frontier) UpdateFromSensors(pos FreePosition, r SensorReadings) {
	f.Set(pos, Robot)
	for _, s := range r.sensorOffsets() {
		f.Set(FreePosition{Row: pos.Row + s.Dr, Col: pos.Col + s.Dc}, s.State.Cell())
	}
}

// ToBounded normalizes the observed bounding box into a zero-based bounded
// grid, with Unknown filling cells never observed, and translates the
// exploration origin and the sighted target into the new frame.
func (f *Frontier) ToBounded(origin, target FreePosition) (*Grid, Position, Position, error) {
	minRow, maxRow, minCol, maxCol, ok := f.Bounds()
	if !ok {
		return nil, Position{}, Position{}, fmt.Errorf("empty frontier: nothing was ever observed")
	}

	height := maxRow - minRow + 1
	width := maxCol - minCol + 1

	codes := make([]string, height*width)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := (row-minRow)*width + (col - minCol)
			codes[idx] = f.Get(FreePosition{Row: row, Col: col}).Code()
		}
	}

	grid, err := GridFromFlattened(codes, []int{height, width})
	if err != nil {
		return nil, Position{}, Position{}, err
	}

	start := Position{Row: origin.Row - minRow, Col: origin.Col - minCol}
	goal := Position{Row: target.Row - minRow, Col: target.Col - minCol}
	return grid, start, goal, nil
}
