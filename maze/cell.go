package maze

// Cell is the terrain state of a single maze cell.
type Cell int

const (
	Free Cell = iota
	Blocked
	Target
	Robot
	// Unknown marks a cell that has never been observed. It only appears in
	// sparse frontier storage; bounded grids built from a full map never
	// contain it unless the map itself did.
	Unknown
)

// ParseCell maps a single-letter map code to a Cell. Unrecognized codes
// (including "u") decode as Unknown.
func ParseCell(code string) Cell {
	switch code {
	case "f":
		return Free
	case "b":
		return Blocked
	case "t":
		return Target
	case "r":
		return Robot
	default:
		return Unknown
	}
}

// Code returns the single-letter map code for the cell.
func (c Cell) Code() string {
	switch c {
	case Free:
		return "f"
	case Blocked:
		return "b"
	case Target:
		return "t"
	case Robot:
		return "r"
	default:
		return "u"
	}
}

// Walkable reports whether a robot may occupy the cell.
func (c Cell) Walkable() bool {
	return c == Free || c == Target || c == Robot
}

func (c Cell) String() string {
	switch c {
	case Free:
		return "free"
	case Blocked:
		return "blocked"
	case Target:
		return "target"
	case Robot:
		return "robot"
	default:
		return "unknown"
	}
}
