package maze

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Simulator is an in-process maze simulation implementing Transport. It
// serves local runs without a broker and gives the test suite a complete
// end-to-end harness. Sensor readings for the robot's current position are
// emitted on a fixed interval by a background goroutine, mirroring how the
// remote simulation streams its sensor topic.
type Simulator struct {
	mu      sync.Mutex
	layout  []Cell // target kept in place, robot tracked separately
	height  int
	width   int
	origin  Position
	robot   Position
	mapName string
	rng     *rand.Rand

	hub      *sensorHub
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

const defaultSensorInterval = 2 * time.Millisecond

// builtinMaps are the named layouts the simulator can load. Row strings use
// the single-letter cell codes; "r" marks the robot origin (stored as Free)
// and "t" the target.
var builtinMaps = map[string][]string{
	// 7x7 perfect maze, solvable from the top-left corner.
	"default": {
		"rfffffb",
		"bbbbbfb",
		"ffffbfb",
		"fbbfbfb",
		"fbffffb",
		"fbfbbbb",
		"fffffft",
	},
	// Single-loop corridor around a blocked core.
	"ring": {
		"rfff",
		"fbbf",
		"fbbf",
		"ffft",
	},
	// One straight hallway, the degenerate case.
	"corridor": {
		"rffft",
	},
}

// NewSimulator loads a named built-in map ("" means "default"). The interval
// is the sensor emission period; zero selects the default. Call Close when
// done to stop the emission goroutine.
func NewSimulator(mapName string, interval time.Duration) (*Simulator, error) {
	if mapName == "" {
		mapName = "default"
	}
	rows, ok := builtinMaps[mapName]
	if !ok {
		return nil, fmt.Errorf("unknown map %q", mapName)
	}
	s, err := NewSimulatorFromRows(rows, interval)
	if err != nil {
		return nil, err
	}
	s.mapName = mapName
	return s, nil
}

// NewSimulatorFromRows builds a simulator from row strings of cell codes.
// Exactly one "r" and at most one "t" are expected.
func NewSimulatorFromRows(rows []string, interval time.Duration) (*Simulator, error) {
	layout, height, width, origin, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	s := newSimulator(layout, height, width, origin, interval)
	return s, nil
}

// NewRandomSimulator generates a perfect maze of roughly the requested size
// with a deterministic seed. The robot starts in the top-left room and the
// target sits in the bottom-right one.
func NewRandomSimulator(height, width int, seed int64, interval time.Duration) *Simulator {
	rng := rand.New(rand.NewSource(seed))
	layout, h, w, origin := carveMaze(height, width, rng)
	s := newSimulator(layout, h, w, origin, interval)
	s.rng = rng
	return s
}

func newSimulator(layout []Cell, height, width int, origin Position, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = defaultSensorInterval
	}
	s := &Simulator{
		layout:   layout,
		height:   height,
		width:    width,
		origin:   origin,
		robot:    origin,
		rng:      rand.New(rand.NewSource(1)),
		hub:      newSensorHub(),
		interval: interval,
		stop:     make(chan struct{}),
	}
	go s.emit()
	return s
}

func parseRows(rows []string) (layout []Cell, height, width int, origin Position, err error) {
	height = len(rows)
	if height == 0 {
		return nil, 0, 0, Position{}, fmt.Errorf("empty map")
	}
	width = len(rows[0])

	layout = make([]Cell, 0, height*width)
	robots := 0
	for r, row := range rows {
		if len(row) != width {
			return nil, 0, 0, Position{}, fmt.Errorf("ragged map: row %d has %d cells, want %d", r, len(row), width)
		}
		for c := 0; c < width; c++ {
			cell := ParseCell(string(row[c]))
			if cell == Robot {
				origin = Position{Row: r, Col: c}
				robots++
				cell = Free // robot position is tracked, the floor under it is free
			}
			layout = append(layout, cell)
		}
	}
	if robots != 1 {
		return nil, 0, 0, Position{}, fmt.Errorf("map must contain exactly one robot cell, got %d", robots)
	}
	return layout, height, width, origin, nil
}

// carveMaze cuts a perfect maze with iterative depth-first carving over a
// room lattice: rooms sit at odd coordinates, walls between them are
// knocked out as the carve visits each room once.
func carveMaze(height, width int, rng *rand.Rand) (layout []Cell, h, w int, origin Position) {
	roomsH := height / 2
	if roomsH < 2 {
		roomsH = 2
	}
	roomsW := width / 2
	if roomsW < 2 {
		roomsW = 2
	}
	h = roomsH*2 + 1
	w = roomsW*2 + 1

	layout = make([]Cell, h*w)
	for i := range layout {
		layout[i] = Blocked
	}

	room := func(r, c int) Position { return Position{Row: r*2 + 1, Col: c*2 + 1} }
	carve := func(p Position) { layout[p.Index(w)] = Free }

	visited := make([]bool, roomsH*roomsW)
	stack := []Position{{Row: 0, Col: 0}}
	visited[0] = true
	carve(room(0, 0))

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		var options []Neighbor
		for _, n := range current.Neighbors(roomsH, roomsW) {
			if !visited[n.Pos.Index(roomsW)] {
				options = append(options, n)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := options[rng.Intn(len(options))]
		visited[next.Pos.Index(roomsW)] = true

		// Knock out the wall between the two rooms.
		a, b := room(current.Row, current.Col), room(next.Pos.Row, next.Pos.Col)
		carve(b)
		carve(Position{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2})

		stack = append(stack, next.Pos)
	}

	origin = room(0, 0)
	goal := room(roomsH-1, roomsW-1)
	layout[goal.Index(w)] = Target
	return layout, h, w, origin
}

// emit publishes the current position's readings on the configured interval
// until Close.
func (s *Simulator) emit() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.hub.Publish(s.readings())
		}
	}
}

// readings computes the eight-channel observation at the robot's position.
// Out-of-bounds reads as blocked; the target is visible on any channel.
func (s *Simulator) readings() SensorReadings {
	s.mu.Lock()
	defer s.mu.Unlock()

	look := func(dr, dc int) SensorState {
		pos := Position{Row: s.robot.Row + dr, Col: s.robot.Col + dc}
		if pos.Row < 0 || pos.Row >= s.height || pos.Col < 0 || pos.Col >= s.width {
			return SensorBlocked
		}
		switch s.layout[pos.Index(s.width)] {
		case Blocked, Unknown:
			return SensorBlocked
		case Target:
			return SensorTarget
		default:
			return SensorFree
		}
	}

	return SensorReadings{
		Up:        look(-1, 0),
		Down:      look(1, 0),
		Left:      look(0, -1),
		Right:     look(0, 1),
		UpLeft:    look(-1, -1),
		UpRight:   look(-1, 1),
		DownLeft:  look(1, -1),
		DownRight: look(1, 1),
	}
}

// GetFullGrid implements Transport.
func (s *Simulator) GetFullGrid(_ context.Context) ([]string, []int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]string, len(s.layout))
	for i, c := range s.layout {
		cells[i] = c.Code()
	}
	cells[s.robot.Index(s.width)] = Robot.Code()
	return cells, []int{s.height, s.width}, nil
}

// Move implements Transport. A move into a wall or off the board fails
// without moving the robot.
func (s *Simulator) Move(_ context.Context, d Direction) (bool, error) {
	s.mu.Lock()
	next, ok := s.robot.Step(d, s.height, s.width)
	if ok && s.layout[next.Index(s.width)] != Blocked {
		s.robot = next
	} else {
		ok = false
	}
	s.mu.Unlock()

	// Emit the post-move observation right away; the periodic tick would
	// deliver it anyway, this just shortens the wait.
	s.hub.Publish(s.readings())
	return ok, nil
}

// Reset implements Transport.
func (s *Simulator) Reset(_ context.Context, isRandom bool, mapName string) error {
	s.mu.Lock()
	switch {
	case isRandom:
		layout, h, w, origin := carveMaze(s.height, s.width, s.rng)
		s.layout, s.height, s.width, s.origin = layout, h, w, origin
	case mapName != "" && mapName != s.mapName:
		rows, ok := builtinMaps[mapName]
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("unknown map %q", mapName)
		}
		layout, h, w, origin, err := parseRows(rows)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.layout, s.height, s.width, s.origin = layout, h, w, origin
		s.mapName = mapName
	}
	s.robot = s.origin
	s.mu.Unlock()

	s.hub.Publish(s.readings())
	return nil
}

// SubscribeSensors implements Transport.
func (s *Simulator) SubscribeSensors() *SensorStream {
	return s.hub.Subscribe()
}

// RobotPosition returns the robot's current cell, for HTTP state reporting.
func (s *Simulator) RobotPosition() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robot
}

// Close stops the sensor emission goroutine and ends all subscriptions.
func (s *Simulator) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.hub.Close()
}
