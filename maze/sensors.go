package maze

import (
	"encoding/json"
	"fmt"
)

// SensorState is one directional observation around the robot.
type SensorState int

const (
	SensorFree SensorState = iota
	SensorBlocked
	SensorTarget
)

// ParseSensorState decodes the wire code for a sensor channel.
func ParseSensorState(s string) (SensorState, error) {
	switch s {
	case "f", "F":
		return SensorFree, nil
	case "b", "B":
		return SensorBlocked, nil
	case "t", "T":
		return SensorTarget, nil
	default:
		return SensorFree, fmt.Errorf("invalid sensor state %q", s)
	}
}

// Cell converts a sensor observation to the terrain it reports.
func (s SensorState) Cell() Cell {
	switch s {
	case SensorBlocked:
		return Blocked
	case SensorTarget:
		return Target
	default:
		return Free
	}
}

func (s SensorState) String() string {
	switch s {
	case SensorBlocked:
		return "blocked"
	case SensorTarget:
		return "target"
	default:
		return "free"
	}
}

// Code returns the single-letter wire code for the observation.
func (s SensorState) Code() string {
	switch s {
	case SensorBlocked:
		return "b"
	case SensorTarget:
		return "t"
	default:
		return "f"
	}
}

// MarshalJSON encodes the observation as its single-letter wire code.
func (s SensorState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.Code() + `"`), nil
}

// UnmarshalJSON decodes the single-letter wire code.
func (s *SensorState) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	state, err := ParseSensorState(code)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// SensorReadings is one eight-channel observation anchored at the robot's
// position. The cardinal channels drive movement; the diagonal channels are
// used only to sight the target.
type SensorReadings struct {
	Up        SensorState `json:"up"`
	Down      SensorState `json:"down"`
	Left      SensorState `json:"left"`
	Right     SensorState `json:"right"`
	UpLeft    SensorState `json:"up_left"`
	UpRight   SensorState `json:"up_right"`
	DownLeft  SensorState `json:"down_left"`
	DownRight SensorState `json:"down_right"`
}

// Cardinal returns the channel for a cardinal move direction.
func (r SensorReadings) Cardinal(d Direction) SensorState {
	switch d {
	case Up:
		return r.Up
	case Down:
		return r.Down
	case Left:
		return r.Left
	default:
		return r.Right
	}
}

// sensorOffsets enumerates all eight channels with their coordinate offsets,
// in the fixed target-detection scan order.
func (r SensorReadings) sensorOffsets() [8]struct {
	State  SensorState
	Dr, Dc int
} {
	return [8]struct {
		State  SensorState
		Dr, Dc int
	}{
		{r.Up, -1, 0},
		{r.Down, 1, 0},
		{r.Left, 0, -1},
		{r.Right, 0, 1},
		{r.UpLeft, -1, -1},
		{r.UpRight, -1, 1},
		{r.DownLeft, 1, -1},
		{r.DownRight, 1, 1},
	}
}

// DetectTarget scans the eight channels in fixed order and returns the
// coordinate of the first Target sighting relative to pos.
func (r SensorReadings) DetectTarget(pos FreePosition) (FreePosition, bool) {
	for _, s := range r.sensorOffsets() {
		if s.State == SensorTarget {
			return FreePosition{Row: pos.Row + s.Dr, Col: pos.Col + s.Dc}, true
		}
	}
	return FreePosition{}, false
}
