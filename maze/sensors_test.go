package maze

import (
	"encoding/json"
	"testing"
)

func TestSensorReadingsWireFormat(t *testing.T) {
	raw := `{"up":"f","down":"b","left":"t","right":"f","up_left":"b","up_right":"f","down_left":"b","down_right":"b"}`

	var r SensorReadings
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshaling frame: %v", err)
	}
	if r.Up != SensorFree || r.Down != SensorBlocked || r.Left != SensorTarget {
		t.Fatalf("decoded frame = %+v", r)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshaling frame: %v", err)
	}
	var back SensorReadings
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-decoding frame: %v", err)
	}
	if back != r {
		t.Fatalf("round trip mismatch: %+v != %+v", back, r)
	}
}

func TestSensorStateRejectsUnknownCode(t *testing.T) {
	var r SensorReadings
	if err := json.Unmarshal([]byte(`{"up":"x"}`), &r); err == nil {
		t.Fatal("unknown sensor code should fail to decode")
	}
}

func TestSensorStateCell(t *testing.T) {
	if SensorFree.Cell() != Free || SensorBlocked.Cell() != Blocked || SensorTarget.Cell() != Target {
		t.Fatal("sensor to cell mapping is wrong")
	}
}

func TestCardinal(t *testing.T) {
	r := SensorReadings{Up: SensorFree, Down: SensorBlocked, Left: SensorTarget, Right: SensorFree}
	cases := []struct {
		dir  Direction
		want SensorState
	}{
		{Up, SensorFree},
		{Down, SensorBlocked},
		{Left, SensorTarget},
		{Right, SensorFree},
	}
	for _, tc := range cases {
		if got := r.Cardinal(tc.dir); got != tc.want {
			t.Errorf("Cardinal(%s) = %v, want %v", tc.dir, got, tc.want)
		}
	}
}

func TestDetectTarget(t *testing.T) {
	pos := FreePosition{Row: 2, Col: 3}

	if _, ok := (SensorReadings{}).DetectTarget(pos); ok {
		t.Fatal("all-free frame should not detect a target")
	}

	r := SensorReadings{DownRight: SensorTarget}
	got, ok := r.DetectTarget(pos)
	if !ok || got != (FreePosition{Row: 3, Col: 4}) {
		t.Fatalf("DetectTarget = %v, %v", got, ok)
	}

	// Cardinal channels come before diagonals in the scan order.
	r = SensorReadings{Down: SensorTarget, DownRight: SensorTarget}
	got, ok = r.DetectTarget(pos)
	if !ok || got != (FreePosition{Row: 3, Col: 3}) {
		t.Fatalf("DetectTarget with two sightings = %v, want the down channel", got)
	}
}

func TestCellCodes(t *testing.T) {
	for _, c := range []Cell{Free, Blocked, Target, Robot, Unknown} {
		if got := ParseCell(c.Code()); got != c {
			t.Errorf("ParseCell(%q) = %v, want %v", c.Code(), got, c)
		}
	}
	if got := ParseCell("z"); got != Unknown {
		t.Errorf("ParseCell(z) = %v, want unknown", got)
	}

	walkable := map[Cell]bool{Free: true, Target: true, Robot: true, Blocked: false, Unknown: false}
	for c, want := range walkable {
		if got := c.Walkable(); got != want {
			t.Errorf("%s.Walkable() = %v, want %v", c, got, want)
		}
	}
}
