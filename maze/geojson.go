package maze

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MazeToFeatureCollection converts a solved maze to GeoJSON. Cells map to
// unit squares with x=col and y=row; horizontal runs of blocked cells are
// merged into single wall polygons. The planned path becomes a LineString
// through cell centers, the robot and target become Points.
func MazeToFeatureCollection(run *Run) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	grid := run.Grid

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			cell, _ := grid.Get(Position{Row: row, Col: col})
			if cell != Blocked {
				continue
			}
			// Extend the run of blocked cells to the right.
			end := col
			for end+1 < grid.Width() {
				next, _ := grid.Get(Position{Row: row, Col: end + 1})
				if next != Blocked {
					break
				}
				end++
			}

			ring := orb.Ring{
				{float64(col), float64(row)},
				{float64(end + 1), float64(row)},
				{float64(end + 1), float64(row + 1)},
				{float64(col), float64(row + 1)},
				{float64(col), float64(row)},
			}
			f := geojson.NewFeature(orb.Polygon{ring})
			f.Properties["kind"] = "wall"
			fc.Append(f)

			col = end
		}
	}

	if len(run.Path) > 0 {
		center := func(pos Position) orb.Point {
			return orb.Point{float64(pos.Col) + 0.5, float64(pos.Row) + 0.5}
		}
		line := orb.LineString{center(run.Start)}
		pos := run.Start
		for _, d := range run.Path {
			pos, _ = pos.Step(d, grid.Height(), grid.Width())
			line = append(line, center(pos))
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "path"
		f.Properties["pathfinder"] = run.Pathfinder
		f.Properties["steps"] = len(run.Path)
		fc.Append(f)
	}

	robot := geojson.NewFeature(orb.Point{float64(run.Start.Col) + 0.5, float64(run.Start.Row) + 0.5})
	robot.Properties["kind"] = "robot"
	fc.Append(robot)

	target := geojson.NewFeature(orb.Point{float64(run.Target.Col) + 0.5, float64(run.Target.Row) + 0.5})
	target.Properties["kind"] = "target"
	fc.Append(target)

	return fc
}

// WriteGeoJSON encodes a solved maze as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, run *Run) error {
	fc := MazeToFeatureCollection(run)
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ParseFeatureCollection reads a maze FeatureCollection back, for tooling
// that post-processes exported mazes.
func ParseFeatureCollection(data []byte) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, err
	}
	return fc, nil
}
