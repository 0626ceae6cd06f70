package maze

import (
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorMazeRenderer renders a solved maze as vector graphics, either SVG
// or a rasterized PNG at a configurable resolution.
type VectorMazeRenderer struct {
	Run        *Run
	CellSize   float64           // World units per cell
	Padding    float64           // Padding in world units
	Resolution canvas.Resolution // Resolution for PNG output
	GridLines  bool              // Draw dashed cell boundaries
}

// NewVectorMazeRenderer creates a vector renderer with default settings.
func NewVectorMazeRenderer(run *Run) *VectorMazeRenderer {
	return &VectorMazeRenderer{
		Run:        run,
		CellSize:   10.0,
		Padding:    5.0,
		Resolution: canvas.DPI(300),
		GridLines:  true,
	}
}

// canvasRenderer is the surface both the svg and rasterizer renderers share.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

func (r *VectorMazeRenderer) size() (width, height float64) {
	width = float64(r.Run.Grid.Width())*r.CellSize + 2*r.Padding
	height = float64(r.Run.Grid.Height())*r.CellSize + 2*r.Padding
	return width, height
}

// RenderToSVG writes the maze as an SVG to the provided writer.
func (r *VectorMazeRenderer) RenderToSVG(w io.Writer) error {
	width, height := r.size()

	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, width, height)

	return svgRenderer.Close()
}

// RenderToPNG writes the maze as a rasterized PNG to the provided writer.
func (r *VectorMazeRenderer) RenderToPNG(w io.Writer) error {
	width, height := r.size()

	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, width, height)

	return png.Encode(w, rast)
}

// renderToCanvas draws the maze to a canvas renderer (shared logic for SVG
// and PNG). Canvas Y points up, so rows are flipped.
func (r *VectorMazeRenderer) renderToCanvas(renderer canvasRenderer, width, height float64) {
	grid := r.Run.Grid
	palette := DefaultPalette()

	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	cellOrigin := func(row, col int) (float64, float64) {
		x := r.Padding + float64(col)*r.CellSize
		y := height - r.Padding - float64(row+1)*r.CellSize
		return x, y
	}
	cellCenter := func(pos Position) (float64, float64) {
		x, y := cellOrigin(pos.Row, pos.Col)
		return x + r.CellSize/2, y + r.CellSize/2
	}

	// Blocked and unknown cells, filled
	wallStyle := canvas.DefaultStyle
	wallStyle.Fill = canvas.Paint{Color: palette.Wall}
	wallStyle.Stroke = canvas.Paint{Color: canvas.Transparent}

	unknownStyle := wallStyle
	unknownStyle.Fill = canvas.Paint{Color: palette.Unknown}

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			cell, _ := grid.Get(Position{Row: row, Col: col})
			if cell != Blocked && cell != Unknown {
				continue
			}
			style := wallStyle
			if cell == Unknown {
				style = unknownStyle
			}
			x, y := cellOrigin(row, col)
			renderer.RenderPath(canvas.Rectangle(r.CellSize, r.CellSize), style, canvas.Identity.Translate(x, y))
		}
	}

	// Grid lines, dashed
	if r.GridLines {
		gridStyle := canvas.DefaultStyle
		gridStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		gridStyle.Stroke = canvas.Paint{Color: canvas.Gray}
		gridStyle.StrokeWidth = 0.3
		gridStyle.Dashes = []float64{1.0, 1.0}

		for col := 0; col <= grid.Width(); col++ {
			x := r.Padding + float64(col)*r.CellSize
			line := &canvas.Path{}
			line.MoveTo(x, r.Padding)
			line.LineTo(x, height-r.Padding)
			renderer.RenderPath(line, gridStyle, canvas.Identity)
		}
		for row := 0; row <= grid.Height(); row++ {
			y := r.Padding + float64(row)*r.CellSize
			line := &canvas.Path{}
			line.MoveTo(r.Padding, y)
			line.LineTo(width-r.Padding, y)
			renderer.RenderPath(line, gridStyle, canvas.Identity)
		}
	}

	// Planned path through cell centers, stroked
	if len(r.Run.Path) > 0 {
		pathStyle := canvas.DefaultStyle
		pathStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		pathStyle.Stroke = canvas.Paint{Color: palette.Path}
		pathStyle.StrokeWidth = r.CellSize / 5

		pos := r.Run.Start
		cp := &canvas.Path{}
		x, y := cellCenter(pos)
		cp.MoveTo(x, y)
		for _, d := range r.Run.Path {
			pos, _ = pos.Step(d, grid.Height(), grid.Width())
			x, y = cellCenter(pos)
			cp.LineTo(x, y)
		}
		renderer.RenderPath(cp, pathStyle, canvas.Identity)
	}

	// Robot and target markers
	robotStyle := canvas.DefaultStyle
	robotStyle.Fill = canvas.Paint{Color: palette.Robot}
	robotStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	rx, ry := cellCenter(r.Run.Start)
	renderer.RenderPath(canvas.Circle(r.CellSize/3), robotStyle, canvas.Identity.Translate(rx, ry))

	targetStyle := robotStyle
	targetStyle.Fill = canvas.Paint{Color: palette.Target}
	tx, ty := cellCenter(r.Run.Target)
	half := r.CellSize / 3
	renderer.RenderPath(canvas.Rectangle(2*half, 2*half), targetStyle, canvas.Identity.Translate(tx-half, ty-half))
}
