package maze

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MazePalette defines the colors used for each element of a rendered maze.
type MazePalette struct {
	Floor   color.RGBA
	Wall    color.RGBA
	Unknown color.RGBA
	Path    color.RGBA
	Robot   color.RGBA
	Target  color.RGBA
}

// DefaultPalette returns the standard rendering colors.
func DefaultPalette() MazePalette {
	return MazePalette{
		Floor:   color.RGBA{240, 240, 240, 255},
		Wall:    color.RGBA{40, 40, 60, 255},
		Unknown: color.RGBA{190, 190, 190, 255},
		Path:    color.RGBA{255, 99, 71, 255}, // Tomato
		Robot:   color.RGBA{0, 0, 255, 255},   // Blue
		Target:  color.RGBA{0, 160, 60, 255},  // Green
	}
}

// MazeRenderer draws a solved maze to a raster image: cells, the planned
// path through cell centers, robot and target markers, and a small legend.
type MazeRenderer struct {
	Run     *Run
	Palette MazePalette
	Scale   int // Pixels per cell
	Padding int // Padding around the image
}

// NewMazeRenderer creates a renderer with default settings.
func NewMazeRenderer(run *Run) *MazeRenderer {
	return &MazeRenderer{
		Run:     run,
		Palette: DefaultPalette(),
		Scale:   24,
		Padding: 16,
	}
}

// Render draws the maze into a new image.
func (r *MazeRenderer) Render() *image.RGBA {
	grid := r.Run.Grid
	scale := r.Scale
	if scale < 4 {
		scale = 4
	}
	width := grid.Width()*scale + 2*r.Padding
	height := grid.Height()*scale + 2*r.Padding + 24 // legend strip below the maze

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	// Cell fill
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			cell, _ := grid.Get(Position{Row: row, Col: col})
			var c color.RGBA
			switch cell {
			case Blocked:
				c = r.Palette.Wall
			case Unknown:
				c = r.Palette.Unknown
			default:
				c = r.Palette.Floor
			}
			r.fillCell(img, row, col, c)
		}
	}

	// Path through cell centers
	pos := r.Run.Start
	x0, y0 := r.cellCenter(pos)
	for _, d := range r.Run.Path {
		pos, _ = pos.Step(d, grid.Height(), grid.Width())
		x1, y1 := r.cellCenter(pos)
		drawLine(img, x0, y0, x1, y1, r.Palette.Path)
		x0, y0 = x1, y1
	}

	// Markers
	sx, sy := r.cellCenter(r.Run.Start)
	drawCircle(img, sx, sy, scale/3, r.Palette.Robot)
	tx, ty := r.cellCenter(r.Run.Target)
	drawSquare(img, tx, ty, scale/3, r.Palette.Target)

	r.drawLegend(img, height)
	return img
}

func (r *MazeRenderer) fillCell(img *image.RGBA, row, col int, c color.RGBA) {
	x0 := r.Padding + col*r.Scale
	y0 := r.Padding + row*r.Scale
	for y := y0; y < y0+r.Scale; y++ {
		for x := x0; x < x0+r.Scale; x++ {
			img.Set(x, y, c)
		}
	}
}

func (r *MazeRenderer) cellCenter(pos Position) (int, int) {
	x := r.Padding + pos.Col*r.Scale + r.Scale/2
	y := r.Padding + pos.Row*r.Scale + r.Scale/2
	return x, y
}

func (r *MazeRenderer) drawLegend(img *image.RGBA, height int) {
	y := height - 8
	x := r.Padding

	label := r.Run.Pathfinder
	if r.Run.Explorer != "" {
		label = r.Run.Explorer + " + " + label
	}
	drawSquare(img, x+4, y-4, 4, r.Palette.Path)
	drawText(img, x+14, y, label, color.RGBA{0, 0, 0, 255})
}

// WritePNG encodes the rendered maze as PNG.
func (r *MazeRenderer) WritePNG(w io.Writer) error {
	return png.Encode(w, r.Render())
}

// SavePNG renders the maze to a file.
func (r *MazeRenderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return png.Encode(f, r.Render())
}

// drawText renders text onto an image at the specified position
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawSquare draws a filled square centered at (x, y)
func drawSquare(img *image.RGBA, x, y, half int, c color.RGBA) {
	bounds := img.Bounds()
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, c)
			}
		}
	}
}

// drawCircle draws a filled circle centered at (x, y)
func drawCircle(img *image.RGBA, x, y, radius int, c color.RGBA) {
	bounds := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, c)
			}
		}
	}
}

// drawLine draws a thick line between two points with simple interpolation.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		drawSquare(img, x0, y0, 1, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		drawSquare(img, x, y, 1, c)
	}
}
