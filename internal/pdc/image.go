package pdc

import "fmt"

// Point is a draw command vertex. Precise images store 3 fractional bits.
type Point struct {
	X int16 `yaml:"x"`
	Y int16 `yaml:"y"`
}

// Size is the view box of an image.
type Size struct {
	W int16 `yaml:"w"`
	H int16 `yaml:"h"`
}

// Rect is an on-screen rectangle in whole pixels.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Offset сдвигает прямоугольник на (dx, dy)
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

type CommandType uint8

const (
	CommandInvalid     CommandType = 0
	CommandPath        CommandType = 1
	CommandCircle      CommandType = 2
	CommandPrecisePath CommandType = 3
)

func (t CommandType) String() string {
	switch t {
	case CommandPath:
		return "path"
	case CommandCircle:
		return "circle"
	case CommandPrecisePath:
		return "precise_path"
	default:
		return "invalid"
	}
}

// DrawCommand is one path or circle of a vector image.
// Colors are 8-bit ARGB2222 values as stored on the watch.
type DrawCommand struct {
	Type        CommandType
	Hidden      bool
	StrokeColor uint8
	StrokeWidth uint8
	FillColor   uint8
	PathOpen    bool
	Radius      uint16
	Points      []Point
}

func (c *DrawCommand) NumPoints() int {
	return len(c.Points)
}

func (c *DrawCommand) Point(i int) Point {
	return c.Points[i]
}

func (c *DrawCommand) SetPoint(i int, p Point) {
	c.Points[i] = p
}

// Image is a vector image: a view box and an ordered list of commands.
// A nil Commands slice means the image carries no command list at all.
type Image struct {
	Bounds   Size
	Commands []*DrawCommand
}

// CommandList returns the command list, nil when the image has none.
func (img *Image) CommandList() []*DrawCommand {
	if img == nil {
		return nil
	}
	return img.Commands
}

// NumPoints returns the total number of vertices across all commands.
func (img *Image) NumPoints() int {
	n := 0
	for _, cmd := range img.CommandList() {
		n += len(cmd.Points)
	}
	return n
}

// EachPoint calls fn for every vertex in command order.
func (img *Image) EachPoint(fn func(cmd *DrawCommand, index int, p Point)) {
	for _, cmd := range img.CommandList() {
		for i, p := range cmd.Points {
			fn(cmd, i, p)
		}
	}
}

// Clone returns a deep copy. Clone of nil is nil.
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	out := &Image{Bounds: img.Bounds}
	if img.Commands != nil {
		out.Commands = make([]*DrawCommand, len(img.Commands))
		for i, cmd := range img.Commands {
			c := *cmd
			c.Points = append([]Point(nil), cmd.Points...)
			out.Commands[i] = &c
		}
	}
	return out
}
