package pdc

// ARGB2222 colors, same encoding as the watch palette.
const (
	ColorClear     uint8 = 0x00
	ColorBlack     uint8 = 0xC0
	ColorWhite     uint8 = 0xFF
	ColorLightGray uint8 = 0xEA
	ColorDarkGray  uint8 = 0xD5
	ColorYellow    uint8 = 0xFC
	ColorOrange    uint8 = 0xF8
	ColorBlue      uint8 = 0xC3
	ColorCyan      uint8 = 0xCF
)

// Style задает цвета и толщину линии для построителей фигур
type Style struct {
	Stroke uint8
	Width  uint8
	Fill   uint8
}

func Polygon(s Style, pts ...Point) *DrawCommand {
	return &DrawCommand{
		Type:        CommandPath,
		StrokeColor: s.Stroke,
		StrokeWidth: s.Width,
		FillColor:   s.Fill,
		Points:      append([]Point(nil), pts...),
	}
}

func Polyline(s Style, pts ...Point) *DrawCommand {
	cmd := Polygon(s, pts...)
	cmd.PathOpen = true
	cmd.FillColor = ColorClear
	return cmd
}

func Circle(s Style, center Point, radius uint16) *DrawCommand {
	return &DrawCommand{
		Type:        CommandCircle,
		StrokeColor: s.Stroke,
		StrokeWidth: s.Width,
		FillColor:   s.Fill,
		Radius:      radius,
		Points:      []Point{center},
	}
}

// New собирает изображение из команд
func New(w, h int16, cmds ...*DrawCommand) *Image {
	return &Image{Bounds: Size{W: w, H: h}, Commands: cmds}
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int16) Point {
	return Point{X: x, Y: y}
}

// Arrow builds an open arrow from tail to head with a two-stroke tip of the
// given length.
func Arrow(s Style, tail, head Point, tip int16) []*DrawCommand {
	dx, dy := head.X-tail.X, head.Y-tail.Y
	var a, b Point
	switch {
	case dy == 0: // горизонтальная
		sx := sign(dx)
		a = Pt(head.X-sx*tip, head.Y-tip)
		b = Pt(head.X-sx*tip, head.Y+tip)
	case dx == 0:
		sy := sign(dy)
		a = Pt(head.X-tip, head.Y-sy*tip)
		b = Pt(head.X+tip, head.Y-sy*tip)
	default: // диагональ
		sx, sy := sign(dx), sign(dy)
		a = Pt(head.X-sx*tip, head.Y)
		b = Pt(head.X, head.Y-sy*tip)
	}
	return []*DrawCommand{
		Polyline(s, tail, head),
		Polyline(s, a, head, b),
	}
}

func sign(v int16) int16 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
