// Package layout computes where the hour labels, forecast icons and the
// precipitation graph sit on the display.
package layout

import "github.com/ivlev/kimaybe/internal/pdc"

const (
	IconSmall = 25
	IconLarge = 50

	TextHeight = 20

	GraphWidth  = 84
	GraphHeight = 40

	AxisSmallWidth = 25
	AxisLargeWidth = 86
	AxisHeight     = 10
)

// Slot identifies one of the three hour positions on a page.
type Slot int

const (
	Prev Slot = iota
	Current
	Next
)

func (s Slot) String() string {
	return [...]string{"prev", "current", "next"}[s]
}

// Layout is the geometry of one display. All values are screen pixels.
type Layout struct {
	Width, Height int
	Round         bool

	PadTop, PadBottom, PadLeft, PadRight int
	TextWidth                            int

	PrevTime, CurrentTime, CurrentText, NextTime pdc.Rect
	PrevIcon, CurrentIcon, NextIcon              pdc.Rect

	Graph, AxisSmall, AxisLarge pdc.Rect

	SplashImage, SplashText pdc.Rect
	SplashCenter            pdc.Point
}

// New computes the layout for a width x height display.
func New(width, height int, round bool) *Layout {
	l := &Layout{Width: width, Height: height, Round: round, PadTop: 4, PadBottom: 4}
	// на круглом экране края срезаны
	if round {
		l.PadLeft, l.PadRight = 12, 12
	} else {
		l.PadLeft, l.PadRight = 6, 6
	}
	l.TextWidth = width - l.PadLeft - l.PadRight

	th := TextHeight
	l.CurrentTime = pdc.Rect{X: l.PadLeft, Y: height/2 - 2*th, W: l.TextWidth, H: th}
	l.CurrentText = pdc.Rect{X: l.PadLeft, Y: height/2 - th, W: l.TextWidth, H: 3 * th}
	if round {
		// соседние часы уезжают за край экрана
		l.PrevTime = pdc.Rect{X: l.PadLeft, Y: -th, W: l.TextWidth, H: th}
		l.NextTime = pdc.Rect{X: l.PadLeft, Y: height, W: l.TextWidth, H: th}
	} else {
		l.PrevTime = pdc.Rect{X: l.PadLeft, Y: l.PadTop, W: l.TextWidth, H: th}
		l.NextTime = pdc.Rect{X: l.PadLeft, Y: height - th - l.PadBottom, W: l.TextWidth, H: th}
	}

	sideX := width - IconSmall - l.PadRight
	if round {
		sideX = (width - IconSmall) / 2
	}
	l.PrevIcon = pdc.Rect{X: sideX, Y: l.PadTop, W: IconSmall, H: IconSmall}
	l.CurrentIcon = pdc.Rect{X: width - IconLarge - l.PadRight, Y: height/2 - IconLarge/2, W: IconLarge, H: IconLarge}
	l.NextIcon = pdc.Rect{X: sideX, Y: height - IconSmall - l.PadBottom, W: IconSmall, H: IconSmall}

	l.Graph = pdc.Rect{X: width - GraphWidth - l.PadRight, Y: (height - GraphHeight) / 2, W: GraphWidth, H: GraphHeight}
	l.AxisLarge = pdc.Rect{X: l.Graph.X - 1, Y: l.Graph.Y + GraphHeight - 4, W: AxisLargeWidth, H: AxisHeight}
	l.AxisSmall = pdc.Rect{X: l.PrevIcon.X, Y: l.PrevIcon.Y + (IconSmall-AxisHeight)/2, W: AxisSmallWidth, H: AxisHeight}

	l.SplashImage = pdc.Rect{W: width, H: height * 2 / 3}
	l.SplashText = pdc.Rect{X: l.PadLeft, Y: height * 2 / 3, W: width - l.PadLeft - l.PadRight, H: height / 3}
	l.SplashCenter = pdc.Point{X: int16(width / 2), Y: int16(height * 2 / 3 / 2)}
	return l
}

// Icon returns the icon rectangle of a slot.
func (l *Layout) Icon(s Slot) pdc.Rect {
	switch s {
	case Prev:
		return l.PrevIcon
	case Next:
		return l.NextIcon
	}
	return l.CurrentIcon
}

// Time returns the rectangle of a slot's hour label.
func (l *Layout) Time(s Slot) pdc.Rect {
	switch s {
	case Prev:
		return l.PrevTime
	case Next:
		return l.NextTime
	}
	return l.CurrentTime
}

// Offsets shift an icon that lands in the current slot so that accessories
// (cap, hat, umbrella) line up with the figure drawn there.
var Offsets = []pdc.Point{
	{X: 0, Y: 10},  // маска
	{X: 0, Y: -15}, // кепка
	{X: 0, Y: 0},   // очки
	{X: 0, Y: -10}, // шляпа
	{X: 0, Y: 0},   // шляпа и шарф
	{X: 10, Y: 0},  // зонт
	{X: 0, Y: 0},
}

// Offset returns the landing offset of accessory kind k, counted from 1.
// Zero and unknown kinds map to the first entry.
func Offset(k int) pdc.Point {
	i := k - 1
	if i < 0 || i >= len(Offsets) {
		i = 0
	}
	return Offsets[i]
}
