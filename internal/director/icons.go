package director

import (
	"math"

	"github.com/ivlev/kimaybe/internal/fixedpoint"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// Размер исходных иконок
const iconSize = 50

var (
	outline = pdc.Style{Stroke: pdc.ColorBlack, Width: 2}
	rays    = pdc.Style{Stroke: pdc.ColorOrange, Width: 2}
	drops   = pdc.Style{Stroke: pdc.ColorBlue, Width: 2}
	flakes  = pdc.Style{Stroke: pdc.ColorCyan, Width: 1, Fill: pdc.ColorWhite}
	bolt    = pdc.Style{Stroke: pdc.ColorBlack, Width: 1, Fill: pdc.ColorYellow}
)

// Weather icons in draw order of the demo forecast
var weatherKinds = []string{"sun", "cloud", "rain", "snow", "storm", "moon"}

func weatherIcon(kind string) *pdc.Image {
	switch kind {
	case "sun":
		return sun()
	case "cloud":
		return pdc.New(iconSize, iconSize, cloud(0))
	case "rain":
		img := pdc.New(iconSize, iconSize, cloud(-6))
		for _, x := range []int16{16, 26, 36} {
			img.Commands = append(img.Commands, pdc.Polyline(drops, pdc.Pt(x, 34), pdc.Pt(x-4, 44)))
		}
		return img
	case "snow":
		img := pdc.New(iconSize, iconSize, cloud(-6))
		for _, x := range []int16{15, 25, 35} {
			img.Commands = append(img.Commands, pdc.Circle(flakes, pdc.Pt(x, 40), 3))
		}
		return img
	case "storm":
		return pdc.New(iconSize, iconSize, cloud(-6),
			pdc.Polygon(bolt, pdc.Pt(26, 28), pdc.Pt(18, 40), pdc.Pt(25, 40), pdc.Pt(21, 49), pdc.Pt(33, 35), pdc.Pt(26, 35), pdc.Pt(30, 28)))
	case "moon":
		return moon()
	}
	return nil
}

func sun() *pdc.Image {
	st := pdc.Style{Stroke: pdc.ColorOrange, Width: 2, Fill: pdc.ColorYellow}
	img := pdc.New(iconSize, iconSize, pdc.Circle(st, pdc.Pt(25, 25), 10))
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		in := pdc.Pt(25+int16(math.Round(15*math.Cos(a))), 25+int16(math.Round(15*math.Sin(a))))
		out := pdc.Pt(25+int16(math.Round(22*math.Cos(a))), 25+int16(math.Round(22*math.Sin(a))))
		img.Commands = append(img.Commands, pdc.Polyline(rays, in, out))
	}
	return img
}

// cloud is a closed outline shifted vertically by dy
func cloud(dy int16) *pdc.DrawCommand {
	pts := []pdc.Point{
		{X: 8, Y: 36}, {X: 5, Y: 30}, {X: 8, Y: 24}, {X: 14, Y: 22}, {X: 18, Y: 14},
		{X: 27, Y: 11}, {X: 35, Y: 16}, {X: 38, Y: 22}, {X: 44, Y: 25}, {X: 46, Y: 31},
		{X: 42, Y: 36},
	}
	for i := range pts {
		pts[i].Y += dy
	}
	return pdc.Polygon(pdc.Style{Stroke: pdc.ColorBlack, Width: 2, Fill: pdc.ColorLightGray}, pts...)
}

// moon is stored on the precise grid
func moon() *pdc.Image {
	var pts []pdc.Point
	for i := 0; i <= 12; i++ {
		a := -math.Pi/2 + float64(i)*math.Pi/12
		pts = append(pts, precise(25+16*math.Cos(a), 25+16*math.Sin(a)))
	}
	for i := 12; i >= 0; i-- {
		a := -math.Pi/2 + float64(i)*math.Pi/12
		pts = append(pts, precise(25+8*math.Cos(a), 25+16*math.Sin(a)))
	}
	cmd := pdc.Polygon(pdc.Style{Stroke: pdc.ColorBlack, Width: 1, Fill: pdc.ColorYellow}, pts...)
	cmd.Type = pdc.CommandPrecisePath
	return pdc.New(iconSize, iconSize, cmd)
}

func precise(x, y float64) pdc.Point {
	return pdc.Pt(int16(math.Round(x*fixedpoint.One)), int16(math.Round(y*fixedpoint.One)))
}

// Arrows of the wind page: east for even directions, south-east for odd
func cardinalArrow() *pdc.Image {
	return pdc.New(iconSize, iconSize, pdc.Arrow(outline, pdc.Pt(6, 25), pdc.Pt(44, 25), 8)...)
}

func diagonalArrow() *pdc.Image {
	return pdc.New(iconSize, iconSize, pdc.Arrow(outline, pdc.Pt(10, 10), pdc.Pt(40, 40), 10)...)
}
