package renderer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/ivlev/kimaybe/internal/fixedpoint"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 24

// Color converts an ARGB2222 palette byte to a colour.
func Color(c uint8) color.NRGBA {
	return color.NRGBA{
		R: (c >> 4 & 3) * 85,
		G: (c >> 2 & 3) * 85,
		B: (c & 3) * 85,
		A: (c >> 6 & 3) * 85,
	}
}

// Transform maps image coordinates to canvas pixels.
type Transform struct {
	Scale  float32
	DX, DY float32
}

// Identity draws points as they are: used for working images whose
// vertices already hold screen positions.
var Identity = Transform{Scale: 1}

// Fit scales img uniformly by rect width over view box width and places
// it at the rect origin.
func Fit(img *pdc.Image, r pdc.Rect) Transform {
	tr := Transform{Scale: 1, DX: float32(r.X), DY: float32(r.Y)}
	if img != nil && img.Bounds.W > 0 {
		tr.Scale = float32(r.W) / float32(img.Bounds.W)
	}
	return tr
}

func (tr Transform) apply(cmd *pdc.DrawCommand, p pdc.Point) (float32, float32) {
	x, y := float32(p.X), float32(p.Y)
	if cmd.Type == pdc.CommandPrecisePath {
		x /= fixedpoint.One
		y /= fixedpoint.One
	}
	return x*tr.Scale + tr.DX, y*tr.Scale + tr.DY
}

// DrawImage rasterises every visible command of img.
func (c *Canvas) DrawImage(img *pdc.Image, tr Transform) {
	DrawImage(c.img, img, tr)
}

// DrawImageIn draws img scaled into r.
func (c *Canvas) DrawImageIn(img *pdc.Image, r pdc.Rect) {
	DrawImage(c.img, img, Fit(img, r))
}

func DrawImage(dst *image.RGBA, img *pdc.Image, tr Transform) {
	if img == nil {
		return
	}
	z := vector.NewRasterizer(dst.Rect.Dx(), dst.Rect.Dy())
	for _, cmd := range img.CommandList() {
		if cmd.Hidden || len(cmd.Points) == 0 {
			continue
		}
		switch cmd.Type {
		case pdc.CommandCircle:
			drawCircle(z, dst, cmd, tr)
		case pdc.CommandPath, pdc.CommandPrecisePath:
			drawPath(z, dst, cmd, tr)
		}
	}
}

type pt struct{ x, y float32 }

func drawPath(z *vector.Rasterizer, dst *image.RGBA, cmd *pdc.DrawCommand, tr Transform) {
	pts := make([]pt, len(cmd.Points))
	for i, p := range cmd.Points {
		pts[i].x, pts[i].y = tr.apply(cmd, p)
	}

	if fill := Color(cmd.FillColor); fill.A > 0 && !cmd.PathOpen && len(pts) > 2 {
		reset(z, dst)
		z.MoveTo(pts[0].x, pts[0].y)
		for _, p := range pts[1:] {
			z.LineTo(p.x, p.y)
		}
		z.ClosePath()
		paint(z, dst, fill)
	}

	stroke := Color(cmd.StrokeColor)
	if stroke.A == 0 || cmd.StrokeWidth == 0 {
		return
	}
	hw := float32(cmd.StrokeWidth) * tr.Scale / 2
	if hw < 0.5 {
		hw = 0.5
	}
	reset(z, dst)
	for i := 0; i+1 < len(pts); i++ {
		segment(z, pts[i], pts[i+1], hw)
	}
	if !cmd.PathOpen && len(pts) > 2 {
		segment(z, pts[len(pts)-1], pts[0], hw)
	}
	// скругленные стыки
	if hw > 0.5 {
		for _, p := range pts {
			disc(z, p, hw, false)
		}
	}
	paint(z, dst, stroke)
}

func drawCircle(z *vector.Rasterizer, dst *image.RGBA, cmd *pdc.DrawCommand, tr Transform) {
	cx, cy := tr.apply(cmd, cmd.Points[0])
	center := pt{cx, cy}
	r := float32(cmd.Radius) * tr.Scale

	if fill := Color(cmd.FillColor); fill.A > 0 && r > 0 {
		reset(z, dst)
		disc(z, center, r, false)
		paint(z, dst, fill)
	}

	stroke := Color(cmd.StrokeColor)
	if stroke.A == 0 || cmd.StrokeWidth == 0 {
		return
	}
	hw := float32(cmd.StrokeWidth) * tr.Scale / 2
	reset(z, dst)
	disc(z, center, r+hw, false)
	if inner := r - hw; inner > 0 {
		// обратный обход вырезает середину кольца
		disc(z, center, inner, true)
	}
	paint(z, dst, stroke)
}

// segment adds the line a-b as a quad of half width hw. Quads and discs
// share one winding so overlapping pieces merge.
func segment(z *vector.Rasterizer, a, b pt, hw float32) {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		disc(z, a, hw, false)
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(a.x-nx, a.y-ny)
	z.LineTo(b.x-nx, b.y-ny)
	z.LineTo(b.x+nx, b.y+ny)
	z.LineTo(a.x+nx, a.y+ny)
	z.ClosePath()
}

func disc(z *vector.Rasterizer, c pt, r float32, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		k := i
		if reverse {
			k = circleSegments - i
		}
		a := 2 * math.Pi * float64(k) / circleSegments
		x := c.x + r*float32(math.Cos(a))
		y := c.y + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func reset(z *vector.Rasterizer, dst *image.RGBA) {
	z.Reset(dst.Rect.Dx(), dst.Rect.Dy())
}

func paint(z *vector.Rasterizer, dst *image.RGBA, c color.NRGBA) {
	z.Draw(dst, dst.Rect, image.NewUniform(c), image.Point{})
}
