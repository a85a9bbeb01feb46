package analyzer

import (
	"errors"
	"image"
	"image/color"
)

var ErrEmptyFrame = errors.New("analyzer: empty frame")

// InkDetector groups every pixel that differs from the background into
// 8-connected components.
type InkDetector struct {
	Background   color.RGBA
	Tolerance    uint8 // максимальное отклонение канала от фона
	MinBlockArea int   // пиксели
}

func NewInkDetector(bg color.Color) *InkDetector {
	return &InkDetector{
		Background:   color.RGBAModel.Convert(bg).(color.RGBA),
		Tolerance:    24,
		MinBlockArea: 4,
	}
}

// Detect returns the bounding box of every connected ink region in scan order.
func (d *InkDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyFrame
	}
	mask := d.mask(img, b)

	visited := make([]bool, len(mask))
	w := b.Dx()
	blocks := []Block{}
	for i, ink := range mask {
		if !ink || visited[i] {
			continue
		}
		rect, area := component(mask, visited, w, i)
		if area < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{
			Rect:       rect.Add(b.Min),
			Type:       "ink",
			Confidence: 1,
		})
	}
	return blocks, nil
}

// InkBounds returns the bounding box of all ink inside region.
func (d *InkDetector) InkBounds(img image.Image, region image.Rectangle) (image.Rectangle, bool) {
	region = region.Intersect(img.Bounds())
	var out image.Rectangle
	found := false
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if !d.isInk(img.At(x, y)) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				out, found = px, true
			} else {
				out = out.Union(px)
			}
		}
	}
	return out, found
}

func (d *InkDetector) mask(img image.Image, b image.Rectangle) []bool {
	mask := make([]bool, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * b.Dx()
		for x := b.Min.X; x < b.Max.X; x++ {
			mask[row+x-b.Min.X] = d.isInk(img.At(x, y))
		}
	}
	return mask
}

func (d *InkDetector) isInk(c color.Color) bool {
	p := color.RGBAModel.Convert(c).(color.RGBA)
	bg := d.Background
	return diff(p.R, bg.R) > d.Tolerance || diff(p.G, bg.G) > d.Tolerance ||
		diff(p.B, bg.B) > d.Tolerance || diff(p.A, bg.A) > d.Tolerance
}

func diff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// component flood-fills from start and returns the bounding box relative to
// the mask origin together with the pixel count.
func component(mask, visited []bool, w, start int) (image.Rectangle, int) {
	h := len(mask) / w
	sx, sy := start%w, start/w
	minX, minY, maxX, maxY := sx, sy, sx, sy
	area := 0

	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		area++

		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if mask[j] && !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), area
}
