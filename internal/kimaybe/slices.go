package kimaybe

import (
	"errors"
	"fmt"

	"github.com/ivlev/kimaybe/internal/fixedpoint"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// SweepDirection is the direction the wipe travels across the image.
type SweepDirection int

const (
	SweepLeft SweepDirection = iota
	SweepRight
	SweepUp
	SweepDown
	// Declared for completeness; Prepare rejects them.
	SweepRadialIn
	SweepRadialOut
	SweepSimultaneous
)

func (d SweepDirection) String() string {
	switch d {
	case SweepLeft:
		return "left"
	case SweepRight:
		return "right"
	case SweepUp:
		return "up"
	case SweepDown:
		return "down"
	case SweepRadialIn:
		return "radial-in"
	case SweepRadialOut:
		return "radial-out"
	case SweepSimultaneous:
		return "simultaneous"
	}
	return fmt.Sprintf("sweep(%d)", int(d))
}

func (d SweepDirection) horizontal() bool {
	return d == SweepLeft || d == SweepRight
}

var (
	ErrNoCommands           = errors.New("kimaybe: image has no command list")
	ErrZeroSlice            = errors.New("kimaybe: image too small for slice count")
	ErrUnsupportedDirection = errors.New("kimaybe: unsupported sweep direction")
	ErrSliceCount           = errors.New("kimaybe: slice count must be positive")
)

// SlicePoint is one vertex of the working image with its animation endpoints.
type SlicePoint struct {
	Cmd     *pdc.DrawCommand
	Index   int
	Start   pdc.Point
	End     pdc.Point
	Current pdc.Point
}

// Slices holds every point of an image in one arena; Buckets index into it.
// Within a bucket points are in reverse scan order.
type Slices struct {
	Points    []SlicePoint
	Buckets   [][]int
	Space     fixedpoint.Space
	SliceSize int
}

// Prepare computes start and end positions for every vertex of img, moves
// the vertices to their start positions and sorts them into n buckets along
// the sweep axis. Bucket 0 starts first.
//
// Both rectangles are in screen pixels. The image is scaled uniformly by
// rect width over view box width.
func Prepare(img *pdc.Image, from, to pdc.Rect, dir SweepDirection, n int) (*Slices, error) {
	if n < 1 {
		return nil, ErrSliceCount
	}
	if dir != SweepLeft && dir != SweepRight && dir != SweepUp && dir != SweepDown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDirection, dir)
	}
	cmds := img.CommandList()
	if cmds == nil {
		return nil, ErrNoCommands
	}

	bw, bh := int(img.Bounds.W), int(img.Bounds.H)
	sliceSize := bh / n
	if dir.horizontal() {
		sliceSize = bw / n
	}
	if sliceSize <= 0 {
		return nil, fmt.Errorf("%w: bounds %dx%d, %d slices", ErrZeroSlice, bw, bh, n)
	}

	space := fixedpoint.SpaceOf(img)
	fromG := space.PromoteRect(from)
	toG := space.PromoteRect(to)

	s := &Slices{
		Points:    make([]SlicePoint, 0, img.NumPoints()),
		Buckets:   make([][]int, n),
		Space:     space,
		SliceSize: sliceSize,
	}

	for _, cmd := range cmds {
		for i, p := range cmd.Points {
			start := pdc.Point{
				X: int16(int(p.X)*from.W/bw + fromG.X),
				Y: int16(int(p.Y)*from.W/bw + fromG.Y),
			}
			end := pdc.Point{
				X: int16(int(p.X)*to.W/bw + toG.X),
				Y: int16(int(p.Y)*to.W/bw + toG.Y),
			}
			cmd.SetPoint(i, start)

			idx := bucketIndex(space, p, dir, sliceSize, n)
			s.Buckets[idx] = append(s.Buckets[idx], len(s.Points))
			s.Points = append(s.Points, SlicePoint{
				Cmd:     cmd,
				Index:   i,
				Start:   start,
				End:     end,
				Current: start,
			})
		}
	}

	for _, b := range s.Buckets {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	return s, nil
}

// bucketIndex classifies the original vertex p.
func bucketIndex(space fixedpoint.Space, p pdc.Point, dir SweepDirection, sliceSize, n int) int {
	var q int
	switch dir {
	case SweepRight:
		q = space.Whole(p.X) / sliceSize
	case SweepLeft:
		q = n - 1 - space.Whole(p.X)/sliceSize
	case SweepDown:
		q = space.Whole(p.Y) / sliceSize
	case SweepUp:
		q = n - 1 - space.Whole(p.Y)/sliceSize
	}
	if q < 0 {
		return 0
	}
	if q > n-1 {
		return n - 1
	}
	return q
}

// Len returns the number of points in bucket i.
func (s *Slices) Len(i int) int {
	return len(s.Buckets[i])
}

// Bucket returns the points of bucket i in bucket order.
func (s *Slices) Bucket(i int) []SlicePoint {
	out := make([]SlicePoint, len(s.Buckets[i]))
	for k, idx := range s.Buckets[i] {
		out[k] = s.Points[idx]
	}
	return out
}
