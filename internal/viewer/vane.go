package viewer

import (
	"fmt"

	"github.com/ivlev/kimaybe/internal/dcim"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// Wind is the wind reading of one hour.
type Wind struct {
	Label string
	// Direction the wind blows from, in degrees clockwise from north.
	Degrees int
	Speed   int
}

// Compass turns a bearing into one of the eight dcim directions. With
// origin set the arrow points where the wind comes from, otherwise where it
// goes.
func Compass(degrees int, origin bool) int {
	if !origin {
		degrees += 180
	}
	// 0° на север, а dcim считает от востока по часовой стрелке
	sector := ((degrees%360+360)%360 + 22) / 45 % 8
	return (sector + dcim.North) % 8
}

// VaneSlots builds the wind page: one arrow per hour, oriented from the
// cardinal (east) and diagonal (south-east) arrow icons.
func VaneSlots(hours []Wind, cardinal, diagonal *pdc.Image, origin bool) []Slot {
	out := make([]Slot, len(hours))
	for i, w := range hours {
		out[i] = Slot{
			Label: w.Label,
			Text:  fmt.Sprintf("%d km/h", w.Speed),
			Icon:  dcim.Orient(Compass(w.Degrees, origin), cardinal, diagonal),
		}
	}
	return out
}
