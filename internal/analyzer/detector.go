// Package analyzer finds drawn regions in rendered frames. The engine uses it
// to check that icons landed where the layout puts them.
package analyzer

import "image"

// Block is a detected region of a frame.
type Block struct {
	Rect       image.Rectangle
	Type       string  // "ink", "unknown"
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for frame analysis strategies
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
