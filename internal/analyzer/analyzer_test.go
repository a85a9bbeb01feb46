package analyzer

import (
	"image"
	"image/color"
	"testing"
)

var white = color.RGBA{255, 255, 255, 255}

func frame(w, h int, rects ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestInkDetector(t *testing.T) {
	icon := image.Rect(88, 59, 138, 109)
	small := image.Rect(113, 4, 138, 29)
	speck := image.Rect(2, 2, 3, 3)
	img := frame(144, 168, icon, small, speck)

	detector := NewInkDetector(white)
	blocks, err := detector.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %v", len(blocks), blocks)
	}
	// порядок сканирования: сверху вниз
	if blocks[0].Rect != small || blocks[1].Rect != icon {
		t.Errorf("blocks: %v, %v", blocks[0].Rect, blocks[1].Rect)
	}
	for i, b := range blocks {
		t.Logf("Block %d: %v (type: %s, confidence: %.2f)", i, b.Rect, b.Type, b.Confidence)
	}
}

func TestInkBounds(t *testing.T) {
	img := frame(50, 50, image.Rect(10, 12, 20, 30))
	d := NewInkDetector(white)

	got, ok := d.InkBounds(img, image.Rect(0, 0, 50, 50))
	if !ok || got != image.Rect(10, 12, 20, 30) {
		t.Errorf("InkBounds: %v %v", got, ok)
	}
	if _, ok := d.InkBounds(img, image.Rect(30, 30, 50, 50)); ok {
		t.Errorf("ink found in an empty region")
	}
	got, _ = d.InkBounds(img, image.Rect(15, 0, 100, 20))
	if got != image.Rect(15, 12, 20, 20) {
		t.Errorf("clipped InkBounds: %v", got)
	}
}

func TestToleranceIgnoresNearBackground(t *testing.T) {
	img := frame(10, 10)
	img.SetRGBA(5, 5, color.RGBA{250, 250, 250, 255})
	blocks, _ := NewInkDetector(white).Detect(img)
	if len(blocks) != 0 {
		t.Errorf("near-background pixel detected: %v", blocks)
	}
}

func TestEmptyFrame(t *testing.T) {
	if _, err := NewInkDetector(white).Detect(image.NewRGBA(image.Rectangle{})); err != ErrEmptyFrame {
		t.Errorf("empty frame: got %v", err)
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"ink", false},
		{"", false}, // default
		{"contrast", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant, white)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if detector == nil {
					t.Error("Expected detector, got nil")
				}
			}
		})
	}
}
