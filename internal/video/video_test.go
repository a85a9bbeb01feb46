package video

import (
	"strings"
	"testing"

	"github.com/ivlev/kimaybe/internal/config"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := &FFmpegEncoder{}
	p := config.EncodeParams{FPS: 30, Duration: 2.5, Encoder: "libx264", Quality: 23, Filter: "scale=576:672:flags=neighbor"}
	got := strings.Join(e.buildFFmpegArgs("frames/f_%05d.png", "out.mp4", p), " ")
	want := "-y -framerate 30 -f image2 -i frames/f_%05d.png -vf scale=576:672:flags=neighbor -t 2.500000 " +
		"-r 30 -pix_fmt yuv420p -c:v libx264 -crf 23 -preset medium out.mp4"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    string
	}{
		{"h264_videotoolbox", 75, "-b:v 7500k"},
		{"h264_nvenc", 28, "-cq 28"},
		{"libx264", 18, "-crf 18 -preset medium"},
		{"", 18, "-crf 18 -preset medium"},
	}
	for _, tt := range tests {
		if got := strings.Join(QualityArgs(tt.encoder, tt.quality), " "); got != tt.want {
			t.Errorf("QualityArgs(%q) = %s, want %s", tt.encoder, got, tt.want)
		}
	}
}
