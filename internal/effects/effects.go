package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/system"
)

// Effect turns the raw display capture into the video picture.
type Effect interface {
	GenerateFilter(params config.EncodeParams) string
}

// DefaultEffect upscales the display with nearest neighbour so the pixels
// of the watch stay sharp, and fades in and out.
type DefaultEffect struct {
	Debug bool
}

func (e *DefaultEffect) GenerateFilter(p config.EncodeParams) string {
	return chain(upscale(p), fades(p), e.debugText())
}

func (e *DefaultEffect) debugText() string {
	if !e.Debug || !system.CheckFilterSupport("drawtext") {
		return ""
	}
	return "drawtext=text='%{frame_num} %{pts\\:hms}':x=10:y=10:fontsize=24:fontcolor=yellow:box=1:boxcolor=black@0.5"
}

func upscale(p config.EncodeParams) string {
	s := p.Scale
	if s < 1 {
		s = 1
	}
	w, h := even(p.Width*s), even(p.Height*s)
	return fmt.Sprintf("scale=%d:%d:flags=neighbor,pad=%d:%d:0:0", p.Width*s, p.Height*s, w, h)
}

func fades(p config.EncodeParams) string {
	f := p.FadeDuration
	if f <= 0 || p.Duration <= 0 {
		return ""
	}
	// два фейда не должны перекрываться
	if f > p.Duration/2 {
		f = p.Duration / 2
	}
	return fmt.Sprintf("fade=t=in:st=0:d=%.3f,fade=t=out:st=%.3f:d=%.3f", f, p.Duration-f, f)
}

// chain joins non-empty filters into a -vf graph.
func chain(filters ...string) string {
	var out []string
	for _, f := range filters {
		if f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, ",")
}

func even(v int) int {
	return v + v%2
}
