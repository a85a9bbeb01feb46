package video

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/ivlev/kimaybe/internal/config"
)

type VideoEncoder interface {
	EncodeFrames(ctx context.Context, pattern, videoPath string, params config.EncodeParams) error
}

// FFmpegEncoder turns a numbered PNG sequence into an H.264 video.
type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg".
	Binary string
}

func (e *FFmpegEncoder) EncodeFrames(ctx context.Context, pattern, videoPath string, params config.EncodeParams) error {
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	args := e.buildFFmpegArgs(pattern, videoPath, params)

	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg encode error: %v, output: %s", err, string(out))
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(pattern, videoPath string, params config.EncodeParams) []string {
	args := []string{
		"-y",
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-f", "image2",
		"-i", pattern,
	}
	if params.Filter != "" {
		args = append(args, "-vf", params.Filter)
	}
	if params.Duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%f", params.Duration))
	}
	args = append(args,
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", params.Encoder,
	)
	args = append(args, QualityArgs(params.Encoder, params.Quality)...)
	args = append(args, videoPath)
	return args
}

// QualityArgs maps a quality value onto the flags the encoder understands.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую на всех версиях. Используем битрейт.
		bitrate := quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
