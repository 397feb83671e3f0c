package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Transcoder converts one audio container to another. External collaborator
// boundary: any failure is terminal for the calling pipeline, no retry.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// ffmpegTranscoder implements Transcoder by invoking the ffmpeg executable
type ffmpegTranscoder struct {
	ffmpegPath string
}

// NewFFmpegTranscoder creates a transcoder using the given ffmpeg binary.
func NewFFmpegTranscoder(ffmpegPath string) Transcoder {
	return &ffmpegTranscoder{ffmpegPath: ffmpegPath}
}

// Transcode converts inputPath into an MP3 at outputPath.
func (t *ffmpegTranscoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, t.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%v: %s", err, tailOf(string(output), 400))
	}
	return nil
}

// tailOf keeps error messages readable when ffmpeg dumps its full log.
func tailOf(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
