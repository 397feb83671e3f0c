package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var Env = map[string]string{
	"YTMP3_SCRATCH_DIR":   os.Getenv("YTMP3_SCRATCH_DIR"),
	"FFMPEG_PATH":         os.Getenv("FFMPEG_PATH"),
	"SESSION_TTL_MINUTES": os.Getenv("SESSION_TTL_MINUTES"),
}

// GetScratchDir returns the directory for temporary and output artifacts.
// Files there are ephemeral and never outlive a single request.
func GetScratchDir() string {
	if custom := Env["YTMP3_SCRATCH_DIR"]; custom != "" {
		return custom
	}
	return filepath.Join(os.TempDir(), "ytmp3")
}

// GetFFmpegPath returns the ffmpeg executable to invoke for transcoding.
func GetFFmpegPath() string {
	if path := Env["FFMPEG_PATH"]; path != "" {
		return path
	}
	return "ffmpeg"
}

// GetSessionTTL returns the session idle-expiry window.
func GetSessionTTL() time.Duration {
	if raw := Env["SESSION_TTL_MINUTES"]; raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 20 * time.Minute
}

// EnsureScratchDir creates the scratch directory if it does not exist.
func EnsureScratchDir() error {
	return os.MkdirAll(GetScratchDir(), 0755)
}
