package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	fs := NewFileService()

	tests := []struct {
		path     string
		expected string
	}{
		{"Test___Song.mp3", "audio/mpeg"},
		{"clip.m4a", "audio/mp4"},
		{"unknown.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, fs.GetContentType(tt.path))
		})
	}
}

func TestExtractAudioMetadataFallsBackToFilename(t *testing.T) {
	fs := NewFileService()

	path := filepath.Join(t.TempDir(), "Some Song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0644))

	meta := fs.ExtractAudioMetadata(path)

	require.NotNil(t, meta)
	assert.Equal(t, "Some Song", meta.Title)
}
