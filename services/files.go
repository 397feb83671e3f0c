package services

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"ytmp3/types"
)

// FileService interface defines helpers for produced audio files
type FileService interface {
	ExtractAudioMetadata(filePath string) *types.AudioMetadata
	GetContentType(filePath string) string
}

// fileService implements the FileService interface
type fileService struct{}

// NewFileService creates a new file service
func NewFileService() FileService {
	return &fileService{}
}

// GetContentType returns the appropriate MIME type for an audio file
func (fs *fileService) GetContentType(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}

// ExtractAudioMetadata extracts embedded tags from an audio file with a
// filename fallback. Best-effort: transcoded files may carry no tags at all.
func (fs *fileService) ExtractAudioMetadata(filePath string) *types.AudioMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		log.Printf("Warning: could not open audio file %s: %v", filePath, err)
		return fs.metadataFromPath(filePath)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return fs.metadataFromPath(filePath)
	}

	metadata := &types.AudioMetadata{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
	}
	if metadata.Title == "" {
		metadata.Title = fs.metadataFromPath(filePath).Title
	}
	return metadata
}

// metadataFromPath derives a title from the file name as fallback
func (fs *fileService) metadataFromPath(filePath string) *types.AudioMetadata {
	filename := filepath.Base(filePath)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	return &types.AudioMetadata{Title: title}
}
