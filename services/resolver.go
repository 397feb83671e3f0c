package services

import (
	"context"
	"fmt"
	"io"

	youtube "github.com/kkdai/youtube/v2"

	"ytmp3/types"
)

// MediaResolver resolves a URL to a downloadable media description and streams
// a selected variant's bytes. External collaborator boundary: the pipeline
// only sees Media/StreamInfo descriptors and an io.Writer copy.
type MediaResolver interface {
	Resolve(ctx context.Context, rawURL string) (*types.Media, error)
	Download(ctx context.Context, media *types.Media, stream *types.StreamInfo, w io.Writer) (int64, error)
}

// youtubeResolver implements MediaResolver using kkdai/youtube
type youtubeResolver struct {
	client *youtube.Client
}

// NewYouTubeResolver creates a resolver backed by the YouTube client.
func NewYouTubeResolver() MediaResolver {
	return &youtubeResolver{client: &youtube.Client{}}
}

// Resolve fetches the canonical video id, title and available stream variants.
func (r *youtubeResolver) Resolve(ctx context.Context, rawURL string) (*types.Media, error) {
	video, err := r.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	media := &types.Media{
		ID:     video.ID,
		Title:  video.Title,
		Author: video.Author,
	}
	for _, f := range video.Formats {
		media.Streams = append(media.Streams, types.StreamInfo{
			Itag:          f.ItagNo,
			MimeType:      f.MimeType,
			Bitrate:       f.Bitrate,
			AudioChannels: f.AudioChannels,
			Width:         f.Width,
			Height:        f.Height,
			ContentLength: f.ContentLength,
		})
	}
	return media, nil
}

// Download streams the selected variant into w and returns the bytes written.
func (r *youtubeResolver) Download(ctx context.Context, media *types.Media, stream *types.StreamInfo, w io.Writer) (int64, error) {
	video, err := r.client.GetVideoContext(ctx, media.ID)
	if err != nil {
		return 0, err
	}

	formats := video.Formats.Itag(stream.Itag)
	if len(formats) == 0 {
		return 0, fmt.Errorf("stream itag %d is no longer available", stream.Itag)
	}

	reader, _, err := r.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	return io.Copy(w, reader)
}
