package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytmp3/types"
)

const (
	downloadMaxAttempts = 3
	downloadRetryDelay  = time.Second
)

// ProgressPublisher pushes progress ticks to a group. One-way and
// non-blocking: the pipeline never waits on it and never sees its failures.
type ProgressPublisher interface {
	Publish(groupID string, percent int)
}

// Converter drives a URL through the full conversion pipeline: resolve
// metadata, select a stream, download with retry, transcode, validate and
// serve. One job per call, all artifacts removed before it returns.
type Converter interface {
	Convert(ctx context.Context, rawURL, groupID string) (*types.ConversionResult, error)
}

// converter implements the Converter interface
type converter struct {
	resolver    MediaResolver
	transcoder  Transcoder
	publisher   ProgressPublisher
	scratchDir  string
	maxAttempts int
	retryDelay  time.Duration
}

// NewConverter creates a converter writing artifacts into scratchDir.
func NewConverter(resolver MediaResolver, transcoder Transcoder, publisher ProgressPublisher, scratchDir string) Converter {
	return &converter{
		resolver:    resolver,
		transcoder:  transcoder,
		publisher:   publisher,
		scratchDir:  scratchDir,
		maxAttempts: downloadMaxAttempts,
		retryDelay:  downloadRetryDelay,
	}
}

// Convert runs the pipeline to a terminal outcome. Any error short-circuits
// the remaining stages and is surfaced as a single human-readable message.
func (c *converter) Convert(ctx context.Context, rawURL, groupID string) (*types.ConversionResult, error) {
	job := &types.ConversionJob{
		ID:        uuid.New().String(),
		SourceURL: rawURL,
		GroupID:   groupID,
		Stage:     types.StageResolve,
		CreatedAt: time.Now(),
	}

	media, err := c.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	job.Title = media.Title
	log.Printf("Job %s resolved %q (%s)", job.ID, media.Title, media.ID)

	job.Stage = types.StageSelectStream
	stream := selectAudioStream(media.Streams)
	if stream == nil {
		return nil, errors.New("No MP4 audio stream available for this video.")
	}
	job.Stream = stream
	log.Printf("Job %s selected stream itag=%d bitrate=%dkbps", job.ID, stream.Itag, stream.Bitrate/1000)

	job.Stage = types.StageDownload
	job.TempPath = filepath.Join(c.scratchDir, uuid.New().String()+".m4a")
	// Guard: the temporary artifact never survives a terminal outcome past
	// the download stage, success or failure.
	defer c.removeArtifact(job.TempPath, "temporary")

	if err := c.downloadWithRetry(ctx, media, stream, job); err != nil {
		return nil, err
	}

	job.Stage = types.StageValidateTemp
	info, err := os.Stat(job.TempPath)
	if err != nil {
		return nil, errors.New("Temporary file was not created.")
	}
	if info.Size() == 0 {
		return nil, errors.New("Temporary file is empty.")
	}
	log.Printf("Job %s downloaded %d bytes to %s", job.ID, info.Size(), job.TempPath)

	job.Stage = types.StageTranscode
	safeName := SanitizeFileName(media.Title)
	job.OutputPath = filepath.Join(c.scratchDir, job.ID+"_"+safeName+".mp3")
	if err := c.transcoder.Transcode(ctx, job.TempPath, job.OutputPath); err != nil {
		return nil, fmt.Errorf("FFmpeg conversion failed: %v", err)
	}

	job.Stage = types.StageCleanupTemp
	c.removeArtifact(job.TempPath, "temporary")

	job.Stage = types.StageValidateOutput
	if _, err := os.Stat(job.OutputPath); err != nil {
		return nil, errors.New("MP3 file was not created.")
	}

	job.Stage = types.StageServe
	data, err := os.ReadFile(job.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 file: %v", err)
	}
	c.removeArtifact(job.OutputPath, "output")
	log.Printf("Job %s completed, serving %d bytes as %s.mp3", job.ID, len(data), safeName)

	return &types.ConversionResult{FileName: safeName + ".mp3", Data: data}, nil
}

// downloadWithRetry streams the selected variant to the job's temp path,
// retrying on any error with a linearly growing delay. After the final
// attempt fails, the last error is the one surfaced.
func (c *converter) downloadWithRetry(ctx context.Context, media *types.Media, stream *types.StreamInfo, job *types.ConversionJob) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		log.Printf("Job %s download attempt %d of %d", job.ID, attempt, c.maxAttempts)
		if err := c.downloadOnce(ctx, media, stream, job); err != nil {
			lastErr = err
			log.Printf("Job %s download attempt %d failed: %v", job.ID, attempt, err)
			continue
		}

		c.publish(job.GroupID, 100)
		return nil
	}
	return lastErr
}

// downloadOnce runs a single download attempt, emitting progress ticks
// derived from fractional byte completion.
func (c *converter) downloadOnce(ctx context.Context, media *types.Media, stream *types.StreamInfo, job *types.ConversionJob) error {
	file, err := os.Create(job.TempPath)
	if err != nil {
		return err
	}
	defer file.Close()

	ticks := &tickWriter{
		total:   stream.ContentLength,
		publish: func(percent int) { c.publish(job.GroupID, percent) },
	}

	_, err = c.resolver.Download(ctx, media, stream, io.MultiWriter(file, ticks))
	return err
}

// publish is the isolated fire-and-forget path to the progress channel: a
// failure here is logged at the point of publish and never reaches the
// pipeline.
func (c *converter) publish(groupID string, percent int) {
	if c.publisher == nil || groupID == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: progress publish failed for group %s: %v", groupID, r)
		}
	}()
	c.publisher.Publish(groupID, percent)
}

// removeArtifact deletes a job file, best-effort. Deletion failures are
// cleanup warnings: logged, never terminal.
func (c *converter) removeArtifact(path, kind string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to delete %s file %s: %v", kind, path, err)
	}
}

// tickWriter converts byte counts into 0-100 progress ticks, publishing only
// on increase so a connection sees a non-decreasing sequence per attempt.
type tickWriter struct {
	total   int64
	written int64
	last    int
	publish func(percent int)
}

func (t *tickWriter) Write(p []byte) (int, error) {
	t.written += int64(len(p))
	if t.total > 0 {
		percent := int(t.written * 100 / t.total)
		if percent > 100 {
			percent = 100
		}
		if percent > t.last {
			t.last = percent
			t.publish(percent)
		}
	}
	return len(p), nil
}

// selectAudioStream picks the first audio-only MP4 stream. First match, not
// best match: no bitrate ranking.
func selectAudioStream(streams []types.StreamInfo) *types.StreamInfo {
	for i := range streams {
		s := &streams[i]
		if s.AudioChannels == 0 || s.Width != 0 || s.Height != 0 {
			continue
		}
		if !strings.HasPrefix(s.MimeType, "audio/mp4") {
			continue
		}
		return s
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName replaces every character unsafe for a filename with an
// underscore, e.g. "Test & Song" becomes "Test___Song".
func SanitizeFileName(title string) string {
	safe := unsafeFileChars.ReplaceAllString(title, "_")
	if safe == "" {
		return "audio"
	}
	return safe
}
