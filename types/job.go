package types

import "time"

// Stage represents the pipeline stage a conversion job is currently in
type Stage string

const (
	StageResolve        Stage = "resolve"
	StageSelectStream   Stage = "select_stream"
	StageDownload       Stage = "download"
	StageValidateTemp   Stage = "validate_temp"
	StageTranscode      Stage = "transcode"
	StageCleanupTemp    Stage = "cleanup_temp"
	StageValidateOutput Stage = "validate_output"
	StageServe          Stage = "serve"
)

// ConversionJob tracks one URL-to-MP3 conversion from submission to response.
// Jobs are transient: created at request start, gone (including both artifacts
// on disk) before the handler returns.
type ConversionJob struct {
	ID         string      `json:"id"`
	SourceURL  string      `json:"sourceUrl"`
	GroupID    string      `json:"groupId"`
	Title      string      `json:"title,omitempty"`
	Stream     *StreamInfo `json:"stream,omitempty"`
	TempPath   string      `json:"-"`
	OutputPath string      `json:"-"`
	Stage      Stage       `json:"stage"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ConversionResult is the terminal success payload: the produced MP3 bytes and
// the download name suggested to the browser.
type ConversionResult struct {
	FileName string
	Data     []byte
}
