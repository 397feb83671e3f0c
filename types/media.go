package types

// Media is the resolved description of a remote media resource.
type Media struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Author  string       `json:"author,omitempty"`
	Streams []StreamInfo `json:"streams,omitempty"`
}

// AudioMetadata represents tags embedded in a produced audio file
type AudioMetadata struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// StreamInfo describes one downloadable stream variant of a media resource.
// Audio-only streams carry channel counts but no video dimensions.
type StreamInfo struct {
	Itag          int    `json:"itag"`
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	AudioChannels int    `json:"audioChannels"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ContentLength int64  `json:"contentLength"`
}
