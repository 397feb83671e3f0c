package types

import "time"

// ProgressMessage is a progress tick pushed to every subscriber of a group.
// Ephemeral: transmitted, never stored. Consumers treat the last received
// percent as authoritative.
type ProgressMessage struct {
	GroupID   string    `json:"groupId"`
	Percent   int       `json:"percent"` // 0-100
	Timestamp time.Time `json:"timestamp"`
}

// ClientCommand is a message sent by a connected client over the socket.
// The only supported action is "subscribe".
type ClientCommand struct {
	Action  string `json:"action"`
	GroupID string `json:"groupId"`
}
