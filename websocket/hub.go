package websocket

import (
	"log"
	"sync"
	"time"

	"ytmp3/types"
)

// Hub interface defines the progress channel: a concurrent-safe registry of
// groupId -> connected clients with subscribe/unsubscribe/publish as its only
// operations. Delivery is best-effort and fire-and-forget.
type Hub interface {
	Run()
	Subscribe(client *Client, groupID string)
	Unsubscribe(client *Client)
	Publish(groupID string, percent int)
}

type subscription struct {
	client  *Client
	groupID string
}

// hub maintains the set of subscribed clients per group and fans progress
// messages out to them
type hub struct {
	// Subscribed clients mapped by group ID
	groups map[string]map[*Client]bool

	// Broadcast channel for progress messages
	broadcast chan types.ProgressMessage

	// Subscribe requests from clients
	subscribe chan subscription

	// Unregister requests from disconnecting clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mu sync.RWMutex
}

// NewHub creates a new progress hub
func NewHub() Hub {
	return &hub{
		groups:     make(map[string]map[*Client]bool),
		broadcast:  make(chan types.ProgressMessage, 64),
		subscribe:  make(chan subscription),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main event loop
func (h *hub) Run() {
	for {
		select {
		case sub := <-h.subscribe:
			h.mu.Lock()
			if h.groups[sub.groupID] == nil {
				h.groups[sub.groupID] = make(map[*Client]bool)
			}
			h.groups[sub.groupID][sub.client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client subscribed to group %s", sub.groupID)

		case client := <-h.unregister:
			h.mu.Lock()
			h.dropClient(client)
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.groups[message.GroupID]; ok {
				for client := range clients {
					select {
					case client.send <- message:
					default:
						// Stalled client; drop it without affecting the rest
						client.closeOnce.Do(func() { close(client.send) })
						delete(clients, client)
					}
				}
				if len(clients) == 0 {
					delete(h.groups, message.GroupID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropClient removes the client from every group it joined. Caller holds the lock.
func (h *hub) dropClient(client *Client) {
	for groupID, clients := range h.groups {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.groups, groupID)
			}
		}
	}
	client.closeOnce.Do(func() { close(client.send) })
}

// Subscribe adds the client to the named group. Idempotent; a client may
// belong to several groups at once.
func (h *hub) Subscribe(client *Client, groupID string) {
	h.subscribe <- subscription{client: client, groupID: groupID}
}

// Unsubscribe removes the client from all groups. Called from the transport
// lifecycle hook on disconnect, never inferred elsewhere.
func (h *hub) Unsubscribe(client *Client) {
	h.unregister <- client
}

// Publish sends a progress tick to every client currently subscribed to the
// group. Non-blocking: when the broadcast channel is full the tick is dropped
// and logged, and the publishing pipeline stage is never held up.
func (h *hub) Publish(groupID string, percent int) {
	msg := types.ProgressMessage{
		GroupID:   groupID,
		Percent:   percent,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- msg:
	default:
		log.Printf("WebSocket broadcast channel full, dropping tick for group %s", groupID)
	}
}
