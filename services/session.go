package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no value is stored for a session token.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is an opaque key-value store keyed by a browser-supplied token,
// with an idle-expiry window. No process-wide singleton: callers hold the
// instance they construct.
type SessionStore interface {
	Get(token string) (string, error)
	Set(token, value string) error
}

// sessionStore implements SessionStore on top of bigcache. The cache's life
// window is the idle timeout; a hit rewrites the entry so activity keeps the
// session alive.
type sessionStore struct {
	cache *bigcache.BigCache
}

// NewSessionStore creates a session store with the given idle-expiry window.
func NewSessionStore(ttl time.Duration) (SessionStore, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, err
	}
	return &sessionStore{cache: cache}, nil
}

// Get returns the stored value for the token, refreshing its idle window.
func (s *sessionStore) Get(token string) (string, error) {
	data, err := s.cache.Get(token)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	// Touch the entry so the window behaves as idle expiry, not absolute.
	if err := s.cache.Set(token, data); err != nil {
		log.Printf("Warning: failed to refresh session %s: %v", token, err)
	}

	return string(data), nil
}

// Set stores the value for the token.
func (s *sessionStore) Set(token, value string) error {
	return s.cache.Set(token, []byte(value))
}

// GroupProvider maps session tokens to stable progress-group identifiers.
type GroupProvider interface {
	GetOrCreate(token string) string
}

type groupProvider struct {
	store SessionStore
}

// NewGroupProvider creates a group provider backed by the given session store.
func NewGroupProvider(store SessionStore) GroupProvider {
	return &groupProvider{store: store}
}

// GetOrCreate returns the session's group id, generating and storing a fresh
// one when none exists. Idempotent for the lifetime of the session.
func (g *groupProvider) GetOrCreate(token string) string {
	if groupID, err := g.store.Get(token); err == nil && groupID != "" {
		return groupID
	}

	groupID := uuid.New().String()
	if err := g.store.Set(token, groupID); err != nil {
		// Identifier generation itself is infallible; a store failure only
		// costs the caller group stability on the next request.
		log.Printf("Warning: failed to persist group id for session: %v", err)
	}
	return groupID
}
