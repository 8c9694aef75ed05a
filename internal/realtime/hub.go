package realtime

import (
	"context"
	"strings"
	"sync"

	"github.com/openmcp/openmcp-backend/internal/logger"
)

// Session is a live protocol client connection that can receive pushed
// resource-change events. The protocol adapter owns session identity
// and the wire-level delivery.
type Session interface {
	SessionID() string
	SendResourceUpdated(ctx context.Context, uri string) error
}

// ChangeNotifier is what the resource service calls after an approval
// or deletion mutated externally visible state.
type ChangeNotifier interface {
	NotifyResourceUpdated(ctx context.Context, uri string)
}

// Hub maps watch identifiers to the live sessions subscribed to them.
// Identifiers are case-insensitive. Mutations and the snapshot taken by
// a notification round are safe under arbitrary interleaving; a session
// subscribing while a round is snapshotting may or may not see that
// round's event.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[string]Session
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "SubscriptionHub"),
		subscriptions: make(map[string]map[string]Session),
	}
}

// Subscribe registers a session's interest in uri. Re-subscribing the
// same session just refreshes its handle.
func (h *Hub) Subscribe(uri string, sess Session) {
	uri = normalizeURI(uri)
	if uri == "" || sess == nil || sess.SessionID() == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	bySession, exists := h.subscriptions[uri]
	if !exists {
		bySession = make(map[string]Session)
		h.subscriptions[uri] = bySession
	}
	bySession[sess.SessionID()] = sess

	h.log.Debug("Session subscribed", "sessionID", sess.SessionID(), "uri", uri)
}

// Unsubscribe removes a session from uri; the uri entry disappears when
// its last subscriber leaves.
func (h *Hub) Unsubscribe(uri, sessionID string) {
	uri = normalizeURI(uri)
	if uri == "" || sessionID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	bySession, exists := h.subscriptions[uri]
	if !exists {
		return
	}
	delete(bySession, sessionID)
	if len(bySession) == 0 {
		delete(h.subscriptions, uri)
	}

	h.log.Debug("Session unsubscribed", "sessionID", sessionID, "uri", uri)
}

// NotifyResourceUpdated fans one change event out to every session
// subscribed to uri. Delivery is best-effort and at-most-once: a failed
// push evicts that session and the round continues with the rest.
func (h *Hub) NotifyResourceUpdated(ctx context.Context, uri string) {
	uri = normalizeURI(uri)
	if uri == "" {
		return
	}

	h.mu.RLock()
	bySession, exists := h.subscriptions[uri]
	if !exists || len(bySession) == 0 {
		h.mu.RUnlock()
		return
	}
	// Snapshot before delivering; pushes must not run under the lock.
	targets := make(map[string]Session, len(bySession))
	for id, sess := range bySession {
		targets[id] = sess
	}
	h.mu.RUnlock()

	var failed []string
	for id, sess := range targets {
		if err := sess.SendResourceUpdated(ctx, uri); err != nil {
			h.log.Warn("Dropping unreachable session", "sessionID", id, "uri", uri, "error", err)
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		h.evict(uri, failed)
	}
}

// SubscriberCount reports how many sessions currently watch uri.
func (h *Hub) SubscriberCount(uri string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[normalizeURI(uri)])
}

func (h *Hub) evict(uri string, sessionIDs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bySession, exists := h.subscriptions[uri]
	if !exists {
		return
	}
	for _, id := range sessionIDs {
		delete(bySession, id)
	}
	if len(bySession) == 0 {
		delete(h.subscriptions, uri)
	}
}

func normalizeURI(uri string) string {
	return strings.ToLower(strings.TrimSpace(uri))
}
