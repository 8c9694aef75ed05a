package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/openmcp/openmcp-backend/internal/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type fakeSession struct {
	id string

	mu       sync.Mutex
	received []string
	fail     bool
}

func (s *fakeSession) SessionID() string { return s.id }

func (s *fakeSession) SendResourceUpdated(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("session gone")
	}
	s.received = append(s.received, uri)
	return nil
}

func (s *fakeSession) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestHubDeliversExactlyOneEvent(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	uri := ResourceURI("guidelines")
	sess := &fakeSession{id: "s1"}

	hub.Subscribe(uri, sess)
	hub.NotifyResourceUpdated(context.Background(), uri)

	if got := sess.count(); got != 1 {
		t.Fatalf("want exactly 1 event, got %d", got)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	uri := ResourceURI("guidelines")
	sess := &fakeSession{id: "s1"}

	hub.Subscribe(uri, sess)
	hub.Unsubscribe(uri, sess.id)
	hub.NotifyResourceUpdated(context.Background(), uri)

	if got := sess.count(); got != 0 {
		t.Fatalf("unsubscribed session must receive nothing, got %d", got)
	}
	if got := hub.SubscriberCount(uri); got != 0 {
		t.Fatalf("empty identifier entry must be removed, got %d subscribers", got)
	}
}

func TestHubSubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	uri := ResourceURI("guidelines")
	sess := &fakeSession{id: "s1"}

	hub.Subscribe(uri, sess)
	hub.Subscribe(uri, sess)
	hub.NotifyResourceUpdated(context.Background(), uri)

	if got := sess.count(); got != 1 {
		t.Fatalf("re-subscribing must not duplicate delivery, got %d", got)
	}
}

func TestHubIdentifiersAreCaseInsensitive(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	sess := &fakeSession{id: "s1"}

	hub.Subscribe("open-mcp://Resource/Guidelines", sess)
	hub.NotifyResourceUpdated(context.Background(), "open-mcp://resource/guidelines")

	if got := sess.count(); got != 1 {
		t.Fatalf("case-insensitive identifier must match, got %d events", got)
	}
}

func TestHubIgnoresEmptyIdentifierAndSession(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	sess := &fakeSession{id: "s1"}

	hub.Subscribe("", sess)
	hub.Subscribe(ResourceURI("guidelines"), &fakeSession{id: ""})
	hub.Subscribe(ResourceURI("guidelines"), nil)

	if got := hub.SubscriberCount(ResourceURI("guidelines")); got != 0 {
		t.Fatalf("blank registrations must be no-ops, got %d", got)
	}
}

func TestHubEvictsFailingSessionAndDeliversToOthers(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	uri := ResourceURI("guidelines")
	healthy := &fakeSession{id: "healthy"}
	dead := &fakeSession{id: "dead", fail: true}

	hub.Subscribe(uri, healthy)
	hub.Subscribe(uri, dead)
	hub.NotifyResourceUpdated(context.Background(), uri)

	if got := healthy.count(); got != 1 {
		t.Fatalf("healthy session must still receive its event, got %d", got)
	}
	if got := hub.SubscriberCount(uri); got != 1 {
		t.Fatalf("failing session must be evicted, got %d subscribers", got)
	}

	// No retry: the evicted session stays gone on the next round.
	hub.NotifyResourceUpdated(context.Background(), uri)
	if got := healthy.count(); got != 2 {
		t.Fatalf("want 2 events on healthy session, got %d", got)
	}
	if got := dead.count(); got != 0 {
		t.Fatalf("dead session must never receive, got %d", got)
	}
}

func TestHubNotifyWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	hub.NotifyResourceUpdated(context.Background(), ResourceURI("nobody-watches"))
}

func TestHubConcurrentChurn(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	uri := ResourceURI("churn")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess := &fakeSession{id: fmt.Sprintf("s%d", n)}
			for j := 0; j < 100; j++ {
				hub.Subscribe(uri, sess)
				hub.NotifyResourceUpdated(context.Background(), uri)
				hub.Unsubscribe(uri, sess.id)
			}
		}(i)
	}
	wg.Wait()

	if got := hub.SubscriberCount(uri); got != 0 {
		t.Fatalf("all sessions unsubscribed, want 0 subscribers, got %d", got)
	}
}

func TestResourceURIRoundTrip(t *testing.T) {
	uri := ResourceURI("team/onboarding")
	if uri != "open-mcp://resource/team/onboarding" {
		t.Fatalf("unexpected uri: %s", uri)
	}
	if got := ResourceName(uri); got != "team/onboarding" {
		t.Fatalf("ResourceName: want=%q got=%q", "team/onboarding", got)
	}
	if got := ResourceName("bare-name"); got != "bare-name" {
		t.Fatalf("bare names must pass through, got %q", got)
	}
}
