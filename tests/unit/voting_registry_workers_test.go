package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	votingregistry "quorum/contexts/governance/voting-registry"
	registryworkers "quorum/contexts/governance/voting-registry/application/workers"
	"quorum/contexts/governance/voting-registry/ports"
	httptransport "quorum/contexts/governance/voting-registry/transport/http"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   bool
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesAndDrainsPendingEvents(t *testing.T) {
	module := votingregistry.NewInMemoryModule("admin-1", nil)

	if _, err := module.Handler.CreateSessionHandler(context.Background(), "admin-1", httptransport.CreateSessionRequest{
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	}); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if err := module.Handler.AddMembersHandler(context.Background(), "admin-1", httptransport.AddMembersRequest{
		Members: []string{"member-1"},
	}); err != nil {
		t.Fatalf("add members failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := registryworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     fixedClock{now: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)},
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	want := map[string]bool{"session.created": false, "members.added": false}
	for _, topic := range publisher.topics {
		if _, ok := want[topic]; !ok {
			t.Fatalf("unexpected topic %s", topic)
		}
		want[topic] = true
	}
	for topic, seen := range want {
		if !seen {
			t.Fatalf("expected topic %s to be published", topic)
		}
	}

	pending, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d pending rows", len(pending))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected no republish on idle run, got %d events", len(publisher.events))
	}
}

func TestOutboxRelayKeepsRowsPendingOnPublishFailure(t *testing.T) {
	module := votingregistry.NewInMemoryModule("admin-1", nil)

	if _, err := module.Handler.CreateSessionHandler(context.Background(), "admin-1", httptransport.CreateSessionRequest{
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	}); err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	publisher := &capturingPublisher{fail: true}
	relay := registryworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected relay failure when broker is down")
	}

	pending, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected row to stay pending for retry, got %d", len(pending))
	}
}
