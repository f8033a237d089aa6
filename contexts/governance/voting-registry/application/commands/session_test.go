package commands

import (
	"context"
	"math"
	"testing"
	"time"

	"quorum/contexts/governance/voting-registry/adapters/memory"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
)

const testAdminID = "admin-1"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestRegistry(store *memory.Store, clock *fakeClock) *RegistryUseCase {
	return &RegistryUseCase{
		Sessions: store,
		Members:  store,
		Ballots:  store,
		Outbox:   store,
		Clock:    clock,
		IDGen:    store,
		AdminID:  testAdminID,
	}
}

func TestCreateSessionDurationBounds(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	cases := []struct {
		seconds int64
		wantErr error
	}{
		{seconds: 1799, wantErr: domainerrors.ErrInvalidSessionDuration},
		{seconds: 1800, wantErr: nil},
		{seconds: 7200, wantErr: nil},
		{seconds: 7201, wantErr: domainerrors.ErrInvalidSessionDuration},
		{seconds: -1, wantErr: domainerrors.ErrInvalidSessionDuration},
		// Values past math.MaxInt64/1e9 wrap when converted to a
		// nanosecond-based time.Duration and must still be rejected.
		{seconds: 18446747674, wantErr: domainerrors.ErrInvalidSessionDuration},
		{seconds: math.MaxInt64, wantErr: domainerrors.ErrInvalidSessionDuration},
	}
	accepted := uint64(0)
	for _, tc := range cases {
		_, err := registry.CreateSession(context.Background(), CreateSessionCommand{
			ActorID:         testAdminID,
			Questions:       []string{"adopt proposal 7?"},
			PrivacyFlags:    []bool{false},
			DurationSeconds: tc.seconds,
		})
		if err != tc.wantErr {
			t.Fatalf("duration %d: expected %v, got %v", tc.seconds, tc.wantErr, err)
		}
		if err == nil {
			accepted++
		}
	}

	count, err := store.SessionCount(context.Background())
	if err != nil {
		t.Fatalf("session count failed: %v", err)
	}
	if count != accepted {
		t.Fatalf("expected %d sessions, got %d", accepted, count)
	}
}

func TestCreateSessionRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	registry := newTestRegistry(store, &fakeClock{now: time.Now().UTC()})

	_, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         "member-1",
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	})
	if err != domainerrors.ErrNotAdmin {
		t.Fatalf("expected not admin, got %v", err)
	}
}

func TestCreateSessionQuestionShape(t *testing.T) {
	store := memory.NewStore()
	registry := newTestRegistry(store, &fakeClock{now: time.Now().UTC()})

	_, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		DurationSeconds: 1800,
	})
	if err != domainerrors.ErrInvalidQuestionCount {
		t.Fatalf("expected invalid question count for empty list, got %v", err)
	}

	_, err = registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		Questions:       []string{"q1", "q2"},
		PrivacyFlags:    []bool{true},
		DurationSeconds: 1800,
	})
	if err != domainerrors.ErrInvalidQuestionCount {
		t.Fatalf("expected invalid question count for flag mismatch, got %v", err)
	}
}

func TestCreateSessionAssignsSequentialIDs(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	for want := uint64(1); want <= 3; want++ {
		result, err := registry.CreateSession(context.Background(), CreateSessionCommand{
			ActorID:         testAdminID,
			Questions:       []string{"q"},
			PrivacyFlags:    []bool{false},
			DurationSeconds: 1800,
		})
		if err != nil {
			t.Fatalf("create session failed: %v", err)
		}
		if result.Session.SessionID != want {
			t.Fatalf("expected session id %d, got %d", want, result.Session.SessionID)
		}
	}

	count, err := store.SessionCount(context.Background())
	if err != nil {
		t.Fatalf("session count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected session count 3, got %d", count)
	}
}

func TestPauseSessionIsOneWay(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	result, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	sessionID := result.Session.SessionID

	if err := registry.PauseSession(context.Background(), PauseSessionCommand{
		ActorID:   testAdminID,
		SessionID: sessionID,
	}); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	err = registry.PauseSession(context.Background(), PauseSessionCommand{
		ActorID:   testAdminID,
		SessionID: sessionID,
	})
	if err != domainerrors.ErrSessionAlreadyPaused {
		t.Fatalf("expected already paused, got %v", err)
	}

	session, err := store.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if !session.Paused {
		t.Fatal("expected session paused")
	}
}

func TestPauseSessionUnknownID(t *testing.T) {
	store := memory.NewStore()
	registry := newTestRegistry(store, &fakeClock{now: time.Now().UTC()})

	err := registry.PauseSession(context.Background(), PauseSessionCommand{
		ActorID:   testAdminID,
		SessionID: 99,
	})
	if err != domainerrors.ErrSessionNotFound {
		t.Fatalf("expected session not found, got %v", err)
	}
}

func TestFinalizeSessionCommitmentValidation(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	result, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	sessionID := result.Session.SessionID

	for _, bad := range []string{"", "0x", "0x0000", "not-hex", "0xzz"} {
		err := registry.FinalizeSession(context.Background(), FinalizeSessionCommand{
			ActorID:    testAdminID,
			SessionID:  sessionID,
			Commitment: bad,
		})
		if err != domainerrors.ErrInvalidResultsHash {
			t.Fatalf("commitment %q: expected invalid results hash, got %v", bad, err)
		}
	}

	if err := registry.FinalizeSession(context.Background(), FinalizeSessionCommand{
		ActorID:    testAdminID,
		SessionID:  sessionID,
		Commitment: "0xdeadbeef",
	}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	session, err := store.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if !session.Finalized || session.Commitment != "0xdeadbeef" {
		t.Fatalf("expected finalized with commitment, got %+v", session)
	}
}

func TestFinalizeSessionIsTerminal(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	result, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	sessionID := result.Session.SessionID

	if err := registry.FinalizeSession(context.Background(), FinalizeSessionCommand{
		ActorID:    testAdminID,
		SessionID:  sessionID,
		Commitment: "0x01",
	}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	err = registry.FinalizeSession(context.Background(), FinalizeSessionCommand{
		ActorID:    testAdminID,
		SessionID:  sessionID,
		Commitment: "0x02",
	})
	if err != domainerrors.ErrSessionAlreadyFinalized {
		t.Fatalf("expected already finalized, got %v", err)
	}
	err = registry.PauseSession(context.Background(), PauseSessionCommand{
		ActorID:   testAdminID,
		SessionID: sessionID,
	})
	if err != domainerrors.ErrSessionAlreadyFinalized {
		t.Fatalf("expected already finalized on pause, got %v", err)
	}
}

func TestFinalizeAfterPauseAndExpiry(t *testing.T) {
	store := memory.NewStore()
	clock := &fakeClock{now: time.Now().UTC()}
	registry := newTestRegistry(store, clock)

	result, err := registry.CreateSession(context.Background(), CreateSessionCommand{
		ActorID:         testAdminID,
		Questions:       []string{"q"},
		PrivacyFlags:    []bool{false},
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	sessionID := result.Session.SessionID

	if err := registry.PauseSession(context.Background(), PauseSessionCommand{
		ActorID:   testAdminID,
		SessionID: sessionID,
	}); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	clock.now = result.Session.EndsAt.Add(time.Hour)
	if err := registry.FinalizeSession(context.Background(), FinalizeSessionCommand{
		ActorID:    testAdminID,
		SessionID:  sessionID,
		Commitment: "0xabc123",
	}); err != nil {
		t.Fatalf("finalize of paused expired session failed: %v", err)
	}
}
