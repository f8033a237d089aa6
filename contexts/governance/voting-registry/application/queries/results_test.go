package queries

import (
	"context"
	"testing"
	"time"

	"quorum/contexts/governance/voting-registry/adapters/memory"
	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"
)

func seedSession(t *testing.T, store *memory.Store, questions []entities.Question) uint64 {
	t.Helper()
	now := time.Now().UTC()
	id, err := store.CreateSession(context.Background(), entities.Session{
		StartsAt:  now,
		EndsAt:    now.Add(entities.MinSessionDuration),
		Questions: questions,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed session failed: %v", err)
	}
	return id
}

func TestVoteCountsPrivacyGate(t *testing.T) {
	store := memory.NewStore()
	results := ResultsUseCase{Sessions: store, Members: store, Ballots: store}
	sessionID := seedSession(t, store, []entities.Question{
		{Text: "private question", Private: true},
		{Text: "public question"},
	})

	if err := store.ApplyBallots(context.Background(), sessionID, "member-1", []ports.BallotCast{
		{QuestionIndex: 0, Choice: entities.ChoiceYes},
		{QuestionIndex: 1, Choice: entities.ChoiceNo},
	}); err != nil {
		t.Fatalf("apply ballots failed: %v", err)
	}

	_, err := results.VoteCounts(context.Background(), sessionID, 0)
	if err != domainerrors.ErrPrivateQuestionResults {
		t.Fatalf("expected sealed private results, got %v", err)
	}
	tally, err := results.VoteCounts(context.Background(), sessionID, 1)
	if err != nil {
		t.Fatalf("public counts failed: %v", err)
	}
	if tally.No != 1 {
		t.Fatalf("unexpected public tally %+v", tally)
	}

	if err := store.SetFinalized(context.Background(), sessionID, "0xdeadbeef", time.Now().UTC()); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	tally, err = results.VoteCounts(context.Background(), sessionID, 0)
	if err != nil {
		t.Fatalf("private counts after finalization failed: %v", err)
	}
	if tally.Yes != 1 {
		t.Fatalf("unexpected private tally %+v", tally)
	}
}

func TestVoteCountsValidation(t *testing.T) {
	store := memory.NewStore()
	results := ResultsUseCase{Sessions: store, Members: store, Ballots: store}

	if _, err := results.VoteCounts(context.Background(), 42, 0); err != domainerrors.ErrSessionNotFound {
		t.Fatalf("expected session not found, got %v", err)
	}

	sessionID := seedSession(t, store, []entities.Question{{Text: "q"}})
	if _, err := results.VoteCounts(context.Background(), sessionID, 3); err != domainerrors.ErrInvalidQuestionID {
		t.Fatalf("expected invalid question id, got %v", err)
	}
}

func TestHasVotedValidation(t *testing.T) {
	store := memory.NewStore()
	results := ResultsUseCase{Sessions: store, Members: store, Ballots: store}

	if _, err := results.HasVoted(context.Background(), 42, 0, "member-1"); err != domainerrors.ErrSessionNotFound {
		t.Fatalf("expected session not found, got %v", err)
	}

	sessionID := seedSession(t, store, []entities.Question{{Text: "q"}})
	if _, err := results.HasVoted(context.Background(), sessionID, 9, "member-1"); err != domainerrors.ErrInvalidQuestionID {
		t.Fatalf("expected invalid question id, got %v", err)
	}

	voted, err := results.HasVoted(context.Background(), sessionID, 0, "member-1")
	if err != nil {
		t.Fatalf("has voted failed: %v", err)
	}
	if voted {
		t.Fatal("expected no ballot marker")
	}

	if err := store.ApplyBallots(context.Background(), sessionID, "member-1", []ports.BallotCast{
		{QuestionIndex: 0, Choice: entities.ChoiceAbstain},
	}); err != nil {
		t.Fatalf("apply ballots failed: %v", err)
	}
	voted, err = results.HasVoted(context.Background(), sessionID, 0, "member-1")
	if err != nil {
		t.Fatalf("has voted failed: %v", err)
	}
	if !voted {
		t.Fatal("expected ballot marker after cast")
	}
}

func TestMembershipAndSessionCountQueries(t *testing.T) {
	store := memory.NewStore()
	results := ResultsUseCase{Sessions: store, Members: store, Ballots: store}

	count, err := results.SessionCount(context.Background())
	if err != nil {
		t.Fatalf("session count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero sessions, got %d", count)
	}

	seedSession(t, store, []entities.Question{{Text: "q"}})
	count, err = results.SessionCount(context.Background())
	if err != nil {
		t.Fatalf("session count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one session, got %d", count)
	}

	ok, err := results.IsMember(context.Background(), "member-1")
	if err != nil {
		t.Fatalf("is member failed: %v", err)
	}
	if ok {
		t.Fatal("expected unknown identity to not be a member")
	}
	if err := store.AddMembers(context.Background(), []string{"member-1"}, time.Now().UTC()); err != nil {
		t.Fatalf("add members failed: %v", err)
	}
	ok, err = results.IsMember(context.Background(), "member-1")
	if err != nil {
		t.Fatalf("is member failed: %v", err)
	}
	if !ok {
		t.Fatal("expected member after registration")
	}
}
