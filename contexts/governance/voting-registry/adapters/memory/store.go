package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"

	"github.com/google/uuid"
)

type ballotKey struct {
	SessionID     uint64
	QuestionIndex int
	MemberID      string
}

type tallyKey struct {
	SessionID     uint64
	QuestionIndex int
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory registry adapter used for tests and local wiring.
type Store struct {
	mu sync.RWMutex

	nextSessionID uint64
	sessions      map[uint64]entities.Session
	members       map[string]time.Time
	ballots       map[ballotKey]struct{}
	tallies       map[tallyKey]entities.Tally
	outbox        map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uint64]entities.Session),
		members:  make(map[string]time.Time),
		ballots:  make(map[ballotKey]struct{}),
		tallies:  make(map[tallyKey]entities.Tally),
		outbox:   make(map[string]outboxRecord),
	}
}

func (s *Store) CreateSession(_ context.Context, session entities.Session) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSessionID++
	session.SessionID = s.nextSessionID
	session.Questions = append([]entities.Question(nil), session.Questions...)
	s.sessions[session.SessionID] = session
	return session.SessionID, nil
}

func (s *Store) GetSession(_ context.Context, sessionID uint64) (entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return entities.Session{}, domainerrors.ErrSessionNotFound
	}
	session.Questions = append([]entities.Question(nil), session.Questions...)
	return session, nil
}

func (s *Store) SetPaused(_ context.Context, sessionID uint64, pausedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domainerrors.ErrSessionNotFound
	}
	session.Paused = true
	session.UpdatedAt = pausedAt.UTC()
	s.sessions[sessionID] = session
	return nil
}

func (s *Store) SetFinalized(_ context.Context, sessionID uint64, commitment string, finalizedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domainerrors.ErrSessionNotFound
	}
	session.Finalized = true
	session.Commitment = strings.TrimSpace(commitment)
	session.UpdatedAt = finalizedAt.UTC()
	s.sessions[sessionID] = session
	return nil
}

func (s *Store) SessionCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextSessionID, nil
}

func (s *Store) AddMembers(_ context.Context, memberIDs []string, addedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range memberIDs {
		id = strings.TrimSpace(id)
		if _, exists := s.members[id]; exists {
			continue
		}
		s.members[id] = addedAt.UTC()
	}
	return nil
}

func (s *Store) IsMember(_ context.Context, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[strings.TrimSpace(memberID)]
	return ok, nil
}

func (s *Store) HasVoted(_ context.Context, sessionID uint64, questionIndex int, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ballots[ballotKey{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		MemberID:      strings.TrimSpace(memberID),
	}]
	return ok, nil
}

// ApplyBallots stages every marker and tally increment before committing, so
// a failing item leaves no partial state behind.
func (s *Store) ApplyBallots(_ context.Context, sessionID uint64, memberID string, casts []ports.BallotCast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memberID = strings.TrimSpace(memberID)
	markers := make([]ballotKey, 0, len(casts))
	staged := make(map[tallyKey]entities.Tally, len(casts))
	for _, cast := range casts {
		marker := ballotKey{
			SessionID:     sessionID,
			QuestionIndex: cast.QuestionIndex,
			MemberID:      memberID,
		}
		if _, exists := s.ballots[marker]; exists {
			return domainerrors.ErrAlreadyVoted
		}
		for _, pending := range markers {
			if pending == marker {
				return domainerrors.ErrAlreadyVoted
			}
		}

		key := tallyKey{SessionID: sessionID, QuestionIndex: cast.QuestionIndex}
		tally, ok := staged[key]
		if !ok {
			tally = s.tallies[key]
		}
		if !tally.Increment(cast.Choice) {
			return domainerrors.ErrVoteCountOverflow
		}
		staged[key] = tally
		markers = append(markers, marker)
	}

	for _, marker := range markers {
		s.ballots[marker] = struct{}{}
	}
	for key, tally := range staged {
		s.tallies[key] = tally
	}
	return nil
}

func (s *Store) GetTally(_ context.Context, sessionID uint64, questionIndex int) (entities.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallies[tallyKey{SessionID: sessionID, QuestionIndex: questionIndex}], nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.SessionRepository = (*Store)(nil)
var _ ports.MemberRepository = (*Store)(nil)
var _ ports.BallotRepository = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
