package ports

import (
	"context"
	"time"

	"quorum/contexts/governance/voting-registry/domain/entities"
	contractsv1 "quorum/contracts/gen/events/v1"
)

type SessionRepository interface {
	// CreateSession persists the session and allocates the next sequential
	// 1-based session id.
	CreateSession(ctx context.Context, session entities.Session) (uint64, error)
	GetSession(ctx context.Context, sessionID uint64) (entities.Session, error)
	SetPaused(ctx context.Context, sessionID uint64, pausedAt time.Time) error
	SetFinalized(ctx context.Context, sessionID uint64, commitment string, finalizedAt time.Time) error
	SessionCount(ctx context.Context) (uint64, error)
}

type MemberRepository interface {
	// AddMembers marks each identity as a member. Re-adding is a no-op.
	AddMembers(ctx context.Context, memberIDs []string, addedAt time.Time) error
	IsMember(ctx context.Context, memberID string) (bool, error)
}

// BallotCast is one (question, choice) item applied for a member.
type BallotCast struct {
	QuestionIndex int
	Choice        entities.Choice
}

type BallotRepository interface {
	HasVoted(ctx context.Context, sessionID uint64, questionIndex int, memberID string) (bool, error)
	// ApplyBallots marks every cast as voted and increments the matching
	// tallies in one atomic step. If any marker already exists the whole
	// call fails with ErrAlreadyVoted and no state changes; a counter that
	// would wrap fails the whole call with ErrVoteCountOverflow.
	ApplyBallots(ctx context.Context, sessionID uint64, memberID string, casts []BallotCast) error
	GetTally(ctx context.Context, sessionID uint64, questionIndex int) (entities.Tally, error)
}

// EventEnvelope is the canonical audit event shape shared with downstream
// consumers through the contracts module.
type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
