package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "quorum/contexts/governance/voting-registry/application"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"
)

// RegistryUseCase orchestrates every mutating registry operation. Mutations
// are serialized by a single lock so each call observes and commits a fully
// consistent state; read-only queries run against the last committed state
// without taking this lock.
type RegistryUseCase struct {
	mu sync.Mutex

	Sessions ports.SessionRepository
	Members  ports.MemberRepository
	Ballots  ports.BallotRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	AdminID  string
	Logger   *slog.Logger
}

func (uc *RegistryUseCase) logger() *slog.Logger {
	return application.ResolveLogger(uc.Logger)
}

// now reads the injected clock. The time source is externally supplied and
// only trusted within TimestampBuffer; callers never read time.Now directly.
func (uc *RegistryUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc *RegistryUseCase) requireAdmin(actorID string) error {
	if strings.TrimSpace(actorID) == "" || strings.TrimSpace(actorID) != strings.TrimSpace(uc.AdminID) {
		return domainerrors.ErrNotAdmin
	}
	return nil
}

func (uc *RegistryUseCase) requireMember(ctx context.Context, actorID string) error {
	ok, err := uc.Members.IsMember(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrNotMember
	}
	return nil
}
