package commands

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
)

// CreateSessionCommand is the write-model input for session creation. A
// session is created atomically with its full question list; questions can
// never be added or changed afterwards.
type CreateSessionCommand struct {
	ActorID         string
	Questions       []string
	PrivacyFlags    []bool
	DurationSeconds int64
}

type CreateSessionResult struct {
	Session entities.Session
}

type PauseSessionCommand struct {
	ActorID   string
	SessionID uint64
}

type FinalizeSessionCommand struct {
	ActorID   string
	SessionID uint64
	// Commitment is the hex-encoded results commitment produced by the
	// off-chain result-computation service. The registry stores it opaquely.
	Commitment string
}

func (uc *RegistryUseCase) CreateSession(ctx context.Context, cmd CreateSessionCommand) (CreateSessionResult, error) {
	logger := uc.logger()
	if err := uc.requireAdmin(cmd.ActorID); err != nil {
		return CreateSessionResult{}, err
	}
	if len(cmd.Questions) == 0 || len(cmd.Questions) != len(cmd.PrivacyFlags) {
		logger.Warn("session create validation failed",
			"event", "registry_session_create_validation_failed",
			"module", "governance/voting-registry",
			"layer", "application",
			"question_count", len(cmd.Questions),
			"flag_count", len(cmd.PrivacyFlags),
		)
		return CreateSessionResult{}, domainerrors.ErrInvalidQuestionCount
	}
	// Bounds are checked on the raw seconds value; converting an arbitrary
	// int64 to time.Duration first can wrap back into the valid range.
	if cmd.DurationSeconds < int64(entities.MinSessionDuration/time.Second) ||
		cmd.DurationSeconds > int64(entities.MaxSessionDuration/time.Second) {
		return CreateSessionResult{}, domainerrors.ErrInvalidSessionDuration
	}
	duration := time.Duration(cmd.DurationSeconds) * time.Second

	now := uc.now()
	endsAt, ok := entities.SessionWindow(now, duration)
	if !ok {
		return CreateSessionResult{}, domainerrors.ErrDurationOverflow
	}

	questions := make([]entities.Question, 0, len(cmd.Questions))
	for i, text := range cmd.Questions {
		questions = append(questions, entities.Question{
			Text:    text,
			Private: cmd.PrivacyFlags[i],
		})
	}
	session := entities.Session{
		StartsAt:  now,
		EndsAt:    endsAt,
		Questions: questions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	sessionID, err := uc.Sessions.CreateSession(ctx, session)
	if err != nil {
		return CreateSessionResult{}, err
	}
	session.SessionID = sessionID

	if err := uc.appendRegistryEvent(ctx, "session.created", sessionID, now, map[string]any{
		"session_id":       sessionID,
		"created_by":       strings.TrimSpace(cmd.ActorID),
		"question_count":   len(questions),
		"duration_seconds": cmd.DurationSeconds,
		"starts_at":        now.Format(time.RFC3339),
		"ends_at":          endsAt.Format(time.RFC3339),
	}); err != nil {
		return CreateSessionResult{}, err
	}

	logger.Info("session created",
		"event", "registry_session_created",
		"module", "governance/voting-registry",
		"layer", "application",
		"session_id", sessionID,
		"question_count", len(questions),
		"duration_seconds", cmd.DurationSeconds,
	)
	return CreateSessionResult{Session: session}, nil
}

// PauseSession is a one-way emergency brake. The public surface exposes no
// unpause; a paused session can only move on to finalization.
func (uc *RegistryUseCase) PauseSession(ctx context.Context, cmd PauseSessionCommand) error {
	logger := uc.logger()
	if err := uc.requireAdmin(cmd.ActorID); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, err := uc.Sessions.GetSession(ctx, cmd.SessionID)
	if err != nil {
		return err
	}
	if session.Finalized {
		return domainerrors.ErrSessionAlreadyFinalized
	}
	if session.Paused {
		return domainerrors.ErrSessionAlreadyPaused
	}

	now := uc.now()
	if err := uc.Sessions.SetPaused(ctx, cmd.SessionID, now); err != nil {
		return err
	}
	if err := uc.appendRegistryEvent(ctx, "session.paused", cmd.SessionID, now, map[string]any{
		"session_id": cmd.SessionID,
		"paused_by":  strings.TrimSpace(cmd.ActorID),
	}); err != nil {
		return err
	}

	logger.Info("session paused",
		"event", "registry_session_paused",
		"module", "governance/voting-registry",
		"layer", "application",
		"session_id", cmd.SessionID,
	)
	return nil
}

// FinalizeSession seals the session with the supplied commitment. It is
// deliberately not gated on the active window: a paused or naturally expired
// session can still be finalized, and finalization is terminal.
func (uc *RegistryUseCase) FinalizeSession(ctx context.Context, cmd FinalizeSessionCommand) error {
	logger := uc.logger()
	if err := uc.requireAdmin(cmd.ActorID); err != nil {
		return err
	}
	commitment := strings.TrimSpace(cmd.Commitment)
	if !validCommitment(commitment) {
		return domainerrors.ErrInvalidResultsHash
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, err := uc.Sessions.GetSession(ctx, cmd.SessionID)
	if err != nil {
		return err
	}
	if session.Finalized {
		return domainerrors.ErrSessionAlreadyFinalized
	}

	now := uc.now()
	if err := uc.Sessions.SetFinalized(ctx, cmd.SessionID, commitment, now); err != nil {
		return err
	}
	if err := uc.appendRegistryEvent(ctx, "session.finalized", cmd.SessionID, now, map[string]any{
		"session_id":   cmd.SessionID,
		"finalized_by": strings.TrimSpace(cmd.ActorID),
		"commitment":   commitment,
	}); err != nil {
		return err
	}

	logger.Info("session finalized",
		"event", "registry_session_finalized",
		"module", "governance/voting-registry",
		"layer", "application",
		"session_id", cmd.SessionID,
	)
	return nil
}

// validCommitment accepts hex-encoded bytes that are non-empty and not all
// zero. The registry never interprets the value beyond this check.
func validCommitment(commitment string) bool {
	raw, err := hex.DecodeString(strings.TrimPrefix(commitment, "0x"))
	if err != nil || len(raw) == 0 {
		return false
	}
	for _, b := range raw {
		if b != 0 {
			return true
		}
	}
	return false
}
