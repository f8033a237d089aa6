package commands

import (
	"context"
	"strings"
	"time"

	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"
)

// CastVoteCommand records one irrevocable choice for the calling member.
type CastVoteCommand struct {
	ActorID       string
	SessionID     uint64
	QuestionIndex int
	Choice        entities.Choice
}

// CastBatchCommand applies several votes as one all-or-nothing set.
type CastBatchCommand struct {
	ActorID         string
	SessionID       uint64
	QuestionIndices []int
	Choices         []entities.Choice
}

func (uc *RegistryUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) error {
	logger := uc.logger()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, casts, err := uc.validateVotes(ctx, cmd.ActorID, cmd.SessionID,
		[]int{cmd.QuestionIndex}, []entities.Choice{cmd.Choice})
	if err != nil {
		logger.Warn("vote rejected",
			"event", "registry_vote_rejected",
			"module", "governance/voting-registry",
			"layer", "application",
			"session_id", cmd.SessionID,
			"question_index", cmd.QuestionIndex,
			"error", err.Error(),
		)
		return err
	}
	if err := uc.applyVotes(ctx, session, strings.TrimSpace(cmd.ActorID), casts); err != nil {
		return err
	}

	logger.Info("vote cast",
		"event", "registry_vote_cast",
		"module", "governance/voting-registry",
		"layer", "application",
		"session_id", cmd.SessionID,
		"question_index", cmd.QuestionIndex,
	)
	return nil
}

func (uc *RegistryUseCase) CastBatch(ctx context.Context, cmd CastBatchCommand) error {
	logger := uc.logger()
	if len(cmd.QuestionIndices) == 0 || len(cmd.QuestionIndices) != len(cmd.Choices) {
		return domainerrors.ErrInvalidQuestionCount
	}
	if len(cmd.QuestionIndices) > entities.MaxBatchSize {
		return domainerrors.ErrBatchTooLarge
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, casts, err := uc.validateVotes(ctx, cmd.ActorID, cmd.SessionID, cmd.QuestionIndices, cmd.Choices)
	if err != nil {
		logger.Warn("batch vote rejected",
			"event", "registry_batch_vote_rejected",
			"module", "governance/voting-registry",
			"layer", "application",
			"session_id", cmd.SessionID,
			"item_count", len(cmd.QuestionIndices),
			"error", err.Error(),
		)
		return err
	}
	if err := uc.applyVotes(ctx, session, strings.TrimSpace(cmd.ActorID), casts); err != nil {
		return err
	}

	logger.Info("batch vote cast",
		"event", "registry_batch_vote_cast",
		"module", "governance/voting-registry",
		"layer", "application",
		"session_id", cmd.SessionID,
		"item_count", len(casts),
	)
	return nil
}

// validateVotes runs the full precondition chain for a set of casts under the
// registry lock. The first failing condition wins; item order decides which
// failure surfaces for batches.
func (uc *RegistryUseCase) validateVotes(
	ctx context.Context,
	actorID string,
	sessionID uint64,
	indices []int,
	choices []entities.Choice,
) (entities.Session, []ports.BallotCast, error) {
	if err := uc.requireMember(ctx, actorID); err != nil {
		return entities.Session{}, nil, err
	}
	session, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return entities.Session{}, nil, err
	}
	if session.Finalized {
		return entities.Session{}, nil, domainerrors.ErrSessionAlreadyFinalized
	}
	if session.Paused {
		return entities.Session{}, nil, domainerrors.ErrSessionAlreadyPaused
	}
	if !session.AcceptsVotesAt(uc.now()) {
		return entities.Session{}, nil, domainerrors.ErrSessionExpired
	}

	casts := make([]ports.BallotCast, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	planned := make(map[int]entities.Tally, len(indices))
	for i, index := range indices {
		choice := choices[i]
		if !choice.Valid() {
			return entities.Session{}, nil, domainerrors.ErrInvalidVoteValue
		}
		if _, ok := session.Question(index); !ok {
			return entities.Session{}, nil, domainerrors.ErrInvalidQuestionID
		}
		if _, dup := seen[index]; dup {
			return entities.Session{}, nil, domainerrors.ErrAlreadyVoted
		}
		voted, err := uc.Ballots.HasVoted(ctx, sessionID, index, strings.TrimSpace(actorID))
		if err != nil {
			return entities.Session{}, nil, err
		}
		if voted {
			return entities.Session{}, nil, domainerrors.ErrAlreadyVoted
		}

		tally, ok := planned[index]
		if !ok {
			tally, err = uc.Ballots.GetTally(ctx, sessionID, index)
			if err != nil {
				return entities.Session{}, nil, err
			}
		}
		if !tally.Increment(choice) {
			return entities.Session{}, nil, domainerrors.ErrVoteCountOverflow
		}
		planned[index] = tally

		seen[index] = struct{}{}
		casts = append(casts, ports.BallotCast{QuestionIndex: index, Choice: choice})
	}
	return session, casts, nil
}

// applyVotes commits the validated casts atomically and emits one vote-cast
// record per item. For private questions the recorded choice is replaced with
// Abstain while the session is unfinalized, so the audit trail proves that a
// vote occurred without leaking what it was.
func (uc *RegistryUseCase) applyVotes(
	ctx context.Context,
	session entities.Session,
	memberID string,
	casts []ports.BallotCast,
) error {
	if err := uc.Ballots.ApplyBallots(ctx, session.SessionID, memberID, casts); err != nil {
		return err
	}

	now := uc.now()
	for _, cast := range casts {
		recorded := cast.Choice
		if question, ok := session.Question(cast.QuestionIndex); ok && question.Private && !session.Finalized {
			recorded = entities.ChoiceAbstain
		}
		if err := uc.appendRegistryEvent(ctx, "vote.cast", session.SessionID, now, map[string]any{
			"session_id":     session.SessionID,
			"question_index": cast.QuestionIndex,
			"member_id":      memberID,
			"choice":         uint8(recorded),
			"cast_at":        now.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}
