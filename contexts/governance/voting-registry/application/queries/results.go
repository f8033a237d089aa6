package queries

import (
	"context"
	"strings"

	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"
)

// ResultsUseCase serves the read path. Queries never mutate state and run
// against the last fully-committed registry state.
type ResultsUseCase struct {
	Sessions ports.SessionRepository
	Members  ports.MemberRepository
	Ballots  ports.BallotRepository
}

func (uc ResultsUseCase) SessionInfo(ctx context.Context, sessionID uint64) (entities.Session, error) {
	return uc.Sessions.GetSession(ctx, sessionID)
}

// VoteCounts returns the three tallies for one question. Privacy is enforced
// here at read time, not only at event emission: a private question's counts
// stay sealed until the session is finalized.
func (uc ResultsUseCase) VoteCounts(ctx context.Context, sessionID uint64, questionIndex int) (entities.Tally, error) {
	session, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return entities.Tally{}, err
	}
	question, ok := session.Question(questionIndex)
	if !ok {
		return entities.Tally{}, domainerrors.ErrInvalidQuestionID
	}
	if question.Private && !session.Finalized {
		return entities.Tally{}, domainerrors.ErrPrivateQuestionResults
	}
	return uc.Ballots.GetTally(ctx, sessionID, questionIndex)
}

func (uc ResultsUseCase) IsMember(ctx context.Context, memberID string) (bool, error) {
	return uc.Members.IsMember(ctx, strings.TrimSpace(memberID))
}

func (uc ResultsUseCase) SessionCount(ctx context.Context) (uint64, error) {
	return uc.Sessions.SessionCount(ctx)
}

func (uc ResultsUseCase) HasVoted(ctx context.Context, sessionID uint64, questionIndex int, memberID string) (bool, error) {
	session, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if _, ok := session.Question(questionIndex); !ok {
		return false, domainerrors.ErrInvalidQuestionID
	}
	return uc.Ballots.HasVoted(ctx, sessionID, questionIndex, strings.TrimSpace(memberID))
}
