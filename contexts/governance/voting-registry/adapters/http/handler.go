package httpadapter

import (
	"context"
	"log/slog"

	"quorum/contexts/governance/voting-registry/application/commands"
	"quorum/contexts/governance/voting-registry/application/queries"
	"quorum/contexts/governance/voting-registry/domain/entities"
	httptransport "quorum/contexts/governance/voting-registry/transport/http"
)

type Handler struct {
	Registry *commands.RegistryUseCase
	Results  queries.ResultsUseCase
	Logger   *slog.Logger
}

func (h Handler) CreateSessionHandler(
	ctx context.Context,
	actorID string,
	req httptransport.CreateSessionRequest,
) (httptransport.SessionResponse, error) {
	result, err := h.Registry.CreateSession(ctx, commands.CreateSessionCommand{
		ActorID:         actorID,
		Questions:       req.Questions,
		PrivacyFlags:    req.PrivacyFlags,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(result.Session), nil
}

func (h Handler) PauseSessionHandler(ctx context.Context, actorID string, sessionID uint64) error {
	return h.Registry.PauseSession(ctx, commands.PauseSessionCommand{
		ActorID:   actorID,
		SessionID: sessionID,
	})
}

func (h Handler) FinalizeSessionHandler(
	ctx context.Context,
	actorID string,
	sessionID uint64,
	req httptransport.FinalizeSessionRequest,
) error {
	return h.Registry.FinalizeSession(ctx, commands.FinalizeSessionCommand{
		ActorID:    actorID,
		SessionID:  sessionID,
		Commitment: req.Commitment,
	})
}

func (h Handler) AddMembersHandler(ctx context.Context, actorID string, req httptransport.AddMembersRequest) error {
	return h.Registry.AddMembers(ctx, commands.AddMembersCommand{
		ActorID:   actorID,
		MemberIDs: req.Members,
	})
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	actorID string,
	sessionID uint64,
	req httptransport.CastVoteRequest,
) error {
	return h.Registry.CastVote(ctx, commands.CastVoteCommand{
		ActorID:       actorID,
		SessionID:     sessionID,
		QuestionIndex: req.QuestionIndex,
		Choice:        entities.Choice(req.Choice),
	})
}

func (h Handler) CastBatchHandler(
	ctx context.Context,
	actorID string,
	sessionID uint64,
	req httptransport.CastBatchRequest,
) error {
	choices := make([]entities.Choice, 0, len(req.Choices))
	for _, choice := range req.Choices {
		choices = append(choices, entities.Choice(choice))
	}
	return h.Registry.CastBatch(ctx, commands.CastBatchCommand{
		ActorID:         actorID,
		SessionID:       sessionID,
		QuestionIndices: req.QuestionIndices,
		Choices:         choices,
	})
}

func (h Handler) SessionInfoHandler(ctx context.Context, sessionID uint64) (httptransport.SessionResponse, error) {
	session, err := h.Results.SessionInfo(ctx, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(session), nil
}

func (h Handler) VoteCountsHandler(ctx context.Context, sessionID uint64, questionIndex int) (httptransport.TallyResponse, error) {
	tally, err := h.Results.VoteCounts(ctx, sessionID, questionIndex)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		AbstainCount:  tally.Abstain,
		YesCount:      tally.Yes,
		NoCount:       tally.No,
	}, nil
}

func (h Handler) IsMemberHandler(ctx context.Context, memberID string) (httptransport.MemberResponse, error) {
	member, err := h.Results.IsMember(ctx, memberID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{
		MemberID: memberID,
		Member:   member,
	}, nil
}

func (h Handler) SessionCountHandler(ctx context.Context) (httptransport.SessionCountResponse, error) {
	count, err := h.Results.SessionCount(ctx)
	if err != nil {
		return httptransport.SessionCountResponse{}, err
	}
	return httptransport.SessionCountResponse{SessionCount: count}, nil
}

func (h Handler) HasVotedHandler(
	ctx context.Context,
	sessionID uint64,
	questionIndex int,
	memberID string,
) (httptransport.BallotResponse, error) {
	voted, err := h.Results.HasVoted(ctx, sessionID, questionIndex, memberID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		MemberID:      memberID,
		Voted:         voted,
	}, nil
}

func sessionResponse(session entities.Session) httptransport.SessionResponse {
	return httptransport.SessionResponse{
		SessionID:     session.SessionID,
		StartsAt:      session.StartsAt.Unix(),
		EndsAt:        session.EndsAt.Unix(),
		QuestionCount: session.QuestionCount(),
		Paused:        session.Paused,
		Finalized:     session.Finalized,
		Commitment:    session.Commitment,
	}
}
