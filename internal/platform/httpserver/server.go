package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	votingregistry "quorum/contexts/governance/voting-registry"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	registryhttp "quorum/contexts/governance/voting-registry/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "quorum/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	registry votingregistry.Module
}

func New(registry votingregistry.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		registry: registry,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/governance/v1/sessions", s.handleCreateSession)
	s.mux.HandleFunc("POST /api/governance/v1/sessions/{session_id}/pause", s.handlePauseSession)
	s.mux.HandleFunc("POST /api/governance/v1/sessions/{session_id}/finalize", s.handleFinalizeSession)
	s.mux.HandleFunc("POST /api/governance/v1/members", s.handleAddMembers)
	s.mux.HandleFunc("POST /api/governance/v1/sessions/{session_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/governance/v1/sessions/{session_id}/votes/batch", s.handleCastBatch)

	s.mux.HandleFunc("GET /api/governance/v1/sessions/count", s.handleSessionCount)
	s.mux.HandleFunc("GET /api/governance/v1/sessions/{session_id}", s.handleSessionInfo)
	s.mux.HandleFunc("GET /api/governance/v1/sessions/{session_id}/questions/{question_index}/tally", s.handleVoteCounts)
	s.mux.HandleFunc("GET /api/governance/v1/sessions/{session_id}/questions/{question_index}/ballots/{member_id}", s.handleHasVoted)
	s.mux.HandleFunc("GET /api/governance/v1/members/{member_id}", s.handleIsMember)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req registryhttp.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateSessionHandler(r.Context(), actorID, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	if err := s.registry.Handler.PauseSessionHandler(r.Context(), actorID, sessionID); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "paused": true})
}

func (s *Server) handleFinalizeSession(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req registryhttp.FinalizeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.FinalizeSessionHandler(r.Context(), actorID, sessionID, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "finalized": true})
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req registryhttp.AddMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.AddMembersHandler(r.Context(), actorID, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member_count": len(req.Members)})
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req registryhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.CastVoteHandler(r.Context(), actorID, sessionID, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":     sessionID,
		"question_index": req.QuestionIndex,
		"recorded":       true,
	})
}

func (s *Server) handleCastBatch(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	var req registryhttp.CastBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.CastBatchHandler(r.Context(), actorID, sessionID, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"item_count": len(req.QuestionIndices),
		"recorded":   true,
	})
}

func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	resp, err := s.registry.Handler.SessionInfoHandler(r.Context(), sessionID)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteCounts(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	questionIndex, ok := pathQuestionIndex(w, r)
	if !ok {
		return
	}
	resp, err := s.registry.Handler.VoteCountsHandler(r.Context(), sessionID, questionIndex)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}
	questionIndex, ok := pathQuestionIndex(w, r)
	if !ok {
		return
	}
	resp, err := s.registry.Handler.HasVotedHandler(r.Context(), sessionID, questionIndex, r.PathValue("member_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIsMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.IsMemberHandler(r.Context(), r.PathValue("member_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.SessionCountHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if actorID == "" {
		writeRegistryError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return actorID, true
}

func pathSessionID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	sessionID, err := strconv.ParseUint(r.PathValue("session_id"), 10, 64)
	if err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_session_id", "session_id must be a positive integer")
		return 0, false
	}
	return sessionID, true
}

func pathQuestionIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	questionIndex, err := strconv.Atoi(r.PathValue("question_index"))
	if err != nil || questionIndex < 0 {
		writeRegistryError(w, http.StatusBadRequest, "invalid_question_index", "question_index must be a non-negative integer")
		return 0, false
	}
	return questionIndex, true
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrNotAdmin):
		writeRegistryError(w, http.StatusForbidden, "not_admin", err.Error())
	case errors.Is(err, domainerrors.ErrNotMember):
		writeRegistryError(w, http.StatusForbidden, "not_member", err.Error())
	case errors.Is(err, domainerrors.ErrPrivateQuestionResults):
		writeRegistryError(w, http.StatusForbidden, "private_question_results", err.Error())
	case errors.Is(err, domainerrors.ErrSessionNotFound):
		writeRegistryError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidQuestionID):
		writeRegistryError(w, http.StatusNotFound, "invalid_question_id", err.Error())
	case errors.Is(err, domainerrors.ErrSessionAlreadyPaused):
		writeRegistryError(w, http.StatusConflict, "session_already_paused", err.Error())
	case errors.Is(err, domainerrors.ErrSessionAlreadyFinalized):
		writeRegistryError(w, http.StatusConflict, "session_already_finalized", err.Error())
	case errors.Is(err, domainerrors.ErrSessionExpired):
		writeRegistryError(w, http.StatusConflict, "session_expired", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyVoted):
		writeRegistryError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidVoteValue):
		writeRegistryError(w, http.StatusUnprocessableEntity, "invalid_vote_value", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidSessionDuration),
		errors.Is(err, domainerrors.ErrInvalidQuestionCount),
		errors.Is(err, domainerrors.ErrInvalidMemberArray),
		errors.Is(err, domainerrors.ErrBlankIdentity),
		errors.Is(err, domainerrors.ErrInvalidResultsHash),
		errors.Is(err, domainerrors.ErrBatchTooLarge),
		errors.Is(err, domainerrors.ErrDurationOverflow):
		writeRegistryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrVoteCountOverflow):
		writeRegistryError(w, http.StatusInternalServerError, "vote_count_overflow", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
