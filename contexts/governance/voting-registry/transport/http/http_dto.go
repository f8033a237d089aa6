package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSessionRequest struct {
	Questions       []string `json:"questions"`
	PrivacyFlags    []bool   `json:"privacy_flags"`
	DurationSeconds int64    `json:"duration_seconds"`
}

type SessionResponse struct {
	SessionID     uint64 `json:"session_id"`
	StartsAt      int64  `json:"starts_at"`
	EndsAt        int64  `json:"ends_at"`
	QuestionCount int    `json:"question_count"`
	Paused        bool   `json:"paused"`
	Finalized     bool   `json:"finalized"`
	Commitment    string `json:"commitment,omitempty"`
}

type FinalizeSessionRequest struct {
	Commitment string `json:"commitment"`
}

type AddMembersRequest struct {
	Members []string `json:"members"`
}

type CastVoteRequest struct {
	QuestionIndex int   `json:"question_index"`
	Choice        uint8 `json:"choice"`
}

type CastBatchRequest struct {
	QuestionIndices []int   `json:"question_indices"`
	Choices         []uint8 `json:"choices"`
}

type TallyResponse struct {
	SessionID     uint64 `json:"session_id"`
	QuestionIndex int    `json:"question_index"`
	AbstainCount  uint64 `json:"abstain_count"`
	YesCount      uint64 `json:"yes_count"`
	NoCount       uint64 `json:"no_count"`
}

type MemberResponse struct {
	MemberID string `json:"member_id"`
	Member   bool   `json:"member"`
}

type SessionCountResponse struct {
	SessionCount uint64 `json:"session_count"`
}

type BallotResponse struct {
	SessionID     uint64 `json:"session_id"`
	QuestionIndex int    `json:"question_index"`
	MemberID      string `json:"member_id"`
	Voted         bool   `json:"voted"`
}
