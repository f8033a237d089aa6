package errors

import "errors"

var (
	ErrNotAdmin                = errors.New("caller is not the administrator")
	ErrNotMember               = errors.New("caller is not a registered member")
	ErrSessionNotFound         = errors.New("session not found")
	ErrInvalidQuestionID       = errors.New("question index out of range")
	ErrSessionAlreadyPaused    = errors.New("session is already paused")
	ErrSessionAlreadyFinalized = errors.New("session is already finalized")
	ErrSessionExpired          = errors.New("session voting window has closed")
	ErrAlreadyVoted            = errors.New("member already voted on this question")
	ErrInvalidVoteValue        = errors.New("invalid vote choice")
	ErrInvalidSessionDuration  = errors.New("session duration out of bounds")
	ErrInvalidQuestionCount    = errors.New("question and flag arrays must be equal-length and non-empty")
	ErrInvalidMemberArray      = errors.New("member array must be non-empty")
	ErrBlankIdentity           = errors.New("member identity must not be blank")
	ErrInvalidResultsHash      = errors.New("results commitment must be non-zero")
	ErrBatchTooLarge           = errors.New("batch exceeds maximum size")
	ErrDurationOverflow        = errors.New("session end time computation overflows")
	ErrVoteCountOverflow       = errors.New("vote counter would overflow")
	ErrPrivateQuestionResults  = errors.New("results for a private question are sealed until finalization")
	ErrConflict                = errors.New("registry record conflict")
)
