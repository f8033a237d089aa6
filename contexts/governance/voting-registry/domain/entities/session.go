package entities

import (
	"math"
	"time"
)

// Registry-wide parameters exposed to callers and off-chain tooling.
const (
	MinSessionDuration = 1800 * time.Second
	MaxSessionDuration = 7200 * time.Second
	TimestampBuffer    = 30 * time.Second
	MaxBatchSize       = 50
)

type Choice uint8

const (
	ChoiceAbstain Choice = 0
	ChoiceYes     Choice = 1
	ChoiceNo      Choice = 2
)

func (c Choice) Valid() bool {
	return c == ChoiceAbstain || c == ChoiceYes || c == ChoiceNo
}

func (c Choice) String() string {
	switch c {
	case ChoiceAbstain:
		return "abstain"
	case ChoiceYes:
		return "yes"
	case ChoiceNo:
		return "no"
	default:
		return "invalid"
	}
}

type Question struct {
	Text    string
	Private bool
}

// Session is one governance event. Start time, end time and the question list
// never change after creation; Paused is one-way and Finalized is terminal.
type Session struct {
	SessionID  uint64
	StartsAt   time.Time
	EndsAt     time.Time
	Questions  []Question
	Paused     bool
	Finalized  bool
	Commitment string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Session) QuestionCount() int {
	return len(s.Questions)
}

func (s Session) Question(index int) (Question, bool) {
	if index < 0 || index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[index], true
}

// AcceptsVotesAt reports whether the voting window is still open at now.
// The buffer absorbs bounded clock skew between submission and processing.
func (s Session) AcceptsVotesAt(now time.Time) bool {
	return !now.UTC().After(s.EndsAt.Add(TimestampBuffer))
}

// SessionWindow computes end = start + duration on unix seconds and reports
// overflow instead of wrapping.
func SessionWindow(start time.Time, duration time.Duration) (time.Time, bool) {
	startUnix := start.Unix()
	endUnix := startUnix + int64(duration/time.Second)
	if endUnix < startUnix {
		return time.Time{}, false
	}
	return time.Unix(endUnix, 0).UTC(), true
}

// Tally holds the aggregate counts for one (session, question) pair. The
// individual cast values are never stored per member.
type Tally struct {
	Abstain uint64
	Yes     uint64
	No      uint64
}

func (t Tally) Count(c Choice) uint64 {
	switch c {
	case ChoiceYes:
		return t.Yes
	case ChoiceNo:
		return t.No
	default:
		return t.Abstain
	}
}

func (t Tally) Total() uint64 {
	return t.Abstain + t.Yes + t.No
}

// Increment adds one to the counter for c, reporting false when the counter
// would wrap. A tally must never silently reset to a smaller value.
func (t *Tally) Increment(c Choice) bool {
	switch c {
	case ChoiceYes:
		if t.Yes == math.MaxUint64 {
			return false
		}
		t.Yes++
	case ChoiceNo:
		if t.No == math.MaxUint64 {
			return false
		}
		t.No++
	default:
		if t.Abstain == math.MaxUint64 {
			return false
		}
		t.Abstain++
	}
	return true
}
