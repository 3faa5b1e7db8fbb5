package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/socratai/socratai/internal/quiz"
)

// ErrDuplicate is returned when a unique column (user email) already holds
// the value being inserted.
var ErrDuplicate = errors.New("duplicate record")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Purpose string // exact purpose match when non-empty
}

// UserRepo manages accounts.
type UserRepo interface {
	// CreateUser inserts a user. Returns ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, u quiz.User) error

	// GetUser returns the user with the given ID, or nil if absent.
	GetUser(ctx context.Context, id string) (*quiz.User, error)

	// GetUserByEmail returns the user with the given email, or nil if absent.
	GetUserByEmail(ctx context.Context, email string) (*quiz.User, error)
}

// HistoryEntry summarizes one session for a user's history list.
type HistoryEntry struct {
	SessionID string    `json:"session_id"`
	Topics    []string  `json:"topics"`
	ImagePath string    `json:"image_path"`
	LastScore *float64  `json:"last_score"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepo manages uploaded sessions.
type SessionRepo interface {
	CreateSession(ctx context.Context, s quiz.Session) error

	// GetSession returns the session, or nil if absent.
	GetSession(ctx context.Context, id string) (*quiz.Session, error)

	// ListSessionsByOwner returns the owner's sessions, newest first.
	ListSessionsByOwner(ctx context.Context, ownerID string) ([]HistoryEntry, error)
}

// SubmissionRow is one submission joined with its parent quiz. The JSON
// payloads are returned undecoded so that readers can skip a single
// corrupt record without failing the whole query.
type SubmissionRow struct {
	SubmissionID string
	QuizID       string
	Score        float64
	CreatedAt    time.Time
	Results      json.RawMessage
	QuizData     json.RawMessage
}

// QuizRepo manages generated quizzes and graded submissions.
type QuizRepo interface {
	CreateQuiz(ctx context.Context, q quiz.Quiz) error

	// GetQuiz returns the quiz, or nil if absent.
	GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error)

	CreateSubmission(ctx context.Context, sub quiz.Submission) error

	// LatestScore returns the score of the session's most recent
	// submission. ok is false when the session has none.
	LatestScore(ctx context.Context, sessionID string) (score float64, ok bool, err error)

	// LatestDifficulty returns the difficulty of the session's most
	// recently generated quiz. ok is false when none exists.
	LatestDifficulty(ctx context.Context, sessionID string) (d quiz.Difficulty, ok bool, err error)

	// QuestionTexts returns every question text generated for the
	// session, oldest quiz first.
	QuestionTexts(ctx context.Context, sessionID string) ([]string, error)

	// SubmissionRows returns the session's submissions joined with their
	// quizzes, oldest first.
	SubmissionRows(ctx context.Context, sessionID string) ([]SubmissionRow, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
