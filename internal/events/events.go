// Package events publishes domain events to a message broker so other
// systems can follow quiz activity.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types double as AMQP routing keys.
const (
	SessionCreated = "session.created"
	QuizGenerated  = "quiz.generated"
	QuizSubmitted  = "quiz.submitted"
)

// Publisher sends domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

type SessionCreatedPayload struct {
	SessionID string   `json:"session_id"`
	UserID    string   `json:"user_id"`
	Topics    []string `json:"topics"`
}

type QuizGeneratedPayload struct {
	QuizID     string `json:"quiz_id"`
	SessionID  string `json:"session_id"`
	QuizType   string `json:"quiz_type"`
	Difficulty string `json:"difficulty"`
	Questions  int    `json:"questions"`
}

type QuizSubmittedPayload struct {
	SubmissionID   string  `json:"submission_id"`
	QuizID         string  `json:"quiz_id"`
	SessionID      string  `json:"session_id"`
	Score          float64 `json:"score"`
	NextDifficulty string  `json:"next_difficulty"`
}

type envelope struct {
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func encode(eventType string, payload any, at time.Time) ([]byte, error) {
	return json.Marshal(envelope{Type: eventType, Payload: payload, OccurredAt: at.UTC()})
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error { return nil }
