package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("X", 3600))
	body, err := encode(QuizSubmitted, QuizSubmittedPayload{
		SubmissionID:   "s1",
		QuizID:         "q1",
		SessionID:      "sess",
		Score:          75,
		NextDifficulty: "medium",
	}, at)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got struct {
		Type       string         `json:"type"`
		Payload    map[string]any `json:"payload"`
		OccurredAt time.Time      `json:"occurred_at"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "quiz.submitted" {
		t.Errorf("type = %q", got.Type)
	}
	if got.Payload["next_difficulty"] != "medium" || got.Payload["score"] != 75.0 {
		t.Errorf("payload = %v", got.Payload)
	}
	if !got.OccurredAt.Equal(at) || got.OccurredAt.Location() != time.UTC {
		t.Errorf("occurred_at = %v", got.OccurredAt)
	}
}

func TestEncode_Unmarshalable(t *testing.T) {
	if _, err := encode(SessionCreated, make(chan int), time.Now()); err == nil {
		t.Fatal("expected error for unmarshalable payload")
	}
}

func TestNew_WithoutURLIsNop(t *testing.T) {
	p, err := New("", "socratai.events", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := p.(Nop); !ok {
		t.Fatalf("got %T, want Nop", p)
	}
	if err := p.Publish(context.Background(), SessionCreated, nil); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewAMQPPublisher_DialError(t *testing.T) {
	if _, err := NewAMQPPublisher("not-a-url", "x", nil); err == nil {
		t.Fatal("expected dial error")
	}
}
