package questiongen

import (
	"strings"
	"testing"

	"github.com/socratai/socratai/internal/quiz"
)

func validQuestion() quiz.Question {
	return quiz.Question{
		Text:          "Which organelle performs photosynthesis?",
		Options:       []string{"Chloroplast", "Mitochondrion", "Nucleus", "Ribosome"},
		CorrectAnswer: 0,
		Level:         quiz.Remember,
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *quiz.Question)
		wantErr string
	}{
		{"valid", func(q *quiz.Question) {}, ""},
		{"no level is fine", func(q *quiz.Question) { q.Level = "" }, ""},
		{"blank text", func(q *quiz.Question) { q.Text = "   " }, "question is empty"},
		{"too long", func(q *quiz.Question) { q.Text = strings.Repeat("x", 501) }, "exceeds"},
		{"three options", func(q *quiz.Question) { q.Options = q.Options[:3] }, "options"},
		{"answer out of range", func(q *quiz.Question) { q.CorrectAnswer = 4 }, "out of range"},
		{"negative answer", func(q *quiz.Question) { q.CorrectAnswer = -1 }, "out of range"},
		{"empty option", func(q *quiz.Question) { q.Options[2] = " " }, "option 2 is empty"},
		{"duplicate option", func(q *quiz.Question) { q.Options[3] = "chloroplast " }, "repeated"},
		{"unknown level", func(q *quiz.Question) { q.Level = "Synthesize" }, "unknown bloom_level"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := v.Validate(&q, &Input{})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q", err.Validator)
			}
		})
	}
}

func TestDedupValidator(t *testing.T) {
	in := Input{PriorQuestions: []string{"Which  organelle performs PHOTOSYNTHESIS?"}}
	in.prepare()

	q := validQuestion()
	if err := (&DedupValidator{}).Validate(&q, &in); err == nil {
		t.Fatal("expected repeat to be rejected")
	}

	q.Text = "Where does the Calvin cycle happen?"
	if err := (&DedupValidator{}).Validate(&q, &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 50); got != "None" {
		t.Fatalf("expected None, got %q", got)
	}
	prior := make([]string, 60)
	for i := range prior {
		prior[i] = "q" + string(rune('a'+i%26))
	}
	got := buildDedup(prior, 50)
	if n := strings.Count(got, "\n") + 1; n != 50 {
		t.Fatalf("expected 50 lines, got %d", n)
	}
	if !strings.HasPrefix(got, "1. "+prior[10]) {
		t.Fatalf("expected the most recent 50, got prefix %q", got[:10])
	}
}

func TestBuildUserMessage(t *testing.T) {
	topics := make([]string, 12)
	for i := range topics {
		topics[i] = "Topic" + string(rune('A'+i))
	}
	in := Input{Topics: topics, Difficulty: quiz.Hard}
	msg := buildUserMessage(in, 18, DefaultConfig())

	if !strings.Contains(msg, "TopicJ") || strings.Contains(msg, "TopicK") {
		t.Errorf("expected only the first 10 topics:\n%s", msg)
	}
	if !strings.Contains(msg, "challenging and detailed") {
		t.Errorf("expected hard wording:\n%s", msg)
	}
	if !strings.Contains(msg, "Already asked in this session:\nNone") {
		t.Errorf("expected empty dedup list:\n%s", msg)
	}
	if difficultyWording(quiz.Easy) != "simple and straightforward" {
		t.Error("easy wording")
	}
}
