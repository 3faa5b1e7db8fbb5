// Package questiongen writes multiple-choice question sets for a session's
// topics, either through a language model or from fixed templates.
package questiongen

import (
	"context"
	"strings"

	"github.com/socratai/socratai/internal/quiz"
)

// Generator produces a question set for one quiz.
type Generator interface {
	// Generate returns exactly input.Count validated questions, or an
	// error wrapping quiz.ErrGenerationUnavailable when the backend could
	// not deliver them.
	Generate(ctx context.Context, input Input) (*Result, error)
}

// Input describes the quiz to write.
type Input struct {
	Topics     []string
	Difficulty quiz.Difficulty
	Count      int

	// PriorQuestions are texts already asked in this session, oldest
	// first. Repeats are rejected.
	PriorQuestions []string

	asked map[string]struct{}
}

// Result is a generated question set.
type Result struct {
	Questions  []quiz.Question
	Difficulty quiz.Difficulty
	TopicCount int
}

// normalizeText folds case and whitespace so trivially reworded repeats
// compare equal.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func (in *Input) markAsked(text string) {
	if in.asked == nil {
		in.asked = make(map[string]struct{})
	}
	in.asked[normalizeText(text)] = struct{}{}
}

func (in *Input) wasAsked(text string) bool {
	_, ok := in.asked[normalizeText(text)]
	return ok
}

func (in *Input) prepare() {
	in.PriorQuestions = append([]string(nil), in.PriorQuestions...)
	in.asked = make(map[string]struct{}, len(in.PriorQuestions))
	for _, q := range in.PriorQuestions {
		in.markAsked(q)
	}
}
