package questiongen

import (
	"fmt"
	"strings"

	"github.com/socratai/socratai/internal/quiz"
)

// Validator checks one generated question. Implementations are stateless;
// whatever they need to know about the batch comes through Input.
type Validator interface {
	Name() string
	Validate(q *quiz.Question, input *Input) *ValidationError
}

// ValidationError says why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxQuestionLen = 500

// StructuralValidator enforces the question shape the evaluator relies on.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ *Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question is empty")
	}
	if err := q.Validate(); err != nil {
		return fail("%v", err)
	}
	if len(q.Text) > maxQuestionLen {
		return fail("question exceeds %d characters", maxQuestionLen)
	}
	if q.Level != "" && !quiz.KnownLevel(string(q.Level)) {
		return fail("unknown bloom_level %q", q.Level)
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		key := normalizeText(opt)
		if key == "" {
			return fail("option %d is empty", i)
		}
		if seen[key] {
			return fail("option %q repeated", opt)
		}
		seen[key] = true
	}
	return nil
}

// DedupValidator rejects questions already asked in the session or
// earlier in the same batch.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(q *quiz.Question, input *Input) *ValidationError {
	if input.wasAsked(q.Text) {
		return &ValidationError{Validator: v.Name(), Message: "question already asked"}
	}
	return nil
}
