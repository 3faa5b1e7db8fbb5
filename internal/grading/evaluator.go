package grading

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/socratai/socratai/internal/quiz"
)

// SubmissionWriter persists graded submissions.
type SubmissionWriter interface {
	CreateSubmission(ctx context.Context, sub quiz.Submission) error
}

// Attempt is one learner's answers to a quiz.
type Attempt struct {
	Quiz *quiz.Quiz

	// Answers maps question index to the chosen option index. Missing
	// indices are unanswered.
	Answers map[int]int

	// TimeTaken maps question index to seconds spent. Optional.
	TimeTaken map[int]float64
}

// Result is the graded attempt.
type Result struct {
	Submission     quiz.Submission
	Correct        int
	Total          int
	Score          float64
	AvgTimeCorrect float64
}

// Evaluator scores attempts and records them.
type Evaluator struct {
	writer SubmissionWriter
	now    func() time.Time
	newID  func() string
}

// New creates an Evaluator that records submissions through w.
func New(w SubmissionWriter) *Evaluator {
	return &Evaluator{
		writer: w,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Evaluate grades the attempt and persists exactly one Submission.
// Every question yields a ResultItem, answered or not.
func (e *Evaluator) Evaluate(ctx context.Context, a Attempt) (*Result, error) {
	if a.Quiz == nil {
		return nil, fmt.Errorf("%w: quiz is required", quiz.ErrValidation)
	}
	total := len(a.Quiz.Questions)
	if total == 0 {
		return nil, fmt.Errorf("%w: quiz %s has no questions", quiz.ErrValidation, a.Quiz.ID)
	}
	if err := checkIndices(a, total); err != nil {
		return nil, err
	}

	results := make([]quiz.ResultItem, total)
	correct := 0
	var timeCorrect float64
	timedCorrect := 0

	for i, q := range a.Quiz.Questions {
		item := quiz.ResultItem{
			QuestionIndex: i,
			CorrectAnswer: q.CorrectAnswer,
			TimeTaken:     a.TimeTaken[i],
		}
		if ans, ok := a.Answers[i]; ok {
			item.UserAnswer = &ans
			item.IsCorrect = ans == q.CorrectAnswer
		}
		if item.IsCorrect {
			correct++
			if item.TimeTaken > 0 {
				timeCorrect += item.TimeTaken
				timedCorrect++
			}
		}
		results[i] = item
	}

	score := 100 * float64(correct) / float64(total)
	var avg float64
	if timedCorrect > 0 {
		avg = timeCorrect / float64(timedCorrect)
	}

	sub := quiz.Submission{
		ID:        e.newID(),
		QuizID:    a.Quiz.ID,
		SessionID: a.Quiz.SessionID,
		Score:     score,
		Results:   results,
		CreatedAt: e.now().UTC(),
	}
	if err := e.writer.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("save submission: %w", err)
	}

	return &Result{
		Submission:     sub,
		Correct:        correct,
		Total:          total,
		Score:          score,
		AvgTimeCorrect: avg,
	}, nil
}

func checkIndices(a Attempt, total int) error {
	for idx := range a.Answers {
		if idx < 0 || idx >= total {
			return fmt.Errorf("%w: answer for question %d, quiz has %d questions", quiz.ErrValidation, idx, total)
		}
	}
	for idx, secs := range a.TimeTaken {
		if idx < 0 || idx >= total {
			return fmt.Errorf("%w: time for question %d, quiz has %d questions", quiz.ErrValidation, idx, total)
		}
		if secs < 0 {
			return fmt.Errorf("%w: negative time for question %d", quiz.ErrValidation, idx)
		}
	}
	return nil
}

// ParseAnswers converts wire-format answers keyed by decimal strings.
func ParseAnswers(raw map[string]int) (map[int]int, error) {
	out := make(map[int]int, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: answer key %q is not a question index", quiz.ErrValidation, k)
		}
		out[idx] = v
	}
	return out, nil
}

// ParseTimes converts wire-format timings keyed by decimal strings.
func ParseTimes(raw map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: time key %q is not a question index", quiz.ErrValidation, k)
		}
		out[idx] = v
	}
	return out, nil
}
