package grading

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socratai/socratai/internal/quiz"
)

type memWriter struct {
	subs []quiz.Submission
	err  error
}

func (w *memWriter) CreateSubmission(_ context.Context, s quiz.Submission) error {
	if w.err != nil {
		return w.err
	}
	w.subs = append(w.subs, s)
	return nil
}

func testQuiz(n int) *quiz.Quiz {
	q := &quiz.Quiz{ID: "quiz-1", SessionID: "sess-1", Difficulty: quiz.Easy}
	for i := range n {
		q.Questions = append(q.Questions, quiz.Question{
			Text:          fmt.Sprintf("Question %d?", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
		})
	}
	return q
}

func newTestEvaluator(w SubmissionWriter) *Evaluator {
	e := New(w)
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	e.newID = func() string { return "sub-1" }
	return e
}

func TestEvaluate_ThreeOfFour(t *testing.T) {
	w := &memWriter{}
	e := newTestEvaluator(w)

	res, err := e.Evaluate(context.Background(), Attempt{
		Quiz:      testQuiz(4),
		Answers:   map[int]int{0: 0, 1: 1, 2: 2, 3: 0},
		TimeTaken: map[int]float64{0: 10, 1: 20, 2: 0, 3: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 75.0, res.Score)
	// Question 2 is correct but untimed, so only 10 and 20 count.
	assert.Equal(t, 15.0, res.AvgTimeCorrect)

	require.Len(t, w.subs, 1)
	assert.Equal(t, "sub-1", w.subs[0].ID)
	assert.Equal(t, "quiz-1", w.subs[0].QuizID)
	assert.Equal(t, "sess-1", w.subs[0].SessionID)
	assert.Equal(t, 75.0, w.subs[0].Score)
}

func TestEvaluate_CoversEveryQuestion(t *testing.T) {
	e := newTestEvaluator(&memWriter{})

	res, err := e.Evaluate(context.Background(), Attempt{
		Quiz:    testQuiz(5),
		Answers: map[int]int{3: 3},
	})
	require.NoError(t, err)

	items := res.Submission.Results
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, i, item.QuestionIndex)
		if i == 3 {
			require.NotNil(t, item.UserAnswer)
			assert.Equal(t, 3, *item.UserAnswer)
			assert.True(t, item.IsCorrect)
			continue
		}
		assert.Nil(t, item.UserAnswer, "question %d", i)
		assert.False(t, item.IsCorrect, "question %d", i)
	}
	assert.Equal(t, 20.0, res.Score)
	assert.Equal(t, 0.0, res.AvgTimeCorrect)
}

func TestEvaluate_NoAnswers(t *testing.T) {
	e := newTestEvaluator(&memWriter{})

	res, err := e.Evaluate(context.Background(), Attempt{Quiz: testQuiz(3)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Len(t, res.Submission.Results, 3)
}

func TestEvaluate_OptionOutOfRangeIsIncorrect(t *testing.T) {
	e := newTestEvaluator(&memWriter{})

	res, err := e.Evaluate(context.Background(), Attempt{
		Quiz:    testQuiz(1),
		Answers: map[int]int{0: 7},
	})
	require.NoError(t, err)
	assert.False(t, res.Submission.Results[0].IsCorrect)
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		attempt Attempt
	}{
		{"nil quiz", Attempt{}},
		{"empty quiz", Attempt{Quiz: testQuiz(0)}},
		{"answer index too large", Attempt{Quiz: testQuiz(2), Answers: map[int]int{2: 0}}},
		{"negative answer index", Attempt{Quiz: testQuiz(2), Answers: map[int]int{-1: 0}}},
		{"time index too large", Attempt{Quiz: testQuiz(2), TimeTaken: map[int]float64{5: 1}}},
		{"negative time", Attempt{Quiz: testQuiz(2), TimeTaken: map[int]float64{0: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &memWriter{}
			_, err := newTestEvaluator(w).Evaluate(context.Background(), tt.attempt)
			if !errors.Is(err, quiz.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(w.subs) != 0 {
				t.Fatalf("expected nothing persisted, got %d", len(w.subs))
			}
		})
	}
}

func TestEvaluate_WriterError(t *testing.T) {
	w := &memWriter{err: errors.New("disk full")}
	_, err := newTestEvaluator(w).Evaluate(context.Background(), Attempt{Quiz: testQuiz(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	e := newTestEvaluator(&memWriter{})
	q := testQuiz(7)
	answers := map[int]int{}
	for i := range q.Questions {
		answers[i] = q.Questions[i].CorrectAnswer
		res, err := e.Evaluate(context.Background(), Attempt{Quiz: q, Answers: answers})
		require.NoError(t, err)
		want := 100 * float64(i+1) / 7
		assert.Equal(t, want, res.Score)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 100.0)
	}
}

func TestParseAnswers(t *testing.T) {
	got, err := ParseAnswers(map[string]int{"0": 1, "12": 3})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 1, 12: 3}, got)

	_, err = ParseAnswers(map[string]int{"first": 1})
	assert.ErrorIs(t, err, quiz.ErrValidation)
}

func TestParseTimes(t *testing.T) {
	got, err := ParseTimes(map[string]float64{"2": 4.5})
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 4.5}, got)

	_, err = ParseTimes(map[string]float64{"x": 1})
	assert.ErrorIs(t, err, quiz.ErrValidation)
}
