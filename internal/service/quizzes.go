package service

import (
	"context"
	"fmt"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/events"
	"github.com/socratai/socratai/internal/grading"
	"github.com/socratai/socratai/internal/progression"
	"github.com/socratai/socratai/internal/questiongen"
	"github.com/socratai/socratai/internal/quiz"
)

// GenerateInitial creates the first, easy quiz of a session. n <= 0 uses
// the configured default.
func (s *Service) GenerateInitial(ctx context.Context, userID, sessionID string, n int) (*quiz.Quiz, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, sess, n, quiz.Easy, quiz.QuizTypeInitial, nil)
}

// GenerateAdaptive creates a quiz whose difficulty follows the session's
// last score and last quiz difficulty. Speed is not considered here, and
// every question already asked in the session is excluded.
func (s *Service) GenerateAdaptive(ctx context.Context, userID, sessionID string, n int) (*quiz.Quiz, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	prevScore, ok, err := s.quizzes.LatestScore(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load last score: %w", err)
	}
	if !ok {
		prevScore = defaultPreviousScore
	}
	lastDifficulty, ok, err := s.quizzes.LatestDifficulty(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load last difficulty: %w", err)
	}
	if !ok {
		lastDifficulty = quiz.Easy
	}

	decision := s.policy.Next(lastDifficulty, prevScore, nil)
	s.log.Debug("adaptive difficulty",
		"session_id", sessionID,
		"previous_score", prevScore,
		"from", decision.From,
		"to", decision.Next,
		"move", decision.Move)

	prior, err := s.quizzes.QuestionTexts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load asked questions: %w", err)
	}
	return s.generate(ctx, sess, n, decision.Next, quiz.AdaptiveQuizType(decision.Next), prior)
}

func (s *Service) generate(ctx context.Context, sess *quiz.Session, n int, d quiz.Difficulty, quizType string, prior []string) (*quiz.Quiz, error) {
	if n <= 0 {
		n = s.opts.QuestionsPerQuiz
	}
	if n > MaxQuestionsPerQuiz {
		return nil, fmt.Errorf("%w: at most %d questions per quiz", quiz.ErrValidation, MaxQuestionsPerQuiz)
	}
	if len(sess.Topics) == 0 {
		return nil, fmt.Errorf("%w: session %s has no topics", quiz.ErrValidation, sess.ID)
	}

	res, err := s.generator.Generate(ctx, questiongen.Input{
		Topics:         sess.Topics,
		Difficulty:     d,
		Count:          n,
		PriorQuestions: prior,
	})
	if err != nil {
		s.log.Warn("question generation failed", "session_id", sess.ID, "difficulty", d, "error", err)
		return nil, err
	}

	q := quiz.Quiz{
		ID:         s.newID(),
		SessionID:  sess.ID,
		Questions:  res.Questions,
		Difficulty: res.Difficulty,
		Type:       quizType,
		TopicCount: res.TopicCount,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.quizzes.CreateQuiz(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quiz generated", "quiz_id", q.ID, "session_id", sess.ID, "type", quizType, "questions", len(q.Questions))

	s.publish(ctx, events.QuizGenerated, events.QuizGeneratedPayload{
		QuizID:     q.ID,
		SessionID:  sess.ID,
		QuizType:   quizType,
		Difficulty: string(q.Difficulty),
		Questions:  len(q.Questions),
	})
	return &q, nil
}

// SubmitRequest is one attempt at a quiz. Answers and TimeTaken are keyed
// by question index.
type SubmitRequest struct {
	SessionID string
	QuizID    string
	Answers   map[int]int
	TimeTaken map[int]float64
}

type SubmitResult struct {
	Score          float64           `json:"score"`
	Correct        int               `json:"correct"`
	Total          int               `json:"total"`
	Results        []quiz.ResultItem `json:"results"`
	NextDifficulty quiz.Difficulty   `json:"next_difficulty"`
	SubmissionID   string            `json:"submission_id"`
}

// Submit grades an attempt, records it and reports the difficulty of the
// next quiz. An unknown or foreign session is reported as unauthorized.
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (*SubmitResult, error) {
	sess, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.OwnerID != userID {
		return nil, fmt.Errorf("session %s: %w", req.SessionID, quiz.ErrUnauthorized)
	}

	q, err := s.quizzes.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("quiz %s: %w", req.QuizID, quiz.ErrNotFound)
	}
	if q.SessionID != sess.ID {
		return nil, fmt.Errorf("%w: quiz %s does not belong to session %s", quiz.ErrValidation, q.ID, sess.ID)
	}

	graded, err := s.evaluator.Evaluate(ctx, grading.Attempt{
		Quiz:      q,
		Answers:   req.Answers,
		TimeTaken: req.TimeTaken,
	})
	if err != nil {
		return nil, err
	}

	decision := s.policy.Next(q.Difficulty, graded.Score, &progression.Timing{AvgTimeCorrect: graded.AvgTimeCorrect})
	s.log.Info("quiz submitted",
		"quiz_id", q.ID,
		"score", graded.Score,
		"avg_time_correct", graded.AvgTimeCorrect,
		"next_difficulty", decision.Next)

	s.publish(ctx, events.QuizSubmitted, events.QuizSubmittedPayload{
		SubmissionID:   graded.Submission.ID,
		QuizID:         q.ID,
		SessionID:      sess.ID,
		Score:          graded.Score,
		NextDifficulty: string(decision.Next),
	})

	return &SubmitResult{
		Score:          graded.Score,
		Correct:        graded.Correct,
		Total:          graded.Total,
		Results:        graded.Submission.Results,
		NextDifficulty: decision.Next,
		SubmissionID:   graded.Submission.ID,
	}, nil
}

// Stats returns the performance report of a session. A session owned by
// someone else is unauthorized; a session with no submissions, or none at
// all, is not found.
func (s *Service) Stats(ctx context.Context, userID, sessionID string) (*analytics.PerformanceStats, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess != nil && sess.OwnerID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, quiz.ErrUnauthorized)
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, quiz.ErrNotFound)
	}
	return s.aggregator.Stats(ctx, sessionID)
}
