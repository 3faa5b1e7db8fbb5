package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
)

// Source is the read side the aggregator needs from persistence.
type Source interface {
	GetSession(ctx context.Context, id string) (*quiz.Session, error)
	SubmissionRows(ctx context.Context, sessionID string) ([]store.SubmissionRow, error)
}

type storeSource struct {
	store.SessionRepo
	store.QuizRepo
}

// NewStoreSource reads sessions and submissions from st.
func NewStoreSource(st *store.Store) Source {
	return storeSource{SessionRepo: st.SessionRepo(), QuizRepo: st.QuizRepo()}
}

// Aggregator computes session statistics on read. Nothing is cached or
// maintained incrementally, so repeated calls over the same rows give the
// same result.
type Aggregator struct {
	src Source
	log *logger.Logger
}

// New creates an Aggregator.
func New(src Source, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{src: src, log: log.With("component", "analytics")}
}

// Stats returns the session's performance report. It returns
// quiz.ErrNotFound when the session has no submissions, even if the
// session exists.
func (a *Aggregator) Stats(ctx context.Context, sessionID string) (*PerformanceStats, error) {
	rows, err := a.src.SubmissionRows(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("stats for session %s: %w", sessionID, quiz.ErrNotFound)
	}

	stats := &PerformanceStats{
		SessionID:    sessionID,
		TotalQuizzes: len(rows),
		QuizHistory:  make([]HistoryPoint, len(rows)),
	}

	var sum float64
	for i, row := range rows {
		sum += row.Score
		stats.QuizHistory[i] = HistoryPoint{
			Score:      row.Score,
			Date:       row.CreatedAt,
			QuizNumber: i + 1,
		}
	}
	stats.AverageScore = sum / float64(len(rows))

	tallies := make(map[quiz.CognitiveLevel]*levelTally, len(quiz.AllLevels()))
	for _, l := range quiz.AllLevels() {
		tallies[l] = &levelTally{}
	}
	for _, row := range rows {
		if err := accumulate(tallies, row); err != nil {
			stats.SkippedRecords++
			a.log.Warn("skipping unreadable submission in bloom stats",
				"session_id", sessionID,
				"submission_id", row.SubmissionID,
				"error", err,
			)
		}
	}

	stats.BloomPerformance = make(map[quiz.CognitiveLevel]float64, len(tallies))
	stats.BloomTimePerformance = make(map[quiz.CognitiveLevel]float64, len(tallies))
	for l, t := range tallies {
		stats.BloomPerformance[l] = t.accuracy()
		stats.BloomTimePerformance[l] = t.avgTime()
	}

	sess, err := a.src.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var topics []string
	if sess != nil {
		topics = sess.Topics
	}
	stats.TopicPerformance = uniformTopicScores(topics, stats.AverageScore)

	return stats, nil
}

// uniformTopicScores assigns the session average to every topic. Results
// are not tracked per topic yet, so each topic reports the same value.
func uniformTopicScores(topics []string, average float64) map[string]float64 {
	out := make(map[string]float64, len(topics))
	for _, t := range topics {
		out[t] = average
	}
	return out
}

// storedResult mirrors quiz.ResultItem with every field optional, so that
// rows written by older builds decode without error.
type storedResult struct {
	QuestionIndex *int     `json:"question_index"`
	IsCorrect     bool     `json:"is_correct"`
	TimeTaken     *float64 `json:"time_taken"`
}

// accumulate adds one submission's results to the tallies. The tallies
// are only touched once both payloads decode, so a corrupt row leaves
// them unchanged.
func accumulate(tallies map[quiz.CognitiveLevel]*levelTally, row store.SubmissionRow) error {
	questions, err := store.DecodeQuizData(row.QuizData)
	if err != nil {
		return fmt.Errorf("%w: quiz %s: %v", quiz.ErrDataCorruption, row.QuizID, err)
	}
	var results []storedResult
	if err := json.Unmarshal(row.Results, &results); err != nil {
		return fmt.Errorf("%w: results: %v", quiz.ErrDataCorruption, err)
	}

	levels := make([]quiz.CognitiveLevel, len(questions))
	for i, q := range questions {
		levels[i] = q.CognitiveLevel()
	}

	for _, r := range results {
		if r.QuestionIndex == nil || *r.QuestionIndex < 0 || *r.QuestionIndex >= len(levels) {
			continue
		}
		t := tallies[levels[*r.QuestionIndex]]
		t.seen++
		if r.IsCorrect {
			t.correct++
		}
		if r.TimeTaken != nil && *r.TimeTaken > 0 {
			t.timeSum += *r.TimeTaken
			t.timeCount++
		}
	}
	return nil
}
