package analytics

import (
	"time"

	"github.com/socratai/socratai/internal/quiz"
)

// PerformanceStats summarizes every graded attempt of one session.
type PerformanceStats struct {
	SessionID            string                          `json:"session_id"`
	TotalQuizzes         int                             `json:"total_quizzes"`
	AverageScore         float64                         `json:"average_score"`
	TopicPerformance     map[string]float64              `json:"topic_performance"`
	BloomPerformance     map[quiz.CognitiveLevel]float64 `json:"bloom_performance"`
	BloomTimePerformance map[quiz.CognitiveLevel]float64 `json:"bloom_time_performance"`
	QuizHistory          []HistoryPoint                  `json:"quiz_history"`

	// SkippedRecords counts submissions left out of the bloom maps
	// because their stored payload could not be decoded.
	SkippedRecords int `json:"-"`
}

// HistoryPoint is one attempt in chronological order.
type HistoryPoint struct {
	Score      float64   `json:"score"`
	Date       time.Time `json:"date"`
	QuizNumber int       `json:"quiz_number"`
}

// levelTally accumulates per-level counts across submissions.
type levelTally struct {
	seen      int
	correct   int
	timeSum   float64
	timeCount int
}

func (t levelTally) accuracy() float64 {
	if t.seen == 0 {
		return 0
	}
	return 100 * float64(t.correct) / float64(t.seen)
}

func (t levelTally) avgTime() float64 {
	if t.timeCount == 0 {
		return 0
	}
	return t.timeSum / float64(t.timeCount)
}
