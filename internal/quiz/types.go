package quiz

import (
	"strings"
	"time"
)

// Difficulty is a position on the easy < medium < hard ladder.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is one of the three ladder positions.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseDifficulty parses a difficulty label. The second return value is
// false for anything that is not on the ladder.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// CognitiveLevel is a Bloom taxonomy level attached to a question.
type CognitiveLevel string

const (
	Remember   CognitiveLevel = "Remember"
	Understand CognitiveLevel = "Understand"
	Apply      CognitiveLevel = "Apply"
	Analyze    CognitiveLevel = "Analyze"
	Evaluate   CognitiveLevel = "Evaluate"
	Create     CognitiveLevel = "Create"
)

// AllLevels returns the six cognitive levels from lowest to highest.
func AllLevels() []CognitiveLevel {
	return []CognitiveLevel{Remember, Understand, Apply, Analyze, Evaluate, Create}
}

// ParseLevel maps a label to a CognitiveLevel, case-insensitively.
// Empty or unrecognized labels map to Understand.
func ParseLevel(s string) CognitiveLevel {
	s = strings.TrimSpace(s)
	for _, l := range AllLevels() {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return Understand
}

// KnownLevel reports whether s names one of the six levels exactly
// (ignoring case).
func KnownLevel(s string) bool {
	s = strings.TrimSpace(s)
	for _, l := range AllLevels() {
		if strings.EqualFold(s, string(l)) {
			return true
		}
	}
	return false
}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is one multiple-choice item.
type Question struct {
	Text          string         `json:"question"`
	Options       []string       `json:"options"`
	CorrectAnswer int            `json:"correct_answer"`
	Level         CognitiveLevel `json:"bloom_level,omitempty"`
}

// CognitiveLevel returns the question's level, defaulting to Understand.
func (q Question) CognitiveLevel() CognitiveLevel {
	return ParseLevel(string(q.Level))
}

// Session is one uploaded syllabus with its derived topics.
type Session struct {
	ID            string    `json:"session_id"`
	OwnerID       string    `json:"user_id"`
	ImagePath     string    `json:"image_path,omitempty"`
	ExtractedText string    `json:"extracted_text"`
	Topics        []string  `json:"topics"`
	CreatedAt     time.Time `json:"created_at"`
}

// Quiz is a generated question set tagged with a difficulty.
type Quiz struct {
	ID         string     `json:"quiz_id"`
	SessionID  string     `json:"session_id"`
	Questions  []Question `json:"questions"`
	Difficulty Difficulty `json:"difficulty"`
	Type       string     `json:"quiz_type"`
	TopicCount int        `json:"topic_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// QuizTypeInitial labels the first quiz of a session.
const QuizTypeInitial = "initial"

// AdaptiveQuizType returns the type label of an adaptive quiz at d.
func AdaptiveQuizType(d Difficulty) string {
	return "adaptive_" + string(d)
}

// ResultItem is the graded outcome of one question.
type ResultItem struct {
	QuestionIndex int     `json:"question_index"`
	UserAnswer    *int    `json:"user_answer"`
	CorrectAnswer int     `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	TimeTaken     float64 `json:"time_taken"`
}

// Submission is one graded attempt at a quiz.
type Submission struct {
	ID        string       `json:"submission_id"`
	QuizID    string       `json:"quiz_id"`
	SessionID string       `json:"session_id"`
	Score     float64      `json:"score"`
	Results   []ResultItem `json:"results"`
	CreatedAt time.Time    `json:"created_at"`
}

// User is an account that owns sessions.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
