package progression

import "github.com/socratai/socratai/internal/quiz"

// Config holds the score and speed thresholds of the ladder.
type Config struct {
	// PromoteScore is the score at or above which the learner always moves up.
	PromoteScore float64

	// MaintainScore is the lowest score that does not demote.
	MaintainScore float64

	// FastAnswerSeconds is the exclusive upper bound on the average time of
	// correct answers that earns a promotion from the middle band.
	FastAnswerSeconds float64
}

// DefaultConfig returns the production thresholds: 80 / 60 / 30s.
func DefaultConfig() Config {
	return Config{
		PromoteScore:      80,
		MaintainScore:     60,
		FastAnswerSeconds: 30,
	}
}

// Timing is the speed profile of the attempt being graded.
type Timing struct {
	// AvgTimeCorrect is the mean seconds spent on correctly answered,
	// timed questions. Zero means nothing was timed.
	AvgTimeCorrect float64
}

// Decision is the outcome of a progression step.
type Decision struct {
	From quiz.Difficulty
	Next quiz.Difficulty
	Move Move
}

// Policy computes the next quiz difficulty. It holds no state; callers
// pass the latest score and difficulty read from history each time.
type Policy struct {
	cfg Config
}

// New creates a Policy with the given thresholds.
func New(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// Next decides the difficulty that follows current.
//
// With timing (a quiz was just graded), a middle-band score is promoted
// when correct answers averaged under FastAnswerSeconds. Without timing
// (a new quiz is being generated from the last stored score), the middle
// band always maintains. A current difficulty off the ladder is treated
// as medium.
func (p *Policy) Next(current quiz.Difficulty, score float64, timing *Timing) Decision {
	if !current.Valid() {
		current = quiz.Medium
	}
	move := p.move(score, timing)
	return Decision{
		From: current,
		Next: Apply(current, move),
		Move: move,
	}
}

func (p *Policy) move(score float64, timing *Timing) Move {
	switch {
	case score >= p.cfg.PromoteScore:
		return MovePromote
	case score >= p.cfg.MaintainScore:
		if timing != nil && timing.AvgTimeCorrect > 0 && timing.AvgTimeCorrect < p.cfg.FastAnswerSeconds {
			return MovePromote
		}
		return MoveMaintain
	default:
		return MoveDemote
	}
}
