package progression

import "github.com/socratai/socratai/internal/quiz"

// Move is the direction of a ladder transition.
type Move string

const (
	MovePromote  Move = "promote"
	MoveMaintain Move = "maintain"
	MoveDemote   Move = "demote"
)

// Promote moves one rung up the ladder. Hard stays hard.
func Promote(d quiz.Difficulty) quiz.Difficulty {
	switch d {
	case quiz.Easy:
		return quiz.Medium
	default:
		return quiz.Hard
	}
}

// Demote moves one rung down the ladder. Easy stays easy.
func Demote(d quiz.Difficulty) quiz.Difficulty {
	switch d {
	case quiz.Hard:
		return quiz.Medium
	default:
		return quiz.Easy
	}
}

// Apply returns the difficulty reached from d by m.
func Apply(d quiz.Difficulty, m Move) quiz.Difficulty {
	switch m {
	case MovePromote:
		return Promote(d)
	case MoveDemote:
		return Demote(d)
	default:
		return d
	}
}
