package progression

import (
	"testing"

	"github.com/socratai/socratai/internal/quiz"
)

func TestLadderSaturates(t *testing.T) {
	if got := Demote(quiz.Easy); got != quiz.Easy {
		t.Errorf("Demote(easy) = %q", got)
	}
	if got := Promote(quiz.Hard); got != quiz.Hard {
		t.Errorf("Promote(hard) = %q", got)
	}
	if got := Promote(quiz.Easy); got != quiz.Medium {
		t.Errorf("Promote(easy) = %q", got)
	}
	if got := Demote(quiz.Hard); got != quiz.Medium {
		t.Errorf("Demote(hard) = %q", got)
	}
}

func TestNext_WithTiming(t *testing.T) {
	p := New(DefaultConfig())

	tests := []struct {
		name    string
		current quiz.Difficulty
		score   float64
		avg     float64
		want    quiz.Difficulty
		move    Move
	}{
		{"high score promotes regardless of time", quiz.Easy, 85, 120, quiz.Medium, MovePromote},
		{"exactly 80 promotes", quiz.Medium, 80, 0, quiz.Hard, MovePromote},
		{"middle band fast promotes", quiz.Easy, 70, 20, quiz.Medium, MovePromote},
		{"middle band slow maintains", quiz.Medium, 70, 40, quiz.Medium, MoveMaintain},
		{"middle band exactly 30s maintains", quiz.Medium, 70, 30, quiz.Medium, MoveMaintain},
		{"middle band untimed maintains", quiz.Easy, 70, 0, quiz.Easy, MoveMaintain},
		{"exactly 60 is middle band", quiz.Hard, 60, 45, quiz.Hard, MoveMaintain},
		{"low score demotes", quiz.Hard, 50, 5, quiz.Medium, MoveDemote},
		{"promote at top saturates", quiz.Hard, 95, 10, quiz.Hard, MovePromote},
		{"demote at bottom saturates", quiz.Easy, 0, 0, quiz.Easy, MoveDemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Next(tt.current, tt.score, &Timing{AvgTimeCorrect: tt.avg})
			if d.Next != tt.want {
				t.Errorf("next = %q, want %q", d.Next, tt.want)
			}
			if d.Move != tt.move {
				t.Errorf("move = %q, want %q", d.Move, tt.move)
			}
			if d.From != tt.current {
				t.Errorf("from = %q, want %q", d.From, tt.current)
			}
		})
	}
}

func TestNext_WithoutTiming(t *testing.T) {
	p := New(DefaultConfig())

	tests := []struct {
		name    string
		current quiz.Difficulty
		score   float64
		want    quiz.Difficulty
	}{
		{"high score from medium", quiz.Medium, 90, quiz.Hard},
		{"low score from hard", quiz.Hard, 50, quiz.Medium},
		{"middle band maintains", quiz.Medium, 70, quiz.Medium},
		{"default prior score maintains easy", quiz.Easy, 50, quiz.Easy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Next(tt.current, tt.score, nil).Next; got != tt.want {
				t.Errorf("next = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNext_NeverLeavesLadder(t *testing.T) {
	p := New(DefaultConfig())
	for _, d := range []quiz.Difficulty{quiz.Easy, quiz.Medium, quiz.Hard} {
		for score := 0.0; score <= 100; score += 5 {
			for _, timing := range []*Timing{nil, {AvgTimeCorrect: 10}, {AvgTimeCorrect: 60}} {
				if next := p.Next(d, score, timing).Next; !next.Valid() {
					t.Fatalf("Next(%q, %v) left the ladder: %q", d, score, next)
				}
			}
		}
	}
}

func TestNext_UnknownDifficultyStartsAtMedium(t *testing.T) {
	p := New(DefaultConfig())

	tests := []struct {
		name    string
		current quiz.Difficulty
		score   float64
		timing  *Timing
		want    quiz.Difficulty
	}{
		{"unknown maintains as medium", "expert", 70, nil, quiz.Medium},
		{"empty maintains as medium", "", 70, &Timing{AvgTimeCorrect: 45}, quiz.Medium},
		{"unknown promotes from medium", "EASY", 90, nil, quiz.Hard},
		{"unknown demotes from medium", "expert", 10, nil, quiz.Easy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Next(tt.current, tt.score, tt.timing)
			if d.Next != tt.want {
				t.Errorf("next = %q, want %q", d.Next, tt.want)
			}
			if d.From != quiz.Medium {
				t.Errorf("from = %q, want %q", d.From, quiz.Medium)
			}
		})
	}
}
