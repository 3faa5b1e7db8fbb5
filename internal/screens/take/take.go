// Package take is the screen that generates a quiz, times each answer and
// submits the attempt.
package take

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screen"
	"github.com/socratai/socratai/internal/screens/summary"
	"github.com/socratai/socratai/internal/service"
	"github.com/socratai/socratai/internal/ui/components"
	"github.com/socratai/socratai/internal/ui/layout"
	"github.com/socratai/socratai/internal/ui/theme"
)

// Service is what the screen needs from the quiz service.
type Service interface {
	GenerateInitial(ctx context.Context, userID, sessionID string, n int) (*quiz.Quiz, error)
	GenerateAdaptive(ctx context.Context, userID, sessionID string, n int) (*quiz.Quiz, error)
	Submit(ctx context.Context, userID string, req service.SubmitRequest) (*service.SubmitResult, error)
}

// Mode picks the generation path.
type Mode int

const (
	Initial Mode = iota
	Adaptive
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseSubmitting
	phaseFailed
)

type Screen struct {
	svc       Service
	userID    string
	sessionID string
	mode      Mode
	count     int

	phase   phase
	quiz    *quiz.Quiz
	index   int
	mc      components.MultiChoice
	answers map[int]int
	times   map[int]float64
	shownAt time.Time
	spin    spinner.Model
	errMsg  string

	now func() time.Time
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a quiz screen for one session. count <= 0 lets the service
// pick the default size.
func New(svc Service, userID, sessionID string, mode Mode, count int) *Screen {
	return &Screen{
		svc:       svc,
		userID:    userID,
		sessionID: sessionID,
		mode:      mode,
		count:     count,
		answers:   make(map[int]int),
		times:     make(map[int]float64),
		spin: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
		now: time.Now,
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.generate(), s.spin.Tick)
}

func (s *Screen) Title() string {
	if s.mode == Adaptive {
		return "Adaptive Quiz"
	}
	return "Quiz"
}

func (s *Screen) Status() string {
	if s.quiz == nil {
		return ""
	}
	return fmt.Sprintf("Q %d/%d  %s", min(s.index+1, len(s.quiz.Questions)), len(s.quiz.Questions), s.quiz.Difficulty)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Tab", Description: "Skip"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) generate() tea.Cmd {
	svc, user, session, n, mode := s.svc, s.userID, s.sessionID, s.count, s.mode
	return func() tea.Msg {
		ctx := context.Background()
		var (
			q   *quiz.Quiz
			err error
		)
		if mode == Adaptive {
			q, err = svc.GenerateAdaptive(ctx, user, session, n)
		} else {
			q, err = svc.GenerateInitial(ctx, user, session, n)
		}
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *Screen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.quiz = msg.Quiz
	s.phase = phaseAnswering
	s.showQuestion(0)
	return s, nil
}

func (s *Screen) showQuestion(i int) {
	s.index = i
	q := s.quiz.Questions[i]
	s.mc = components.NewMultiChoice(q.Text, q.Options)
	s.shownAt = s.now()
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseFailed:
		if msg.String() == "r" {
			s.phase = phaseLoading
			s.errMsg = ""
			return s, tea.Batch(s.generate(), s.spin.Tick)
		}
		return s, nil
	case phaseAnswering:
	default:
		return s, nil
	}

	if msg.String() == "tab" {
		return s.advance()
	}

	s.mc, _ = s.mc.Update(msg)
	if !s.mc.Done() {
		return s, nil
	}
	s.answers[s.index] = s.mc.Chosen
	s.times[s.index] = roundTenth(s.now().Sub(s.shownAt).Seconds())
	return s.advance()
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	if s.index+1 < len(s.quiz.Questions) {
		s.showQuestion(s.index + 1)
		return s, nil
	}
	s.phase = phaseSubmitting
	return s, tea.Batch(s.submit(), s.spin.Tick)
}

func (s *Screen) submit() tea.Cmd {
	svc, user := s.svc, s.userID
	req := service.SubmitRequest{
		SessionID: s.sessionID,
		QuizID:    s.quiz.ID,
		Answers:   s.answers,
		TimeTaken: s.times,
	}
	return func() tea.Msg {
		res, err := svc.Submit(context.Background(), user, req)
		return submittedMsg{Result: res, Err: err}
	}
}

func (s *Screen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	svc, user, session, n := s.svc, s.userID, s.sessionID, s.count
	next := func() screen.Screen { return New(svc, user, session, Adaptive, n) }
	results := summary.New(s.quiz, msg.Result, next)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
}

func (s *Screen) fail(err error) {
	s.phase = phaseFailed
	switch {
	case errors.Is(err, quiz.ErrGenerationUnavailable):
		s.errMsg = "Question generation is unavailable right now. Press R to try again."
	case errors.Is(err, quiz.ErrNotFound):
		s.errMsg = "That session does not exist."
	case errors.Is(err, quiz.ErrUnauthorized):
		s.errMsg = "That session belongs to another account."
	default:
		s.errMsg = err.Error()
	}
}

func roundTenth(secs float64) float64 {
	return math.Round(secs*10) / 10
}
