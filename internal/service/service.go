// Package service ties the stores, the question generator and the
// progression policy together into the operations the API and CLI expose.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/blob"
	"github.com/socratai/socratai/internal/events"
	"github.com/socratai/socratai/internal/grading"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/progression"
	"github.com/socratai/socratai/internal/questiongen"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/topics"
)

const (
	DefaultQuestionsPerQuiz = 18
	MaxQuestionsPerQuiz     = 50
	DefaultMaxUploadBytes   = 10 << 20

	// Used by the adaptive path before the session has any submission.
	defaultPreviousScore = 50.0
)

// Deps are the collaborators a Service needs. Events and Log may be nil.
type Deps struct {
	Sessions  store.SessionRepo
	Quizzes   store.QuizRepo
	Blobs     blob.Store
	OCR       topics.TextReader
	Generator questiongen.Generator
	Events    events.Publisher
	Log       *logger.Logger
}

type Options struct {
	QuestionsPerQuiz int
	MaxUploadBytes   int64
	Progression      progression.Config
}

func DefaultOptions() Options {
	return Options{
		QuestionsPerQuiz: DefaultQuestionsPerQuiz,
		MaxUploadBytes:   DefaultMaxUploadBytes,
		Progression:      progression.DefaultConfig(),
	}
}

type Service struct {
	sessions  store.SessionRepo
	quizzes   store.QuizRepo
	blobs     blob.Store
	ocr       topics.TextReader
	generator questiongen.Generator
	events    events.Publisher
	log       *logger.Logger

	evaluator  *grading.Evaluator
	policy     *progression.Policy
	aggregator *analytics.Aggregator
	opts       Options

	now   func() time.Time
	newID func() string
}

// analyticsSource adapts the two repos to analytics.Source.
type analyticsSource struct {
	store.SessionRepo
	store.QuizRepo
}

func New(d Deps, opts Options) *Service {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	pub := d.Events
	if pub == nil {
		pub = events.Nop{}
	}
	if opts.QuestionsPerQuiz <= 0 {
		opts.QuestionsPerQuiz = DefaultQuestionsPerQuiz
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Progression == (progression.Config{}) {
		opts.Progression = progression.DefaultConfig()
	}
	return &Service{
		sessions:   d.Sessions,
		quizzes:    d.Quizzes,
		blobs:      d.Blobs,
		ocr:        d.OCR,
		generator:  d.Generator,
		events:     pub,
		log:        log.With("component", "service"),
		evaluator:  grading.New(d.Quizzes),
		policy:     progression.New(opts.Progression),
		aggregator: analytics.New(analyticsSource{SessionRepo: d.Sessions, QuizRepo: d.Quizzes}, log),
		opts:       opts,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// FromStore fills the repository fields of d from st.
func FromStore(st *store.Store, d Deps) Deps {
	d.Sessions = st.SessionRepo()
	d.Quizzes = st.QuizRepo()
	return d
}

// ownedSession loads a session and checks that userID owns it.
func (s *Service) ownedSession(ctx context.Context, userID, sessionID string) (*quiz.Session, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, quiz.ErrNotFound)
	}
	if sess.OwnerID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, quiz.ErrUnauthorized)
	}
	return sess, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if err := s.events.Publish(context.WithoutCancel(ctx), eventType, payload); err != nil {
		s.log.Warn("publishing event failed", "type", eventType, "error", err)
	}
}
