package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socratai/socratai/internal/blob"
	"github.com/socratai/socratai/internal/events"
	"github.com/socratai/socratai/internal/questiongen"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/topics"
)

const syllabus = "1. Introduction to Cells\n2. Photosynthesis Basics\n"

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// capturingGenerator remembers the last input and delegates to next.
type capturingGenerator struct {
	next questiongen.Generator
	last questiongen.Input
}

func (g *capturingGenerator) Generate(ctx context.Context, in questiongen.Input) (*questiongen.Result, error) {
	g.last = in
	return g.next.Generate(ctx, in)
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, questiongen.Input) (*questiongen.Result, error) {
	return nil, fmt.Errorf("%w: provider down", quiz.ErrGenerationUnavailable)
}

type fixture struct {
	svc    *Service
	store  *store.Store
	events *recordingPublisher
	gen    *capturingGenerator
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	st, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	// Sessions reference their owner, so every user the tests act as
	// must exist first.
	for _, id := range []string{"u1", "u2", "owner", "intruder"} {
		require.NoError(t, st.UserRepo().CreateUser(context.Background(), quiz.User{
			ID:           id,
			Email:        id + "@example.com",
			Username:     id,
			PasswordHash: "x",
			CreatedAt:    time.Now(),
		}))
	}

	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pub := &recordingPublisher{}
	gen := &capturingGenerator{next: questiongen.NewRuleGenerator()}
	svc := New(FromStore(st, Deps{
		Blobs:     blobs,
		OCR:       topics.PlainTextReader{},
		Generator: gen,
		Events:    pub,
	}), opts)
	return &fixture{svc: svc, store: st, events: pub, gen: gen}
}

func (f *fixture) upload(t *testing.T, userID string) *quiz.Session {
	t.Helper()
	sess, err := f.svc.Upload(context.Background(), userID, "syllabus.txt", strings.NewReader(syllabus))
	require.NoError(t, err)
	return sess
}

func allAnswers(n, choice int, secs float64) (map[int]int, map[int]float64) {
	answers := make(map[int]int, n)
	times := make(map[int]float64, n)
	for i := 0; i < n; i++ {
		answers[i] = choice
		times[i] = secs
	}
	return answers, times
}

func TestUpload(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()

	sess := f.upload(t, "u1")
	assert.Equal(t, []string{"Introduction to Cells", "Photosynthesis Basics"}, sess.Topics)
	assert.Equal(t, syllabus, sess.ExtractedText)
	assert.Contains(t, sess.ImagePath, "u1_syllabus.txt")

	stored, err := f.store.SessionRepo().GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.OwnerID)

	got, err := f.svc.Topics(ctx, "u1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Topics, got)

	assert.Equal(t, []string{events.SessionCreated}, f.events.types)
}

func TestUpload_Rejects(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxUploadBytes = 8
	f := newFixture(t, opts)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, "u1", "big.txt", strings.NewReader(syllabus))
	assert.ErrorIs(t, err, quiz.ErrValidation)

	_, err = f.svc.Upload(ctx, "u1", "empty.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, quiz.ErrValidation)

	_, err = f.svc.Upload(ctx, "u1", "  ", strings.NewReader("abc"))
	assert.ErrorIs(t, err, quiz.ErrValidation)
}

func TestUpload_UnknownOwner(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, "ghost", "syllabus.txt", strings.NewReader(syllabus))
	require.Error(t, err)

	entries, err := f.svc.History(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, f.events.types)
}

func TestSessionOwnership(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "owner")

	_, err := f.svc.Topics(ctx, "intruder", sess.ID)
	assert.ErrorIs(t, err, quiz.ErrUnauthorized)

	_, err = f.svc.Topics(ctx, "owner", "missing")
	assert.ErrorIs(t, err, quiz.ErrNotFound)

	_, err = f.svc.GenerateInitial(ctx, "intruder", sess.ID, 4)
	assert.ErrorIs(t, err, quiz.ErrUnauthorized)

	_, err = f.svc.GenerateAdaptive(ctx, "owner", "missing", 4)
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}

func TestQuizLifecycle(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "u1")

	initial, err := f.svc.GenerateInitial(ctx, "u1", sess.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, quiz.Easy, initial.Difficulty)
	assert.Equal(t, quiz.QuizTypeInitial, initial.Type)
	assert.Len(t, initial.Questions, 4)
	assert.Equal(t, 2, initial.TopicCount)

	// Rule questions always have option 0 correct.
	answers, times := allAnswers(4, 0, 10)
	res, err := f.svc.Submit(ctx, "u1", SubmitRequest{
		SessionID: sess.ID,
		QuizID:    initial.ID,
		Answers:   answers,
		TimeTaken: times,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, 4, res.Correct)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Results, 4)
	assert.Equal(t, quiz.Medium, res.NextDifficulty)

	adaptive, err := f.svc.GenerateAdaptive(ctx, "u1", sess.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, quiz.Medium, adaptive.Difficulty)
	assert.Equal(t, "adaptive_medium", adaptive.Type)
	assert.Len(t, f.gen.last.PriorQuestions, 4)

	stats, err := f.svc.Stats(ctx, "u1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalQuizzes)
	assert.Equal(t, 100.0, stats.AverageScore)
	assert.Equal(t, 100.0, stats.BloomPerformance[quiz.Remember])
	assert.Equal(t, 10.0, stats.BloomTimePerformance[quiz.Remember])
	assert.Equal(t, 0.0, stats.BloomPerformance[quiz.Create])
	assert.Equal(t, map[string]float64{
		"Introduction to Cells": 100,
		"Photosynthesis Basics": 100,
	}, stats.TopicPerformance)

	assert.Equal(t, []string{
		events.SessionCreated,
		events.QuizGenerated,
		events.QuizSubmitted,
		events.QuizGenerated,
	}, f.events.types)
}

func TestSubmit_Progression(t *testing.T) {
	tests := []struct {
		name    string
		correct int // of 10
		secs    float64
		want    quiz.Difficulty
	}{
		{"high score promotes", 9, 45, quiz.Medium},
		{"middle band fast promotes", 7, 20, quiz.Medium},
		{"middle band slow maintains", 7, 40, quiz.Easy},
		{"middle band untimed maintains", 7, 0, quiz.Easy},
		{"low score stays at easy", 5, 5, quiz.Easy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, DefaultOptions())
			ctx := context.Background()
			sess := f.upload(t, "u1")
			q, err := f.svc.GenerateInitial(ctx, "u1", sess.ID, 10)
			require.NoError(t, err)

			answers, times := allAnswers(10, 1, tt.secs)
			for i := 0; i < tt.correct; i++ {
				answers[i] = 0
			}
			res, err := f.svc.Submit(ctx, "u1", SubmitRequest{SessionID: sess.ID, QuizID: q.ID, Answers: answers, TimeTaken: times})
			require.NoError(t, err)
			assert.Equal(t, float64(tt.correct*10), res.Score)
			assert.Equal(t, tt.want, res.NextDifficulty)
		})
	}
}

func TestGenerateAdaptive_Defaults(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "u1")

	// No quiz and no submission yet: score 50 on easy stays easy.
	q, err := f.svc.GenerateAdaptive(ctx, "u1", sess.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, quiz.Easy, q.Difficulty)
	assert.Equal(t, "adaptive_easy", q.Type)
	assert.Len(t, q.Questions, DefaultQuestionsPerQuiz)
	assert.Empty(t, f.gen.last.PriorQuestions)
}

func TestSubmit_Rejects(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "u1")
	other := f.upload(t, "u1")
	q, err := f.svc.GenerateInitial(ctx, "u1", sess.ID, 4)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		req    SubmitRequest
		want   error
	}{
		{"foreign session", "u2", SubmitRequest{SessionID: sess.ID, QuizID: q.ID}, quiz.ErrUnauthorized},
		{"unknown session", "u1", SubmitRequest{SessionID: "nope", QuizID: q.ID}, quiz.ErrUnauthorized},
		{"unknown quiz", "u1", SubmitRequest{SessionID: sess.ID, QuizID: "nope"}, quiz.ErrNotFound},
		{"quiz of another session", "u1", SubmitRequest{SessionID: other.ID, QuizID: q.ID}, quiz.ErrValidation},
		{"answer out of range", "u1", SubmitRequest{SessionID: sess.ID, QuizID: q.ID, Answers: map[int]int{7: 0}}, quiz.ErrValidation},
		{"negative time", "u1", SubmitRequest{SessionID: sess.ID, QuizID: q.ID, TimeTaken: map[int]float64{0: -1}}, quiz.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, tt.userID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, ok, err := f.store.QuizRepo().LatestScore(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, ok, "rejected submissions must not be stored")
}

func TestStats_Errors(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "u1")

	_, err := f.svc.Stats(ctx, "u1", sess.ID)
	assert.ErrorIs(t, err, quiz.ErrNotFound)

	_, err = f.svc.Stats(ctx, "u2", sess.ID)
	assert.ErrorIs(t, err, quiz.ErrUnauthorized)

	_, err = f.svc.Stats(ctx, "u1", "missing")
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}

func TestGenerate_Failures(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess := f.upload(t, "u1")

	_, err := f.svc.GenerateInitial(ctx, "u1", sess.ID, MaxQuestionsPerQuiz+1)
	assert.ErrorIs(t, err, quiz.ErrValidation)

	f.svc.generator = failingGenerator{}
	_, err = f.svc.GenerateInitial(ctx, "u1", sess.ID, 4)
	assert.True(t, errors.Is(err, quiz.ErrGenerationUnavailable), "got %v", err)

	_, ok, err := f.store.QuizRepo().LatestDifficulty(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, ok, "failed generation must not store a quiz")
}

func TestGenerate_NoTopics(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()
	sess, err := f.svc.Upload(ctx, "u1", "short.txt", strings.NewReader("hi"))
	require.NoError(t, err)
	require.Empty(t, sess.Topics)

	_, err = f.svc.GenerateInitial(ctx, "u1", sess.ID, 4)
	assert.ErrorIs(t, err, quiz.ErrValidation)
}

func TestHistory(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	ctx := context.Background()

	empty, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := f.upload(t, "u1")
	second := f.upload(t, "u1")
	f.upload(t, "u2")

	entries, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].SessionID)
	assert.Equal(t, first.ID, entries[1].SessionID)
}
