package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/blob"
	"github.com/socratai/socratai/internal/config"
	"github.com/socratai/socratai/internal/events"
	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/questiongen"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/service"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/topics"
)

// loadConfig reads .env and the environment, then applies the --db flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
		cfg.DatabaseURL = ""
	}
	return cfg, nil
}

func openStore(cfg config.Config) (*store.Store, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// runtime is the wired quiz service plus everything that must be closed
// when the command exits.
type runtime struct {
	Config  config.Config
	Store   *store.Store
	Service *service.Service
	Log     *logger.Logger

	closers []func() error
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.Log.Warn("shutdown step failed", "error", err)
		}
	}
}

// buildRuntime opens storage and builds the OCR reader, question generator
// and event publisher. A nil log discards output, which the terminal UI
// needs.
func buildRuntime(ctx context.Context, cfg config.Config, log *logger.Logger) (*runtime, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	rt := &runtime{Config: cfg, Store: st, Log: log, closers: []func() error{st.Close}}

	fail := func(err error) (*runtime, error) {
		rt.Close()
		return nil, err
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("blob store: %w", err))
	}

	ocr, err := topics.NewReader(ctx, cfg.OCR, log)
	if err != nil {
		return fail(fmt.Errorf("ocr: %w", err))
	}
	rt.closers = append(rt.closers, ocr.Close)

	gen, err := newGenerator(ctx, cfg, st, log)
	if err != nil {
		return fail(fmt.Errorf("question generator: %w", err))
	}

	pub, err := events.New(cfg.AMQPURL, cfg.AMQPExchange, log)
	if err != nil {
		return fail(fmt.Errorf("event publisher: %w", err))
	}
	rt.closers = append(rt.closers, pub.Close)

	opts := service.DefaultOptions()
	opts.QuestionsPerQuiz = cfg.QuestionsPerQuiz

	rt.Service = service.New(service.FromStore(st, service.Deps{
		Blobs:     blobs,
		OCR:       ocr,
		Generator: gen,
		Events:    pub,
		Log:       log,
	}), opts)
	return rt, nil
}

func newBlobStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	if cfg.S3.Bucket != "" {
		return blob.NewS3Store(ctx, cfg.S3)
	}
	return blob.NewLocalStore(cfg.UploadDir)
}

func newGenerator(ctx context.Context, cfg config.Config, st *store.Store, log *logger.Logger) (questiongen.Generator, error) {
	if cfg.UsesRules() {
		return questiongen.NewRuleGenerator(), nil
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		return nil, err
	}
	return questiongen.New(provider, questiongen.DefaultConfig(), log), nil
}

// currentUser resolves --email (or SOCRATAI_EMAIL) to an account.
func currentUser(cmd *cobra.Command, st *store.Store) (*quiz.User, error) {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = os.Getenv("SOCRATAI_EMAIL")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("no account selected: pass --email or set SOCRATAI_EMAIL")
	}
	u, err := st.UserRepo().GetUserByEmail(cmd.Context(), email)
	if err != nil {
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("no account for %s; create one with: socratai user create", email)
	}
	return u, nil
}
