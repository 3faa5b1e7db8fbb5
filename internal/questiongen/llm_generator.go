package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/quiz"
)

// LLMGenerator writes question sets with a language model.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

func New(provider llm.Provider, cfg Config, log *logger.Logger) *LLMGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log.With("component", "questiongen")}
}

// questionSetOutput is the raw model response before validation.
type questionSetOutput struct {
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
		BloomLevel    string   `json:"bloom_level"`
	} `json:"questions"`
}

// Generate asks for the full set, drops questions that fail validation
// and tops up the gap with at most Config.FillRounds further calls.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Result, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	input.prepare()

	var accepted []quiz.Question
	purpose := "quiz-gen"
	for round := 0; round <= g.config.FillRounds && len(accepted) < input.Count; round++ {
		missing := input.Count - len(accepted)

		batch, err := g.request(llm.WithPurpose(ctx, purpose), input, missing)
		if err != nil {
			if llm.IsUnavailable(err) {
				return nil, fmt.Errorf("%w: %v", quiz.ErrGenerationUnavailable, err)
			}
			return nil, fmt.Errorf("generate questions: %w", err)
		}

		for i := range batch {
			if len(accepted) == input.Count {
				break
			}
			q := &batch[i]
			if verr := g.validate(q, &input); verr != nil {
				g.log.Debug("dropping generated question", "round", round, "reason", verr.Error())
				continue
			}
			input.markAsked(q.Text)
			input.PriorQuestions = append(input.PriorQuestions, q.Text)
			accepted = append(accepted, *q)
		}
		purpose = "quiz-fill"
	}

	if len(accepted) < input.Count {
		return nil, fmt.Errorf("%w: model produced %d of %d usable questions",
			quiz.ErrGenerationUnavailable, len(accepted), input.Count)
	}

	return &Result{
		Questions:  accepted,
		Difficulty: input.Difficulty,
		TopicCount: len(input.Topics),
	}, nil
}

func (g *LLMGenerator) request(ctx context.Context, input Input, count int) ([]quiz.Question, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(input, count, g.config)}},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var raw questionSetOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	out := make([]quiz.Question, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		out = append(out, quiz.Question{
			Text:          r.Question,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
			Level:         quiz.CognitiveLevel(r.BloomLevel),
		})
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *quiz.Question, input *Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	if q.Level != "" {
		q.Level = quiz.ParseLevel(string(q.Level))
	}
	return nil
}

var errNoTopics = errors.New("session has no topics")

func checkInput(input Input) error {
	switch {
	case len(input.Topics) == 0:
		return fmt.Errorf("%w: %v", quiz.ErrValidation, errNoTopics)
	case input.Count <= 0:
		return fmt.Errorf("%w: question count must be positive, got %d", quiz.ErrValidation, input.Count)
	case !input.Difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", quiz.ErrValidation, input.Difficulty)
	}
	return nil
}
