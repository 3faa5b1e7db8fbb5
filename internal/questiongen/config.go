package questiongen

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure drops the question.
	Validators []Validator

	// MaxTokens is the budget for one full question set.
	MaxTokens int

	Temperature float64

	// MaxTopics caps how many topics go into the prompt.
	MaxTopics int

	// MaxPriorQuestions caps the "already asked" list in the prompt.
	MaxPriorQuestions int

	// FillRounds is how many extra calls may top up a short set.
	FillRounds int
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DedupValidator{},
		},
		MaxTokens:         8192,
		Temperature:       0.7,
		MaxTopics:         10,
		MaxPriorQuestions: 50,
		FillRounds:        1,
	}
}
