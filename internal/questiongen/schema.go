package questiongen

import (
	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/quiz"
)

func bloomEnum() []any {
	levels := quiz.AllLevels()
	out := make([]any, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

// QuestionSetSchema is the structured output requested from the model.
var QuestionSetSchema = &llm.Schema{
	Name:        "quiz-question-set",
	Description: "A set of four-option multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem, self-contained and ending with a question mark",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    quiz.OptionCount,
							"maxItems":    quiz.OptionCount,
							"description": "Exactly four distinct answer options",
						},
						"correct_answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     quiz.OptionCount - 1,
							"description": "Zero-based index of the correct option",
						},
						"bloom_level": map[string]any{
							"type":        "string",
							"enum":        bloomEnum(),
							"description": "The Bloom's taxonomy level the question exercises",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "bloom_level"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
