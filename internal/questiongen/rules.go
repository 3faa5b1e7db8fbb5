package questiongen

import (
	"context"
	"fmt"

	"github.com/socratai/socratai/internal/quiz"
)

type template struct {
	stem    string
	options [3]string
}

var templates = []template{
	{"What is the main concept of %s?", [3]string{
		"The fundamental principles and core ideas",
		"Advanced theoretical frameworks",
		"Practical applications only",
	}},
	{"Which aspect is most important in %s?", [3]string{
		"Understanding core concepts",
		"Memorizing facts",
		"Avoiding the topic",
	}},
	{"How does %s relate to the overall subject?", [3]string{
		"It's an integral part of the subject",
		"It's completely separate",
		"It's optional content",
	}},
	{"What would be a key characteristic of %s?", [3]string{
		"Relevant and important concepts",
		"Unrelated information",
		"Outdated material",
	}},
}

const noneOfTheAbove = "None of the above"

// RuleGenerator builds questions from fixed templates, cycling through the
// topics. It needs no network and is selected explicitly with the "rules"
// question source. The first option is always the correct one.
type RuleGenerator struct{}

func NewRuleGenerator() *RuleGenerator { return &RuleGenerator{} }

func (RuleGenerator) Generate(_ context.Context, input Input) (*Result, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, input.Count)
	for i := range questions {
		questions[i] = ruleQuestion(input.Topics[i%len(input.Topics)], templates[i%len(templates)], input.Difficulty)
	}
	return &Result{
		Questions:  questions,
		Difficulty: input.Difficulty,
		TopicCount: len(input.Topics),
	}, nil
}

func ruleQuestion(topic string, t template, d quiz.Difficulty) quiz.Question {
	switch d {
	case quiz.Easy:
		return quiz.Question{
			Text: fmt.Sprintf(t.stem, topic),
			Options: []string{
				t.options[0],
				"Something unrelated to " + topic,
				"An advanced concept in " + topic,
				noneOfTheAbove,
			},
			Level: quiz.Remember,
		}
	case quiz.Hard:
		return quiz.Question{
			Text: fmt.Sprintf("Which of the following best describes advanced understanding of %s?", topic),
			Options: []string{
				fmt.Sprintf("Deep knowledge of %s principles and applications", topic),
				"Basic introduction to " + topic,
				"Simple overview of " + topic,
				"Superficial knowledge of " + topic,
			},
			Level: quiz.Analyze,
		}
	default:
		return quiz.Question{
			Text:    fmt.Sprintf(t.stem, topic),
			Options: []string{t.options[0], t.options[1], t.options[2], noneOfTheAbove},
			Level:   quiz.Understand,
		}
	}
}
