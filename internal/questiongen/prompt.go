package questiongen

import (
	"fmt"
	"strings"

	"github.com/socratai/socratai/internal/quiz"
)

const systemPrompt = `You are a helpful assistant that generates educational quiz questions from a student's syllabus.

Rules:
- Write multiple choice questions (MCQs) that test the listed topics.
- Every question has exactly 4 distinct options and exactly one correct option.
- correct_answer is the zero-based index of the correct option. Vary its position across questions.
- Distractors should be plausible, not obviously wrong or joke answers.
- Tag each question with the Bloom's taxonomy level it exercises (Remember, Understand, Apply, Analyze, Evaluate, Create) and spread questions across levels.
- Do not repeat any question from the "already asked" list.`

// difficultyWording describes a difficulty tier to the model.
func difficultyWording(d quiz.Difficulty) string {
	switch d {
	case quiz.Easy:
		return "simple and straightforward"
	case quiz.Hard:
		return "challenging and detailed"
	default:
		return "moderate complexity"
	}
}

func buildUserMessage(input Input, count int, cfg Config) string {
	topics := input.Topics
	if cfg.MaxTopics > 0 && len(topics) > cfg.MaxTopics {
		topics = topics[:cfg.MaxTopics]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple choice questions based on these topics: %s\n\n",
		count, strings.Join(topics, ", "))
	fmt.Fprintf(&b, "Difficulty level: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Make questions %s level - %s.\n", input.Difficulty, difficultyWording(input.Difficulty))

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))
	return b.String()
}

// buildDedup lists the most recent max prior questions, or "None".
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
