package quiz

import "fmt"

// Validate checks the Question invariants: non-empty text, exactly four
// options and a correct answer that indexes one of them.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is empty", ErrValidation)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: question has %d options, want %d", ErrValidation, len(q.Options), OptionCount)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct_answer %d out of range", ErrValidation, q.CorrectAnswer)
	}
	return nil
}
