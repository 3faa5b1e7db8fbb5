package take

import (
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/service"
)

// quizReadyMsg is sent when question generation finishes.
type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// submittedMsg is sent when the graded result comes back.
type submittedMsg struct {
	Result *service.SubmitResult
	Err    error
}
