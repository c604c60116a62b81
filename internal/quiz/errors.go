package quiz

import (
	"errors"
	"fmt"
)

// ErrNoQuestions is returned when a session is created without questions.
var ErrNoQuestions = errors.New("quiz: no questions found")

// QuestionError reports a question that cannot be played even after
// normalization.
type QuestionError struct {
	Index  int
	Reason string
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("quiz: question %d: %s", e.Index+1, e.Reason)
}
