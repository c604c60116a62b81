// Package bankgen drafts question banks with an LLM.
package bankgen

import (
	"context"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/quiz"
)

// Generator drafts question banks.
type Generator interface {
	// Draft produces a playable bank for the given input. All configured
	// validators have passed on the returned bank.
	Draft(ctx context.Context, input DraftInput) (*bank.Bank, error)
}

// DraftInput describes the bank to draft.
type DraftInput struct {
	// Topic is a free-text subject, e.g. "farm animals".
	Topic   string
	Variant quiz.Variant
	// Count is the number of questions wanted.
	Count int
	// Grade is the school grade of the audience, 0 for unspecified.
	Grade int
	// ID names the bank. Derived from the topic when empty.
	ID string
	// Avoid lists prompts that must not be repeated.
	Avoid []string
}

// draftOutput is the raw LLM response before conversion.
type draftOutput struct {
	Title     string          `json:"title"`
	LeftBox   string          `json:"left_box"`
	RightBox  string          `json:"right_box"`
	Questions []draftQuestion `json:"questions"`
}

type draftQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	LeftWords   []string `json:"left_words"`
	RightWords  []string `json:"right_words"`
	Explanation string   `json:"explanation"`
}
