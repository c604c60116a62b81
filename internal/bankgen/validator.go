package bankgen

import (
	"errors"
	"fmt"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/quiz"
)

// Validator checks a drafted bank.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages, e.g. "structural".
	Name() string

	// Validate returns nil if the bank passes.
	Validate(b *bank.Bank, input DraftInput) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string
	Message   string
	// Retryable is true when drafting again is likely to fix the problem.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxPromptLen      = 300
	maxExplanationLen = 500
)

// StructuralValidator checks counts, lengths and variant-specific shape.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(b *bank.Bank, input DraftInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if len(b.Items) == 0 {
		return fail("no questions")
	}
	if input.Count > 0 && len(b.Items) != input.Count {
		return fail("expected %d questions, got %d", input.Count, len(b.Items))
	}
	if b.Variant == quiz.VariantSort && (b.Boxes == nil || b.Boxes.Left == "" || b.Boxes.Right == "") {
		return fail("sort quiz needs both box labels")
	}

	for i, it := range b.Items {
		if len(it.Question) > maxPromptLen {
			return fail("question %d exceeds %d characters", i+1, maxPromptLen)
		}
		if len(it.Explanation) > maxExplanationLen {
			return fail("explanation %d exceeds %d characters", i+1, maxExplanationLen)
		}
		switch b.Variant {
		case quiz.VariantChoice, quiz.VariantAudio:
			if len(it.Options) < 2 {
				return fail("question %d needs at least 2 options", i+1)
			}
		case quiz.VariantBlank:
			if _, _, ok := quiz.SplitBlank(it.Question); !ok {
				return fail("question %d has no ___ gap", i+1)
			}
		}
		if hasDuplicate(it.Options) {
			return fail("question %d repeats an option", i+1)
		}
	}
	return nil
}

func hasDuplicate(opts []bank.Scalar) bool {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		k := quiz.NormalizeText(string(o))
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

// DuplicateValidator rejects prompts repeated within the draft or taken
// from DraftInput.Avoid. Sort prompts are instructions and are skipped.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(b *bank.Bank, input DraftInput) *ValidationError {
	if b.Variant == quiz.VariantSort || b.Variant == quiz.VariantAudio {
		return nil
	}
	seen := make(map[string]bool, len(b.Items)+len(input.Avoid))
	for _, p := range input.Avoid {
		seen[quiz.NormalizeText(p)] = true
	}
	for i, it := range b.Items {
		k := quiz.NormalizeText(it.Question)
		if seen[k] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats %q", i+1, it.Question),
				Retryable: true,
			}
		}
		seen[k] = true
	}
	return nil
}

// PlayableValidator runs the rules a quiz session applies at start.
type PlayableValidator struct{}

func (v *PlayableValidator) Name() string { return "playable" }

func (v *PlayableValidator) Validate(b *bank.Bank, _ DraftInput) *ValidationError {
	err := b.Check()
	if err == nil {
		return nil
	}
	var qerr *quiz.QuestionError
	return &ValidationError{
		Validator: v.Name(),
		Message:   err.Error(),
		Retryable: errors.As(err, &qerr) || errors.Is(err, quiz.ErrNoQuestions),
	}
}
