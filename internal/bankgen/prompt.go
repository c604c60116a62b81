package bankgen

import (
	"fmt"
	"strings"

	"github.com/lisquiz/lisquiz/internal/quiz"
)

const systemPrompt = `You write short quizzes for young children (ages 5-10).

Rules:
- Use simple words and short sentences. Be kind and concrete.
- Every question must have exactly one correct answer.
- Options are single words or very short phrases, and each option appears once.
- The correct answer must be copied exactly from the options.
- Explanations are one or two friendly sentences.
- Never repeat a question from the "already used" list.
- Leave fields that do not apply to the quiz kind empty (empty string or empty list).`

// variantRules tells the model how each quiz kind is shaped.
var variantRules = map[quiz.Variant]string{
	quiz.VariantChoice: `Kind: multiple choice.
- Each question has 3 or 4 options and one correct option.`,
	quiz.VariantBlank: `Kind: fill in the blank.
- Each question is a sentence with exactly one gap written as ___ (three underscores).
- Options are 2 or 3 words that could fill the gap; correct is the one that fits.`,
	quiz.VariantSort: `Kind: sort into two boxes.
- Choose two categories and put their names in left_box and right_box.
- Each question has exactly 2 options: one word for the left box and one for the right box.
- List the left word in left_words and the right word in right_words. Leave correct empty.
- The question text is an instruction such as "Drag each word to the correct box."`,
	quiz.VariantAudio: `Kind: listen and choose.
- The child hears the correct word spoken aloud and picks it from the options.
- The question text is an instruction such as "Listen and pick the word you hear."
- Use 3 or 4 options that sound or look alike, with one correct option.`,
}

// buildUserMessage constructs the user message from DraftInput and Config limits.
func buildUserMessage(input DraftInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	if input.Grade > 0 {
		fmt.Fprintf(&b, "Grade: %d\n", input.Grade)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n\n", input.Count)
	b.WriteString(variantRules[input.Variant])

	b.WriteString("\n\nAlready used:\n")
	b.WriteString(buildAvoid(input.Avoid, cfg.MaxAvoid))

	return b.String()
}

// buildAvoid formats prompts to avoid, keeping the most recent max entries.
func buildAvoid(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// feedbackMessage asks for a corrected draft after a validation failure.
func feedbackMessage(verr *ValidationError) string {
	return fmt.Sprintf("The previous draft was rejected: %s. Write a new draft that fixes this.", verr.Message)
}
