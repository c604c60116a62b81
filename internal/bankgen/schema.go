package bankgen

import "github.com/lisquiz/lisquiz/internal/llm"

// DraftSchema is the structured output requested from the LLM. Every
// property is required so providers with strict schema mode accept it;
// fields that do not apply to a variant are left empty.
var DraftSchema = &llm.Schema{
	Name:        "quiz-bank",
	Description: "A children's quiz: a title and a list of questions of one kind",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short, friendly quiz title",
			},
			"left_box": map[string]any{
				"type":        "string",
				"description": "Sort quizzes only: label of the left box. Empty otherwise.",
			},
			"right_box": map[string]any{
				"type":        "string",
				"description": "Sort quizzes only: label of the right box. Empty otherwise.",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The prompt shown to the child. Fill-in-the-blank prompts mark the gap with ___",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Answer options, or the word chips for sort quizzes",
						},
						"correct": map[string]any{
							"type":        "string",
							"description": "The correct option, exactly as written in options. Empty for sort quizzes.",
						},
						"left_words": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Sort quizzes only: options that belong in the left box",
						},
						"right_words": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Sort quizzes only: options that belong in the right box",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining the answer to a child",
						},
					},
					"required":             []any{"question", "options", "correct", "left_words", "right_words", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "left_box", "right_box", "questions"},
		"additionalProperties": false,
	},
}
