package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

// Default prompts used when a question has no text of its own.
var defaultPrompts = map[Variant]string{
	VariantChoice: "Choose the correct answer.",
	VariantBlank:  "Drag the correct word into the blank.",
	VariantSort:   "Drag each word to the correct box.",
	VariantAudio:  "Listen and choose the correct word.",
}

// Speech defaults for audio questions.
const (
	DefaultLang  = "en-US"
	DefaultRate  = 1.0
	DefaultPitch = 1.0
)

// Question is one loaded quiz item. Questions are treated as immutable
// once normalized.
type Question struct {
	// Prompt is the text shown to the learner. Blank questions carry a
	// placeholder marker (see SplitBlank) where the drop target goes.
	Prompt string

	// Options are the selectable or draggable values, in display order.
	Options []string

	// Correct is the single correct value. Unused by sort questions.
	Correct string

	// Key maps each word to its box for sort questions. Empty means the
	// two-option convention applies.
	Key map[string]Side

	// keyClash is the smallest normalized key word that names both boxes.
	keyClash string

	// Explanation is shown after the question is answered.
	Explanation string

	// Image and Alt describe an optional picture shown with the prompt.
	Image string
	Alt   string

	// Speech is the spoken cue of audio questions.
	Speech *SpeechCue
}

// SpeechCue describes what an audio question says aloud.
type SpeechCue struct {
	Text  string
	Lang  string
	Rate  float64
	Pitch float64
}

// Normalize returns a normalized copy of qs for the given variant.
//
// Missing prompts get the variant default, options and the correct value
// are trimmed, and a correct value that is not among the options is
// prepended to them. Audio questions always get a speech cue, falling back
// to the correct value with default language, rate and pitch.
func Normalize(variant Variant, qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, normalizeQuestion(variant, q))
	}
	return out
}

func normalizeQuestion(variant Variant, q Question) Question {
	n := q
	n.Prompt = strings.TrimSpace(q.Prompt)
	if n.Prompt == "" {
		n.Prompt = defaultPrompts[variant]
	}
	n.Explanation = strings.TrimSpace(q.Explanation)
	n.Correct = strings.TrimSpace(q.Correct)

	n.Options = make([]string, 0, len(q.Options)+1)
	for _, opt := range q.Options {
		if opt = strings.TrimSpace(opt); opt != "" {
			n.Options = append(n.Options, opt)
		}
	}

	if len(q.Key) > 0 {
		n.Key = make(map[string]Side, len(q.Key))
		for word, side := range q.Key {
			w := NormalizeText(word)
			prev, seen := n.Key[w]
			if seen && prev != side {
				n.Key[w] = SideUnknown
				if n.keyClash == "" || w < n.keyClash {
					n.keyClash = w
				}
				continue
			}
			n.Key[w] = side
		}
	}

	if variant.Policy() == PolicySingleValue && n.Correct != "" && optionIndex(n.Options, n.Correct) < 0 {
		n.Options = append([]string{n.Correct}, n.Options...)
	}

	if variant == VariantAudio {
		cue := SpeechCue{}
		if q.Speech != nil {
			cue = *q.Speech
		}
		cue.Text = strings.TrimSpace(cue.Text)
		if cue.Text == "" {
			cue.Text = n.Correct
		}
		if cue.Lang = strings.TrimSpace(cue.Lang); cue.Lang == "" {
			cue.Lang = DefaultLang
		}
		if cue.Rate <= 0 {
			cue.Rate = DefaultRate
		}
		if cue.Pitch <= 0 {
			cue.Pitch = DefaultPitch
		}
		n.Speech = &cue
	}
	return n
}

// Repaired reports whether normalization had to prepend the correct value
// of a single-value question to its options.
func Repaired(variant Variant, q Question) bool {
	if variant.Policy() != PolicySingleValue {
		return false
	}
	correct := strings.TrimSpace(q.Correct)
	if correct == "" {
		return false
	}
	for _, opt := range q.Options {
		if NormalizeText(opt) == NormalizeText(correct) {
			return false
		}
	}
	return true
}

// Validate checks a normalized question list.
func Validate(variant Variant, qs []Question) error {
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	for i, q := range qs {
		if len(q.Options) == 0 {
			return &QuestionError{Index: i, Reason: "no options"}
		}
		switch variant.Policy() {
		case PolicySingleValue:
			if q.Correct == "" {
				return &QuestionError{Index: i, Reason: "no correct answer"}
			}
		case PolicyTwoBucket:
			if q.keyClash != "" {
				return &QuestionError{Index: i, Reason: fmt.Sprintf("sort key puts %q in both boxes", q.keyClash)}
			}
			if len(q.Key) == 0 && len(q.Options) != 2 {
				return &QuestionError{Index: i, Reason: fmt.Sprintf("sort question needs a key or exactly two options, has %d options", len(q.Options))}
			}
			if !hasBothSides(q) {
				return &QuestionError{Index: i, Reason: "sort question needs a word for each box"}
			}
		}
	}
	return nil
}

func hasBothSides(q Question) bool {
	var left, right bool
	for _, opt := range q.Options {
		switch ResolveSide(q, opt) {
		case SideLeft:
			left = true
		case SideRight:
			right = true
		}
	}
	return left && right
}

// blankMarker matches the placeholder of a fill-the-blank prompt: a run of
// ellipsis characters, three or more dots, or three or more underscores.
var blankMarker = regexp.MustCompile(`…+|\.{3,}|_{3,}`)

// SplitBlank splits a prompt around its first blank marker.
// ok is false when the prompt has no marker; the drop target then goes
// after the prompt.
func SplitBlank(prompt string) (before, after string, ok bool) {
	loc := blankMarker.FindStringIndex(prompt)
	if loc == nil {
		return prompt, "", false
	}
	return prompt[:loc[0]], prompt[loc[1]:], true
}
