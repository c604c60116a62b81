package quiz

import "fmt"

// Variant identifies one of the quiz layouts a bank can use.
type Variant string

const (
	VariantChoice Variant = "choice" // Multiple choice, one click per question
	VariantBlank  Variant = "blank"  // Drag one word into the blank of the prompt
	VariantSort   Variant = "sort"   // Drag words into a left and a right box
	VariantAudio  Variant = "audio"  // Listen to a spoken word and pick it
)

// AllVariants lists every supported variant in display order.
var AllVariants = []Variant{VariantChoice, VariantBlank, VariantSort, VariantAudio}

// ParseVariant converts a bank value into a Variant.
// Empty input selects VariantChoice.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case "":
		return VariantChoice, nil
	case VariantChoice, VariantBlank, VariantSort, VariantAudio:
		return v, nil
	}
	return "", fmt.Errorf("unknown quiz variant %q", s)
}

// Label returns a human-readable name for the variant.
func (v Variant) Label() string {
	switch v {
	case VariantBlank:
		return "Fill the Blank"
	case VariantSort:
		return "Sort into Boxes"
	case VariantAudio:
		return "Listen & Choose"
	default:
		return "Multiple Choice"
	}
}

// Policy selects the answer resolver strategy for the variant.
func (v Variant) Policy() Policy {
	if v == VariantSort {
		return PolicyTwoBucket
	}
	return PolicySingleValue
}

// Policy is the answer resolver strategy.
type Policy int

const (
	PolicySingleValue Policy = iota // One submitted value against one correct value
	PolicyTwoBucket                 // Words classified into a left and a right box
)

// Side is a drop destination.
type Side int

const (
	SideUnknown Side = iota
	SideLeft
	SideRight
	SideBlank // The single drop target inside a fill-the-blank prompt
)

// ParseSide converts "left"/"right"/"blank" (any case) into a Side.
func ParseSide(s string) Side {
	switch NormalizeText(s) {
	case "left":
		return SideLeft
	case "right":
		return SideRight
	case "blank":
		return SideBlank
	}
	return SideUnknown
}

// String returns the side name used in bank files and the HTTP API.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBlank:
		return "blank"
	}
	return "unknown"
}

// Outcome is the result of one submission.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // Submission rejected by a precondition; nothing changed
	OutcomeCorrect                  // Question answered correctly (or a correct box placement that finished it)
	OutcomeIncorrect                // Question answered incorrectly
	OutcomePartial                  // Correct placement, the other box is still empty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomePartial:
		return "partial"
	}
	return "ignored"
}

// Sentiment colors feedback and celebrations.
type Sentiment int

const (
	SentimentPositive Sentiment = iota
	SentimentNegative
)

func (s Sentiment) String() string {
	if s == SentimentNegative {
		return "negative"
	}
	return "positive"
}

// State is the session state machine state.
type State int

const (
	StateInProgress State = iota
	StateCompleted
)

func (s State) String() string {
	if s == StateCompleted {
		return "completed"
	}
	return "in_progress"
}
