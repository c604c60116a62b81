package quiz

// Presenter draws a session and plays its effects. The session calls it
// synchronously from whichever goroutine drives the session; effects that
// take time (celebrations, speech) must not block.
type Presenter interface {
	// RenderQuestion draws the prompt of the question at index.
	RenderQuestion(q Question, index, total int)

	// RenderOptions draws clickable options. onSelect submits a value.
	RenderOptions(options []string, onSelect func(value string))

	// RenderDropTargets draws the drop targets and the draggable chips.
	// onDrop places a chip into a target.
	RenderDropTargets(targets []DropTarget, chips []string, onDrop func(box Side, word string))

	// MarkOptionResult highlights an option or a filled target.
	MarkOptionResult(ref OptionRef, outcome Outcome)

	// ShowFeedback shows a transient message.
	ShowFeedback(message string, sentiment Sentiment)

	// ShowExplanation shows the solution text of an answered question.
	ShowExplanation(text string)

	// PlayCelebration starts a cosmetic effect.
	PlayCelebration(c Celebration)

	// UpdateNavigation shows or hides the back and next actions.
	UpdateNavigation(nav Navigation)

	// ShowCompletion draws the terminal screen.
	ShowCompletion(score, total int)

	// ShowNotice reports a condition that prevents the quiz from starting.
	ShowNotice(message string)

	// Speak requests speech of text. It returns an error only when speech
	// cannot even be attempted; playback itself is best-effort.
	Speak(text string, voice VoiceConfig) error

	// StopSpeech cancels any speech in flight.
	StopSpeech()
}

// DropTarget is a place chips can be dropped into.
type DropTarget struct {
	Box   Side
	Label string
}

// OptionRef identifies a rendered option or filled drop target.
type OptionRef struct {
	// Index is the position of the value in the question options, or -1.
	Index int
	Value string
	// Box is the target the value was dropped into; SideUnknown for clicks.
	Box Side
}

// Navigation tells the presenter which navigation actions to offer.
type Navigation struct {
	Back bool
	Next bool
	// Last is true on the final question, where next means finish.
	Last bool
}

// VoiceConfig describes how text should be spoken.
type VoiceConfig struct {
	Lang  string
	Rate  float64
	Pitch float64
	// Voice is a preferred voice name; empty selects automatically.
	Voice string
}

// Celebration is a cosmetic emoji rain.
type Celebration struct {
	Sentiment Sentiment
	Emoji     string
	Count     int
}

// Listener observes answers and completion. It is optional.
type Listener interface {
	OnAnswered(e AnswerEvent)
	OnCompleted(r Result)
}

// AnswerEvent describes one accepted submission.
type AnswerEvent struct {
	Position int
	Prompt   string
	Value    string
	Box      Side
	Outcome  Outcome
	// Final is true when the submission ended the question.
	Final bool
	// Counted is true when this attempt was the one scored for the question.
	Counted bool
}

// Result is the final score of a session.
type Result struct {
	Score int
	Total int
}

// Ratio returns Score/Total, or 0 for an empty result.
func (r Result) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}
