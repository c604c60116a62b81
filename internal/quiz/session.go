package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Config configures a Session.
type Config struct {
	Variant Variant

	// Boxes labels the two drop targets of sort questions.
	Boxes BoxLabels

	// Voice is the preferred voice name for audio questions.
	Voice string

	// Shuffle reorders the chips of sort questions in place.
	// Nil uses a random permutation.
	Shuffle func([]string)

	// Listener receives answer and completion events. Optional.
	Listener Listener
}

// BoxLabels names the left and right boxes of sort questions.
type BoxLabels struct {
	Left  string
	Right string
}

// Session is one run through a question list. It is not safe for
// concurrent use; callers that share a session must serialize access.
type Session struct {
	cfg       Config
	questions []Question
	presenter Presenter

	state    State
	position int
	answered bool
	locked   bool
	score    int

	// scored[i] is set once question i has had its scoring attempt.
	scored []bool

	chips  []string
	placed map[Side]string
}

// NewSession normalizes and validates qs and returns a session positioned
// on the first question. When the list cannot be played the presenter gets
// a single notice and the error is returned.
func NewSession(cfg Config, qs []Question, p Presenter) (*Session, error) {
	if p == nil {
		return nil, errors.New("quiz: nil presenter")
	}
	if _, err := ParseVariant(string(cfg.Variant)); err != nil {
		p.ShowNotice(err.Error())
		return nil, err
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantChoice
	}
	if cfg.Boxes.Left == "" {
		cfg.Boxes.Left = "Left"
	}
	if cfg.Boxes.Right == "" {
		cfg.Boxes.Right = "Right"
	}
	if cfg.Shuffle == nil {
		cfg.Shuffle = func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		}
	}

	normalized := Normalize(cfg.Variant, qs)
	if err := Validate(cfg.Variant, normalized); err != nil {
		p.ShowNotice(noticeFor(err))
		return nil, err
	}

	return &Session{
		cfg:       cfg,
		questions: normalized,
		presenter: p,
		state:     StateInProgress,
		scored:    make([]bool, len(normalized)),
		placed:    make(map[Side]string, 2),
	}, nil
}

func noticeFor(err error) string {
	if errors.Is(err, ErrNoQuestions) {
		return MsgNoQuestions
	}
	var qe *QuestionError
	if errors.As(err, &qe) {
		return fmt.Sprintf("This quiz cannot be played: question %d has %s.", qe.Index+1, qe.Reason)
	}
	return err.Error()
}

// Start renders the first question.
func (s *Session) Start() {
	s.LoadQuestion(0)
}

// LoadQuestion shows question i. Out-of-range indices wrap around the
// list. The answer state of the question is reset; its scoring is not.
func (s *Session) LoadQuestion(i int) {
	n := len(s.questions)
	if n == 0 || s.state == StateCompleted {
		return
	}
	s.position = ((i % n) + n) % n
	s.answered = false
	s.locked = false
	clear(s.placed)
	s.presenter.StopSpeech()

	q := s.questions[s.position]
	s.presenter.RenderQuestion(q, s.position, n)

	switch s.cfg.Variant {
	case VariantBlank:
		s.chips = append(s.chips[:0], q.Options...)
		s.presenter.RenderDropTargets(
			[]DropTarget{{Box: SideBlank}},
			s.Chips(),
			func(box Side, word string) { s.Place(box, word) },
		)
	case VariantSort:
		s.chips = append(s.chips[:0], q.Options...)
		s.cfg.Shuffle(s.chips)
		s.presenter.RenderDropTargets(
			[]DropTarget{{Box: SideLeft, Label: s.cfg.Boxes.Left}, {Box: SideRight, Label: s.cfg.Boxes.Right}},
			s.Chips(),
			func(box Side, word string) { s.Place(box, word) },
		)
	default:
		s.chips = s.chips[:0]
		s.presenter.RenderOptions(append([]string(nil), q.Options...), func(value string) { s.Submit(value) })
	}
	s.presenter.UpdateNavigation(s.navigation())
}

// Submit answers a single-value question. Submissions after the question
// was answered, or on sort questions, are ignored.
func (s *Session) Submit(value string) Outcome {
	if s.state == StateCompleted || s.answered || s.cfg.Variant.Policy() != PolicySingleValue {
		return OutcomeIgnored
	}
	if NormalizeText(value) == "" {
		return OutcomeIgnored
	}

	q := s.questions[s.position]
	correct := IsCorrect(value, q.Correct)
	s.answered = true
	counted := s.finalize(correct)

	box := SideUnknown
	if s.cfg.Variant == VariantBlank {
		box = SideBlank
	}
	outcome := OutcomeIncorrect
	if correct {
		outcome = OutcomeCorrect
	}
	s.presenter.MarkOptionResult(OptionRef{Index: optionIndex(q.Options, value), Value: value, Box: box}, outcome)
	if !correct {
		s.presenter.MarkOptionResult(OptionRef{Index: optionIndex(q.Options, q.Correct), Value: q.Correct}, OutcomeCorrect)
	}
	s.conclude(q, correct)
	s.notify(AnswerEvent{
		Position: s.position,
		Prompt:   q.Prompt,
		Value:    value,
		Box:      box,
		Outcome:  outcome,
		Final:    true,
		Counted:  counted,
	})
	return outcome
}

// Place drops word into box. Blank questions accept SideBlank and behave
// like Submit. Sort questions end on the first wrong placement and score
// once both boxes hold a correct word.
func (s *Session) Place(box Side, word string) Outcome {
	if s.cfg.Variant == VariantBlank {
		if box != SideBlank {
			return OutcomeIgnored
		}
		return s.Submit(word)
	}
	if s.cfg.Variant != VariantSort || s.state == StateCompleted || s.answered || s.locked {
		return OutcomeIgnored
	}
	if box != SideLeft && box != SideRight {
		return OutcomeIgnored
	}
	if NormalizeText(word) == "" || s.placed[box] != "" || s.isPlaced(word) {
		return OutcomeIgnored
	}

	q := s.questions[s.position]
	ref := OptionRef{Index: optionIndex(q.Options, word), Value: word, Box: box}
	event := AnswerEvent{Position: s.position, Prompt: q.Prompt, Value: word, Box: box}

	if ResolveSide(q, word) != box {
		s.locked = true
		s.answered = true
		event.Counted = s.finalize(false)
		event.Outcome = OutcomeIncorrect
		event.Final = true
		s.presenter.MarkOptionResult(ref, OutcomeIncorrect)
		s.conclude(q, false)
		s.notify(event)
		return OutcomeIncorrect
	}

	s.placed[box] = word
	s.presenter.MarkOptionResult(ref, OutcomeCorrect)
	if s.placed[SideLeft] == "" || s.placed[SideRight] == "" {
		msg, sentiment := s.cfg.Variant.Feedback(true)
		s.presenter.ShowFeedback(msg, sentiment)
		event.Outcome = OutcomePartial
		s.notify(event)
		return OutcomePartial
	}

	s.answered = true
	event.Counted = s.finalize(true)
	event.Outcome = OutcomeCorrect
	event.Final = true
	s.conclude(q, true)
	s.notify(event)
	return OutcomeCorrect
}

// Advance moves to the next question, or completes the session from the
// last one. It refuses to move before the current question is answered.
func (s *Session) Advance() bool {
	if s.state == StateCompleted {
		return false
	}
	if !s.answered {
		s.presenter.ShowFeedback(MsgAnswerFirst, SentimentNegative)
		return false
	}
	if s.position+1 < len(s.questions) {
		s.LoadQuestion(s.position + 1)
		return true
	}

	s.state = StateCompleted
	s.presenter.StopSpeech()
	s.presenter.ShowCompletion(s.score, len(s.questions))
	s.presenter.PlayCelebration(CompletionCelebration)
	if s.cfg.Listener != nil {
		s.cfg.Listener.OnCompleted(s.Result())
	}
	return true
}

// Retreat moves to the previous question. It is a no-op on the first.
func (s *Session) Retreat() bool {
	if s.state == StateCompleted || s.position == 0 {
		return false
	}
	s.LoadQuestion(s.position - 1)
	return true
}

// Play speaks the cue of the current audio question. Speech problems are
// reported as feedback and never stop the quiz.
func (s *Session) Play() {
	if s.state == StateCompleted || s.cfg.Variant != VariantAudio {
		return
	}
	cue := s.questions[s.position].Speech
	if cue == nil || cue.Text == "" {
		s.presenter.ShowFeedback(MsgNothingToSay, SentimentNegative)
		return
	}
	voice := VoiceConfig{Lang: cue.Lang, Rate: cue.Rate, Pitch: cue.Pitch, Voice: s.cfg.Voice}
	if err := s.presenter.Speak(cue.Text, voice); err != nil {
		s.presenter.ShowFeedback(MsgSpeechUnsupported, SentimentNegative)
	}
}

// finalize records the scoring attempt of the current question and
// reports whether this attempt was the counted one. Only the first
// completed attempt per question counts.
func (s *Session) finalize(correct bool) bool {
	if s.scored[s.position] {
		return false
	}
	s.scored[s.position] = true
	if correct {
		s.score++
	}
	return true
}

// conclude shows the end-of-question feedback.
func (s *Session) conclude(q Question, correct bool) {
	msg, sentiment := s.cfg.Variant.Feedback(correct)
	s.presenter.ShowFeedback(msg, sentiment)
	if q.Explanation != "" {
		s.presenter.ShowExplanation(q.Explanation)
	}
	s.presenter.PlayCelebration(s.cfg.Variant.Celebration(correct))
	s.presenter.UpdateNavigation(s.navigation())
}

func (s *Session) notify(e AnswerEvent) {
	if s.cfg.Listener != nil {
		s.cfg.Listener.OnAnswered(e)
	}
}

func (s *Session) navigation() Navigation {
	return Navigation{
		Back: s.position > 0,
		Next: s.answered,
		Last: s.position == len(s.questions)-1,
	}
}

func (s *Session) isPlaced(word string) bool {
	w := NormalizeText(word)
	for _, p := range s.placed {
		if NormalizeText(p) == w {
			return true
		}
	}
	return false
}

// Variant returns the session variant.
func (s *Session) Variant() Variant { return s.cfg.Variant }

// State returns the state machine state.
func (s *Session) State() State { return s.state }

// Position returns the zero-based index of the current question.
func (s *Session) Position() int { return s.position }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the number of questions answered correctly so far.
func (s *Session) Score() int { return s.score }

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.answered }

// Locked reports whether a wrong placement froze the current sort question.
func (s *Session) Locked() bool { return s.locked }

// Current returns the current question.
func (s *Session) Current() Question { return s.questions[s.position] }

// Result returns the score so far against the question count.
func (s *Session) Result() Result {
	return Result{Score: s.score, Total: len(s.questions)}
}

// Chips returns the draggable words of the current question in display
// order. Only blank and sort questions have chips.
func (s *Session) Chips() []string {
	return append([]string(nil), s.chips...)
}

// Placement returns the word placed into box on the current sort question.
func (s *Session) Placement(box Side) string {
	return s.placed[box]
}
