package quiz

import "errors"

// recorder implements Presenter and keeps everything it was asked to do.
type recorder struct {
	questions    []int
	options      [][]string
	targets      [][]DropTarget
	chips        [][]string
	marks        []mark
	feedback     []string
	sentiments   []Sentiment
	explanations []string
	celebrations []Celebration
	navs         []Navigation
	completions  [][2]int
	notices      []string
	spoken       []string
	voices       []VoiceConfig
	stops        int
	speakErr     error

	onSelect func(string)
	onDrop   func(Side, string)
}

type mark struct {
	ref     OptionRef
	outcome Outcome
}

var _ Presenter = (*recorder)(nil)

func (r *recorder) RenderQuestion(_ Question, index, _ int) {
	r.questions = append(r.questions, index)
}

func (r *recorder) RenderOptions(options []string, onSelect func(string)) {
	r.options = append(r.options, options)
	r.onSelect = onSelect
}

func (r *recorder) RenderDropTargets(targets []DropTarget, chips []string, onDrop func(Side, string)) {
	r.targets = append(r.targets, targets)
	r.chips = append(r.chips, chips)
	r.onDrop = onDrop
}

func (r *recorder) MarkOptionResult(ref OptionRef, outcome Outcome) {
	r.marks = append(r.marks, mark{ref, outcome})
}

func (r *recorder) ShowFeedback(message string, sentiment Sentiment) {
	r.feedback = append(r.feedback, message)
	r.sentiments = append(r.sentiments, sentiment)
}

func (r *recorder) ShowExplanation(text string) {
	r.explanations = append(r.explanations, text)
}

func (r *recorder) PlayCelebration(c Celebration) {
	r.celebrations = append(r.celebrations, c)
}

func (r *recorder) UpdateNavigation(nav Navigation) {
	r.navs = append(r.navs, nav)
}

func (r *recorder) ShowCompletion(score, total int) {
	r.completions = append(r.completions, [2]int{score, total})
}

func (r *recorder) ShowNotice(message string) {
	r.notices = append(r.notices, message)
}

func (r *recorder) Speak(text string, voice VoiceConfig) error {
	if r.speakErr != nil {
		return r.speakErr
	}
	r.spoken = append(r.spoken, text)
	r.voices = append(r.voices, voice)
	return nil
}

func (r *recorder) StopSpeech() { r.stops++ }

func (r *recorder) lastFeedback() string {
	if len(r.feedback) == 0 {
		return ""
	}
	return r.feedback[len(r.feedback)-1]
}

func (r *recorder) lastNav() Navigation {
	if len(r.navs) == 0 {
		return Navigation{}
	}
	return r.navs[len(r.navs)-1]
}

// listener records session events.
type listener struct {
	answers   []AnswerEvent
	completed []Result
}

func (l *listener) OnAnswered(e AnswerEvent) { l.answers = append(l.answers, e) }
func (l *listener) OnCompleted(r Result)     { l.completed = append(l.completed, r) }

var errNoSpeech = errors.New("no speech")

// noShuffle keeps chips in option order.
func noShuffle([]string) {}
