package api

import (
	"github.com/lisquiz/lisquiz/internal/quiz"
)

// Frame is everything a browser needs to draw the current state of a
// session. Feedback, Celebration, Speech and Outcome describe the last
// action only and are cleared before the next one.
type Frame struct {
	SessionID string        `json:"session_id,omitempty"`
	Bank      BankSummary   `json:"bank"`
	State     string        `json:"state"`
	Position  int           `json:"position"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Question  *QuestionView `json:"question,omitempty"`
	Options   []OptionView  `json:"options,omitempty"`
	Targets   []TargetView  `json:"targets,omitempty"`
	Chips     []OptionView  `json:"chips,omitempty"`

	Explanation string          `json:"explanation,omitempty"`
	Navigation  NavigationView  `json:"navigation"`
	Completion  *CompletionView `json:"completion,omitempty"`
	Notice      string          `json:"notice,omitempty"`

	Outcome     string           `json:"outcome,omitempty"`
	Feedback    *FeedbackView    `json:"feedback,omitempty"`
	Celebration *CelebrationView `json:"celebration,omitempty"`
	Speech      *SpeechView      `json:"speech,omitempty"`
}

// BankSummary identifies a bank in listings and frames.
type BankSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Variant   string `json:"variant"`
	Label     string `json:"label"`
	Questions int    `json:"questions"`
}

// QuestionView is the prompt of the current question. Blank prompts are
// split around the drop target.
type QuestionView struct {
	Prompt string `json:"prompt"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
	Image  string `json:"image,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Audio  bool   `json:"audio,omitempty"`
}

// OptionView is a clickable option or a draggable chip.
type OptionView struct {
	Value string `json:"value"`
	Mark  string `json:"mark,omitempty"`
	Used  bool   `json:"used,omitempty"`
}

// TargetView is a drop target and what was dropped into it.
type TargetView struct {
	Box   string `json:"box"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
	Mark  string `json:"mark,omitempty"`
}

type NavigationView struct {
	Back bool `json:"back"`
	Next bool `json:"next"`
	Last bool `json:"last"`
}

type CompletionView struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type FeedbackView struct {
	Message   string `json:"message"`
	Sentiment string `json:"sentiment"`
}

type CelebrationView struct {
	Emoji     string `json:"emoji"`
	Count     int    `json:"count"`
	Sentiment string `json:"sentiment"`
}

// SpeechView asks the browser to speak Text. Stop cancels speech that is
// already playing.
type SpeechView struct {
	Text  string  `json:"text,omitempty"`
	Lang  string  `json:"lang,omitempty"`
	Rate  float64 `json:"rate,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
	Voice string  `json:"voice,omitempty"`
	Stop  bool    `json:"stop,omitempty"`
}

// framePresenter implements quiz.Presenter by recording into a Frame.
// Callbacks are not kept: handlers call the session directly.
type framePresenter struct {
	frame Frame
}

var _ quiz.Presenter = (*framePresenter)(nil)

// clearEffects drops the one-shot parts of the frame before an action.
func (p *framePresenter) clearEffects() {
	p.frame.Outcome = ""
	p.frame.Feedback = nil
	p.frame.Celebration = nil
	p.frame.Speech = nil
}

func (p *framePresenter) RenderQuestion(q quiz.Question, index, total int) {
	p.frame.Position = index
	p.frame.Total = total
	p.frame.Options = nil
	p.frame.Targets = nil
	p.frame.Chips = nil
	p.frame.Explanation = ""
	p.frame.Feedback = nil

	view := &QuestionView{Prompt: q.Prompt, Image: q.Image, Alt: q.Alt, Audio: q.Speech != nil}
	if before, after, ok := quiz.SplitBlank(q.Prompt); ok {
		view.Before, view.After = before, after
	}
	p.frame.Question = view
}

func (p *framePresenter) RenderOptions(options []string, _ func(string)) {
	p.frame.Options = make([]OptionView, 0, len(options))
	for _, o := range options {
		p.frame.Options = append(p.frame.Options, OptionView{Value: o})
	}
}

func (p *framePresenter) RenderDropTargets(targets []quiz.DropTarget, chips []string, _ func(quiz.Side, string)) {
	p.frame.Targets = make([]TargetView, 0, len(targets))
	for _, t := range targets {
		p.frame.Targets = append(p.frame.Targets, TargetView{Box: t.Box.String(), Label: t.Label})
	}
	p.frame.Chips = make([]OptionView, 0, len(chips))
	for _, c := range chips {
		p.frame.Chips = append(p.frame.Chips, OptionView{Value: c})
	}
}

func (p *framePresenter) MarkOptionResult(ref quiz.OptionRef, outcome quiz.Outcome) {
	mark := outcome.String()
	if ref.Box != quiz.SideUnknown {
		for i := range p.frame.Targets {
			if p.frame.Targets[i].Box == ref.Box.String() {
				p.frame.Targets[i].Value = ref.Value
				p.frame.Targets[i].Mark = mark
			}
		}
		markValue(p.frame.Chips, ref.Value, "", true)
		return
	}
	if ref.Index >= 0 && ref.Index < len(p.frame.Options) {
		p.frame.Options[ref.Index].Mark = mark
		return
	}
	if !markValue(p.frame.Options, ref.Value, mark, false) {
		markValue(p.frame.Chips, ref.Value, mark, false)
	}
}

// markValue marks the first entry matching value and reports whether one
// was found. used is sticky.
func markValue(views []OptionView, value, mark string, used bool) bool {
	want := quiz.NormalizeText(value)
	for i := range views {
		if quiz.NormalizeText(views[i].Value) == want {
			if mark != "" {
				views[i].Mark = mark
			}
			views[i].Used = views[i].Used || used
			return true
		}
	}
	return false
}

func (p *framePresenter) ShowFeedback(message string, sentiment quiz.Sentiment) {
	p.frame.Feedback = &FeedbackView{Message: message, Sentiment: sentiment.String()}
}

func (p *framePresenter) ShowExplanation(text string) {
	p.frame.Explanation = text
}

func (p *framePresenter) PlayCelebration(c quiz.Celebration) {
	p.frame.Celebration = &CelebrationView{Emoji: c.Emoji, Count: c.Count, Sentiment: c.Sentiment.String()}
}

func (p *framePresenter) UpdateNavigation(nav quiz.Navigation) {
	p.frame.Navigation = NavigationView{Back: nav.Back, Next: nav.Next, Last: nav.Last}
}

func (p *framePresenter) ShowCompletion(score, total int) {
	p.frame.Completion = &CompletionView{Score: score, Total: total}
	p.frame.Question = nil
	p.frame.Options = nil
	p.frame.Targets = nil
	p.frame.Chips = nil
	p.frame.Explanation = ""
	p.frame.Navigation = NavigationView{}
}

func (p *framePresenter) ShowNotice(message string) {
	p.frame.Notice = message
}

// Speak never fails here; the browser does the speaking.
func (p *framePresenter) Speak(text string, voice quiz.VoiceConfig) error {
	p.frame.Speech = &SpeechView{
		Text:  text,
		Lang:  voice.Lang,
		Rate:  voice.Rate,
		Pitch: voice.Pitch,
		Voice: voice.Voice,
	}
	return nil
}

func (p *framePresenter) StopSpeech() {
	if p.frame.Speech == nil || p.frame.Speech.Text == "" {
		p.frame.Speech = &SpeechView{Stop: true}
	}
}
