// Package console plays a quiz over a line-oriented terminal: questions are
// printed and answers are read one line at a time.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/screens/completion"
	"github.com/lisquiz/lisquiz/internal/speech"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// Frontend is the frontend name recorded in quiz history.
const Frontend = "console"

// maxRainEmoji caps the emoji printed for a celebration.
const maxRainEmoji = 8

// Speaker speaks audio cues. *speech.Speaker satisfies it.
type Speaker interface {
	Speak(text string, opts speech.Options) error
	Stop()
}

// Runner is a quiz.Presenter that prints to out and reads answers from in.
type Runner struct {
	in      *bufio.Scanner
	out     io.Writer
	speaker Speaker
	prompt  string

	variant  quiz.Variant
	options  []string
	chips    []string
	onSelect func(string)
	onDrop   func(quiz.Side, string)
	nav      quiz.Navigation

	done  bool
	score int
	total int
}

var _ quiz.Presenter = (*Runner)(nil)

// New creates a Runner. speaker may be nil.
func New(in io.Reader, out io.Writer, speaker Speaker) *Runner {
	return &Runner{
		in:      bufio.NewScanner(in),
		out:     out,
		speaker: speaker,
		prompt:  "> ",
	}
}

// SetPrompt changes the input prompt, "> " by default. An empty prompt
// suits piped input.
func (r *Runner) SetPrompt(p string) { r.prompt = p }

// Run starts s and feeds it input lines until the quiz is completed, the
// input ends, the player quits, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s *quiz.Session) error {
	r.variant = s.Variant()
	s.Start()
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, r.prompt)
		if !r.in.Scan() {
			if r.prompt != "" {
				fmt.Fprintln(r.out)
			}
			return r.in.Err()
		}
		if quit := r.handle(s, strings.TrimSpace(r.in.Text())); quit {
			r.StopSpeech()
			return nil
		}
	}
	return nil
}

// Done reports whether the quiz was completed.
func (r *Runner) Done() bool { return r.done }

// Score returns the final score once the quiz is completed.
func (r *Runner) Score() (score, total int) { return r.score, r.total }

// handle applies one input line and reports whether the player quit.
// A line naming an answer on screen is an answer, even when it spells a
// command letter.
func (r *Runner) handle(s *quiz.Session, line string) bool {
	if !r.isAnswer(line) {
		switch strings.ToLower(line) {
		case "q", "quit":
			return true
		case "", "n", "next":
			s.Advance()
			return false
		case "b", "back":
			s.Retreat()
			return false
		case "p", "play":
			s.Play()
			return false
		case "?", "h", "help":
			r.printHelp()
			return false
		}
	}

	switch r.variant {
	case quiz.VariantBlank:
		if r.onDrop != nil {
			r.onDrop(quiz.SideBlank, pick(r.chips, line))
		}
	case quiz.VariantSort:
		box, word, ok := parseDrop(line)
		if !ok {
			r.println(theme.Hint, "Type l or r and a word, e.g. \"l 2\".")
			return false
		}
		if r.onDrop != nil {
			r.onDrop(box, pick(r.chips, word))
		}
	default:
		if r.onSelect != nil {
			r.onSelect(pick(r.options, line))
		}
	}
	return false
}

// isAnswer reports whether line is one of the words currently offered.
// Sort drops always carry a box letter, so they never collide with commands.
func (r *Runner) isAnswer(line string) bool {
	var list []string
	switch r.variant {
	case quiz.VariantSort:
		return false
	case quiz.VariantBlank:
		list = r.chips
	default:
		list = r.options
	}
	w := quiz.NormalizeText(line)
	if w == "" {
		return false
	}
	for _, v := range list {
		if quiz.NormalizeText(v) == w {
			return true
		}
	}
	return false
}

// pick resolves a 1-based number to an entry of list; anything else is
// taken as the word itself.
func pick(list []string, in string) string {
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(list) {
		return list[n-1]
	}
	return in
}

// parseDrop reads "l word" or "r word".
func parseDrop(line string) (quiz.Side, string, bool) {
	head, rest, ok := strings.Cut(line, " ")
	if !ok {
		return quiz.SideUnknown, "", false
	}
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(head) {
	case "l", "left":
		return quiz.SideLeft, rest, rest != ""
	case "r", "right":
		return quiz.SideRight, rest, rest != ""
	}
	return quiz.SideUnknown, "", false
}

func (r *Runner) printHelp() {
	switch r.variant {
	case quiz.VariantBlank:
		r.println(theme.Hint, "Type a word or its number to fill the blank.")
	case quiz.VariantSort:
		r.println(theme.Hint, "Type l or r and a word or its number to drop it into a box.")
	case quiz.VariantAudio:
		r.println(theme.Hint, "Type p to listen, then a word or its number.")
	default:
		r.println(theme.Hint, "Type an answer or its number.")
	}
	keys := []string{"Enter or n: next"}
	if r.nav.Last {
		keys[0] = "Enter or n: finish"
	}
	if r.nav.Back {
		keys = append(keys, "b: back")
	}
	r.println(theme.Hint, strings.Join(append(keys, "q: quit"), " · "))
}

func (r *Runner) println(style lipgloss.Style, text string) {
	lipgloss.Fprintln(r.out, style.Render(text))
}

func (r *Runner) RenderQuestion(q quiz.Question, index, total int) {
	r.options, r.chips = nil, nil
	r.onSelect, r.onDrop = nil, nil

	fmt.Fprintln(r.out)
	r.println(theme.Subtitle, fmt.Sprintf("── Question %d/%d ──", index+1, total))
	prompt := q.Prompt
	if r.variant == quiz.VariantBlank {
		if before, after, ok := quiz.SplitBlank(prompt); ok {
			prompt = before + "_____" + after
		}
	}
	if prompt != "" {
		fmt.Fprintln(r.out, prompt)
	}
	if q.Image != "" {
		alt := q.Alt
		if alt == "" {
			alt = q.Image
		}
		r.println(theme.Hint, "[picture: "+alt+"]")
	}
	if r.variant == quiz.VariantAudio {
		r.println(theme.Hint, "Type p to listen.")
	}
}

func (r *Runner) RenderOptions(options []string, onSelect func(value string)) {
	r.options = options
	r.onSelect = onSelect
	for i, o := range options {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, o)
	}
}

func (r *Runner) RenderDropTargets(targets []quiz.DropTarget, chips []string, onDrop func(box quiz.Side, word string)) {
	r.chips = chips
	r.onDrop = onDrop
	var labels []string
	for _, t := range targets {
		switch t.Box {
		case quiz.SideLeft:
			labels = append(labels, "l: "+t.Label)
		case quiz.SideRight:
			labels = append(labels, "r: "+t.Label)
		}
	}
	if len(labels) > 0 {
		r.println(theme.Hint, "Boxes  "+strings.Join(labels, "   "))
	}
	for i, c := range chips {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, c)
	}
}

func (r *Runner) MarkOptionResult(ref quiz.OptionRef, outcome quiz.Outcome) {
	where := ""
	switch ref.Box {
	case quiz.SideLeft:
		where = " (left)"
	case quiz.SideRight:
		where = " (right)"
	}
	switch outcome {
	case quiz.OutcomeCorrect, quiz.OutcomePartial:
		r.println(theme.Correct, "  ✓ "+ref.Value+where)
	case quiz.OutcomeIncorrect:
		r.println(theme.Incorrect, "  ✗ "+ref.Value+where)
	}
}

func (r *Runner) ShowFeedback(message string, sentiment quiz.Sentiment) {
	if sentiment == quiz.SentimentNegative {
		r.println(theme.Incorrect, message)
		return
	}
	r.println(theme.Correct, message)
}

func (r *Runner) ShowExplanation(text string) {
	fmt.Fprintln(r.out, "Solution: "+text)
}

func (r *Runner) PlayCelebration(c quiz.Celebration) {
	fmt.Fprintln(r.out, strings.Repeat(c.Emoji, min(c.Count, maxRainEmoji)))
}

func (r *Runner) UpdateNavigation(nav quiz.Navigation) {
	r.nav = nav
}

func (r *Runner) ShowCompletion(score, total int) {
	r.done = true
	r.score, r.total = score, total
	fmt.Fprintln(r.out)
	r.println(theme.Title, "Quiz Completed!")
	fmt.Fprintf(r.out, "Your score: %d / %d  %s\n", score, total, completion.Stars(score, total))
}

func (r *Runner) ShowNotice(message string) {
	r.println(theme.Incorrect, message)
}

func (r *Runner) Speak(text string, voice quiz.VoiceConfig) error {
	if r.speaker == nil {
		return speech.ErrUnsupported
	}
	if err := r.speaker.Speak(text, speech.Options{
		Lang:  voice.Lang,
		Rate:  voice.Rate,
		Pitch: voice.Pitch,
		Voice: voice.Voice,
	}); err != nil {
		return err
	}
	r.println(theme.Hint, "🔊 ...")
	return nil
}

func (r *Runner) StopSpeech() {
	if r.speaker != nil {
		r.speaker.Stop()
	}
}
