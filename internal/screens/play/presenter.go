package play

import (
	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/speech"
	"github.com/lisquiz/lisquiz/internal/ui/components"
)

func (s *PlayScreen) RenderQuestion(q quiz.Question, index, total int) {
	s.question = q
	s.index = index
	s.total = total
	s.feedback = ""
	s.explanation = ""
	s.options = components.OptionList{}
	s.chips = components.ChipRow{}
	s.targets = nil
	s.onSelect = nil
	s.onDrop = nil
}

func (s *PlayScreen) RenderOptions(options []string, onSelect func(value string)) {
	s.options = components.NewOptionList(options)
	s.onSelect = onSelect
}

func (s *PlayScreen) RenderDropTargets(targets []quiz.DropTarget, chips []string, onDrop func(box quiz.Side, word string)) {
	s.targets = make([]target, 0, len(targets))
	for _, t := range targets {
		s.targets = append(s.targets, target{box: t.Box, label: t.Label})
	}
	s.chips = components.NewChipRow(chips)
	s.onDrop = onDrop
}

func (s *PlayScreen) MarkOptionResult(ref quiz.OptionRef, outcome quiz.Outcome) {
	mark := markFor(outcome)
	if ref.Box != quiz.SideUnknown {
		for i := range s.targets {
			if s.targets[i].box == ref.Box {
				s.targets[i].value = ref.Value
				s.targets[i].mark = mark
			}
		}
		s.chips.Use(ref.Value)
		return
	}

	s.options.Locked = true
	if ref.Index >= 0 {
		s.options.SetMark(ref.Index, mark)
		return
	}
	for i, opt := range s.options.Options {
		if quiz.NormalizeText(opt) == quiz.NormalizeText(ref.Value) {
			s.options.SetMark(i, mark)
		}
	}
}

func markFor(o quiz.Outcome) components.Mark {
	switch o {
	case quiz.OutcomeCorrect, quiz.OutcomePartial:
		return components.MarkCorrect
	case quiz.OutcomeIncorrect:
		return components.MarkIncorrect
	}
	return components.MarkNone
}

func (s *PlayScreen) ShowFeedback(message string, sentiment quiz.Sentiment) {
	s.feedback = message
	s.sentiment = sentiment
}

func (s *PlayScreen) ShowExplanation(text string) {
	s.explanation = text
}

// PlayCelebration starts a rain in the sky band. The celebration that
// follows completion is handed to the completion screen instead.
func (s *PlayScreen) PlayCelebration(c quiz.Celebration) {
	if s.done {
		s.finale = &c
		return
	}
	s.rain = components.NewRain(components.NextRainID(), c.Emoji, c.Count, s.width, skyHeight, nil)
	s.pendingCmd = append(s.pendingCmd, s.rain.Tick())
}

func (s *PlayScreen) UpdateNavigation(nav quiz.Navigation) {
	s.nav = nav
}

func (s *PlayScreen) ShowCompletion(score, total int) {
	s.done = true
	s.score = score
	s.total = total
}

func (s *PlayScreen) ShowNotice(message string) {
	s.notice = message
}

func (s *PlayScreen) Speak(text string, voice quiz.VoiceConfig) error {
	if s.speaker == nil {
		return speech.ErrUnsupported
	}
	if err := s.speaker.Speak(text, speech.Options{
		Lang:  voice.Lang,
		Rate:  voice.Rate,
		Pitch: voice.Pitch,
		Voice: voice.Voice,
	}); err != nil {
		return err
	}
	s.speaking = text
	return nil
}

func (s *PlayScreen) StopSpeech() {
	s.speaking = ""
	if s.speaker != nil {
		s.speaker.Stop()
	}
}
