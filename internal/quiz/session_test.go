package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, variant Variant, qs []Question) (*Session, *recorder, *listener) {
	t.Helper()
	r := &recorder{}
	l := &listener{}
	s, err := NewSession(Config{Variant: variant, Shuffle: noShuffle, Listener: l}, qs, r)
	require.NoError(t, err)
	s.Start()
	return s, r, l
}

func choiceQuestions() []Question {
	return []Question{
		{Prompt: "Which animal barks?", Options: []string{"cat", "dog"}, Correct: "dog", Explanation: "Dogs bark."},
		{Prompt: "Which is a fruit?", Options: []string{"apple", "chair"}, Correct: "apple"},
		{Prompt: "Which is blue?", Options: []string{"sky", "grass"}, Correct: "sky"},
	}
}

func sortQuestion() Question {
	return Question{
		Prompt:      "City or animal?",
		Options:     []string{"Paris", "cat"},
		Key:         map[string]Side{"Paris": SideLeft, "cat": SideRight},
		Explanation: "Paris is a city.",
	}
}

func TestNewSession_EmptyListReportsNoticeOnce(t *testing.T) {
	r := &recorder{}
	s, err := NewSession(Config{Variant: VariantChoice}, nil, r)

	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrNoQuestions))
	assert.Equal(t, []string{MsgNoQuestions}, r.notices)
	assert.Empty(t, r.questions)
}

func TestNewSession_MalformedQuestion(t *testing.T) {
	r := &recorder{}
	_, err := NewSession(Config{Variant: VariantChoice}, []Question{{Prompt: "?"}}, r)

	var qe *QuestionError
	require.True(t, errors.As(err, &qe))
	assert.Len(t, r.notices, 1)
}

func TestNewSession_UnknownVariant(t *testing.T) {
	r := &recorder{}
	_, err := NewSession(Config{Variant: "crossword"}, choiceQuestions(), r)
	assert.Error(t, err)
	assert.Len(t, r.notices, 1)
}

func TestSession_InitialState(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	assert.Equal(t, StateInProgress, s.State())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 0, s.Score())
	assert.False(t, s.Answered())
	assert.Equal(t, []int{0}, r.questions)
	assert.Equal(t, Navigation{Back: false, Next: false, Last: false}, r.lastNav())
}

func TestSession_CorrectExample(t *testing.T) {
	s, r, l := newTestSession(t, VariantChoice, []Question{{Options: []string{"cat", "dog"}, Correct: "dog"}})

	assert.Equal(t, OutcomeCorrect, s.Submit("DOG "))
	assert.Equal(t, 1, s.Score())
	assert.True(t, s.Answered())
	assert.Equal(t, MsgPraise, r.lastFeedback())
	assert.True(t, r.lastNav().Next)

	assert.True(t, s.Advance())
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, [][2]int{{1, 1}}, r.completions)
	assert.Equal(t, []Result{{Score: 1, Total: 1}}, l.completed)
}

func TestSession_IncorrectRevealsCorrect(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	assert.Equal(t, OutcomeIncorrect, s.Submit("cat"))
	assert.Equal(t, 0, s.Score())
	assert.True(t, s.Answered())
	require.Len(t, r.marks, 2)
	assert.Equal(t, mark{OptionRef{Index: 0, Value: "cat"}, OutcomeIncorrect}, r.marks[0])
	assert.Equal(t, mark{OptionRef{Index: 1, Value: "dog"}, OutcomeCorrect}, r.marks[1])
	assert.Equal(t, MsgTryAgain, r.lastFeedback())
	assert.Equal(t, []string{"Dogs bark."}, r.explanations)
	require.Len(t, r.celebrations, 1)
	assert.Equal(t, SentimentNegative, r.celebrations[0].Sentiment)
}

func TestSession_DoubleSubmitIsIgnored(t *testing.T) {
	s, r, l := newTestSession(t, VariantChoice, choiceQuestions())

	require.Equal(t, OutcomeCorrect, s.Submit("dog"))
	marks := len(r.marks)

	assert.Equal(t, OutcomeIgnored, s.Submit("dog"))
	assert.Equal(t, OutcomeIgnored, s.Submit("cat"))
	assert.Equal(t, 1, s.Score())
	assert.Len(t, r.marks, marks)
	assert.Len(t, l.answers, 1)
}

func TestSession_EmptySubmissionIgnored(t *testing.T) {
	s, _, _ := newTestSession(t, VariantChoice, choiceQuestions())
	assert.Equal(t, OutcomeIgnored, s.Submit("   "))
	assert.False(t, s.Answered())
}

func TestSession_AdvanceBeforeAnswer(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	assert.False(t, s.Advance())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, MsgAnswerFirst, r.lastFeedback())
	assert.Equal(t, SentimentNegative, r.sentiments[len(r.sentiments)-1])
}

func TestSession_AllCorrectCompletes(t *testing.T) {
	qs := choiceQuestions()
	s, r, _ := newTestSession(t, VariantChoice, qs)

	for _, q := range qs {
		require.Equal(t, OutcomeCorrect, s.Submit(q.Correct))
		require.True(t, s.Advance())
	}

	assert.Equal(t, len(qs), s.Score())
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, [][2]int{{3, 3}}, r.completions)
	assert.Equal(t, CompletionCelebration, r.celebrations[len(r.celebrations)-1])

	// Terminal state accepts nothing.
	assert.False(t, s.Advance())
	assert.False(t, s.Retreat())
	assert.Equal(t, OutcomeIgnored, s.Submit("sky"))
	assert.Len(t, r.completions, 1)
}

func TestSession_RetreatAtStartIsNoop(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	assert.False(t, s.Retreat())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, []int{0}, r.questions)
}

func TestSession_RevisitDoesNotDoubleCount(t *testing.T) {
	s, _, l := newTestSession(t, VariantChoice, choiceQuestions())

	require.Equal(t, OutcomeCorrect, s.Submit("dog"))
	require.True(t, s.Advance())
	require.True(t, s.Retreat())

	assert.Equal(t, 0, s.Position())
	assert.False(t, s.Answered(), "revisiting re-enters the answer flow")
	assert.Equal(t, OutcomeCorrect, s.Submit("dog"))
	assert.Equal(t, 1, s.Score())
	require.Len(t, l.answers, 2)
	assert.True(t, l.answers[0].Counted)
	assert.False(t, l.answers[1].Counted)
}

func TestSession_RevisitCannotFixWrongAnswer(t *testing.T) {
	s, _, _ := newTestSession(t, VariantChoice, choiceQuestions())

	require.Equal(t, OutcomeIncorrect, s.Submit("cat"))
	require.True(t, s.Advance())
	require.True(t, s.Retreat())
	require.Equal(t, OutcomeCorrect, s.Submit("dog"))

	assert.Equal(t, 0, s.Score())
}

func TestSession_LoadQuestionWraps(t *testing.T) {
	s, _, _ := newTestSession(t, VariantAudio, choiceQuestions())

	s.LoadQuestion(-1)
	assert.Equal(t, 2, s.Position())
	s.LoadQuestion(4)
	assert.Equal(t, 1, s.Position())
	s.LoadQuestion(3)
	assert.Equal(t, 0, s.Position())
}

func TestSession_LoadQuestionResetsAndStopsSpeech(t *testing.T) {
	s, r, _ := newTestSession(t, VariantAudio, choiceQuestions())
	stops := r.stops

	require.Equal(t, OutcomeCorrect, s.Submit("dog"))
	s.LoadQuestion(1)

	assert.False(t, s.Answered())
	assert.False(t, s.Locked())
	assert.Equal(t, stops+1, r.stops)
}

func TestSession_NavigationFlags(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	s.Submit("dog")
	s.Advance()
	assert.Equal(t, Navigation{Back: true, Next: false, Last: false}, r.lastNav())

	s.Submit("apple")
	s.Advance()
	assert.Equal(t, Navigation{Back: true, Next: false, Last: true}, r.lastNav())
}

func TestSession_OptionsCallback(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())

	require.NotNil(t, r.onSelect)
	r.onSelect("dog")
	assert.Equal(t, 1, s.Score())
}

func TestSession_Blank(t *testing.T) {
	qs := []Question{{Prompt: "The dog … loudly.", Options: []string{"barks", "meows"}, Correct: "barks"}}
	s, r, _ := newTestSession(t, VariantBlank, qs)

	require.Len(t, r.targets, 1)
	assert.Equal(t, []DropTarget{{Box: SideBlank}}, r.targets[0])
	assert.Equal(t, []string{"barks", "meows"}, r.chips[0])

	assert.Equal(t, OutcomeIgnored, s.Place(SideLeft, "barks"))
	r.onDrop(SideBlank, "barks")
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, MsgDropCorrect, r.lastFeedback())
	assert.Equal(t, SideBlank, r.marks[0].ref.Box)
}

func TestSession_SortWrongWordLocks(t *testing.T) {
	s, r, l := newTestSession(t, VariantSort, []Question{sortQuestion()})

	assert.Equal(t, OutcomeIncorrect, s.Place(SideLeft, "cat"))
	assert.True(t, s.Locked())
	assert.True(t, s.Answered())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, []string{"Paris is a city."}, r.explanations)
	assert.Equal(t, MsgDropWrong, r.lastFeedback())

	assert.Equal(t, OutcomeIgnored, s.Place(SideLeft, "Paris"))
	assert.Equal(t, OutcomeIgnored, s.Place(SideRight, "cat"))
	assert.Equal(t, 0, s.Score())
	require.Len(t, l.answers, 1)
	assert.True(t, l.answers[0].Final)
}

func TestSession_SortWrongAfterPartialLocks(t *testing.T) {
	q := Question{
		Options: []string{"Paris", "cat", "dog"},
		Key:     map[string]Side{"Paris": SideLeft, "cat": SideRight, "dog": SideRight},
	}
	s, _, _ := newTestSession(t, VariantSort, []Question{q})

	require.Equal(t, OutcomePartial, s.Place(SideRight, "cat"))
	assert.Equal(t, OutcomeIncorrect, s.Place(SideLeft, "dog"))
	assert.True(t, s.Locked())
	assert.Equal(t, 0, s.Score())
}

func TestSession_SortBothCorrectScoresOnce(t *testing.T) {
	for _, order := range [][2]Side{{SideLeft, SideRight}, {SideRight, SideLeft}} {
		s, r, _ := newTestSession(t, VariantSort, []Question{sortQuestion()})
		words := map[Side]string{SideLeft: "Paris", SideRight: "cat"}

		assert.Equal(t, OutcomePartial, s.Place(order[0], words[order[0]]))
		assert.False(t, s.Answered())
		assert.Equal(t, 0, s.Score())
		assert.Empty(t, r.celebrations, "partial placements do not celebrate")

		assert.Equal(t, OutcomeCorrect, s.Place(order[1], words[order[1]]))
		assert.True(t, s.Answered())
		assert.False(t, s.Locked())
		assert.Equal(t, 1, s.Score())

		assert.Equal(t, OutcomeIgnored, s.Place(order[1], words[order[1]]))
		assert.Equal(t, 1, s.Score())
	}
}

func TestSession_SortChipCannotBeReused(t *testing.T) {
	q := Question{Options: []string{"red", "blue"}, Key: map[string]Side{"red": SideLeft, "blue": SideLeft}}
	q.Options = append(q.Options, "cold")
	q.Key["cold"] = SideRight
	s, _, _ := newTestSession(t, VariantSort, []Question{q})

	require.Equal(t, OutcomePartial, s.Place(SideLeft, "red"))
	assert.Equal(t, OutcomeIgnored, s.Place(SideRight, "RED"), "placed chip")
	assert.Equal(t, OutcomeIgnored, s.Place(SideLeft, "blue"), "filled box")
	assert.False(t, s.Locked())
}

func TestSession_SortUnknownWordIsIncorrect(t *testing.T) {
	s, _, _ := newTestSession(t, VariantSort, []Question{sortQuestion()})

	assert.Equal(t, OutcomeIncorrect, s.Place(SideRight, "banana"))
	assert.True(t, s.Locked())
}

func TestSession_SortTwoOptionConvention(t *testing.T) {
	s, _, _ := newTestSession(t, VariantSort, []Question{{Options: []string{"sun", "moon"}}})

	assert.Equal(t, OutcomePartial, s.Place(SideRight, "moon"))
	assert.Equal(t, OutcomeCorrect, s.Place(SideLeft, "sun"))
	assert.Equal(t, 1, s.Score())
}

func TestSession_SortRendersLabelledBoxesAndShuffles(t *testing.T) {
	r := &recorder{}
	reversed := func(s []string) {
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
	}
	s, err := NewSession(Config{
		Variant: VariantSort,
		Boxes:   BoxLabels{Left: "City", Right: "Animal"},
		Shuffle: reversed,
	}, []Question{sortQuestion()}, r)
	require.NoError(t, err)
	s.Start()

	assert.Equal(t, []DropTarget{{Box: SideLeft, Label: "City"}, {Box: SideRight, Label: "Animal"}}, r.targets[0])
	assert.Equal(t, []string{"cat", "Paris"}, r.chips[0])
	assert.Equal(t, []string{"cat", "Paris"}, s.Chips())
}

func TestSession_SubmitIgnoredOnSort(t *testing.T) {
	s, _, _ := newTestSession(t, VariantSort, []Question{sortQuestion()})
	assert.Equal(t, OutcomeIgnored, s.Submit("Paris"))
}

func TestSession_Play(t *testing.T) {
	qs := []Question{{Options: []string{"apple", "ample"}, Correct: "apple", Speech: &SpeechCue{Rate: 0.9}}}
	r := &recorder{}
	s, err := NewSession(Config{Variant: VariantAudio, Voice: "Samantha"}, qs, r)
	require.NoError(t, err)
	s.Start()

	s.Play()
	assert.Equal(t, []string{"apple"}, r.spoken)
	assert.Equal(t, VoiceConfig{Lang: DefaultLang, Rate: 0.9, Pitch: DefaultPitch, Voice: "Samantha"}, r.voices[0])
	assert.Empty(t, r.feedback)
}

func TestSession_PlayUnsupportedBecomesFeedback(t *testing.T) {
	s, r, _ := newTestSession(t, VariantAudio, choiceQuestions())
	r.speakErr = errNoSpeech

	s.Play()
	assert.Equal(t, MsgSpeechUnsupported, r.lastFeedback())

	// The quiz goes on.
	assert.Equal(t, OutcomeCorrect, s.Submit("dog"))
	assert.True(t, s.Advance())
}

func TestSession_PlayOnlyForAudio(t *testing.T) {
	s, r, _ := newTestSession(t, VariantChoice, choiceQuestions())
	s.Play()
	assert.Empty(t, r.spoken)
	assert.Empty(t, r.feedback)
}

func TestResultRatio(t *testing.T) {
	assert.Equal(t, 0.0, Result{}.Ratio())
	assert.InDelta(t, 0.5, Result{Score: 1, Total: 2}.Ratio(), 1e-9)
}
