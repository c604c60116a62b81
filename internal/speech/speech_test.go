package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records utterances. Speak blocks until ctx is cancelled when
// block is set.
type fakeEngine struct {
	mu        sync.Mutex
	available bool
	voices    []Voice
	pending   func()
	spoken    chan Utterance
	cancelled chan Utterance
	block     bool
}

func newFakeEngine(voices ...Voice) *fakeEngine {
	return &fakeEngine{
		available: true,
		voices:    voices,
		spoken:    make(chan Utterance, 8),
		cancelled: make(chan Utterance, 8),
	}
}

func (f *fakeEngine) Name() string    { return "fake" }
func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) Voices() []Voice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Voice(nil), f.voices...)
}

func (f *fakeEngine) OnVoicesChanged(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = fn
}

func (f *fakeEngine) load(voices ...Voice) {
	f.mu.Lock()
	f.voices = voices
	fn := f.pending
	f.pending = nil
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *fakeEngine) Speak(ctx context.Context, u Utterance) error {
	f.spoken <- u
	if f.block {
		<-ctx.Done()
		f.cancelled <- u
		return ctx.Err()
	}
	return nil
}

func receive(t *testing.T, ch <-chan Utterance) Utterance {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for utterance")
		return Utterance{}
	}
}

func TestSpeaker_Unsupported(t *testing.T) {
	assert.ErrorIs(t, NewSpeaker(nil).Speak("hi", Options{}), ErrUnsupported)

	e := newFakeEngine()
	e.available = false
	assert.ErrorIs(t, NewSpeaker(e).Speak("hi", Options{}), ErrUnsupported)
}

func TestSpeaker_NoText(t *testing.T) {
	e := newFakeEngine(Voice{Name: "Samantha", Lang: "en-US"})
	assert.ErrorIs(t, NewSpeaker(e).Speak("   ", Options{}), ErrNoText)
}

func TestSpeaker_SpeaksWithClampedSettings(t *testing.T) {
	e := newFakeEngine(Voice{Name: "Alex", Lang: "en-US"}, Voice{Name: "Samantha", Lang: "en-US"})
	s := NewSpeaker(e)

	require.NoError(t, s.Speak(" sheep ", Options{Rate: 3, Pitch: 0.1}))
	u := receive(t, e.spoken)

	assert.Equal(t, "sheep", u.Text)
	assert.Equal(t, MaxRate, u.Rate)
	assert.Equal(t, MinPitch, u.Pitch)
	assert.Equal(t, "Samantha", u.Voice, "default preference list")
	assert.Equal(t, "en-US", u.Lang)
}

func TestSpeaker_DefaultsRateAndPitch(t *testing.T) {
	e := newFakeEngine(Voice{Name: "x", Lang: "fr-FR"})
	s := NewSpeaker(e)

	require.NoError(t, s.Speak("bonjour", Options{}))
	u := receive(t, e.spoken)
	assert.Equal(t, DefaultRate, u.Rate)
	assert.Equal(t, DefaultPitch, u.Pitch)
}

func TestSpeaker_WaitsOnceForVoices(t *testing.T) {
	e := newFakeEngine()
	s := NewSpeaker(e)

	require.NoError(t, s.Speak("tree", Options{Lang: "en-GB"}))
	select {
	case <-e.spoken:
		t.Fatal("spoke before voices were loaded")
	case <-time.After(50 * time.Millisecond):
	}

	e.load(Voice{Name: "Daniel", Lang: "en-GB"})
	u := receive(t, e.spoken)
	assert.Equal(t, "Daniel", u.Voice)

	e.load(Voice{Name: "Daniel", Lang: "en-GB"})
	select {
	case <-e.spoken:
		t.Fatal("retried more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSpeaker_EmptyVoiceListAfterWaitUsesDefault(t *testing.T) {
	e := newFakeEngine()
	s := NewSpeaker(e)

	require.NoError(t, s.Speak("tree", Options{}))
	e.load()
	u := receive(t, e.spoken)
	assert.Equal(t, "", u.Voice)
	assert.Equal(t, DefaultLang, u.Lang)
}

func TestSpeaker_NewRequestCancelsPrevious(t *testing.T) {
	e := newFakeEngine(Voice{Name: "Alex", Lang: "en-US"})
	e.block = true
	s := NewSpeaker(e)

	require.NoError(t, s.Speak("one", Options{}))
	receive(t, e.spoken)

	require.NoError(t, s.Speak("two", Options{}))
	assert.Equal(t, "one", receive(t, e.cancelled).Text)
	assert.Equal(t, "two", receive(t, e.spoken).Text)

	s.Stop()
	assert.Equal(t, "two", receive(t, e.cancelled).Text)
}

func TestChooseVoice(t *testing.T) {
	voices := []Voice{
		{Name: "Thomas", Lang: "fr-FR"},
		{Name: "Daniel", Lang: "en-GB"},
		{Name: "Microsoft Aria", Lang: "en-US"},
		{Name: "Google UK English Female", Lang: "en-GB"},
		{Name: "Alex (Enhanced)", Lang: "en-US"},
	}

	tests := []struct {
		name      string
		voices    []Voice
		engine    string
		lang      string
		preferred string
		want      string
		ok        bool
	}{
		{"empty list", nil, "say", "en-US", "", "", false},
		{"preferred exact", voices, "say", "en-US", "Daniel", "Daniel", true},
		{"preferred prefix", voices, "say", "en-US", "Alex", "Alex (Enhanced)", true},
		{"engine preference", append(voices, Voice{Name: "Samantha", Lang: "en-US"}), "say", "en-US", "", "Samantha", true},
		{"google before microsoft", voices, "espeak", "en-US", "", "Google UK English Female", true},
		{"microsoft", voices[:3], "espeak", "en-US", "", "Microsoft Aria", true},
		{"language match", []Voice{{Name: "a", Lang: "de-DE"}, {Name: "b", Lang: "fr_FR"}}, "espeak", "fr-FR", "", "b", true},
		{"any english", []Voice{{Name: "a", Lang: "de-DE"}, {Name: "b", Lang: "en-AU"}}, "espeak", "fr-FR", "", "b", true},
		{"first voice", []Voice{{Name: "a", Lang: "de-DE"}, {Name: "b", Lang: "it-IT"}}, "espeak", "fr-FR", "", "a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ChooseVoice(tt.voices, tt.engine, tt.lang, tt.preferred)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v.Name)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, DefaultRate, ClampRate(0))
	assert.Equal(t, MinRate, ClampRate(0.1))
	assert.Equal(t, 1.0, ClampRate(1.0))
	assert.Equal(t, DefaultPitch, ClampPitch(-1))
	assert.Equal(t, MaxPitch, ClampPitch(5))
}

func TestCommandEngine_Off(t *testing.T) {
	e := NewCommandEngine(SelectOff)
	assert.False(t, e.Available())
	assert.Equal(t, "none", e.Name())
	assert.ErrorIs(t, e.Speak(context.Background(), Utterance{Text: "x"}), ErrUnsupported)

	fired := false
	e.Load(context.Background())
	e.OnVoicesChanged(func() { fired = true })
	assert.True(t, fired, "loaded engines fire at once")
}

func TestCommandEngine_Say(t *testing.T) {
	var calls [][]string
	e := &CommandEngine{
		name: "say",
		path: "/usr/bin/say",
		run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			calls = append(calls, append([]string{name}, args...))
			if len(args) == 2 && args[1] == "?" {
				return []byte("Alex                en_US    # Most people recognize me by my voice.\n" +
					"Amélie              fr_CA    # Bonjour, je m'appelle Amélie.\n" +
					"Good News           en_US    # Congratulations you just won the sweepstakes!\n" +
					"garbage line\n"), nil
			}
			return nil, nil
		},
	}

	voices, err := e.LoadSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Amélie", Lang: "fr-CA"},
		{Name: "Good News", Lang: "en-US"},
	}, voices)

	require.NoError(t, e.Speak(context.Background(), Utterance{Text: "sheep", Voice: "Alex", Rate: 0.8}))
	assert.Equal(t, []string{"/usr/bin/say", "-v", "Alex", "-r", "140", "--", "sheep"}, calls[len(calls)-1])
}

func TestCommandEngine_Espeak(t *testing.T) {
	var last []string
	e := &CommandEngine{
		name: "espeak-ng",
		path: "/usr/bin/espeak-ng",
		run: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			last = args
			if len(args) == 1 && args[0] == "--voices" {
				return []byte("Pty Language       Age/Gender VoiceName          File                 Other Languages\n" +
					" 5  af              --/M      Afrikaans          gmw/af\n" +
					" 2  en-us           --/M      English_(America)  gmw/en-US            (en 3)\n"), nil
			}
			return nil, errors.New("boom")
		},
	}

	voices, err := e.LoadSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Voice{{Name: "Afrikaans", Lang: "af"}, {Name: "English_(America)", Lang: "en-us"}}, voices)

	err = e.Speak(context.Background(), Utterance{Text: "tree", Lang: "en-GB", Rate: 1, Pitch: 2})
	assert.Error(t, err)
	assert.Equal(t, []string{"-v", "en-gb", "-s", "175", "-p", "99", "--", "tree"}, last)
}
