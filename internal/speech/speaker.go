package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/logger"
)

// Speaker turns speak requests into fire-and-forget engine calls. A new
// request or Stop cancels the utterance in flight. Speaker is safe for
// concurrent use.
type Speaker struct {
	engine Engine

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewSpeaker returns a Speaker for engine. A nil engine never speaks.
func NewSpeaker(engine Engine) *Speaker {
	return &Speaker{engine: engine}
}

// Available reports whether speech can be attempted.
func (s *Speaker) Available() bool {
	return s.engine != nil && s.engine.Available()
}

// Engine returns the underlying engine, or nil.
func (s *Speaker) Engine() Engine {
	return s.engine
}

// Speak starts speaking text and returns immediately. ErrUnsupported and
// ErrNoText are reported synchronously; playback errors are only logged.
//
// When the engine has not listed its voices yet, the request waits for the
// voice list once and then speaks with whatever voice is chosen, or the
// engine default.
func (s *Speaker) Speak(text string, opts Options) error {
	if !s.Available() {
		return ErrUnsupported
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoText
	}

	u := Utterance{
		Text:  text,
		Lang:  opts.Lang,
		Rate:  ClampRate(opts.Rate),
		Pitch: ClampPitch(opts.Pitch),
	}
	if u.Lang == "" {
		u.Lang = DefaultLang
	}

	ctx, gen := s.begin()
	if len(s.engine.Voices()) == 0 {
		logger.Debug("speech: waiting for voice list", logrus.Fields{"engine": s.engine.Name()})
		s.engine.OnVoicesChanged(func() {
			go s.run(ctx, gen, u, opts.Voice)
		})
		return nil
	}
	go s.run(ctx, gen, u, opts.Voice)
	return nil
}

// Stop cancels any speech in flight.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Speaker) begin() (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return ctx, s.gen
}

func (s *Speaker) done(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Speaker) run(ctx context.Context, gen uint64, u Utterance, preferred string) {
	defer s.done(gen)
	if ctx.Err() != nil {
		return
	}
	if v, ok := ChooseVoice(s.engine.Voices(), s.engine.Name(), u.Lang, preferred); ok {
		u.Voice = v.Name
		if v.Lang != "" {
			u.Lang = v.Lang
		}
	}
	fields := logrus.Fields{"engine": s.engine.Name(), "voice": u.Voice, "lang": u.Lang}
	logger.Debug("speech: speaking", fields)
	if err := s.engine.Speak(ctx, u); err != nil && ctx.Err() == nil {
		logger.Error("speech: playback failed", err, fields)
	}
}
