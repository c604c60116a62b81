// Package speech speaks words aloud on a best-effort basis.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnsupported is returned when no speech engine is available.
	ErrUnsupported = errors.New("speech: text-to-speech not supported")

	// ErrNoText is returned for an empty utterance.
	ErrNoText = errors.New("speech: no text to speak")
)

// Voice is one installed voice.
type Voice struct {
	Name string
	Lang string
}

// Utterance is a single speech request as the engine receives it.
type Utterance struct {
	Text  string
	Voice string
	Lang  string
	Rate  float64
	Pitch float64
}

// Engine synthesizes speech.
type Engine interface {
	// Name identifies the engine, e.g. "say" or "espeak-ng".
	Name() string

	// Available reports whether the engine can speak at all.
	Available() bool

	// Voices returns the voices loaded so far. The list may be empty
	// until the engine finishes loading it.
	Voices() []Voice

	// OnVoicesChanged registers a one-shot callback fired when the voice
	// list becomes available. A later registration replaces an earlier
	// pending one. If the list is already loaded the callback fires at once.
	OnVoicesChanged(fn func())

	// Speak blocks until the utterance finishes or ctx is cancelled.
	Speak(ctx context.Context, u Utterance) error
}

// Options are the caller-facing speech settings.
type Options struct {
	Lang  string
	Rate  float64
	Pitch float64
	// Voice is a preferred voice name; empty selects automatically.
	Voice string
}

// Rate and pitch bounds. Slightly slow speech is clearer for children.
const (
	DefaultRate  = 0.95
	MinRate      = 0.7
	MaxRate      = 1.2
	DefaultPitch = 1.0
	MinPitch     = 0.5
	MaxPitch     = 2.0
	DefaultLang  = "en-US"
)

// ClampRate applies the default and bounds to a speech rate.
func ClampRate(r float64) float64 {
	if r <= 0 {
		r = DefaultRate
	}
	return clamp(r, MinRate, MaxRate)
}

// ClampPitch applies the default and bounds to a speech pitch.
func ClampPitch(p float64) float64 {
	if p <= 0 {
		p = DefaultPitch
	}
	return clamp(p, MinPitch, MaxPitch)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
