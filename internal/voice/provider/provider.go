// Package provider implements the text-to-speech backends for voice-summary
// mode. Providers return raw audio streams; playback and temp-file handling
// live one layer up in internal/voice.
package provider

import (
	"context"
	"io"
)

// Provider is a TTS backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Synthesize generates audio for text and returns the audio stream.
	Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error)

	// ListVoices returns the voices this provider offers.
	ListVoices(ctx context.Context) ([]Voice, error)

	// IsAvailable checks whether the provider can currently be used.
	IsAvailable(ctx context.Context) bool
}

// Voice describes one selectable voice.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

// SynthesizeOptions tune a synthesis request. Zero values pick provider
// defaults.
type SynthesizeOptions struct {
	Voice      string  `json:"voice,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Format     string  `json:"format,omitempty"`
	Engine     string  `json:"engine,omitempty"`
	SampleRate string  `json:"sample_rate,omitempty"`
}
