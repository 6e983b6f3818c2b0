package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"

	"cchime/internal/platform"
	"cchime/internal/sound"
	"cchime/internal/voice/provider"
)

// synthesisTimeout bounds the provider call; past it the fallback chain
// runs instead.
const synthesisTimeout = 10 * time.Second

// Speaker synthesizes a summary and plays it back. A provider failure
// degrades to the local `say` utility on macOS and finally to a log line;
// Speak never brings down the owning hook process.
type Speaker struct {
	provider provider.Provider
	timeout  time.Duration
}

// NewSpeaker creates a speaker on the given provider.
func NewSpeaker(p provider.Provider) *Speaker {
	return &Speaker{provider: p, timeout: synthesisTimeout}
}

// Speak synthesizes text and plays it, removing the temp audio file after
// playback. Errors from the fallback chain are logged, not returned.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}

	err := s.speakProvider(ctx, text)
	if err == nil {
		return
	}
	log.Warn().Err(err).Str("provider", s.provider.Name()).Msg("Synthesis failed, falling back")

	if platform.Current() == platform.Darwin && platform.CommandAvailable("say") {
		if err := exec.Command("say", text).Run(); err == nil {
			return
		}
		log.Warn().Msg("Local say fallback failed")
	}

	log.Info().Str("text", text).Msg("Voice summary (unspoken)")
}

func (s *Speaker) speakProvider(ctx context.Context, text string) error {
	synthCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stream, err := s.provider.Synthesize(synthCtx, text, provider.SynthesizeOptions{})
	if err != nil {
		return err
	}
	defer stream.Close()

	tmpFile, err := os.CreateTemp("", "cchime_tts_*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmpFile.Name()
	defer func() {
		_ = os.Remove(path)
	}()

	if _, err := io.Copy(tmpFile, stream); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to save audio: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := sound.PlayWait(path); err != nil {
		return fmt.Errorf("failed to play audio: %w", err)
	}
	return nil
}
