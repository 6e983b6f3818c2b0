package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/rs/zerolog/log"
)

// GCPProvider implements Provider on Google Cloud Text-to-Speech.
// Authentication uses Application Default Credentials.
type GCPProvider struct {
	client   *texttospeech.Client
	voice    string
	language string
}

// NewGCPProvider creates a Google Cloud TTS provider.
func NewGCPProvider(ctx context.Context) (*GCPProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}
	return &GCPProvider{
		client:   client,
		voice:    "en-US-Neural2-C",
		language: "en-US",
	}, nil
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// ListVoices returns the available Google Cloud TTS voices.
func (p *GCPProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list GCP voices: %w", err)
	}

	var voices []Voice
	for _, v := range resp.Voices {
		gender := "unknown"
		switch v.SsmlGender {
		case texttospeechpb.SsmlVoiceGender_MALE:
			gender = "male"
		case texttospeechpb.SsmlVoiceGender_FEMALE:
			gender = "female"
		case texttospeechpb.SsmlVoiceGender_NEUTRAL:
			gender = "neutral"
		}
		voices = append(voices, Voice{
			ID:          v.Name,
			Name:        v.Name,
			Language:    strings.Join(v.LanguageCodes, ", "),
			Gender:      gender,
			Description: fmt.Sprintf("%s voice", engineTypeFromName(v.Name)),
		})
	}

	log.Debug().Int("count", len(voices)).Msg("Listed GCP TTS voices")
	return voices, nil
}

// Synthesize generates MP3 audio from text.
func (p *GCPProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voiceName := options.Voice
	if voiceName == "" {
		voiceName = p.voice
	}
	speed := options.Speed
	if speed == 0 {
		speed = 1.0
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: p.language,
			Name:         voiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  speed,
		},
	}

	log.Debug().Str("voice", voiceName).Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

// IsAvailable checks whether the TTS API answers.
func (p *GCPProvider) IsAvailable(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.client.ListVoices(checkCtx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: p.language,
	})
	return err == nil
}

// Close releases the underlying gRPC connection.
func (p *GCPProvider) Close() error {
	return p.client.Close()
}

func engineTypeFromName(voiceName string) string {
	name := strings.ToLower(voiceName)
	switch {
	case strings.Contains(name, "wavenet"):
		return "WaveNet"
	case strings.Contains(name, "neural2"):
		return "Neural2"
	case strings.Contains(name, "studio"):
		return "Studio"
	default:
		return "Standard"
	}
}
