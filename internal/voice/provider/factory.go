package provider

import (
	"context"
	"fmt"
	"os"
)

// Factory creates providers by name, falling back to the conventional
// environment variables when no API key is configured.
type Factory struct{}

// NewFactory creates a provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ListProviders returns the provider names this factory knows.
func (f *Factory) ListProviders() []string {
	return []string{"elevenlabs", "polly", "gcp"}
}

// CreateProvider builds a provider. apiKey applies to key-based providers;
// polly and gcp authenticate through their SDK credential chains.
func (f *Factory) CreateProvider(ctx context.Context, name, apiKey string) (Provider, error) {
	switch name {
	case "elevenlabs":
		if apiKey == "" {
			apiKey = os.Getenv("ELEVENLABS_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ElevenLabs API key not configured and ELEVENLABS_API_KEY is unset")
		}
		return NewElevenLabsProvider(apiKey), nil

	case "polly":
		return NewPollyProvider(os.Getenv("AWS_REGION"))

	case "gcp":
		return NewGCPProvider(ctx)

	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
