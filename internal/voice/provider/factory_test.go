package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProviders(t *testing.T) {
	factory := NewFactory()
	providers := factory.ListProviders()

	assert.Len(t, providers, 3)
	assert.Contains(t, providers, "elevenlabs")
	assert.Contains(t, providers, "polly")
	assert.Contains(t, providers, "gcp")
}

func TestCreateProviderUnknown(t *testing.T) {
	factory := NewFactory()
	_, err := factory.CreateProvider(context.Background(), "unknown", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestCreateProviderElevenLabs(t *testing.T) {
	factory := NewFactory()

	t.Run("fails without API key", func(t *testing.T) {
		t.Setenv("ELEVENLABS_API_KEY", "")
		_, err := factory.CreateProvider(context.Background(), "elevenlabs", "")
		assert.Error(t, err)
	})

	t.Run("uses configured key", func(t *testing.T) {
		p, err := factory.CreateProvider(context.Background(), "elevenlabs", "configured-key")
		require.NoError(t, err)
		assert.Equal(t, "elevenlabs", p.Name())
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("ELEVENLABS_API_KEY", "env-key")
		p, err := factory.CreateProvider(context.Background(), "elevenlabs", "")
		require.NoError(t, err)
		assert.Equal(t, "elevenlabs", p.Name())
	})
}
