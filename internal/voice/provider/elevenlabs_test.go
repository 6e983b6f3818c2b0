package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestElevenLabs(t *testing.T, handler http.HandlerFunc) *ElevenLabsProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewElevenLabsProvider("test-key")
	p.baseURL = srv.URL
	return p
}

func TestElevenLabsName(t *testing.T) {
	p := NewElevenLabsProvider("key")
	assert.Equal(t, "elevenlabs", p.Name())
}

func TestElevenLabsSynthesize(t *testing.T) {
	p := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, elevenLabsTTSEndpoint)

		var req elevenLabsTTSRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello there", req.Text)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3-bytes"))
	})

	stream, err := p.Synthesize(context.Background(), "hello there", SynthesizeOptions{})
	require.NoError(t, err)
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "fake-mp3-bytes", string(audio))
}

func TestElevenLabsSynthesizeEmptyText(t *testing.T) {
	p := NewElevenLabsProvider("key")
	_, err := p.Synthesize(context.Background(), "", SynthesizeOptions{})
	assert.Error(t, err)
}

func TestElevenLabsSynthesizeAPIError(t *testing.T) {
	p := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	})

	_, err := p.Synthesize(context.Background(), "hello", SynthesizeOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestElevenLabsListVoices(t *testing.T) {
	p := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, elevenLabsVoicesEndpoint)
		_ = json.NewEncoder(w).Encode(elevenLabsVoicesResponse{
			Voices: []elevenLabsVoice{
				{VoiceID: "v1", Name: "Rachel", Labels: map[string]string{"gender": "female"}},
				{VoiceID: "v2", Name: "Adam"},
			},
		})
	})

	voices, err := p.ListVoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, voices, 2)
	assert.Equal(t, "Rachel", voices[0].Name)
	assert.Equal(t, "female", voices[0].Gender)
}

func TestElevenLabsIsAvailable(t *testing.T) {
	t.Run("no API key", func(t *testing.T) {
		p := NewElevenLabsProvider("")
		assert.False(t, p.IsAvailable(context.Background()))
	})

	t.Run("API answers", func(t *testing.T) {
		p := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(elevenLabsVoicesResponse{})
		})
		assert.True(t, p.IsAvailable(context.Background()))
	})
}
