// Package mcpserver exposes cchime's sound and speech facilities as MCP
// tools over stdio. The install command registers this server in the
// host's global config so Claude can trigger feedback itself.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cchime/internal/sound"
	"cchime/internal/voice"
	"cchime/internal/voice/provider"
)

// Server wires the MCP tool handlers to a sound resolver and an optional
// TTS provider.
type Server struct {
	mcp      *server.MCPServer
	resolver *sound.Resolver
	tts      provider.Provider
	speaker  *voice.Speaker
}

// New builds the server. tts may be nil when running in standard mode; the
// voice tools then report themselves unavailable.
func New(version string, resolver *sound.Resolver, tts provider.Provider) *Server {
	s := &Server{
		mcp:      server.NewMCPServer("cchime", version),
		resolver: resolver,
		tts:      tts,
	}
	if tts != nil {
		s.speaker = voice.NewSpeaker(tts)
	}

	s.mcp.AddTool(
		mcp.NewTool("play_sound",
			mcp.WithDescription("Play one of the configured notification sounds"),
			mcp.WithString("sound_id",
				mcp.Required(),
				mcp.Description("Catalog id of the sound to play"),
			),
		),
		s.handlePlaySound,
	)

	s.mcp.AddTool(
		mcp.NewTool("speak",
			mcp.WithDescription("Speak a short text aloud via the configured TTS provider"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Text to synthesize, kept short"),
			),
		),
		s.handleSpeak,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_voices",
			mcp.WithDescription("List the voices the configured TTS provider offers"),
		),
		s.handleListVoices,
	)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handlePlaySound(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	soundID, err := req.RequireString("sound_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := s.resolver.Resolve(soundID)
	if errors.Is(err, sound.ErrSilent) {
		return mcp.NewToolResultText("sound is silent, nothing to play"), nil
	}
	if err != nil {
		if fallbackErr := sound.PlayDefault(); fallbackErr == nil {
			return mcp.NewToolResultText("played platform default sound"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve sound: %v", err)), nil
	}

	if err := sound.Play(path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to play sound: %v", err)), nil
	}
	return mcp.NewToolResultText("playback dispatched"), nil
}

func (s *Server) handleSpeak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.speaker == nil {
		return mcp.NewToolResultError("voice summary mode is not configured"), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.speaker.Speak(ctx, text)
	return mcp.NewToolResultText("speech dispatched"), nil
}

func (s *Server) handleListVoices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.tts == nil {
		return mcp.NewToolResultError("voice summary mode is not configured"), nil
	}

	voices, err := s.tts.ListVoices(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list voices: %v", err)), nil
	}

	lines := make([]string, 0, len(voices)+1)
	lines = append(lines, fmt.Sprintf("Voices for %s:", s.tts.Name()))
	for _, v := range voices {
		lines = append(lines, fmt.Sprintf("  %s (%s, %s) %s", v.Name, v.Language, v.Gender, v.Description))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
