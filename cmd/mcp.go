package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"cchime/internal/config"
	"cchime/internal/mcpserver"
	"cchime/internal/sound"
	"cchime/internal/voice/provider"
)

func handleMCP(ctx context.Context, c *cli.Command) error {
	// Stdout carries the MCP protocol; keep logging on stderr and quiet.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	store, err := config.NewStore()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg, err := store.Load()
	if err != nil || cfg == nil {
		cfg = &config.Config{Mode: config.ModeStandard}
	}

	var tts provider.Provider
	if cfg.Mode == config.ModeTTS {
		tts, err = provider.NewFactory().CreateProvider(ctx, cfg.TTSProvider(), cfg.APIKey)
		if err != nil {
			log.Warn().Err(err).Msg("TTS provider unavailable, speak tool disabled")
			tts = nil
		}
	}

	srv := mcpserver.New(version, sound.NewResolver(store.SoundsDir()), tts)
	if err := srv.ServeStdio(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
