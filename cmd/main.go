package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "cchime",
		Usage: "Audio and voice feedback for Claude Code lifecycle hooks",
		Description: `cchime plays sounds or speaks short summaries when Claude Code
starts tools, asks for attention, or finishes a turn. Run 'cchime install'
once; the hook subcommands are then invoked by Claude Code itself.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "install",
				Usage:  "Run the interactive installer and register the hooks",
				Action: handleInstall,
			},
			{
				Name:   "uninstall",
				Usage:  "Remove hook registrations and clear the configuration",
				Action: handleUninstall,
			},
			{
				Name:   "status",
				Usage:  "Show the installed configuration and hook registrations",
				Action: handleStatus,
			},
			{
				Name:   "configure",
				Usage:  "Change the mode or API key of an existing installation",
				Action: handleConfigure,
			},
			{
				Name:   "switch-mode",
				Usage:  "Flip between standard and voice-summary mode",
				Action: handleSwitchMode,
			},
			{
				Name:   "pre-tool-use",
				Usage:  "Hook entry point: a tool call is starting (reads JSON from stdin)",
				Hidden: true,
				Action: handlePreToolUse,
			},
			{
				Name:   "notify",
				Usage:  "Hook entry point: Claude needs attention (reads JSON from stdin)",
				Hidden: true,
				Action: handleNotify,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "notify",
						Usage: "Update the status indicator and show a desktop notification",
					},
					&cli.BoolFlag{
						Name:  "speak",
						Usage: "Speak a short summary instead of playing a sound (voice mode)",
					},
				},
			},
			{
				Name:   "stop",
				Usage:  "Hook entry point: a turn finished (reads JSON from stdin)",
				Hidden: true,
				Action: handleStop,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "chat",
						Usage: "Consolidate the transcript into the chat log",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve sound and speech tools over the Model Context Protocol",
				Hidden: true,
				Action: handleMCP,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if name := c.Args().First(); name != "" {
				_ = cli.ShowAppHelp(c)
				return cli.Exit(fmt.Sprintf("unknown command: %s", name), 1)
			}
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		// cli.Exit errors carry their own code and message.
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
