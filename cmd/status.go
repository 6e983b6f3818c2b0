package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"cchime/internal/config"
	"cchime/internal/sound"
)

func handleStatus(ctx context.Context, c *cli.Command) error {
	st, err := openStores()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg, err := st.store.Load()
	if err != nil {
		fmt.Println("Configuration file is unreadable; treating as not installed.")
		cfg = nil
	}
	if cfg == nil {
		fmt.Println("cchime is not installed. Run 'cchime install'.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println(bold("cchime status"))
	fmt.Printf("  Mode:         %s\n", cfg.Mode)
	if cfg.Mode == config.ModeTTS {
		fmt.Printf("  Provider:     %s\n", cfg.TTSProvider())
	}
	fmt.Printf("  Installed at: %s\n", cfg.InstalledAt)
	fmt.Printf("  Version:      %s\n", cfg.Version)
	fmt.Println()

	// Ownership is a substring match on the executable path, so this can
	// only say "looks like" ours, not "is" ours.
	fmt.Println(bold("Hook registrations"))
	marker := executablePath()
	for _, event := range config.HookEvents {
		if command, ok := st.settings.InstalledHookCommand(event, marker); ok {
			fmt.Printf("  %s %s: looks like cchime (%s)\n", green("✔"), event, command)
		} else {
			fmt.Printf("  %s %s: not registered by cchime\n", yellow("✘"), event)
		}
	}
	fmt.Println()

	fmt.Println(bold("Sounds"))
	resolver := sound.NewResolver(st.store.SoundsDir())
	selections := []struct {
		name string
		id   string
	}{
		{"notification", cfg.Sounds.Notification},
		{"completion", cfg.Sounds.Completion},
	}
	for _, sel := range selections {
		name, id := sel.name, sel.id
		switch _, err := resolver.Resolve(id); {
		case err == nil:
			fmt.Printf("  %s %s: %s\n", green("✔"), name, id)
		case errors.Is(err, sound.ErrSilent):
			fmt.Printf("  %s %s: %s (silent)\n", green("✔"), name, id)
		default:
			fmt.Printf("  %s %s: %s — file missing, platform default will play\n", yellow("!"), name, id)
		}
	}
	fmt.Println()

	if cfg.Mode == config.ModeTTS {
		if st.mcp.ServerRegistered() {
			fmt.Printf("%s MCP server registered as %q\n", green("✔"), config.MCPServerName)
		} else {
			fmt.Printf("%s MCP server not registered; run 'cchime configure'\n", yellow("✘"))
		}
	}
	return nil
}
