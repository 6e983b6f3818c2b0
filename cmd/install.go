package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"cchime/internal/config"
	"cchime/internal/sound"
	"cchime/internal/wizard"
)

// stores bundles the three documents every management command touches.
type stores struct {
	store    *config.Store
	settings *config.Settings
	mcp      *config.MCPConfig
}

func openStores() (*stores, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	settings, err := config.NewSettings()
	if err != nil {
		return nil, err
	}
	mcp, err := config.NewMCPConfig()
	if err != nil {
		return nil, err
	}
	return &stores{store: store, settings: settings, mcp: mcp}, nil
}

// executablePath doubles as the ownership marker in settings.json: a hook
// entry is considered ours when its command contains it.
func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "cchime"
	}
	return exe
}

// hookCommands builds the command line registered per hook event. In tts
// mode the notification handler also speaks.
func hookCommands(mode string) map[string]string {
	exe := executablePath()
	notify := exe + " notify --notify"
	if mode == config.ModeTTS {
		notify += " --speak"
	}
	return map[string]string{
		config.HookPreToolUse:   exe + " pre-tool-use",
		config.HookNotification: notify,
		config.HookStop:         exe + " stop --chat",
		config.HookSubagentStop: exe + " stop",
	}
}

func handleInstall(ctx context.Context, c *cli.Command) error {
	st, err := openStores()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	wiz := wizard.New(version)
	wiz.Preview = func(soundID string) error {
		resolver := sound.NewResolver(st.store.SoundsDir())
		path, err := resolver.Resolve(soundID)
		if errors.Is(err, sound.ErrSilent) {
			return nil
		}
		if err != nil {
			return sound.PlayDefault()
		}
		return sound.Play(path)
	}

	cfg, err := wiz.Run()
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Println("Install cancelled; nothing was changed.")
		return nil
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("install failed: %v", err), 1)
	}

	if err := applyConfig(st, cfg); err != nil {
		return cli.Exit(fmt.Sprintf("install failed: %v", err), 1)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Println()
	fmt.Printf("%s cchime installed in %s mode\n", green("✔"), cfg.Mode)
	fmt.Printf("  Configuration: %s\n", st.store.BaseDir())
	fmt.Printf("  Hooks registered: %d\n", len(config.HookEvents))
	if cfg.Mode == config.ModeTTS {
		fmt.Printf("  MCP server registered as %q\n", config.MCPServerName)
	}
	return nil
}

// applyConfig persists the configuration and brings every registration in
// line with it. Shared by install, configure, and switch-mode.
func applyConfig(st *stores, cfg *config.Config) error {
	if err := st.store.Save(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(st.store.LogsDir(), config.DirPermission); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := st.settings.RegisterHooks(hookCommands(cfg.Mode), executablePath()); err != nil {
		return err
	}

	if cfg.Mode == config.ModeTTS {
		// Only the key-based provider passes a secret through the server
		// env; polly and gcp pick up their SDK credential chains.
		env := map[string]string{}
		if cfg.TTSProvider() == config.DefaultTTSProvider && cfg.APIKey != "" {
			env["ELEVENLABS_API_KEY"] = cfg.APIKey
		}
		return st.mcp.RegisterServer(config.MCPServer{
			Command: executablePath(),
			Args:    []string{"mcp"},
			Env:     env,
		})
	}
	return st.mcp.UnregisterServer()
}

func handleUninstall(ctx context.Context, c *cli.Command) error {
	st, err := openStores()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg, err := st.store.Load()
	if err != nil || cfg == nil {
		fmt.Println("No configuration found; nothing to uninstall.")
		return nil
	}

	if err := st.settings.UnregisterHooks(executablePath()); err != nil {
		return cli.Exit(fmt.Sprintf("uninstall failed: %v", err), 1)
	}
	if cfg.Mode == config.ModeTTS {
		if err := st.mcp.UnregisterServer(); err != nil {
			return cli.Exit(fmt.Sprintf("uninstall failed: %v", err), 1)
		}
	}
	if err := st.store.Remove(); err != nil {
		return cli.Exit(fmt.Sprintf("uninstall failed: %v", err), 1)
	}

	fmt.Println("cchime hooks removed and configuration cleared.")
	return nil
}

func handleConfigure(ctx context.Context, c *cli.Command) error {
	return reconfigure(func(wiz *wizard.Wizard, cfg *config.Config) (*config.Config, error) {
		return wiz.Reconfigure(cfg)
	})
}

func handleSwitchMode(ctx context.Context, c *cli.Command) error {
	return reconfigure(func(wiz *wizard.Wizard, cfg *config.Config) (*config.Config, error) {
		return wiz.SwitchMode(cfg)
	})
}

func reconfigure(flow func(*wizard.Wizard, *config.Config) (*config.Config, error)) error {
	st, err := openStores()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg, err := st.store.Load()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load configuration: %v", err), 1)
	}
	if cfg == nil {
		return cli.Exit("not installed; run 'cchime install' first", 1)
	}

	updated, err := flow(wizard.New(version), cfg)
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Println("Cancelled; nothing was changed.")
		return nil
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := applyConfig(st, updated); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("Now in %s mode.\n", updated.Mode)
	return nil
}
