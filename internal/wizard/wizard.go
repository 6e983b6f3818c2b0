// Package wizard drives the interactive install and reconfigure dialogues.
// Each flow is a linear sequence of huh forms; cancelling any form aborts
// the whole flow without persisting anything.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"

	"cchime/internal/config"
	"cchime/internal/sound"
	"cchime/internal/voice/provider"
)

// ErrCancelled is returned when the user aborts a flow.
var ErrCancelled = errors.New("cancelled")

// Wizard collects an installation configuration. Preview is called when
// the user asks to hear a sound before committing to it; it may be nil.
type Wizard struct {
	Version string
	Preview func(soundID string) error
}

// New creates a wizard for the given tool version.
func New(version string) *Wizard {
	return &Wizard{Version: version}
}

// Run walks the full install dialogue and returns a complete configuration.
func (w *Wizard) Run() (*config.Config, error) {
	mode, err := w.selectMode(config.ModeStandard)
	if err != nil {
		return nil, err
	}

	providerName := ""
	apiKey := ""
	if mode == config.ModeTTS {
		providerName, err = w.selectProvider(config.DefaultTTSProvider)
		if err != nil {
			return nil, err
		}
		if providerName == config.DefaultTTSProvider {
			apiKey, err = w.askAPIKey()
			if err != nil {
				return nil, err
			}
		}
	}

	notification, err := w.selectSound("Notification sound", "chime")
	if err != nil {
		return nil, err
	}
	completion, err := w.selectSound("Completion sound", "gong")
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Mode:        mode,
		Provider:    providerName,
		APIKey:      apiKey,
		Sounds:      config.SoundSelection{Notification: notification, Completion: completion},
		InstalledAt: time.Now().Format(time.RFC3339),
		Version:     w.Version,
	}

	if err := w.confirm(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reconfigure shows a short menu dispatching to the mode or API key flow
// and returns the updated configuration.
func (w *Wizard) Reconfigure(cfg *config.Config) (*config.Config, error) {
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("What would you like to change?").
			Options(
				huh.NewOption("Switch mode (standard ↔ voice summary)", "mode"),
				huh.NewOption("Change voice provider", "provider"),
				huh.NewOption("Update API key", "apikey"),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return nil, wrapAbort(err)
	}

	switch choice {
	case "mode":
		return w.SwitchMode(cfg)
	case "provider":
		name, err := w.selectProvider(cfg.TTSProvider())
		if err != nil {
			return nil, err
		}
		updated := *cfg
		updated.Provider = name
		return &updated, nil
	case "apikey":
		key, err := w.askAPIKey()
		if err != nil {
			return nil, err
		}
		updated := *cfg
		updated.APIKey = key
		return &updated, nil
	default:
		return nil, ErrCancelled
	}
}

// SwitchMode flips standard ↔ tts. An existing API key is preserved; one
// is only prompted for when switching to tts without a stored key.
func (w *Wizard) SwitchMode(cfg *config.Config) (*config.Config, error) {
	updated := *cfg
	if cfg.Mode == config.ModeTTS {
		updated.Mode = config.ModeStandard
		return &updated, nil
	}

	updated.Mode = config.ModeTTS
	if updated.TTSProvider() == config.DefaultTTSProvider && updated.APIKey == "" {
		key, err := w.askAPIKey()
		if err != nil {
			return nil, err
		}
		updated.APIKey = key
	}
	return &updated, nil
}

// selectProvider picks the synthesis backend. Only the key-based provider
// needs an API key; the cloud SDKs use their own credential chains.
func (w *Wizard) selectProvider(current string) (string, error) {
	descriptions := map[string]string{
		"elevenlabs": "ElevenLabs (API key)",
		"polly":      "Amazon Polly (AWS credentials)",
		"gcp":        "Google Cloud TTS (application default credentials)",
	}

	names := provider.NewFactory().ListProviders()
	options := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		label := descriptions[name]
		if label == "" {
			label = name
		}
		options = append(options, huh.NewOption(label, name))
	}

	selected := current
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Voice provider").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", wrapAbort(err)
	}
	return selected, nil
}

func (w *Wizard) selectMode(current string) (string, error) {
	mode := current
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Feedback mode").
			Description("Standard plays sounds; voice summary speaks a short recap.").
			Options(
				huh.NewOption("Standard (sounds)", config.ModeStandard),
				huh.NewOption("Voice summary (text-to-speech)", config.ModeTTS),
			).
			Value(&mode),
	))
	if err := form.Run(); err != nil {
		return "", wrapAbort(err)
	}
	return mode, nil
}

func (w *Wizard) askAPIKey() (string, error) {
	var key string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("TTS API key").
			Description("Used for voice synthesis (ElevenLabs).").
			EchoMode(huh.EchoModePassword).
			Validate(config.ValidateAPIKey).
			Value(&key),
	))
	if err := form.Run(); err != nil {
		return "", wrapAbort(err)
	}
	return key, nil
}

// selectSound loops until the user keeps a selection; choosing preview
// plays the sound and re-enters the loop.
func (w *Wizard) selectSound(title, initial string) (string, error) {
	options, err := sound.Catalog()
	if err != nil {
		return "", err
	}

	selectOptions := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		selectOptions = append(selectOptions, huh.NewOption(
			fmt.Sprintf("%s — %s", o.Name, o.Description), o.ID))
	}

	selected := initial
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(selectOptions...).
				Value(&selected),
		))
		if err := form.Run(); err != nil {
			return "", wrapAbort(err)
		}

		action := "keep"
		if w.Preview != nil {
			actionForm := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Keep %q?", selected)).
					Options(
						huh.NewOption("Keep it", "keep"),
						huh.NewOption("Preview it", "preview"),
						huh.NewOption("Choose again", "again"),
					).
					Value(&action),
			))
			if err := actionForm.Run(); err != nil {
				return "", wrapAbort(err)
			}
		}

		switch action {
		case "keep":
			return selected, nil
		case "preview":
			if err := w.Preview(selected); err != nil {
				fmt.Println(color.YellowString("Could not preview: %v", err))
			}
			// stay in the loop, selection unchanged
		}
	}
}

func (w *Wizard) confirm(cfg *config.Config) error {
	fmt.Println()
	fmt.Println(color.New(color.Bold).Sprint("Configuration summary"))
	fmt.Printf("  Mode:               %s\n", cfg.Mode)
	if cfg.Mode == config.ModeTTS {
		fmt.Printf("  Voice provider:     %s\n", cfg.TTSProvider())
		if cfg.APIKey != "" {
			fmt.Printf("  API key:            %s\n", maskKey(cfg.APIKey))
		}
	}
	fmt.Printf("  Notification sound: %s\n", cfg.Sounds.Notification)
	fmt.Printf("  Completion sound:   %s\n", cfg.Sounds.Completion)
	fmt.Println()

	ok := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Install with these settings?").Value(&ok),
	))
	if err := form.Run(); err != nil {
		return wrapAbort(err)
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func wrapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
