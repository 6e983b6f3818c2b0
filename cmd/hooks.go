package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"cchime/internal/config"
	"cchime/internal/eventlog"
	"cchime/internal/hook"
	"cchime/internal/platform"
	"cchime/internal/sound"
	"cchime/internal/status"
	"cchime/internal/voice"
	"cchime/internal/voice/provider"
)

// Event log file names, one per hook type.
const (
	logPreToolUse   = "pre-tool-use"
	logNotification = "notification"
	logStop         = "stop"
)

// hookEnv gathers everything a hook handler needs. Hook processes must
// stay quiet on stdout, so logging is raised to warnings only.
type hookEnv struct {
	cfg      *config.Config
	logger   *eventlog.Logger
	resolver *sound.Resolver
	reporter *status.Reporter
}

func newHookEnv() (*hookEnv, error) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	return hookEnvFor(store), nil
}

// hookEnvFor builds the handler environment from a store. A missing or
// broken config never stops a hook; feedback degrades to the defaults.
func hookEnvFor(store *config.Store) *hookEnv {
	cfg, err := store.Load()
	if err != nil || cfg == nil {
		cfg = &config.Config{
			Mode:   config.ModeStandard,
			Sounds: config.SoundSelection{Notification: "chime", Completion: "gong"},
		}
	}

	return &hookEnv{
		cfg:      cfg,
		logger:   eventlog.New(store.LogsDir()),
		resolver: sound.NewResolver(store.SoundsDir()),
		reporter: status.NewReporter(),
	}
}

func handlePreToolUse(ctx context.Context, c *cli.Command) error {
	env, err := newHookEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return runPreToolUse(env, os.Stdin)
}

func runPreToolUse(env *hookEnv, input io.Reader) error {
	event, err := hook.ParsePreToolUseEvent(input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("malformed hook input: %v", err), 2)
	}

	if err := env.logger.Append(logPreToolUse, event); err != nil {
		log.Warn().Err(err).Msg("Failed to log event")
	}

	env.reporter.Set(status.StateWorking, event.TaskLabel())
	return nil
}

func handleNotify(ctx context.Context, c *cli.Command) error {
	env, err := newHookEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return runNotify(ctx, env, os.Stdin, c.Bool("notify"), c.Bool("speak"))
}

func runNotify(ctx context.Context, env *hookEnv, input io.Reader, notify, speak bool) error {
	event, err := hook.ParseNotificationEvent(input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("malformed hook input: %v", err), 2)
	}

	if err := env.logger.Append(logNotification, event); err != nil {
		log.Warn().Err(err).Msg("Failed to log event")
	}

	if !notify {
		return nil
	}

	env.reporter.Set(status.StateAttention, "Claude needs attention")

	if platform.Current() == platform.Windows || platform.IsWSL() {
		if err := platform.Notify("Claude Code", event.Message); err != nil {
			log.Debug().Err(err).Msg("Desktop notification failed")
		}
	}

	if speak && env.cfg.Mode == config.ModeTTS {
		env.speak(ctx, voice.NotificationSummary(event.Message))
		return nil
	}

	env.playOrFallback(env.cfg.Sounds.Notification)
	return nil
}

func handleStop(ctx context.Context, c *cli.Command) error {
	env, err := newHookEnv()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return runStop(ctx, env, os.Stdin, c.Bool("chat"))
}

func runStop(ctx context.Context, env *hookEnv, input io.Reader, chat bool) error {
	event, err := hook.ParseStopEvent(input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("malformed hook input: %v", err), 2)
	}

	if err := env.logger.Append(logStop, event); err != nil {
		log.Warn().Err(err).Msg("Failed to log event")
	}

	if chat && event.TranscriptPath != "" {
		if n, err := env.logger.AppendChatLog(event.TranscriptPath); err != nil {
			log.Warn().Err(err).Msg("Failed to consolidate chat log")
		} else {
			log.Debug().Int("records", n).Msg("Consolidated chat log")
		}
	}

	env.reporter.Set(status.StateDone, "Done")

	if env.logger.ShouldDebounce(eventlog.DefaultDebounceWindow) {
		log.Debug().Msg("Completion signal debounced")
		return nil
	}

	if env.cfg.Mode == config.ModeTTS {
		env.speak(ctx, voice.CompletionSummary(env.lastTaskLabel()))
		return nil
	}

	env.playOrFallback(env.cfg.Sounds.Completion)
	return nil
}

// lastTaskLabel recovers what the turn was working on from the newest
// pre-tool-use record, so the spoken summary can name the task.
func (env *hookEnv) lastTaskLabel() string {
	records := env.logger.Records(logPreToolUse)
	for i := len(records) - 1; i >= 0; i-- {
		for _, key := range []string{"tool_name", "task"} {
			if v, ok := records[i][key].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// playOrFallback runs the sound fallback chain: selected file, then the
// platform default. Failures go to stderr; the handler still exits zero so
// the host is never disrupted by missing audio.
func (env *hookEnv) playOrFallback(soundID string) {
	path, err := env.resolver.Resolve(soundID)
	if errors.Is(err, sound.ErrSilent) {
		return
	}
	if err == nil {
		if err := sound.Play(path); err == nil {
			return
		}
	}
	if err := sound.PlayDefault(); err != nil {
		fmt.Fprintf(os.Stderr, "cchime: could not play sound %q: %v\n", soundID, err)
	}
}

func (env *hookEnv) speak(ctx context.Context, text string) {
	p, err := provider.NewFactory().CreateProvider(ctx, env.cfg.TTSProvider(), env.cfg.APIKey)
	if err != nil {
		log.Warn().Err(err).Msg("TTS provider unavailable")
		fmt.Fprintf(os.Stderr, "cchime: %s\n", text)
		return
	}
	voice.NewSpeaker(p).Speak(ctx, text)
}
