package sound

import (
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"

	"cchime/internal/platform"
)

// Play dispatches an audio file to the platform player. Playback is
// fire-and-forget everywhere except Windows, where the scripted
// SoundPlayer only exposes a synchronous API.
func Play(path string) error {
	if platform.Current() == platform.Windows {
		return playWindowsSync(path)
	}

	var cmd *exec.Cmd
	switch {
	case platform.CommandAvailable("afplay"):
		cmd = exec.Command("afplay", path)
	case platform.CommandAvailable("paplay"):
		cmd = exec.Command("paplay", path)
	case platform.CommandAvailable("aplay"):
		cmd = exec.Command("aplay", path)
	case platform.CommandAvailable("ffplay"):
		cmd = exec.Command("ffplay", "-nodisp", "-autoexit", path)
	case platform.IsWSL() && platform.CommandAvailable("powershell.exe"):
		return playWindowsSync(path)
	default:
		return fmt.Errorf("no audio player found")
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start audio player: %w", err)
	}
	log.Debug().Str("player", cmd.Path).Str("file", path).Msg("Dispatched playback")
	return nil
}

// PlayWait plays an audio file and blocks until playback finishes. Used
// for synthesized speech, where the temp file is removed afterwards.
func PlayWait(path string) error {
	if platform.Current() == platform.Windows {
		return playWindowsSync(path)
	}

	var cmd *exec.Cmd
	switch {
	case platform.CommandAvailable("afplay"):
		cmd = exec.Command("afplay", path)
	case platform.CommandAvailable("paplay"):
		cmd = exec.Command("paplay", path)
	case platform.CommandAvailable("aplay"):
		cmd = exec.Command("aplay", path)
	case platform.CommandAvailable("ffplay"):
		cmd = exec.Command("ffplay", "-nodisp", "-autoexit", path)
	case platform.IsWSL() && platform.CommandAvailable("powershell.exe"):
		return playWindowsSync(path)
	default:
		return fmt.Errorf("no audio player found")
	}
	return cmd.Run()
}

func playWindowsSync(path string) error {
	bin := "powershell"
	if platform.IsWSL() {
		bin = "powershell.exe"
	}
	script := fmt.Sprintf(`(New-Object Media.SoundPlayer %q).PlaySync()`, path)
	return exec.Command(bin, "-NoProfile", "-Command", script).Run()
}

// PlayDefault plays the platform's stock notification sound, the last rung
// of the fallback chain when no custom or bundled file exists.
func PlayDefault() error {
	switch {
	case platform.Current() == platform.Darwin:
		return Play("/System/Library/Sounds/Glass.aiff")

	case platform.Current() == platform.Windows || platform.IsWSL():
		bin := "powershell"
		if platform.IsWSL() {
			bin = "powershell.exe"
		}
		return exec.Command(bin, "-NoProfile", "-Command",
			"[System.Media.SystemSounds]::Asterisk.Play()").Run()

	case platform.Current() == platform.Linux:
		for _, candidate := range []string{
			"/usr/share/sounds/freedesktop/stereo/complete.oga",
			"/usr/share/sounds/freedesktop/stereo/bell.oga",
		} {
			if err := Play(candidate); err == nil {
				return nil
			}
		}
		return fmt.Errorf("no default sound available")

	default:
		return fmt.Errorf("no default sound for this platform")
	}
}
