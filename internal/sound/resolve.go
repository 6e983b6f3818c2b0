package sound

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when neither a user override nor a bundled file
// exists for a sound.
var ErrNotFound = errors.New("sound file not found")

// ErrSilent is returned when the resolved option is the silent one.
var ErrSilent = errors.New("sound is silent")

// Resolver locates audio files for catalog ids. User overrides under
// overrideDir win over the files shipped next to the binary.
type Resolver struct {
	overrideDir string
	bundledDir  string
}

// NewResolver builds a resolver checking overrideDir first, then the
// sounds directory beside the running executable.
func NewResolver(overrideDir string) *Resolver {
	bundled := ""
	if exe, err := os.Executable(); err == nil {
		bundled = filepath.Join(filepath.Dir(exe), "sounds")
	}
	return &Resolver{overrideDir: overrideDir, bundledDir: bundled}
}

// NewResolverAt builds a resolver with both directories explicit.
func NewResolverAt(overrideDir, bundledDir string) *Resolver {
	return &Resolver{overrideDir: overrideDir, bundledDir: bundledDir}
}

// Resolve returns the path to play for a sound id. ErrSilent means the
// selection is intentionally quiet; ErrNotFound means both locations are
// missing the file.
func (r *Resolver) Resolve(id string) (string, error) {
	option, err := Lookup(id)
	if err != nil {
		return "", err
	}
	if option.Silent() {
		return "", ErrSilent
	}

	if r.overrideDir != "" {
		override := filepath.Join(r.overrideDir, *option.File)
		if _, err := os.Stat(override); err == nil {
			log.Debug().Str("path", override).Msg("Using sound override")
			return override, nil
		}
	}

	if r.bundledDir != "" {
		bundled := filepath.Join(r.bundledDir, *option.File)
		if _, err := os.Stat(bundled); err == nil {
			return bundled, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, *option.File)
}
