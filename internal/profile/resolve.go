package profile

import (
	"os"

	"github.com/matheus3301/minda/internal/config"
)

// DefaultName is used when nothing else selects a profile.
const DefaultName = "main"

// EnvProfile selects the profile when no flag is given.
const EnvProfile = "MINDA_PROFILE"

// Resolve determines the active profile name using precedence:
// 1. flagOverride (--profile flag)
// 2. $MINDA_PROFILE
// 3. config.toml default_profile
// 4. "main"
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	if env := os.Getenv(EnvProfile); env != "" {
		return env
	}
	cfg, err := config.Load(ConfigPath())
	if err == nil && cfg.DefaultProfile != "" {
		return cfg.DefaultProfile
	}
	return DefaultName
}
