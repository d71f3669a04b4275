package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config holds the session settings read from the user's config file.
type Config struct {
	// MaxUndo is the capacity of each undo history; the oldest steps are
	// dropped beyond it.
	MaxUndo int `toml:"max_undo"`
	// CoalesceLimit caps how many consecutive edits of the same parameter
	// merge into one undo step.
	CoalesceLimit int `toml:"coalesce_limit"`
	// RecoveryFile is where the session state is periodically saved, so a
	// crashed session can be recovered. Empty disables recovery.
	RecoveryFile string `toml:"recovery_file"`
}

func DefaultConfig() Config {
	return Config{
		MaxUndo:       256,
		CoalesceLimit: 10,
		RecoveryFile:  filepath.Join(xdg.StateHome, "reel", "recovery.json"),
	}
}

// DefaultConfigPath returns the path LoadConfig is normally pointed at.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "reel", "config.toml")
}

// LoadConfig reads the config from the given TOML file. A missing file is
// not an error; the defaults are returned, so a fresh install works without
// any config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if config.MaxUndo < 1 {
		return config, fmt.Errorf("max_undo must be at least 1, got %d", config.MaxUndo)
	}
	if config.CoalesceLimit < 1 {
		return config, fmt.Errorf("coalesce_limit must be at least 1, got %d", config.CoalesceLimit)
	}
	return config, nil
}
