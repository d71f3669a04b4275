package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reeltracker/reel/session"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "reel is a music tracker song tool",
	Long: `reel inspects and edits tracker songs from the command line. Songs are
YAML or JSON files; edits are batched through the same undoable session
the UI uses, so a partially failing edit script can be rolled back.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", session.DefaultConfigPath(), "config file")
}

// newModel loads the config and the song at path into a fresh session.
func newModel(path string) (*session.Model, error) {
	config, err := session.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	config.RecoveryFile = "" // one-shot runs don't need crash recovery
	m := session.NewModel(session.NewBroker(), config)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening song: %w", err)
	}
	if err := m.ReadSong(f); err != nil {
		return nil, err
	}
	return m, nil
}
