package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showNotes bool

var showCmd = &cobra.Command{
	Use:   "show <songfile>",
	Short: "Print a summary of a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newModel(args[0])
		if err != nil {
			return err
		}
		song := m.Song()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", song.Title)
		fmt.Fprintf(out, "  %d BPM, %d rows per beat, %d rows, %d note(s)\n",
			song.BPM, song.RowsPerBeat, song.Score.Length, song.Score.NumNotes())
		fmt.Fprintf(out, "Tracks:\n")
		for i, t := range song.Score.Tracks {
			fmt.Fprintf(out, "  %2d: %-20s channel %d, %d note(s), ends at row %d\n",
				i, t.Name, t.Channel, len(t.Notes), t.End())
			if showNotes {
				sorted := t.Copy()
				sorted.Sort()
				for _, n := range sorted.Notes {
					fmt.Fprintf(out, "      row %4d len %3d pitch %3d vel %3d\n",
						n.Start, n.Length, n.Pitch, n.Velocity)
				}
			}
		}
		fmt.Fprintf(out, "Mixer:\n")
		if song.Mixer.AnySolo() {
			fmt.Fprintf(out, "  (solo active: non-soloed channels are silent)\n")
		}
		for i, ch := range song.Mixer.Channels {
			var flags []string
			if ch.Mute {
				flags = append(flags, "muted")
			}
			if ch.Solo {
				flags = append(flags, "solo")
			}
			suffix := ""
			if len(flags) > 0 {
				suffix = " [" + strings.Join(flags, ", ") + "]"
			}
			fmt.Fprintf(out, "  %2d: %-20s vol %.2f pan %+.2f%s\n",
				i, ch.Name, ch.Volume, ch.Pan, suffix)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showNotes, "notes", false, "list every note per track")
	rootCmd.AddCommand(showCmd)
}
