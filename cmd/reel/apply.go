package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reeltracker/reel"
	"github.com/reeltracker/reel/session"
)

var (
	applyOutput   string
	applyAtomic   bool
	applyRollback int
)

var applyCmd = &cobra.Command{
	Use:   "apply <songfile> <scriptfile>",
	Short: "Apply an edit script to a song",
	Long: `Apply reads a YAML edit script and performs its operations on the song
through the editing session, then writes the result. Each operation is one
undo step; with --atomic, a failing operation rolls back everything the
script already did and the song file is left untouched. With --rollback n,
the last n steps are undone again before writing, which is mostly useful
for checking what a script prefix does.

A script is a YAML list of operations, e.g.:

    - op: set_bpm
      value: 128
    - op: set_volume
      channel: 1
      value: 0.5
    - op: transpose
      track: 0
      indices: [0, 1, 2]
      delta: 12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newModel(args[0])
		if err != nil {
			return err
		}
		bytes, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		var script []editOp
		if err := yaml.Unmarshal(bytes, &script); err != nil {
			return fmt.Errorf("parsing script: %w", err)
		}
		if err := runScript(m, script); err != nil {
			return err
		}
		out := applyOutput
		if out == "" {
			out = args[0]
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		return m.WriteSong(f)
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "output file (default: edit in place)")
	applyCmd.Flags().BoolVar(&applyAtomic, "atomic", false, "roll back all operations if any fails")
	applyCmd.Flags().IntVar(&applyRollback, "rollback", 0, "undo the last n steps before writing")
	rootCmd.AddCommand(applyCmd)
}

// editOp is one operation of an edit script. Op selects the operation; the
// rest of the fields are its parameters and which ones matter depends on
// the operation.
type editOp struct {
	Op string `yaml:"op"`

	Channel int   `yaml:"channel"`
	Track   int   `yaml:"track"`
	Indices []int `yaml:"indices"`

	Value  float64     `yaml:"value"`
	On     bool        `yaml:"on"`
	Name   string      `yaml:"name"`
	Pitch  int         `yaml:"pitch"`
	Start  int         `yaml:"start"`
	Length int         `yaml:"length"`
	Delta  int         `yaml:"delta"`
	Notes  []reel.Note `yaml:"notes"`
}

func runScript(m *session.Model, script []editOp) error {
	// steps records which history each operation actually pushed to, so a
	// rollback can unwind in true reverse order. Coalesced or no-op
	// operations push nothing and record nothing.
	var steps []session.HistoryDomain
	for i, op := range script {
		scoreDepth := m.ScoreHistory().UndoDepth()
		mixerDepth := m.MixerHistory().UndoDepth()
		if err := runOp(m, op); err != nil {
			if applyAtomic {
				rollback(m, steps)
			}
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
		if m.ScoreHistory().UndoDepth() > scoreDepth {
			steps = append(steps, session.ScoreDomain)
		} else if m.MixerHistory().UndoDepth() > mixerDepth {
			steps = append(steps, session.MixerDomain)
		}
	}
	if applyRollback > 0 {
		if n := len(steps) - applyRollback; n >= 0 {
			steps = steps[n:]
		}
		rollback(m, steps)
	}
	return nil
}

func rollback(m *session.Model, steps []session.HistoryDomain) {
	for i := len(steps) - 1; i >= 0; i-- {
		h := m.ScoreHistory()
		if steps[i] == session.MixerDomain {
			h = m.MixerHistory()
		}
		h.UndoMultiple(1)
	}
}

func runOp(m *session.Model, op editOp) error {
	switch op.Op {
	case "set_bpm":
		m.Score().BPM().SetValue(int(op.Value))
	case "set_length":
		m.Score().Length().SetValue(int(op.Value))
	case "set_title":
		m.Score().Title().SetValue(op.Name)
	case "set_volume":
		if err := checkChannel(m, op.Channel); err != nil {
			return err
		}
		m.Mixer().Volume(op.Channel).SetValue(op.Value)
	case "set_pan":
		if err := checkChannel(m, op.Channel); err != nil {
			return err
		}
		m.Mixer().Pan(op.Channel).SetValue(op.Value)
	case "mute":
		if err := checkChannel(m, op.Channel); err != nil {
			return err
		}
		m.Mixer().Mute(op.Channel).SetValue(op.On)
	case "solo":
		if err := checkChannel(m, op.Channel); err != nil {
			return err
		}
		m.Mixer().Solo(op.Channel).SetValue(op.On)
	case "rename_channel":
		if err := checkChannel(m, op.Channel); err != nil {
			return err
		}
		m.Mixer().Name(op.Channel).SetValue(op.Name)
	case "add_channel":
		_, err := m.Mixer().AddChannel(op.Name)
		return err
	case "delete_channel":
		return m.Mixer().DeleteChannel(op.Channel)
	case "add_track":
		_, err := m.Score().AddTrack(op.Name, op.Channel)
		return err
	case "delete_track":
		return m.Score().DeleteTrack(op.Track)
	case "add_note":
		_, err := m.Score().AddNote(op.Track, op.Pitch, op.Start, op.Length)
		return err
	case "delete_notes":
		return m.Score().DeleteNotes(op.Track, op.Indices...)
	case "move":
		return m.Score().MoveNotes(op.Track, op.Delta, op.Indices...)
	case "resize":
		return m.Score().ResizeNotes(op.Track, op.Delta, op.Indices...)
	case "transpose":
		return m.Score().Transpose(op.Track, op.Delta, op.Indices...)
	case "paste":
		return m.Score().PasteNotes(op.Track, op.Notes)
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
	return nil
}

func checkChannel(m *session.Model, index int) error {
	if index < 0 || index >= m.Mixer().ChannelCount() {
		return fmt.Errorf("no mixer channel %d", index)
	}
	return nil
}
