// Package session implements the mutable editing state of reel: one song,
// one undo history per editing domain (score and mixer), and the
// capability views a UI binds to. All methods are to be called from the
// goroutine that owns the Model; the broker is the only concurrency
// boundary.
package session

import (
	"os"

	"github.com/reeltracker/reel"
	"github.com/reeltracker/reel/edit"
)

type (
	// modelData is the part of the model that gets saved to the recovery
	// file. The histories are deliberately not part of it: commands hold
	// live capability references and are meaningless in a fresh process.
	modelData struct {
		Song                 reel.Song
		FilePath             string
		ChangedSinceSave     bool
		RecoveryFilePath     string
		ChangedSinceRecovery bool
	}

	Model struct {
		d      modelData
		score  *edit.Service
		mixer  *edit.Service
		broker *Broker
		config Config
	}
)

// NewModel makes a session with the default song and empty histories. If
// the configured recovery file exists on disk, the session state is loaded
// from it instead.
func NewModel(broker *Broker, config Config) *Model {
	m := &Model{broker: broker, config: config}
	m.score = edit.NewService(
		edit.WithCapacity(config.MaxUndo),
		edit.WithCoalesceLimit(config.CoalesceLimit),
		edit.WithNotify(m.historyNotify(ScoreDomain)),
	)
	m.mixer = edit.NewService(
		edit.WithCapacity(config.MaxUndo),
		edit.WithCoalesceLimit(config.CoalesceLimit),
		edit.WithNotify(m.historyNotify(MixerDomain)),
	)
	m.d.Song = DefaultSong()
	m.d.RecoveryFilePath = config.RecoveryFile
	if m.d.RecoveryFilePath != "" {
		if bytes, err := os.ReadFile(m.d.RecoveryFilePath); err == nil {
			m.UnmarshalRecovery(bytes)
		}
	}
	return m
}

// Song returns the current song. The returned value shares memory with the
// model; callers that keep it should Copy it.
func (m *Model) Song() reel.Song { return m.d.Song }

// FilePath returns the path the song was loaded from or saved to, or empty
// for an unsaved song.
func (m *Model) FilePath() string { return m.d.FilePath }

// ChangedSinceSave reports whether the song has been edited since it was
// last written to disk.
func (m *Model) ChangedSinceSave() bool { return m.d.ChangedSinceSave }

func (m *Model) historyNotify(domain HistoryDomain) func(edit.Event) {
	return func(e edit.Event) {
		if e.Kind != edit.EventClear {
			m.d.ChangedSinceSave = true
			m.d.ChangedSinceRecovery = true
		}
		TrySend(m.broker.ToUI, MsgToUI{
			Kind:        HistoryChanged,
			Domain:      domain,
			UndoDepth:   e.UndoDepth,
			RedoDepth:   e.RedoDepth,
			Description: e.Description,
		})
	}
}

func (m *Model) alert(text string) {
	TrySend(m.broker.ToUI, MsgToUI{Kind: Alert, Alert: text})
}

// DefaultSong returns the song a fresh session starts with: a master and
// one instrument channel, and one empty track routed to the instrument
// channel.
func DefaultSong() reel.Song {
	return reel.Song{
		Title:       "Untitled",
		BPM:         100,
		RowsPerBeat: 4,
		Score: reel.Score{
			Length: 64,
			Tracks: []reel.Track{
				{Name: "Track 1", Channel: 1},
			},
		},
		Mixer: reel.Mixer{
			Channels: []reel.Channel{
				{ID: reel.NewID(), Name: "Master", Volume: 0.8},
				{ID: reel.NewID(), Name: "Channel 1", Volume: 0.8},
			},
		},
	}
}
