package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reeltracker/reel/edit"
)

// History is the view of one of the session's undo histories. The UI binds
// the Undo/Redo actions to menu items and reads the descriptions for the
// menu labels.
type History struct {
	m      *Model
	svc    *edit.Service
	domain HistoryDomain
}

func (m *Model) ScoreHistory() History { return History{m, m.score, ScoreDomain} }
func (m *Model) MixerHistory() History { return History{m, m.mixer, MixerDomain} }

func (h History) Undo() Action  { return MakeAction(undoHistory(h)) }
func (h History) Redo() Action  { return MakeAction(redoHistory(h)) }
func (h History) Clear() Action { return MakeAction(clearHistory(h)) }

type undoHistory History

func (h undoHistory) Enabled() bool { return h.svc.CanUndo() }
func (h undoHistory) Do() {
	if _, err := h.svc.Undo(); err != nil {
		h.m.alert(fmt.Sprintf("undo failed: %v", err))
	}
}

type redoHistory History

func (h redoHistory) Enabled() bool { return h.svc.CanRedo() }
func (h redoHistory) Do() {
	if _, err := h.svc.Redo(); err != nil {
		h.m.alert(fmt.Sprintf("redo failed: %v", err))
	}
}

type clearHistory History

func (h clearHistory) Enabled() bool { return h.svc.CanUndo() || h.svc.CanRedo() }
func (h clearHistory) Do()           { h.svc.Clear() }

// UndoMultiple unwinds up to n steps, stopping early at an empty stack or a
// failing command. It returns the number of steps actually undone.
func (h History) UndoMultiple(n int) (int, error) { return h.svc.UndoMultiple(n) }

// RedoMultiple reapplies up to n steps, stopping early at an empty stack or
// a failing command. It returns the number of steps actually redone.
func (h History) RedoMultiple(n int) (int, error) { return h.svc.RedoMultiple(n) }

func (h History) CanUndo() bool { return h.svc.CanUndo() }
func (h History) CanRedo() bool { return h.svc.CanRedo() }

func (h History) UndoDepth() int { return h.svc.UndoDepth() }
func (h History) RedoDepth() int { return h.svc.RedoDepth() }

// UndoDescriptions returns the descriptions of the undoable steps, most
// recent first.
func (h History) UndoDescriptions() []string { return h.svc.UndoDescriptions() }

// RedoDescriptions returns the descriptions of the redoable steps, most
// recent first.
func (h History) RedoDescriptions() []string { return h.svc.RedoDescriptions() }

// recovery file

// MarshalRecovery returns the recovery state of the model as JSON. The undo
// histories are not included; a recovered session starts with empty
// histories.
func (m *Model) MarshalRecovery() ([]byte, error) {
	return json.Marshal(m.d)
}

// UnmarshalRecovery replaces the session state with the state parsed from
// the given JSON. The histories are cleared, as the parsed state does not
// match whatever the commands in them refer to.
func (m *Model) UnmarshalRecovery(bytes []byte) error {
	var d modelData
	if err := json.Unmarshal(bytes, &d); err != nil {
		return fmt.Errorf("unmarshaling recovery: %w", err)
	}
	if err := d.Song.Validate(); err != nil {
		return fmt.Errorf("recovery file song: %w", err)
	}
	d.RecoveryFilePath = m.d.RecoveryFilePath // path comes from config, not the file
	m.d = d
	m.score.Clear()
	m.mixer.Clear()
	return nil
}

// SaveRecovery writes the recovery file, if a path is configured and the
// session has changed since the last write. It is intended to be called
// periodically and on shutdown.
func (m *Model) SaveRecovery() error {
	if m.d.RecoveryFilePath == "" || !m.d.ChangedSinceRecovery {
		return nil
	}
	bytes, err := m.MarshalRecovery()
	if err != nil {
		return fmt.Errorf("marshaling recovery: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.d.RecoveryFilePath), 0755); err != nil {
		return fmt.Errorf("creating recovery directory: %w", err)
	}
	if err := os.WriteFile(m.d.RecoveryFilePath, bytes, 0644); err != nil {
		return fmt.Errorf("writing recovery file: %w", err)
	}
	m.d.ChangedSinceRecovery = false
	return nil
}

// RemoveRecovery deletes the recovery file, if any. Called after a
// successful save, when the file on disk is newer than the recovery state.
func (m *Model) RemoveRecovery() {
	if m.d.RecoveryFilePath != "" {
		os.Remove(m.d.RecoveryFilePath)
	}
}
