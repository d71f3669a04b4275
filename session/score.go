package session

import (
	"fmt"

	"github.com/reeltracker/reel"
	"github.com/reeltracker/reel/edit"
)

// Score returns the score view of the model: the song-level parameters and
// the note editing operations. Every mutation goes through the score undo
// history.
func (m *Model) Score() *ScoreModel { return (*ScoreModel)(m) }

type ScoreModel Model

// TrackCount returns the number of tracks.
func (sm *ScoreModel) TrackCount() int { return len(sm.d.Song.Score.Tracks) }

// Track returns the track at the given index, by value. The note slice is
// shared with the model.
func (sm *ScoreModel) Track(index int) reel.Track { return sm.d.Song.Score.Tracks[index] }

// song-level parameters

type bpmProp struct{ m *Model }

func (p bpmProp) Value() int         { return p.m.d.Song.BPM }
func (p bpmProp) SetValue(value int) { p.m.d.Song.BPM = value }

// BPM returns an Int representing the BPM of the current song.
func (sm *ScoreModel) BPM() Int { return MakeInt((*songBpm)(sm)) }

type songBpm ScoreModel

func (v *songBpm) Value() int            { return v.d.Song.BPM }
func (v *songBpm) Range() RangeInclusive { return RangeInclusive{1, 999} }
func (v *songBpm) SetValue(value int) bool {
	m := (*Model)(v)
	cmd := edit.NewSet("Set BPM", bpmProp{m}, m.d.Song.BPM, value)
	return m.score.DoCoalesced("Song.BPM", cmd) == nil
}

type lengthProp struct{ m *Model }

func (p lengthProp) Value() int         { return p.m.d.Song.Score.Length }
func (p lengthProp) SetValue(value int) { p.m.d.Song.Score.Length = value }

// Length returns an Int representing the length of the current song, in
// rows.
func (sm *ScoreModel) Length() Int { return MakeInt((*songLength)(sm)) }

type songLength ScoreModel

func (v *songLength) Value() int            { return v.d.Song.Score.Length }
func (v *songLength) Range() RangeInclusive { return RangeInclusive{1, 1 << 30} }
func (v *songLength) SetValue(value int) bool {
	m := (*Model)(v)
	cmd := edit.NewSet("Set Song Length", lengthProp{m}, m.d.Song.Score.Length, value)
	return m.score.DoCoalesced("Song.Length", cmd) == nil
}

type titleProp struct{ m *Model }

func (p titleProp) Value() string         { return p.m.d.Song.Title }
func (p titleProp) SetValue(value string) { p.m.d.Song.Title = value }

// Title returns a String representing the song title. Consecutive edits
// coalesce, so typing the title is one undo step.
func (sm *ScoreModel) Title() String { return MakeString((*songTitle)(sm)) }

type songTitle ScoreModel

func (v *songTitle) Value() string { return v.d.Song.Title }
func (v *songTitle) SetValue(value string) bool {
	m := (*Model)(v)
	cmd := edit.NewSet("Set Title", titleProp{m}, m.d.Song.Title, value)
	return m.score.DoCoalesced("Song.Title", cmd) == nil
}

// note properties; commands reach notes by ID so they keep working when
// undoing across note additions and deletions reorders the slice.

type notePos struct {
	m     *Model
	track int
	id    reel.ID
}

func (p notePos) Position() int {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		return n.Start
	}
	return 0
}

func (p notePos) SetPosition(value int) {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		n.Start = value
	}
}

type noteLen struct {
	m     *Model
	track int
	id    reel.ID
}

func (p noteLen) Duration() int {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		return n.Length
	}
	return 1
}

func (p noteLen) SetDuration(value int) {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		n.Length = value
	}
}

type notePitch struct {
	m     *Model
	track int
	id    reel.ID
}

func (p notePitch) Value() int {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		return n.Pitch
	}
	return 0
}

func (p notePitch) SetValue(value int) {
	if n := p.m.d.Song.Score.Tracks[p.track].FindNote(p.id); n != nil {
		n.Pitch = value
	}
}

// AddTrack appends a track with the given name, routed to the given mixer
// channel, as one undo step. It returns the index of the new track.
func (sm *ScoreModel) AddTrack(name string, channel int) (int, error) {
	m := (*Model)(sm)
	if channel < 0 || channel >= len(m.d.Song.Mixer.Channels) {
		return 0, fmt.Errorf("no mixer channel %d", channel)
	}
	index := len(m.d.Song.Score.Tracks)
	cmd := edit.NewInsert("Add Track", edit.NewSlice(&m.d.Song.Score.Tracks), index,
		reel.Track{Name: name, Channel: channel})
	if err := m.score.Do(cmd); err != nil {
		return 0, err
	}
	return index, nil
}

// DeleteTrack removes the track at the given index, with all its notes, as
// one undo step.
func (sm *ScoreModel) DeleteTrack(index int) error {
	m := (*Model)(sm)
	if index < 0 || index >= len(m.d.Song.Score.Tracks) {
		return fmt.Errorf("no track %d", index)
	}
	cmd := edit.NewRemove("Delete Track", edit.NewSlice(&m.d.Song.Score.Tracks), index)
	return m.score.Do(cmd)
}

// AddNote adds one note to the track, after the notes that order before
// it, as one undo step. It returns the ID of the new note.
func (sm *ScoreModel) AddNote(track, pitch, start, length int) (reel.ID, error) {
	m := (*Model)(sm)
	if track < 0 || track >= len(m.d.Song.Score.Tracks) {
		return reel.ID{}, fmt.Errorf("no track %d", track)
	}
	n := reel.Note{ID: reel.NewID(), Pitch: pitch, Velocity: 100, Start: start, Length: length}
	t := &m.d.Song.Score.Tracks[track]
	cmd := edit.NewInsert("Add Note", edit.NewSlice(&t.Notes), t.NoteIndex(start, pitch), n)
	if err := m.score.Do(cmd); err != nil {
		return reel.ID{}, err
	}
	return n.ID, nil
}

// DeleteNotes removes the notes at the given indices of the track as one
// undo step. Undo restores them at their original indices in their
// original order.
func (sm *ScoreModel) DeleteNotes(track int, indices ...int) error {
	m := (*Model)(sm)
	if err := sm.checkIndices(track, indices); err != nil {
		return err
	}
	t := &m.d.Song.Score.Tracks[track]
	desc := fmt.Sprintf("Delete %d Note(s)", len(indices))
	return m.score.Do(edit.NewRemove(desc, edit.NewSlice(&t.Notes), indices...))
}

// MoveNotes shifts the notes at the given indices by delta rows, as one
// undo step. Starts are clamped at row zero.
func (sm *ScoreModel) MoveNotes(track, delta int, indices ...int) error {
	m := (*Model)(sm)
	if err := sm.checkIndices(track, indices); err != nil {
		return err
	}
	t := m.d.Song.Score.Tracks[track]
	items := make([]edit.Placed, len(indices))
	for i, index := range indices {
		items[i] = notePos{m, track, t.Notes[index].ID}
	}
	desc := fmt.Sprintf("Move %d Note(s)", len(indices))
	return m.score.Do(edit.NewMove(desc, delta, items...))
}

// ResizeNotes grows or shrinks the notes at the given indices by delta
// rows, as one undo step. Lengths are clamped at one row.
func (sm *ScoreModel) ResizeNotes(track, delta int, indices ...int) error {
	m := (*Model)(sm)
	if err := sm.checkIndices(track, indices); err != nil {
		return err
	}
	t := m.d.Song.Score.Tracks[track]
	items := make([]edit.Sized, len(indices))
	for i, index := range indices {
		items[i] = noteLen{m, track, t.Notes[index].ID}
	}
	desc := fmt.Sprintf("Resize %d Note(s)", len(indices))
	return m.score.Do(edit.NewResize(desc, delta, items...))
}

// Transpose shifts the pitch of the notes at the given indices by delta
// semitones, as one undo step. Pitches out of the MIDI range are clamped.
func (sm *ScoreModel) Transpose(track, delta int, indices ...int) error {
	m := (*Model)(sm)
	if err := sm.checkIndices(track, indices); err != nil {
		return err
	}
	t := m.d.Song.Score.Tracks[track]
	b := m.score.BeginBatch(fmt.Sprintf("Transpose %d Note(s)", len(indices)))
	defer b.End()
	for _, index := range indices {
		n := t.Notes[index]
		pitch := max(min(n.Pitch+delta, reel.MaxPitch), 0)
		if pitch == n.Pitch {
			continue
		}
		if err := b.Do(edit.NewSet("Transpose Note", notePitch{m, track, n.ID}, n.Pitch, pitch)); err != nil {
			return err
		}
	}
	return nil
}

// PasteNotes inserts copies of the given notes into the track as one undo
// step. The copies get fresh IDs so pasting the same clipboard twice never
// collides.
func (sm *ScoreModel) PasteNotes(track int, notes []reel.Note) error {
	m := (*Model)(sm)
	if track < 0 || track >= len(m.d.Song.Score.Tracks) {
		return fmt.Errorf("no track %d", track)
	}
	t := &m.d.Song.Score.Tracks[track]
	b := m.score.BeginBatch(fmt.Sprintf("Paste %d Note(s)", len(notes)))
	defer b.End()
	for _, n := range notes {
		n.ID = reel.NewID()
		cmd := edit.NewInsert("Paste Note", edit.NewSlice(&t.Notes), t.NoteIndex(n.Start, n.Pitch), n)
		if err := b.Do(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (sm *ScoreModel) checkIndices(track int, indices []int) error {
	if track < 0 || track >= len(sm.d.Song.Score.Tracks) {
		return fmt.Errorf("no track %d", track)
	}
	n := len(sm.d.Song.Score.Tracks[track].Notes)
	for _, index := range indices {
		if index < 0 || index >= n {
			return fmt.Errorf("no note %d in track %d", index, track)
		}
	}
	if len(indices) == 0 {
		return fmt.Errorf("no notes given")
	}
	return nil
}
