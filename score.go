package reel

import "slices"

type (
	// Score represents the arrangement of notes in a song; just a list of
	// tracks and a Length (in rows) to know the desired length of the song.
	// Notes outside the range should just be considered silent.
	Score struct {
		Tracks []Track
		Length int // length of the song, in rows
	}

	// Track is a named lane of notes, routed to one mixer channel. Each
	// track owns its notes; one track cannot refer to another track's
	// notes. Note order in the slice is not significant — moves and
	// transposes leave it alone so undo can restore it exactly; consumers
	// that want start-row order call Sort on a copy.
	Track struct {
		Name    string `yaml:",omitempty"`
		Channel int    // index into Mixer.Channels
		Notes   []Note `yaml:",flow,omitempty"`
	}

	// Note is a single note event. Start and Length are in rows. The ID
	// stays stable for the lifetime of the note, surviving moves, resizes
	// and undo round trips, so the editing model can refer to notes by ID
	// instead of by index.
	Note struct {
		ID       ID
		Pitch    int // MIDI note number, 0..127
		Velocity int // 0..127
		Start    int
		Length   int
	}
)

const (
	MaxPitch    = 127
	MaxVelocity = 127
)

// Copy makes a deep copy of the score. Nil slices stay nil, so a copy
// still marshals identically to the original.
func (s Score) Copy() Score {
	if s.Tracks != nil {
		tracks := make([]Track, len(s.Tracks))
		for i, t := range s.Tracks {
			tracks[i] = t.Copy()
		}
		s.Tracks = tracks
	}
	return s
}

func (t Track) Copy() Track {
	t.Notes = slices.Clone(t.Notes)
	return t
}

// NumNotes returns the total note count over all tracks.
func (s *Score) NumNotes() int {
	ret := 0
	for _, t := range s.Tracks {
		ret += len(t.Notes)
	}
	return ret
}

// FindNote returns a pointer to the note with the given ID, or nil if no
// such note exists in the track. The pointer is only valid until the next
// mutation of the track's note slice.
func (t *Track) FindNote(id ID) *Note {
	for i := range t.Notes {
		if t.Notes[i].ID == id {
			return &t.Notes[i]
		}
	}
	return nil
}

// NoteIndex returns the number of notes that order before the given start
// and pitch. On a track in start-row order this is the index that keeps it
// ordered when inserting there; on any other track it is still a valid
// insertion index.
func (t *Track) NoteIndex(start, pitch int) int {
	ret := 0
	for _, n := range t.Notes {
		if n.Start < start || (n.Start == start && n.Pitch < pitch) {
			ret++
		}
	}
	return ret
}

// Sort orders the track's notes by start row, ties broken by pitch. Call
// it on a copy when a sorted view is needed; sorting a live track would
// make its note order differ from what the undo history saw.
func (t *Track) Sort() {
	slices.SortStableFunc(t.Notes, func(a, b Note) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.Pitch - b.Pitch
	})
}

// End returns the last row covered by any note in the track, plus one.
func (t *Track) End() int {
	ret := 0
	for _, n := range t.Notes {
		if e := n.Start + n.Length; e > ret {
			ret = e
		}
	}
	return ret
}
