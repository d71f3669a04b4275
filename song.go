package reel

import (
	"errors"
	"fmt"
)

// Song is the root document edited by reel: a Score (the notes, arranged in
// one or more tracks) and a Mixer (the channel strips the tracks play
// through). BPM and RowsPerBeat set how fast the song should be played. BPM
// is an integer as it offers already quite much granularity for controlling
// the playback speed; this could be changed to a floating point in future if
// finer adjustments are necessary.
type Song struct {
	Title       string `yaml:",omitempty"`
	BPM         int
	RowsPerBeat int
	Score       Score
	Mixer       Mixer
}

// Copy makes a deep copy of the song, so that mutating the copy never
// affects the original. Recovery saving and the tests rely on this.
func (s Song) Copy() Song {
	s.Score = s.Score.Copy()
	s.Mixer = s.Mixer.Copy()
	return s
}

// Validate checks that the song is well formed: positive tempo fields, at
// least one mixer channel with faders in range, and every track routed to
// an existing channel.
func (s *Song) Validate() error {
	if s.BPM < 1 {
		return errors.New("BPM should be > 0")
	}
	if s.RowsPerBeat < 1 {
		return errors.New("RowsPerBeat should be > 0")
	}
	if len(s.Mixer.Channels) == 0 {
		return errors.New("song has no mixer channels")
	}
	for i, ch := range s.Mixer.Channels {
		if ch.Volume != ClampVolume(ch.Volume) {
			return fmt.Errorf("channel %d volume %v out of range", i, ch.Volume)
		}
		if ch.Pan != ClampPan(ch.Pan) {
			return fmt.Errorf("channel %d pan %v out of range", i, ch.Pan)
		}
	}
	for i, t := range s.Score.Tracks {
		if t.Channel < 0 || t.Channel >= len(s.Mixer.Channels) {
			return fmt.Errorf("track %d is routed to nonexistent channel %d", i, t.Channel)
		}
		for _, n := range t.Notes {
			if n.Start < 0 {
				return fmt.Errorf("track %d has a note starting before row 0", i)
			}
			if n.Length < 1 {
				return fmt.Errorf("track %d has a note with nonpositive length", i)
			}
		}
	}
	return nil
}
