package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reeltracker/reel/session"
)

func newTestModel(t *testing.T) *session.Model {
	t.Helper()
	config := session.DefaultConfig()
	config.RecoveryFile = ""
	return session.NewModel(session.NewBroker(), config)
}

func TestMixerUndoRedo(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.Mixer().Volume(1).SetValue(0.5))
	require.True(t, m.Mixer().Pan(1).SetValue(-0.3))
	assert.Equal(t, 0.5, m.Mixer().Channel(1).Volume)
	assert.Equal(t, -0.3, m.Mixer().Channel(1).Pan)

	m.MixerHistory().Undo().Do()
	assert.Equal(t, 0.5, m.Mixer().Channel(1).Volume)
	assert.Equal(t, 0.0, m.Mixer().Channel(1).Pan, "the most recent edit reverts first")

	m.MixerHistory().Undo().Do()
	assert.Equal(t, 0.8, m.Mixer().Channel(1).Volume)
	assert.False(t, m.MixerHistory().CanUndo())

	m.MixerHistory().Redo().Do()
	assert.Equal(t, 0.5, m.Mixer().Channel(1).Volume)
	assert.Equal(t, 0.0, m.Mixer().Channel(1).Pan)
}

func TestMixerFaderCoalescing(t *testing.T) {
	m := newTestModel(t)
	for _, v := range []float64{0.7, 0.6, 0.5, 0.4} {
		require.True(t, m.Mixer().Volume(1).SetValue(v))
	}
	assert.Equal(t, 1, m.MixerHistory().UndoDepth(), "a fader drag is one undo step")
	m.MixerHistory().Undo().Do()
	assert.Equal(t, 0.8, m.Mixer().Channel(1).Volume, "undo restores the value from before the drag")
}

func TestMixerVolumeAndPanDoNotCoalesce(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.Mixer().Volume(1).SetValue(0.5))
	require.True(t, m.Mixer().Pan(1).SetValue(0.5))
	require.True(t, m.Mixer().Volume(1).SetValue(0.3))
	assert.Equal(t, 3, m.MixerHistory().UndoDepth())
}

func TestMixerSetValueRejectsUnchangedAndOutOfRange(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.Mixer().Volume(1).SetValue(0.8), "setting the current value is not an edit")
	assert.True(t, m.Mixer().Volume(1).SetValue(7), "out-of-range values clamp")
	assert.Equal(t, 1.0, m.Mixer().Channel(1).Volume)
	assert.Equal(t, 1, m.MixerHistory().UndoDepth())
}

func TestMixerMuteDescriptions(t *testing.T) {
	m := newTestModel(t)
	m.Mixer().Mute(1).Toggle()
	m.Mixer().Mute(1).Toggle()
	assert.Equal(t, []string{"Unmute (Channel 1)", "Mute (Channel 1)"}, m.MixerHistory().UndoDescriptions())
}

func TestAddDeleteChannel(t *testing.T) {
	m := newTestModel(t)
	index, err := m.Mixer().AddChannel("Aux")
	require.NoError(t, err)
	assert.Equal(t, 2, index)
	require.NoError(t, m.Mixer().DeleteChannel(2))
	assert.Equal(t, 2, m.Mixer().ChannelCount())
	m.MixerHistory().Undo().Do()
	assert.Equal(t, "Aux", m.Mixer().Channel(2).Name)
}

func TestDeleteChannelGuards(t *testing.T) {
	m := newTestModel(t)
	assert.Error(t, m.Mixer().DeleteChannel(1), "channel 1 is in use by the default track")
	require.NoError(t, m.Score().DeleteTrack(0))
	require.NoError(t, m.Mixer().DeleteChannel(1))
	assert.Error(t, m.Mixer().DeleteChannel(0), "the last channel cannot be deleted")
}

func TestDeleteChannelReroutesTracks(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.Score().DeleteTrack(0))
	_, err := m.Mixer().AddChannel("Aux")
	require.NoError(t, err)
	_, err = m.Score().AddTrack("Lead", 2)
	require.NoError(t, err)
	depth := m.MixerHistory().UndoDepth()

	// channel 1 is unused; deleting it shifts the track's route down
	require.NoError(t, m.Mixer().DeleteChannel(1))
	assert.Equal(t, 1, m.Score().Track(0).Channel)
	assert.Equal(t, "Aux", m.Mixer().Channel(1).Name)
	assert.Equal(t, depth+1, m.MixerHistory().UndoDepth(), "delete and reroute are one undo step")

	m.MixerHistory().Undo().Do()
	assert.Equal(t, 2, m.Score().Track(0).Channel)
	assert.Equal(t, "Channel 1", m.Mixer().Channel(1).Name)
}

func TestAddDeleteNotes(t *testing.T) {
	m := newTestModel(t)
	for _, start := range []int{8, 0, 4} {
		_, err := m.Score().AddNote(0, 60, start, 2)
		require.NoError(t, err)
	}
	track := m.Score().Track(0)
	require.Len(t, track.Notes, 3)
	assert.Equal(t, []int{0, 4, 8}, []int{track.Notes[0].Start, track.Notes[1].Start, track.Notes[2].Start},
		"notes insert at their sorted position")

	require.NoError(t, m.Score().DeleteNotes(0, 0, 2))
	require.Len(t, m.Score().Track(0).Notes, 1)
	assert.Equal(t, 4, m.Score().Track(0).Notes[0].Start)

	m.ScoreHistory().Undo().Do()
	track = m.Score().Track(0)
	require.Len(t, track.Notes, 3)
	assert.Equal(t, []int{0, 4, 8}, []int{track.Notes[0].Start, track.Notes[1].Start, track.Notes[2].Start},
		"undo restores the notes at their original indices")
}

func TestMoveResizeNotes(t *testing.T) {
	m := newTestModel(t)
	_, err := m.Score().AddNote(0, 60, 2, 4)
	require.NoError(t, err)
	_, err = m.Score().AddNote(0, 64, 8, 4)
	require.NoError(t, err)

	require.NoError(t, m.Score().MoveNotes(0, -4, 0, 1))
	assert.Equal(t, 0, m.Score().Track(0).Notes[0].Start, "moves clamp at row zero")
	assert.Equal(t, 4, m.Score().Track(0).Notes[1].Start)

	require.NoError(t, m.Score().ResizeNotes(0, -10, 0))
	assert.Equal(t, 1, m.Score().Track(0).Notes[0].Length, "resizes clamp at one row")

	m.ScoreHistory().Undo().Do()
	m.ScoreHistory().Undo().Do()
	assert.Equal(t, 2, m.Score().Track(0).Notes[0].Start)
	assert.Equal(t, 4, m.Score().Track(0).Notes[0].Length)
	assert.Equal(t, 8, m.Score().Track(0).Notes[1].Start)
}

func TestAddNoteAfterMove(t *testing.T) {
	m := newTestModel(t)
	_, err := m.Score().AddNote(0, 60, 0, 2)
	require.NoError(t, err)
	_, err = m.Score().AddNote(0, 64, 8, 2)
	require.NoError(t, err)

	// moving the first note past the second leaves the slice out of
	// start-row order; later inserts must still land at valid indices
	require.NoError(t, m.Score().MoveNotes(0, 12, 0))
	_, err = m.Score().AddNote(0, 60, 10, 1)
	require.NoError(t, err)
	track := m.Score().Track(0)
	require.Len(t, track.Notes, 3)
	assert.Equal(t, 10, track.Notes[1].Start, "inserted after the one note that precedes it")

	m.ScoreHistory().Undo().Do()
	m.ScoreHistory().Undo().Do()
	track = m.Score().Track(0)
	require.Len(t, track.Notes, 2)
	assert.Equal(t, []int{0, 8}, []int{track.Notes[0].Start, track.Notes[1].Start},
		"undo restores both the starts and the original slice order")
}

func TestTransposeIsOneStep(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		_, err := m.Score().AddNote(0, 60+i, i*4, 2)
		require.NoError(t, err)
	}
	depth := m.ScoreHistory().UndoDepth()
	require.NoError(t, m.Score().Transpose(0, 12, 0, 1, 2))
	assert.Equal(t, depth+1, m.ScoreHistory().UndoDepth())
	assert.Equal(t, []string{"Transpose 3 Note(s)"}, m.ScoreHistory().UndoDescriptions()[:1])
	for i := 0; i < 3; i++ {
		assert.Equal(t, 72+i, m.Score().Track(0).Notes[i].Pitch)
	}
	m.ScoreHistory().Undo().Do()
	for i := 0; i < 3; i++ {
		assert.Equal(t, 60+i, m.Score().Track(0).Notes[i].Pitch)
	}
}

func TestPasteNotes(t *testing.T) {
	m := newTestModel(t)
	_, err := m.Score().AddNote(0, 60, 0, 2)
	require.NoError(t, err)
	clipboard := m.Score().Track(0).Copy().Notes
	depth := m.ScoreHistory().UndoDepth()

	require.NoError(t, m.Score().PasteNotes(0, clipboard))
	require.Len(t, m.Score().Track(0).Notes, 2)
	assert.NotEqual(t, m.Score().Track(0).Notes[0].ID, m.Score().Track(0).Notes[1].ID,
		"pasted notes get fresh IDs")
	assert.Equal(t, depth+1, m.ScoreHistory().UndoDepth(), "a paste is one undo step")

	m.ScoreHistory().Undo().Do()
	require.Len(t, m.Score().Track(0).Notes, 1)
}

func TestBPMCoalescing(t *testing.T) {
	m := newTestModel(t)
	bpm := m.Score().BPM()
	for i := 0; i < 5; i++ {
		require.True(t, bpm.Add(1))
	}
	assert.Equal(t, 105, bpm.Value())
	assert.Equal(t, 1, m.ScoreHistory().UndoDepth(), "keyboard-repeat BPM taps are one undo step")
	m.ScoreHistory().Undo().Do()
	assert.Equal(t, 100, bpm.Value())
}

func TestHistoriesAreIndependent(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.Score().BPM().SetValue(128))
	require.True(t, m.Mixer().Volume(1).SetValue(0.5))
	assert.Equal(t, 1, m.ScoreHistory().UndoDepth())
	assert.Equal(t, 1, m.MixerHistory().UndoDepth())

	m.ScoreHistory().Undo().Do()
	assert.Equal(t, 100, m.Score().BPM().Value())
	assert.Equal(t, 0.5, m.Mixer().Channel(1).Volume, "undoing the score leaves the mixer alone")
}

func TestUndoRedoActionsEnabled(t *testing.T) {
	m := newTestModel(t)
	h := m.ScoreHistory()
	assert.False(t, h.Undo().Enabled())
	assert.False(t, h.Redo().Enabled())
	assert.False(t, h.Clear().Enabled())

	require.True(t, m.Score().BPM().SetValue(128))
	assert.True(t, h.Undo().Enabled())
	assert.True(t, h.Clear().Enabled())

	h.Undo().Do()
	assert.False(t, h.Undo().Enabled())
	assert.True(t, h.Redo().Enabled())

	h.Clear().Do()
	assert.False(t, h.Redo().Enabled())
	assert.Equal(t, 100, m.Score().BPM().Value(), "clear discards the history but not the edit")
}

func TestUndoMultiple(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.Mixer().Volume(1).SetValue(0.5))
	require.True(t, m.Mixer().Pan(1).SetValue(0.5))
	m.Mixer().Mute(1).Toggle()
	n, err := m.MixerHistory().UndoMultiple(5)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "undoing past the beginning stops early")
	assert.Equal(t, 0.8, m.Mixer().Channel(1).Volume)
	n, err = m.MixerHistory().RedoMultiple(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0.5, m.Mixer().Channel(1).Pan)
	assert.False(t, m.Mixer().Channel(1).Mute)
}

func TestHistoryNotifications(t *testing.T) {
	broker := session.NewBroker()
	config := session.DefaultConfig()
	config.RecoveryFile = ""
	m := session.NewModel(broker, config)
	require.True(t, m.Mixer().Volume(1).SetValue(0.5))
	select {
	case msg := <-broker.ToUI:
		assert.Equal(t, session.HistoryChanged, msg.Kind)
		assert.Equal(t, session.MixerDomain, msg.Domain)
		assert.Equal(t, 1, msg.UndoDepth)
		assert.Equal(t, "Set Volume (Channel 1)", msg.Description)
	default:
		t.Fatal("expected a HistoryChanged message")
	}
	assert.True(t, m.ChangedSinceSave())
}

// FuzzModelUnwind drives the session with an arbitrary edit sequence and
// checks that fully unwinding both histories restores the starting song.
func FuzzModelUnwind(f *testing.F) {
	f.Add([]byte{0, 100, 1, 200, 4, 3, 2, 1, 5, 7})
	f.Add([]byte{3, 0, 4, 8, 5, 5, 5, 9, 6, 0, 7, 12, 8, 1})
	f.Add([]byte{5, 1, 5, 1, 6, 200, 0, 0, 8, 250, 3, 3, 4, 1})
	f.Fuzz(func(t *testing.T, data []byte) {
		m := newTestModel(t)
		want, err := yaml.Marshal(m.Song())
		require.NoError(t, err)
		for i := 0; i+1 < len(data); i += 2 {
			op, arg := data[i], int(data[i+1])
			switch op % 9 {
			case 0:
				m.Mixer().Volume(arg%m.Mixer().ChannelCount()).SetValue(float64(arg) / 255)
			case 1:
				m.Mixer().Pan(arg%m.Mixer().ChannelCount()).SetValue(float64(arg)/128 - 1)
			case 2:
				m.Mixer().Mute(arg % m.Mixer().ChannelCount()).Toggle()
			case 3:
				m.Mixer().AddChannel("Fuzz")
			case 4:
				m.Mixer().DeleteChannel(arg % m.Mixer().ChannelCount())
			case 5:
				m.Score().AddNote(0, arg%128, arg%16, arg%4+1)
			case 6:
				m.Score().DeleteNotes(0, arg)
			case 7:
				m.Score().Transpose(0, arg%25-12, 0)
			case 8:
				m.Score().BPM().SetValue(arg)
			}
		}
		_, err = m.ScoreHistory().UndoMultiple(1 << 30)
		require.NoError(t, err)
		_, err = m.MixerHistory().UndoMultiple(1 << 30)
		require.NoError(t, err)
		got, err := yaml.Marshal(m.Song())
		require.NoError(t, err)
		require.Equal(t, string(want), string(got))
	})
}
