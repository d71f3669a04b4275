package edit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltracker/reel/edit"
)

func TestBatchCommitsAsOneStep(t *testing.T) {
	s := edit.NewService()
	values := []int{0, 0, 0}
	b := s.BeginBatch("Edit 3 Things")
	for i := range values {
		require.NoError(t, b.Do(set(&values[i], 7)))
		assert.Equal(t, 7, values[i], "children apply immediately, before End")
	}
	assert.Equal(t, 0, s.UndoDepth(), "nothing reaches the history until End")
	b.End()
	require.Equal(t, 1, s.UndoDepth())
	assert.Equal(t, []string{"Edit 3 Things"}, s.UndoDescriptions())

	ok, err := s.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 0}, values, "one undo reverts all children")

	ok, err = s.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{7, 7, 7}, values)
}

func TestBatchEmpty(t *testing.T) {
	s := edit.NewService()
	b := s.BeginBatch("Nothing")
	b.End()
	assert.False(t, s.CanUndo(), "an empty batch commits nothing")
}

func TestBatchEndIdempotent(t *testing.T) {
	s := edit.NewService()
	v := 0
	b := s.BeginBatch("Edit")
	require.NoError(t, b.Do(set(&v, 1)))
	b.End()
	b.End()
	assert.Equal(t, 1, s.UndoDepth())
}

func TestBatchDoesNotReexecuteOnEnd(t *testing.T) {
	s := edit.NewService()
	var log []string
	b := s.BeginBatch("Edit")
	require.NoError(t, b.Do(logCmd{name: "a", log: &log}))
	b.End()
	assert.Equal(t, []string{"a+"}, log, "End pushes the recorded commands without re-running them")
}

func TestBatchPartialFailure(t *testing.T) {
	s := edit.NewService()
	v, w := 0, 0
	fail := errors.New("nope")
	b := s.BeginBatch("Edit")
	require.NoError(t, b.Do(set(&v, 1)))
	require.ErrorIs(t, b.Do(failCmd{execErr: fail, target: &w}), fail)
	assert.Equal(t, 1, b.Len(), "the failed child is not recorded")
	b.End()
	require.Equal(t, 1, s.UndoDepth(), "the partial batch still commits")
	ok, err := s.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestBatchClearsRedo(t *testing.T) {
	s := edit.NewService()
	v := 0
	require.NoError(t, s.Do(set(&v, 1)))
	_, err := s.Undo()
	require.NoError(t, err)
	require.True(t, s.CanRedo())
	b := s.BeginBatch("Edit")
	require.NoError(t, b.Do(set(&v, 5)))
	b.End()
	assert.False(t, s.CanRedo())
}

func TestBatchBreaksCoalescing(t *testing.T) {
	s := edit.NewService()
	v, w := 0, 0
	require.NoError(t, s.DoCoalesced("fader", set(&v, 1)))
	b := s.BeginBatch("Edit")
	require.NoError(t, b.Do(set(&w, 1)))
	b.End()
	require.NoError(t, s.DoCoalesced("fader", set(&v, 2)))
	assert.Equal(t, 3, s.UndoDepth(), "a committed batch ends any coalescing run")
}
