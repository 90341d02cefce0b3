package save

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearExit(t *testing.T) {
	var ls LevelSave
	assert.False(t, ls.ExitCleared(0))

	ls.ClearExit(1)
	assert.Equal(t, []bool{false, true}, ls.ExitsCleared)
	assert.False(t, ls.ExitCleared(0))
	assert.True(t, ls.ExitCleared(1))
	assert.False(t, ls.ExitCleared(2))

	ls.ClearExit(5)
	assert.True(t, ls.ExitCleared(1))
	assert.True(t, ls.ExitCleared(5))
	assert.True(t, ls.AnExitCleared())
	assert.Len(t, ls.ExitsCleared, 6)
}

func TestClearExitInsertsAndShifts(t *testing.T) {
	ls := LevelSave{ExitsCleared: []bool{false, true}}
	ls.ClearExit(0)
	assert.Equal(t, []bool{true, false, true}, ls.ExitsCleared)
}

func TestClearExitDropsCheckpoint(t *testing.T) {
	var ls LevelSave
	ls.SetCheckpoint(Checkpoint{Level: 0, X: 5, Y: 10})
	require.NotNil(t, ls.Checkpoint)
	assert.Equal(t, Checkpoint{Level: 0, X: 5, Y: 10}, *ls.Checkpoint)

	ls.SetCheckpoint(Checkpoint{Level: 0, X: 10, Y: 20})
	assert.Equal(t, 10.0, ls.Checkpoint.X)

	ls.ClearExit(0)
	assert.Nil(t, ls.Checkpoint)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "L0", Key(0))
	assert.Equal(t, "L42", Key(42))
}

func TestGameSave(t *testing.T) {
	g := New("test")
	assert.NotEqual(t, [16]byte{}, [16]byte(g.ID))

	g.RecordCheckpoint(0, Checkpoint{Level: 3, X: 5, Y: 10})
	cp, ok := g.CheckpointFor(0)
	require.True(t, ok)
	assert.Equal(t, uint32(3), cp.Level)

	g.ClearExit(0, 0)
	g.ClearExit(0, 5)
	g.ClearExit(2, 1)
	assert.Equal(t, 3, g.NumClearedExits())

	_, ok = g.CheckpointFor(0)
	assert.False(t, ok)

	_, ok = g.LevelState(7)
	assert.False(t, ok)

	var nilSave *GameSave
	_, ok = nilSave.LevelState(0)
	assert.False(t, ok)
}
