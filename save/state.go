// Package save models player progress and persists it.
package save

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("save not found")

// Checkpoint is the last checkpoint touched while playing a level. Level is
// the level the checkpoint lives in, which can differ from the entry level
// the save state is keyed by.
type Checkpoint struct {
	Level uint32  `toml:"level"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
}

// LevelSave is the progress made in one level.
type LevelSave struct {
	ExitsCleared []bool      `toml:"exits_cleared"`
	Checkpoint   *Checkpoint `toml:"checkpoint,omitempty"`
}

// ClearExit marks exit n as cleared and drops the checkpoint. The cleared
// flag is inserted at n, shifting any later entries up by one.
func (l *LevelSave) ClearExit(n int) {
	if n < 0 {
		return
	}
	if n > len(l.ExitsCleared) {
		l.ExitsCleared = append(l.ExitsCleared, make([]bool, n-len(l.ExitsCleared))...)
	}
	l.ExitsCleared = append(l.ExitsCleared, false)
	copy(l.ExitsCleared[n+1:], l.ExitsCleared[n:])
	l.ExitsCleared[n] = true
	l.Checkpoint = nil
}

func (l LevelSave) ExitCleared(n int) bool {
	return n >= 0 && n < len(l.ExitsCleared) && l.ExitsCleared[n]
}

// AnExitCleared reports whether any exit of the level has been cleared.
func (l LevelSave) AnExitCleared() bool {
	for _, cleared := range l.ExitsCleared {
		if cleared {
			return true
		}
	}
	return false
}

func (l *LevelSave) SetCheckpoint(c Checkpoint) {
	l.Checkpoint = &c
}

// GameSave is one save slot.
type GameSave struct {
	ID          uuid.UUID            `toml:"id"`
	Name        string               `toml:"name"`
	LevelClears map[string]LevelSave `toml:"level_clears,omitempty"`
}

func New(name string) *GameSave {
	return &GameSave{
		ID:          uuid.New(),
		Name:        name,
		LevelClears: make(map[string]LevelSave),
	}
}

// Key returns the level_clears key for a level. TOML keys cannot be bare
// numbers, so ids are prefixed with L.
func Key(id uint32) string {
	return "L" + strconv.FormatUint(uint64(id), 10)
}

// LevelState returns the saved state of a level.
func (g *GameSave) LevelState(id uint32) (LevelSave, bool) {
	if g == nil {
		return LevelSave{}, false
	}
	ls, ok := g.LevelClears[Key(id)]
	return ls, ok
}

// CheckpointFor returns the checkpoint recorded for an entry level.
func (g *GameSave) CheckpointFor(id uint32) (Checkpoint, bool) {
	ls, ok := g.LevelState(id)
	if !ok || ls.Checkpoint == nil {
		return Checkpoint{}, false
	}
	return *ls.Checkpoint, true
}

func (g *GameSave) NumClearedExits() int {
	n := 0
	for _, ls := range g.LevelClears {
		for _, cleared := range ls.ExitsCleared {
			if cleared {
				n++
			}
		}
	}
	return n
}

// RecordCheckpoint stores cp against the entry level, creating the level's
// state when needed.
func (g *GameSave) RecordCheckpoint(entry uint32, cp Checkpoint) {
	g.update(entry, func(ls *LevelSave) { ls.SetCheckpoint(cp) })
}

// ClearExit clears an exit of the entry level.
func (g *GameSave) ClearExit(entry uint32, exit int) {
	g.update(entry, func(ls *LevelSave) { ls.ClearExit(exit) })
}

func (g *GameSave) update(entry uint32, fn func(*LevelSave)) {
	if g.LevelClears == nil {
		g.LevelClears = make(map[string]LevelSave)
	}
	ls := g.LevelClears[Key(entry)]
	fn(&ls)
	g.LevelClears[Key(entry)] = ls
}
