package component

import "github.com/milk9111/temple/levels"

// LoadLevel is an instruction to load a level. The entity carrying it stays
// alive for as long as the level is loaded and collects the tags below.
type LoadLevel struct {
	ID levels.ID
}

var LoadLevelComponent = NewComponent[LoadLevel]()

// PreparedLevel holds the level files read and joined for a LoadLevel.
type PreparedLevel struct {
	Level levels.Level
}

var PreparedLevelComponent = NewComponent[PreparedLevel]()

// LevelLoadComplete is added to the LoadLevel entity once every sprite of the
// level has been spawned.
type LevelLoadComplete struct{}

var LevelLoadCompleteComponent = NewComponent[LevelLoadComplete]()

// UnloadLevel must be added to the LoadLevel entity. It despawns every
// LevelLoadedSprite together with the LoadLevel entity.
type UnloadLevel struct{}

var UnloadLevelComponent = NewComponent[UnloadLevel]()

// LevelLoadedSprite marks entities owned by the loaded level.
type LevelLoadedSprite struct{}

var LevelLoadedSpriteComponent = NewComponent[LevelLoadedSprite]()

// LevelSaveApplied marks a loaded level whose save state has been applied.
type LevelSaveApplied struct{}

var LevelSaveAppliedComponent = NewComponent[LevelSaveApplied]()

// LevelLoadFailed stops the load pipeline for its LoadLevel entity.
type LevelLoadFailed struct {
	Reason string
}

var LevelLoadFailedComponent = NewComponent[LevelLoadFailed]()

// WaitUntilUnloaded holds a LoadLevel back until the previous level is gone.
type WaitUntilUnloaded struct{}

var WaitUntilUnloadedComponent = NewComponent[WaitUntilUnloaded]()

// KeepMusic tells a LoadLevel not to restart the music that is playing.
type KeepMusic struct{}

var KeepMusicComponent = NewComponent[KeepMusic]()
