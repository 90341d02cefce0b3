package config

import "path/filepath"

// Locations relative to the game root.
const (
	AssetDir       = "assets"
	GameFilePath   = "assets/game.toml"
	LevelDir       = "assets/levels"
	LevelMapDir    = "assets/levelmaps"
	TextureDir     = "assets/textures"
	SpriteTexDir   = "assets/textures/sprites"
	MusicDir       = "assets/audio/music"
	SfxDir         = "assets/audio/sfx"
	DefaultSaveDir = "saves"
)

// Join resolves a root-relative path against root.
func Join(root string, parts ...string) string {
	return filepath.Join(append([]string{root}, parts...)...)
}
