package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// LevelTransition selects how players move from one level to the next.
type LevelTransition string

const (
	// Overworld loads the player into an overworld that links to levels.
	Overworld LevelTransition = "overworld"
	// NoOverworld plays levels back to back in LevelOrder.
	NoOverworld LevelTransition = "no_overworld"
)

// legacyTransitions maps the level_transition values of older game files.
var legacyTransitions = map[string]LevelTransition{
	"Overworld":   Overworld,
	"NoOverworld": NoOverworld,
}

// ParseLevelTransition accepts both current and older spellings. Unknown
// values are returned unchanged for Validate to reject.
func ParseLevelTransition(s string) LevelTransition {
	if t, ok := legacyTransitions[s]; ok {
		return t
	}
	return LevelTransition(s)
}

func levelTransitionHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(LevelTransition("")) {
		return data, nil
	}
	return ParseLevelTransition(data.(string)), nil
}

const (
	keyLevelTransition = "level_transition"
	// keyLevelTransistion is the misspelled key older game files use.
	keyLevelTransistion = "level_transistion"
)

var ErrNoLevelOrder = errors.New("no_overworld level_transition requires a level_order")

// GameFile is the contents of game.toml.
type GameFile struct {
	Title           string          `mapstructure:"title"`
	Authors         []string        `mapstructure:"authors"`
	LevelTransition LevelTransition `mapstructure:"level_transition"`
	LevelOrder      []uint32        `mapstructure:"level_order"`
}

func DefaultGameFile() GameFile {
	return GameFile{
		Title:           "Temple",
		Authors:         []string{"Temple Authors"},
		LevelTransition: NoOverworld,
		LevelOrder:      []uint32{0},
	}
}

// LoadGameFile reads game.toml under root.
func LoadGameFile(fs afero.Fs, root string) (GameFile, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(Join(root, GameFilePath))
	v.SetConfigType("toml")

	def := DefaultGameFile()
	v.SetDefault("title", def.Title)
	v.SetDefault(keyLevelTransition, string(def.LevelTransition))

	if err := v.ReadInConfig(); err != nil {
		return GameFile{}, fmt.Errorf("read %s: %w", GameFilePath, err)
	}
	// Registered after reading so viper moves the value to the current key.
	if v.InConfig(keyLevelTransistion) && !v.InConfig(keyLevelTransition) {
		v.RegisterAlias(keyLevelTransistion, keyLevelTransition)
	}

	var gf GameFile
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		levelTransitionHook,
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&gf, hook); err != nil {
		return GameFile{}, fmt.Errorf("decode %s: %w", GameFilePath, err)
	}
	return gf, nil
}

// Validate checks cross-field rules that decoding cannot express.
func (g GameFile) Validate() error {
	switch g.LevelTransition {
	case Overworld:
	case NoOverworld:
		if len(g.LevelOrder) == 0 {
			return ErrNoLevelOrder
		}
	default:
		return fmt.Errorf("unknown level_transition %q", g.LevelTransition)
	}
	return nil
}

// NextLevel returns the level after current in LevelOrder.
func (g GameFile) NextLevel(current uint32) (uint32, bool) {
	for i, id := range g.LevelOrder {
		if id == current && i+1 < len(g.LevelOrder) {
			return g.LevelOrder[i+1], true
		}
	}
	return 0, false
}
