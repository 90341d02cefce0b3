package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Setting keys. Each can be overridden with TEMPLE_<KEY>, dots become
// underscores.
const (
	KeyRoot         = "root"
	KeySavesBackend = "saves.backend"
	KeySavesDir     = "saves.dir"
	KeyVerbose      = "verbose"
)

const (
	SaveBackendFile   = "file"
	SaveBackendSQLite = "sqlite"
)

// Settings are the runtime options that are not part of game.toml.
type Settings struct {
	Root         string
	SavesBackend string
	SavesDir     string
	Verbose      bool
}

// NewViper returns a viper instance with defaults and env binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRoot, ".")
	v.SetDefault(KeySavesBackend, SaveBackendFile)
	v.SetDefault(KeySavesDir, DefaultSaveDir)
	v.SetEnvPrefix("TEMPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		Root:         v.GetString(KeyRoot),
		SavesBackend: v.GetString(KeySavesBackend),
		SavesDir:     v.GetString(KeySavesDir),
		Verbose:      v.GetBool(KeyVerbose),
	}
}

// SaveDir resolves the save directory against the game root.
func (s Settings) SaveDir() string {
	if filepath.IsAbs(s.SavesDir) {
		return s.SavesDir
	}
	return Join(s.Root, s.SavesDir)
}
