package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGameFile(t *testing.T, contents string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, Join("/game", GameFilePath), []byte(contents), 0o644))
	return fs
}

func TestLoadGameFile(t *testing.T) {
	fs := writeGameFile(t, `
title = "Temple"
authors = ["A", "B"]
level_transition = "no_overworld"
level_order = [0, 2, 1]
`)

	gf, err := LoadGameFile(fs, "/game")
	require.NoError(t, err)
	assert.Equal(t, "Temple", gf.Title)
	assert.Equal(t, []string{"A", "B"}, gf.Authors)
	assert.Equal(t, NoOverworld, gf.LevelTransition)
	assert.Equal(t, []uint32{0, 2, 1}, gf.LevelOrder)
	assert.NoError(t, gf.Validate())

	next, ok := gf.NextLevel(2)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), next)
	_, ok = gf.NextLevel(1)
	assert.False(t, ok, "last level has no successor")
	_, ok = gf.NextLevel(9)
	assert.False(t, ok, "unknown level has no successor")
}

func TestLoadGameFileLegacyTransition(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want LevelTransition
	}{
		{
			name: "misspelled key",
			doc:  "title = \"Old\"\nauthors = []\nlevel_transistion = \"Overworld\"\n",
			want: Overworld,
		},
		{
			name: "misspelled key with order",
			doc:  "title = \"Old\"\nlevel_transistion = \"NoOverworld\"\nlevel_order = [0, 1]\n",
			want: NoOverworld,
		},
		{
			name: "current key with old value",
			doc:  "level_transition = \"NoOverworld\"\nlevel_order = [0]\n",
			want: NoOverworld,
		},
		{
			name: "current key wins",
			doc:  "level_transition = \"overworld\"\nlevel_transistion = \"NoOverworld\"\n",
			want: Overworld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gf, err := LoadGameFile(writeGameFile(t, tt.doc), "/game")
			require.NoError(t, err)
			assert.Equal(t, tt.want, gf.LevelTransition)
			assert.NoError(t, gf.Validate())
		})
	}
}

func TestParseLevelTransition(t *testing.T) {
	assert.Equal(t, Overworld, ParseLevelTransition("Overworld"))
	assert.Equal(t, NoOverworld, ParseLevelTransition("NoOverworld"))
	assert.Equal(t, NoOverworld, ParseLevelTransition("no_overworld"))
	assert.Equal(t, LevelTransition("teleporter"), ParseLevelTransition("teleporter"))
}

func TestLoadGameFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadGameFile(afero.NewMemMapFs(), "/game")
		assert.Error(t, err)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := LoadGameFile(writeGameFile(t, "title = "), "/game")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		gf      GameFile
		wantErr error
		anyErr  bool
	}{
		{"default", DefaultGameFile(), nil, false},
		{"overworld_without_order", GameFile{LevelTransition: Overworld}, nil, false},
		{"no_overworld_without_order", GameFile{LevelTransition: NoOverworld}, ErrNoLevelOrder, true},
		{"unknown", GameFile{LevelTransition: "sideways"}, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.gf.Validate()
			if !tc.anyErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	t.Setenv("TEMPLE_SAVES_BACKEND", "sqlite")
	v := NewViper()
	v.Set(KeyRoot, "/game")

	s := LoadSettings(v)
	assert.Equal(t, "/game", s.Root)
	assert.Equal(t, SaveBackendSQLite, s.SavesBackend)
	assert.Equal(t, Join("/game", DefaultSaveDir), s.SaveDir())

	s.SavesDir = "/elsewhere"
	assert.Equal(t, "/elsewhere", s.SaveDir())
}
