// Package levels reads and writes level files. A level is split across a
// TOML manifest, which defines the sprites a level uses, and a binary level
// map, which places those sprites on the grid.
package levels

import (
	"errors"
	"fmt"
)

// ID identifies a level. Manifests and maps are named after it.
type ID = uint32

// SpriteSize converts one grid unit to pixels.
const SpriteSize = 16

var ErrUnknownSprite = errors.New("unknown sprite entry")

// Manifest is the structure of a level's .toml file.
type Manifest struct {
	Name    string        `toml:"name"`
	Music   string        `toml:"music"`
	Sprites []SpriteEntry `toml:"sprites"`
}

// SpriteEntry defines one kind of sprite used by a level.
type SpriteEntry struct {
	Name       string   `toml:"name"`
	Offset     [2]int   `toml:"offset"`
	Texture    string   `toml:"texture"`
	Attributes []string `toml:"attributes"`
}

// Map is the structure of a level's .levelmap file, a MessagePack document.
// Structs are written as arrays of their fields in declaration order; maps
// keyed by field name are read as well.
type Map struct {
	Sprites []MapSprite `msgpack:"sprites"`
}

// MapSprite places a named SpriteEntry at a grid position.
type MapSprite struct {
	Pos  [2]uint32 `msgpack:"pos"`
	Name string    `msgpack:"name"`
}

// Sprite is a SpriteEntry joined with its position in the map.
type Sprite struct {
	Name       string
	Pos        [2]uint32
	Offset     [2]int
	Texture    string
	Attributes []string
}

// PixelPos returns the sprite's world position in pixels.
func (s Sprite) PixelPos() (float64, float64) {
	x := float64(s.Pos[0])*SpriteSize + float64(s.Offset[0])
	y := float64(s.Pos[1])*SpriteSize + float64(s.Offset[1])
	return x, y
}

// Level is a prepared level, ready to be spawned.
type Level struct {
	Name    string
	Music   string
	Sprites []Sprite
}

// Join pairs every map sprite with the manifest entry of the same name,
// keeping map order.
func Join(mapSprites []MapSprite, entries []SpriteEntry) ([]Sprite, error) {
	byName := make(map[string]SpriteEntry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	out := make([]Sprite, 0, len(mapSprites))
	for _, ms := range mapSprites {
		entry, ok := byName[ms.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, ms.Name)
		}
		out = append(out, Sprite{
			Name:       entry.Name,
			Pos:        ms.Pos,
			Offset:     entry.Offset,
			Texture:    entry.Texture,
			Attributes: append([]string(nil), entry.Attributes...),
		})
	}
	return out, nil
}

// Decompose splits joined sprites back into map sprites and manifest
// entries. Entries are de-duplicated by name in first-seen order.
func Decompose(sprites []Sprite) ([]MapSprite, []SpriteEntry) {
	mapSprites := make([]MapSprite, 0, len(sprites))
	var entries []SpriteEntry
	seen := make(map[string]struct{})
	for _, s := range sprites {
		if _, ok := seen[s.Name]; !ok {
			seen[s.Name] = struct{}{}
			entries = append(entries, SpriteEntry{
				Name:       s.Name,
				Offset:     s.Offset,
				Texture:    s.Texture,
				Attributes: append([]string(nil), s.Attributes...),
			})
		}
		mapSprites = append(mapSprites, MapSprite{Pos: s.Pos, Name: s.Name})
	}
	return mapSprites, entries
}

// Prepare joins a manifest and map into a Level.
func Prepare(manifest Manifest, m Map) (Level, error) {
	sprites, err := Join(m.Sprites, manifest.Sprites)
	if err != nil {
		return Level{}, err
	}
	return Level{Name: manifest.Name, Music: manifest.Music, Sprites: sprites}, nil
}

// Split is the inverse of Prepare. Manifest entries that no map sprite
// references are not recoverable and are dropped.
func (l Level) Split() (Manifest, Map) {
	mapSprites, entries := Decompose(l.Sprites)
	return Manifest{Name: l.Name, Music: l.Music, Sprites: entries}, Map{Sprites: mapSprites}
}
