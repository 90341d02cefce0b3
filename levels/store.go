package levels

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/temple/attributes"
	"github.com/milk9111/temple/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	manifestExt = ".toml"
	mapExt      = ".levelmap"
)

var ErrNotFound = errors.New("level file not found")

// Store reads and writes level files under a game root.
type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Fs returns the file system the store reads from.
func (s *Store) Fs() afero.Fs { return s.fs }

// Root returns the game root.
func (s *Store) Root() string { return s.root }

func (s *Store) ManifestPath(id ID) string {
	return config.Join(s.root, config.LevelDir, strconv.FormatUint(uint64(id), 10)+manifestExt)
}

func (s *Store) MapPath(id ID) string {
	return config.Join(s.root, config.LevelMapDir, strconv.FormatUint(uint64(id), 10)+mapExt)
}

// TexturePath resolves a sprite texture name to its file.
func (s *Store) TexturePath(texture string) string {
	return config.Join(s.root, config.SpriteTexDir, filepath.FromSlash(texture))
}

// MusicPath resolves a music track name to its file.
func (s *Store) MusicPath(music string) string {
	return config.Join(s.root, config.MusicDir, filepath.FromSlash(music))
}

// SfxPath resolves a sound effect name to its file.
func (s *Store) SfxPath(sfx string) string {
	return config.Join(s.root, config.SfxDir, filepath.FromSlash(sfx))
}

// IDFromPath parses a level id from a manifest or map file name.
func IDFromPath(path string) (ID, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	n, err := strconv.ParseUint(base, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("level id from %q: %w", path, err)
	}
	return ID(n), nil
}

func (s *Store) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (s *Store) Manifest(id ID) (Manifest, error) {
	path := s.ManifestPath(id)
	data, err := s.read(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

func (s *Store) Map(id ID) (Map, error) {
	path := s.MapPath(id)
	data, err := s.read(path)
	if err != nil {
		return Map{}, err
	}
	var m Map
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return Map{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// Listed is a manifest paired with its id.
type Listed struct {
	ID       ID
	Manifest Manifest
}

// Manifests loads every manifest in the level directory, ordered by id.
func (s *Store) Manifests() ([]Listed, error) {
	names, err := readDir(s, config.Join(s.root, config.LevelDir))
	if err != nil {
		return nil, err
	}

	out := make([]Listed, 0, len(names))
	for _, name := range names {
		id, err := IDFromPath(name)
		if err != nil {
			return nil, err
		}
		m, err := s.Manifest(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Listed{ID: id, Manifest: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// readDir lists the manifest file names in dir, skipping subdirectories.
func readDir(s *Store, dir string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read level directory: %w", err)
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() || filepath.Ext(info.Name()) != manifestExt {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// Load reads and joins a level. In edit mode a missing manifest or map is
// replaced with an empty one so new levels can be created.
func (s *Store) Load(id ID, editMode bool) (Level, error) {
	manifest, err := s.Manifest(id)
	if err != nil {
		if !editMode || !errors.Is(err, ErrNotFound) {
			return Level{}, fmt.Errorf("load level %d: %w", id, err)
		}
		manifest = Manifest{}
	}
	m, err := s.Map(id)
	if err != nil {
		if !editMode || !errors.Is(err, ErrNotFound) {
			return Level{}, fmt.Errorf("load level %d: %w", id, err)
		}
		m = Map{}
	}
	level, err := Prepare(manifest, m)
	if err != nil {
		return Level{}, fmt.Errorf("load level %d: %w", id, err)
	}
	return level, nil
}

// SaveLevel writes a level back as a manifest and a map.
func (s *Store) SaveLevel(id ID, level Level) error {
	manifest, m := level.Split()

	manifestData, err := toml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest %d: %w", id, err)
	}
	mapData, err := encodeMap(m)
	if err != nil {
		return fmt.Errorf("encode map %d: %w", id, err)
	}

	for _, dir := range []string{config.LevelDir, config.LevelMapDir} {
		if err := s.fs.MkdirAll(config.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.ManifestPath(id), manifestData, 0o644); err != nil {
		return fmt.Errorf("write manifest %d: %w", id, err)
	}
	if err := afero.WriteFile(s.fs, s.MapPath(id), mapData, 0o644); err != nil {
		return fmt.Errorf("write map %d: %w", id, err)
	}
	return nil
}

func encodeMap(m Map) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseArrayEncodedStructs(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SameMusic reports whether both levels exist and share a music track.
func (s *Store) SameMusic(a, b ID) bool {
	ma, err := s.Manifest(a)
	if err != nil {
		return false
	}
	mb, err := s.Manifest(b)
	if err != nil {
		return false
	}
	return ma.Music == mb.Music
}

// CountExits counts sprite definitions carrying a goal attribute across
// every manifest. Placements in the map are not counted.
func (s *Store) CountExits() (int, error) {
	listed, err := s.Manifests()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range listed {
		for _, entry := range l.Manifest.Sprites {
			if hasKey(entry.Attributes, attributes.KeyGoal) {
				count++
			}
		}
	}
	return count, nil
}

func hasKey(attrs []string, key string) bool {
	for _, a := range attrs {
		if attributes.Key(a) == key {
			return true
		}
	}
	return false
}
