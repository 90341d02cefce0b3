package save

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/temple/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store persists game saves by name.
type Store interface {
	// List returns every readable save, ordered by name.
	List(ctx context.Context) ([]*GameSave, error)
	Load(ctx context.Context, name string) (*GameSave, error)
	Write(ctx context.Context, save *GameSave) error
	WriteAll(ctx context.Context, saves []*GameSave) error
	Close() error
}

// Open returns the store selected by settings.
func Open(fs afero.Fs, settings config.Settings, logger *zap.Logger) (Store, error) {
	switch settings.SavesBackend {
	case config.SaveBackendFile, "":
		return NewFileStore(fs, settings.SaveDir(), logger), nil
	case config.SaveBackendSQLite:
		dir := settings.SaveDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save directory: %w", err)
		}
		return OpenSQLite(filepath.Join(dir, "saves.db"))
	default:
		return nil, fmt.Errorf("unknown save backend %q", settings.SavesBackend)
	}
}

const saveExt = ".toml"

// FileStore keeps one TOML file per save.
type FileStore struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

func NewFileStore(fs afero.Fs, dir string, logger *zap.Logger) *FileStore {
	return &FileStore{fs: fs, dir: dir, logger: logger.Named("save_store")}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+saveExt)
}

// List creates the save directory when it does not exist. Files that cannot
// be read or decoded are skipped.
func (s *FileStore) List(ctx context.Context) ([]*GameSave, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read save directory: %w", err)
	}

	var saves []*GameSave
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info.IsDir() || filepath.Ext(info.Name()) != saveExt {
			continue
		}
		path := filepath.Join(s.dir, info.Name())
		save, err := s.read(path)
		if err != nil {
			s.logger.Warn("Failed to load save", zap.String("path", path), zap.Error(err))
			continue
		}
		saves = append(saves, save)
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return saves, nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*GameSave, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	save, err := s.read(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return save, err
}

func (s *FileStore) read(path string) (*GameSave, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (s *FileStore) Write(ctx context.Context, save *GameSave) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := validName(save)
	if err != nil {
		return err
	}
	data, err := encode(save)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write save %q: %w", save.Name, err)
	}
	return nil
}

func (s *FileStore) WriteAll(ctx context.Context, saves []*GameSave) error {
	return writeAll(ctx, s, saves)
}

func (s *FileStore) Close() error { return nil }

func writeAll(ctx context.Context, s Store, saves []*GameSave) error {
	var errs []error
	for _, save := range saves {
		if err := s.Write(ctx, save); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validName returns the trimmed name of save.
func validName(save *GameSave) (string, error) {
	if save == nil {
		return "", errors.New("save is nil")
	}
	return cleanName(save.Name)
}

// cleanName trims name and rejects names that are empty or would leave the
// save directory.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("save name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("save name %q is not a valid file name", name)
	}
	return name, nil
}

func encode(save *GameSave) ([]byte, error) {
	data, err := toml.Marshal(save)
	if err != nil {
		return nil, fmt.Errorf("encode save %q: %w", save.Name, err)
	}
	return data, nil
}

// tupleSave is the older save layout, which stored a level's checkpoint as
// checkpoint_state = [level, x, y].
type tupleSave struct {
	LevelClears map[string]struct {
		CheckpointState []float64 `toml:"checkpoint_state"`
	} `toml:"level_clears"`
}

func decode(data []byte) (*GameSave, error) {
	var save GameSave
	if err := toml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if save.LevelClears == nil {
		save.LevelClears = make(map[string]LevelSave)
	}

	var tuples tupleSave
	if err := toml.Unmarshal(data, &tuples); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	for key, ls := range tuples.LevelClears {
		if ls.CheckpointState == nil {
			continue
		}
		cp, err := checkpointFromTuple(ls.CheckpointState)
		if err != nil {
			return nil, fmt.Errorf("decode save: %s: %w", key, err)
		}
		state := save.LevelClears[key]
		if state.Checkpoint == nil {
			state.SetCheckpoint(cp)
			save.LevelClears[key] = state
		}
	}
	return &save, nil
}

func checkpointFromTuple(t []float64) (Checkpoint, error) {
	if len(t) != 3 {
		return Checkpoint{}, fmt.Errorf("checkpoint_state has %d values, want [level, x, y]", len(t))
	}
	level := t[0]
	if level < 0 || level > math.MaxUint32 || level != math.Trunc(level) {
		return Checkpoint{}, fmt.Errorf("checkpoint_state level %v is not a level id", level)
	}
	return Checkpoint{Level: uint32(level), X: t[1], Y: t[2]}, nil
}
