package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/temple/config"
)

// Verify returns one warning per manifest without a level map. Loading such
// a level in play mode fails, so the warnings are only produced outside
// edit mode.
func (s *Store) Verify(editMode bool) ([]string, error) {
	listed, err := s.Manifests()
	if err != nil {
		return nil, err
	}
	if editMode {
		return nil, nil
	}

	var warnings []string
	for _, l := range listed {
		if _, err := s.Map(l.ID); errors.Is(err, ErrNotFound) {
			warnings = append(warnings, fmt.Sprintf("level %d does not have a level map, loading it will fail", l.ID))
		}
	}
	return warnings, nil
}

// VerifyFiles decodes game.toml and every level manifest, returning every
// problem found joined into a single error.
func VerifyFiles(s *Store) error {
	var problems []error

	gf, err := config.LoadGameFile(s.Fs(), s.Root())
	if err != nil {
		problems = append(problems, err)
	} else if err := gf.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("%s: %w", config.GameFilePath, err))
	}

	dir := config.Join(s.Root(), config.LevelDir)
	infos, err := readDir(s, dir)
	if err != nil {
		problems = append(problems, err)
	}
	for _, name := range infos {
		id, err := IDFromPath(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, err := s.Manifest(id); err != nil {
			problems = append(problems, err)
		}
	}

	return errors.Join(problems...)
}
