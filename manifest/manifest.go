// Package manifest loads the storyboard and shorts manifests. Both are
// plain JSON files authored by hand; a missing or unparseable storyboard
// is the one error that aborts a whole run.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"storyboard-pipeline/types"
)

// ErrInvalidManifest wraps every manifest-level failure so callers can
// treat the whole class as fatal configuration.
var ErrInvalidManifest = errors.New("invalid manifest")

// LoadScenes reads the storyboard manifest and returns scenes sorted by id.
func LoadScenes(path string) ([]types.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read storyboard %s: %v", ErrInvalidManifest, path, err)
	}

	var scenes []types.Scene
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, fmt.Errorf("%w: parse storyboard %s: %v", ErrInvalidManifest, path, err)
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("%w: storyboard %s has no scenes", ErrInvalidManifest, path)
	}

	sort.Slice(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID })

	seen := make(map[int]bool, len(scenes))
	for _, s := range scenes {
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate scene id %d", ErrInvalidManifest, s.ID)
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("%w: scene %d has empty text", ErrInvalidManifest, s.ID)
		}
	}
	return scenes, nil
}

// LoadShorts reads the shorts manifest. A missing file is not an error:
// the shorts stage simply has nothing to do.
func LoadShorts(path string) ([]types.ShortDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read shorts %s: %v", ErrInvalidManifest, path, err)
	}

	var shorts []types.ShortDefinition
	if err := json.Unmarshal(data, &shorts); err != nil {
		return nil, fmt.Errorf("%w: parse shorts %s: %v", ErrInvalidManifest, path, err)
	}

	seen := make(map[string]bool, len(shorts))
	for _, s := range shorts {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: short with empty name", ErrInvalidManifest)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: duplicate short name %q", ErrInvalidManifest, s.Name)
		}
		seen[s.Name] = true
		if s.StartID > s.EndID {
			return nil, fmt.Errorf("%w: short %q has startId %d > endId %d", ErrInvalidManifest, s.Name, s.StartID, s.EndID)
		}
		if s.Zoom != 0 && s.Zoom < 1 {
			return nil, fmt.Errorf("%w: short %q has zoom %v < 1", ErrInvalidManifest, s.Name, s.Zoom)
		}
	}
	return shorts, nil
}
