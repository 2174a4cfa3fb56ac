// Package store maps logical asset keys to filesystem paths. Filenames
// are deterministic functions of the scene id or short name; file
// existence is the pipeline's entire caching index — there is no
// database behind it.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"storyboard-pipeline/config"
)

// Store resolves artifact paths for one run's directory layout.
type Store struct {
	paths config.PathsConfig
}

// New creates a Store over the configured per-role directories.
func New(paths config.PathsConfig) *Store {
	return &Store{paths: paths}
}

// AudioPath is the narration audio artifact for a scene.
func (s *Store) AudioPath(sceneID int) string {
	return filepath.Join(s.paths.Audio, fmt.Sprintf("scene_%d.mp3", sceneID))
}

// ImagePath is the generated image artifact for a scene.
func (s *Store) ImagePath(sceneID int) string {
	return filepath.Join(s.paths.Images, fmt.Sprintf("scene_%d.png", sceneID))
}

// ClipPath is the rendered per-scene video clip.
func (s *Store) ClipPath(sceneID int) string {
	return filepath.Join(s.paths.Clips, fmt.Sprintf("scene_%d.mp4", sceneID))
}

// MusicPath resolves a background music file.
func (s *Store) MusicPath(file string) string {
	return filepath.Join(s.paths.Music, file)
}

// MainOutput resolves an output artifact of the long-form chain
// (video_raw.mp4, final_video.mp4, final_video_9_16.mp4).
func (s *Store) MainOutput(name string) string {
	return filepath.Join(s.paths.Output, name)
}

// ShortStage resolves an intermediate of one short's production chain,
// e.g. ShortStage("intro", "base_raw") → shorts/intro_base_raw.mp4.
func (s *Store) ShortStage(shortName, stage string) string {
	return filepath.Join(s.paths.Shorts, fmt.Sprintf("%s_%s.mp4", shortName, stage))
}

// ShortVariant resolves the final per-platform output of a short.
func (s *Store) ShortVariant(shortName, platformID string) string {
	return filepath.Join(s.paths.Shorts, fmt.Sprintf("%s_%s.mp4", shortName, platformID))
}

// StingerTemp resolves the temporary thumbnail-stinger clip for a short.
func (s *Store) StingerTemp(shortName string) string {
	return filepath.Join(s.paths.Shorts, fmt.Sprintf("temp_thumb_%s.mp4", shortName))
}

// EndingPath resolves a platform ending clip.
func (s *Store) EndingPath(file string) string {
	return filepath.Join(s.paths.Endings, file)
}

// ThumbnailPath resolves a short's thumbnail source image.
func (s *Store) ThumbnailPath(file string) string {
	return filepath.Join(s.paths.Thumbnails, file)
}

// Exists reports whether an artifact is already on disk. This is the
// skip-if-exists check every stage runs before producing anything.
func (s *Store) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
