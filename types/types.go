package types

// Scene is one narrated unit of content: one audio line and one image.
// Scenes come from the storyboard manifest and are immutable during a run.
type Scene struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
	SourceImage string `json:"source,omitempty"` // optional pre-supplied image, skips generation
}

// ShortDefinition describes one short-form video cut from the main scene
// range. Name must be unique and filename-safe.
type ShortDefinition struct {
	Name                  string  `json:"name"`
	StartID               int     `json:"startId"`
	EndID                 int     `json:"endId"`
	Zoom                  float64 `json:"zoom"`
	ThumbnailYoutubeShort string  `json:"thumbnailYoutubeShort"`
}

// Platform drives which ending clip gets appended to a short's base body.
type Platform struct {
	ID         string `yaml:"id"`
	EndingFile string `yaml:"ending_file"`
}

// ClipSet is the ordered pair of rendered clip paths and their durations
// (audio duration + transition overlap), index-aligned. Every downstream
// merge consumes both slices together.
type ClipSet struct {
	Paths     []string
	Durations []float64
}

// Append adds one clip and its duration, keeping the slices aligned.
func (c *ClipSet) Append(path string, duration float64) {
	c.Paths = append(c.Paths, path)
	c.Durations = append(c.Durations, duration)
}

// Len returns the number of clips.
func (c *ClipSet) Len() int { return len(c.Paths) }

// SceneStatus classifies what happened to one scene during asset generation.
type SceneStatus string

const (
	SceneRendered SceneStatus = "rendered" // clip produced or reused
	SceneCached   SceneStatus = "cached"   // every asset already existed
	SceneSkipped  SceneStatus = "skipped"  // missing audio or image, no clip
	SceneFailed   SceneStatus = "failed"   // generation error, scene dropped
)

// SceneResult records the outcome of asset generation for one scene.
type SceneResult struct {
	SceneID  int
	Status   SceneStatus
	Duration float64 // clip duration (audio + transition) when rendered
	Err      error
}

// ShortResult records the outcome of one short across all platforms.
type ShortResult struct {
	Name      string
	Variants  []string // final output paths actually produced
	MixCopied bool     // music mix degraded to a plain copy
	Err       error    // nil unless the whole short failed
}
