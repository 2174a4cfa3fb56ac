package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"storyboard-pipeline/types"
)

type Config struct {
	Manifests ManifestsConfig  `yaml:"manifests"`
	Video     VideoConfig      `yaml:"video"`
	Music     MusicConfig      `yaml:"music"`
	Vertical  VerticalConfig   `yaml:"vertical"`
	Stinger   StingerConfig    `yaml:"stinger"`
	Platforms []types.Platform `yaml:"platforms"`
	Cooldowns CooldownsConfig  `yaml:"cooldowns"`
	TTS       TTSConfig        `yaml:"tts"`
	Images    ImagesConfig     `yaml:"images"`
	Upload    UploadConfig     `yaml:"upload"`
	Paths     PathsConfig      `yaml:"paths"`
}

type ManifestsConfig struct {
	Storyboard string `yaml:"storyboard"`
	Shorts     string `yaml:"shorts"`
}

type VideoConfig struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	FPS                int     `yaml:"fps"`
	TransitionDuration float64 `yaml:"transition_duration_sec"`
}

type MusicConfig struct {
	File   string  `yaml:"file"`   // filename inside Paths.Music
	Volume float64 `yaml:"volume"` // attenuation applied to the music bed, (0,1]
}

type VerticalConfig struct {
	ZoomFactor    float64 `yaml:"zoom_factor"`
	BlurIntensity int     `yaml:"blur_intensity"`
}

type StingerConfig struct {
	DurationSec float64 `yaml:"duration_sec"`
}

type CooldownsConfig struct {
	ImageAPISec int `yaml:"image_api_sec"`
	TTSAPISec   int `yaml:"tts_api_sec"`
}

type TTSConfig struct {
	VoiceID      string `yaml:"voice_id"`
	Model        string `yaml:"model"`
	OutputFormat string `yaml:"output_format"`
}

type ImagesConfig struct {
	Model string `yaml:"model"`
}

type UploadConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	CategoryID        string `yaml:"category_id"`
	Visibility        string `yaml:"visibility"`
	DefaultLanguage   string `yaml:"default_language"`
	NotifySubscribers bool   `yaml:"notify_subscribers"`
	MadeForKids       bool   `yaml:"made_for_kids"`
}

type PathsConfig struct {
	Audio      string `yaml:"audio"`
	Images     string `yaml:"images"`
	Clips      string `yaml:"clips"`
	Music      string `yaml:"music"`
	Output     string `yaml:"output"`
	Shorts     string `yaml:"shorts"`
	Endings    string `yaml:"endings"`
	Thumbnails string `yaml:"thumbnails"`
	Logs       string `yaml:"logs"`
}

// Load reads config.yaml and returns a validated Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config pre-filled with the values the pipeline was
// tuned with. Load overlays the yaml file on top of these.
func Defaults() *Config {
	return &Config{
		Manifests: ManifestsConfig{
			Storyboard: "data/storyboard.json",
			Shorts:     "data/shorts.json",
		},
		Video: VideoConfig{
			Width:              1344,
			Height:             768,
			FPS:                60,
			TransitionDuration: 0.5,
		},
		Music: MusicConfig{
			File:   "background_chill.mpeg",
			Volume: 0.1,
		},
		Vertical: VerticalConfig{
			ZoomFactor:    1.8,
			BlurIntensity: 40,
		},
		Stinger: StingerConfig{
			DurationSec: 0.25,
		},
		Platforms: []types.Platform{
			{ID: "youtube", EndingFile: "end_short_youtube.mp4"},
		},
		Cooldowns: CooldownsConfig{
			ImageAPISec: 5,
			TTSAPISec:   1,
		},
		TTS: TTSConfig{
			VoiceID:      "qRUgOhnxGASxirG4fKjv",
			Model:        "eleven_flash_v2_5",
			OutputFormat: "mp3_44100_128",
		},
		Images: ImagesConfig{
			Model: "flux",
		},
		Upload: UploadConfig{
			Visibility:      "private",
			CategoryID:      "27",
			DefaultLanguage: "en",
		},
		Paths: PathsConfig{
			Audio:      "assets/audio",
			Images:     "assets/images",
			Clips:      "assets/temp_clips",
			Music:      "assets/backgroundAudio",
			Output:     "output",
			Shorts:     "output/shorts",
			Endings:    "assets/endShorts",
			Thumbnails: "assets/youtubeThumbnailShorts",
			Logs:       "logs",
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Video.TransitionDuration <= 0 {
		return fmt.Errorf("config: transition_duration_sec must be > 0, got %v", c.Video.TransitionDuration)
	}
	if c.Music.Volume <= 0 || c.Music.Volume > 1 {
		return fmt.Errorf("config: music volume must be in (0,1], got %v", c.Music.Volume)
	}
	if c.Vertical.ZoomFactor < 1 {
		return fmt.Errorf("config: vertical zoom_factor must be >= 1, got %v", c.Vertical.ZoomFactor)
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return fmt.Errorf("config: video dimensions must be even, got %dx%d", c.Video.Width, c.Video.Height)
	}
	for i, p := range c.Platforms {
		if p.ID == "" {
			return fmt.Errorf("config: platform %d has empty id", i)
		}
	}
	return nil
}

// Dirs returns every directory the pipeline needs to exist before a run.
func (c *Config) Dirs() []string {
	return []string{
		c.Paths.Audio,
		c.Paths.Images,
		c.Paths.Clips,
		c.Paths.Music,
		c.Paths.Output,
		c.Paths.Shorts,
		c.Paths.Endings,
		c.Paths.Thumbnails,
		c.Paths.Logs,
	}
}
