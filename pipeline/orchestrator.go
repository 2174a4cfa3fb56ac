// Package pipeline sequences asset generation, main assembly and shorts
// assembly over the storyboard manifest, enforcing the skip-if-exists
// caching contract at every step.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"storyboard-pipeline/audio"
	"storyboard-pipeline/config"
	"storyboard-pipeline/engine"
	"storyboard-pipeline/manifest"
	"storyboard-pipeline/probe"
	"storyboard-pipeline/render"
	"storyboard-pipeline/store"
	"storyboard-pipeline/types"
	"storyboard-pipeline/visuals"
)

// TTSEngine converts narration text into an audio file.
type TTSEngine interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}

// ImageEngine renders an image prompt into a file.
type ImageEngine interface {
	Generate(ctx context.Context, prompt, aspectRatio string, seed int, outputPath string) error
}

// DurationProber measures playback duration of an audio artifact.
type DurationProber interface {
	Duration(path string) (float64, error)
}

// ClipRenderer renders one scene clip from an image/audio pair.
type ClipRenderer interface {
	Render(ctx context.Context, imagePath, audioPath string, duration float64, outputPath string) error
}

// Merger crossfade-concatenates an ordered clip list.
type Merger interface {
	Merge(ctx context.Context, clips []string, durations []float64, output string) error
}

// MusicMixer overlays looping background music onto a video.
type MusicMixer interface {
	Mix(ctx context.Context, videoPath, musicPath, outputPath string, volume float64) error
}

// VerticalReframer converts landscape video to the 9:16 composition.
type VerticalReframer interface {
	Reframe(ctx context.Context, inputPath, outputPath string, zoomFactor float64, blurIntensity int) error
}

// StingerMaker builds the short thumbnail clip appended to YouTube shorts.
type StingerMaker interface {
	Build(ctx context.Context, imagePath, musicPath, outputPath string, duration float64) error
}

// SegmentJoiner concatenates pre-rendered segments into a final variant.
type SegmentJoiner interface {
	Concat(ctx context.Context, inputPaths []string, outputPath string) error
}

// Deps bundles every collaborator the orchestrator drives. Tests swap
// in fakes; production wiring comes from DefaultDeps.
type Deps struct {
	Store    *store.Store
	TTS      TTSEngine
	Images   ImageEngine
	Prober   DurationProber
	Clips    ClipRenderer
	Merger   Merger
	Mixer    MusicMixer
	Reframer VerticalReframer
	Stinger  StingerMaker
	Segments SegmentJoiner
	Sleep    func(time.Duration) // API cooldowns; injectable so tests don't wait
}

// DefaultDeps wires the real collaborators: ffmpeg engine, ffprobe,
// ElevenLabs TTS and Pollinations image generation.
func DefaultDeps(cfg *config.Config, log *zap.SugaredLogger) Deps {
	run := engine.NewFFmpeg()
	prober := probe.New()
	return Deps{
		Store:    store.New(cfg.Paths),
		TTS:      audio.NewClient(log, cfg.TTS.VoiceID, cfg.TTS.Model, cfg.TTS.OutputFormat),
		Images:   visuals.NewGenerator(log, cfg.Images.Model),
		Prober:   prober,
		Clips:    render.NewClipRenderer(run, cfg.Video.Width, cfg.Video.Height, cfg.Video.FPS),
		Merger:   render.NewConcatenator(run, cfg.Video.TransitionDuration),
		Mixer:    render.NewMixer(run),
		Reframer: render.NewReframer(run),
		Stinger:  render.NewStingerBuilder(run),
		Segments: render.NewSegmentConcatenator(run, prober),
		Sleep:    time.Sleep,
	}
}

// Orchestrator runs the full pipeline for one invocation.
type Orchestrator struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	deps Deps
}

// New creates an orchestrator over the given config and collaborators.
func New(cfg *config.Config, log *zap.SugaredLogger, deps Deps) *Orchestrator {
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	return &Orchestrator{cfg: cfg, log: log, deps: deps}
}

// Run executes Init → AssetGeneration → MainAssembly → ShortsAssembly.
// Manifest problems abort immediately; per-scene and per-short failures
// are logged and scoped to their unit. A main-assembly merge failure is
// returned after the shorts stage has had its chance to run.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.log.Infof("🚀 Starting pipeline...")

	for _, dir := range o.cfg.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	scenes, err := manifest.LoadScenes(o.cfg.Manifests.Storyboard)
	if err != nil {
		return err
	}
	shorts, err := manifest.LoadShorts(o.cfg.Manifests.Shorts)
	if err != nil {
		return err
	}

	o.log.Infof("--- 🏭 Stage 1: Generating assets and scene clips ---")
	clips, sceneResults := o.GenerateAssets(ctx, scenes)
	o.logSceneSummary(sceneResults)
	if err := ctx.Err(); err != nil {
		return err
	}

	var mainErr error
	if clips.Len() > 0 {
		o.log.Infof("--- 🎞️ Stage 2: Assembling main video ---")
		mainErr = o.AssembleMain(ctx, clips)
		if mainErr != nil {
			o.log.Errorf("❌ Main assembly failed: %v", mainErr)
		}
	} else {
		o.log.Warnf("⚠️ No scene clips available — skipping main assembly")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(shorts) > 0 {
		o.log.Infof("--- ✂️ Stage 3: Generating shorts ---")
		shortResults := o.AssembleShorts(ctx, shorts)
		o.logShortSummary(shortResults)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if mainErr != nil {
		return mainErr
	}
	o.log.Infof("✨ Pipeline complete")
	return nil
}

func (o *Orchestrator) logSceneSummary(results []types.SceneResult) {
	var rendered, cached, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case types.SceneRendered:
			rendered++
		case types.SceneCached:
			cached++
		case types.SceneSkipped:
			skipped++
		case types.SceneFailed:
			failed++
		}
	}
	o.log.Infof("[assets] %d rendered, %d cached, %d skipped, %d failed", rendered, cached, skipped, failed)
}

func (o *Orchestrator) logShortSummary(results []types.ShortResult) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			o.log.Errorf("[shorts] ❌ %s: %v", r.Name, r.Err)
		case len(r.Variants) == 0:
			o.log.Warnf("[shorts] ⚠️ %s: no variants produced", r.Name)
		default:
			o.log.Infof("[shorts] ✅ %s: %d variant(s)", r.Name, len(r.Variants))
		}
	}
}
