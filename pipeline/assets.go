package pipeline

import (
	"context"
	"fmt"
	"time"

	"storyboard-pipeline/fileutil"
	"storyboard-pipeline/types"
)

// GenerateAssets walks the storyboard in manifest order and makes sure
// every scene has its audio, image and rendered clip, generating only
// what is missing. It returns the ordered clip set consumed by every
// later stage, plus a per-scene result record.
//
// Failure policy per scene: no audio means no scene (skip and continue);
// a missing image degrades by skipping the clip render; a failed render
// drops the scene but never stops the loop.
func (o *Orchestrator) GenerateAssets(ctx context.Context, scenes []types.Scene) (types.ClipSet, []types.SceneResult) {
	var clips types.ClipSet
	results := make([]types.SceneResult, 0, len(scenes))

	for _, scene := range scenes {
		if ctx.Err() != nil {
			break
		}
		o.log.Infof("🎬 Scene %d: %q", scene.ID, truncate(scene.Text, 30))

		result := o.generateScene(ctx, scene, &clips)
		results = append(results, result)

		if result.Err != nil {
			o.log.Errorf("   ❌ Scene %d: %v", scene.ID, result.Err)
		}
	}
	return clips, results
}

func (o *Orchestrator) generateScene(ctx context.Context, scene types.Scene, clips *types.ClipSet) types.SceneResult {
	st := o.deps.Store
	audioPath := st.AudioPath(scene.ID)
	imagePath := st.ImagePath(scene.ID)
	clipPath := st.ClipPath(scene.ID)

	allCached := st.Exists(audioPath) && st.Exists(imagePath) && st.Exists(clipPath)

	// Audio first: without narration there is no scene.
	if !st.Exists(audioPath) {
		o.log.Infof("   🎤 Generating voice...")
		if err := o.deps.TTS.Synthesize(ctx, scene.Text, audioPath); err != nil {
			return types.SceneResult{SceneID: scene.ID, Status: types.SceneFailed, Err: fmt.Errorf("audio: %w", err)}
		}
		o.cooldown(o.cfg.Cooldowns.TTSAPISec)
	}

	// Image: a pre-supplied source wins; otherwise generate. Failures
	// here are non-fatal — the clip render below degrades by skipping.
	if !st.Exists(imagePath) {
		if scene.SourceImage != "" && st.Exists(scene.SourceImage) {
			if err := fileutil.CopyFile(scene.SourceImage, imagePath); err != nil {
				o.log.Warnf("   ⚠️ Could not copy source image: %v", err)
			}
		} else {
			o.log.Infof("   🎨 Generating image...")
			if err := o.deps.Images.Generate(ctx, scene.ImagePrompt, "16:9", imageSeed(scene.ID), imagePath); err != nil {
				o.log.Warnf("   ⚠️ Image generation failed: %v", err)
			} else {
				o.cooldown(o.cfg.Cooldowns.ImageAPISec)
			}
		}
	}

	dur, err := o.deps.Prober.Duration(audioPath)
	if err != nil {
		return types.SceneResult{SceneID: scene.ID, Status: types.SceneFailed, Err: fmt.Errorf("probe audio: %w", err)}
	}
	clipDuration := dur + o.cfg.Video.TransitionDuration
	o.log.Infof("   ⏱️ Audio: %.2fs | Clip: %.2fs", dur, clipDuration)

	if !st.Exists(imagePath) {
		o.log.Warnf("   ⚠️ Missing image — skipping clip for scene %d", scene.ID)
		return types.SceneResult{SceneID: scene.ID, Status: types.SceneSkipped, Duration: clipDuration}
	}

	if st.Exists(clipPath) {
		o.log.Infof("   ✅ Clip already exists, reusing")
	} else {
		if err := o.deps.Clips.Render(ctx, imagePath, audioPath, clipDuration, clipPath); err != nil {
			return types.SceneResult{SceneID: scene.ID, Status: types.SceneFailed, Err: err}
		}
	}

	// Paths and durations stay index-aligned: both append or neither.
	clips.Append(clipPath, clipDuration)

	status := types.SceneRendered
	if allCached {
		status = types.SceneCached
	}
	return types.SceneResult{SceneID: scene.ID, Status: status, Duration: clipDuration}
}

// cooldown pauses between external API calls to respect quota. These
// are fixed delays, not retries.
func (o *Orchestrator) cooldown(seconds int) {
	if seconds > 0 {
		o.log.Infof("   zzz Cooling API (%ds)...", seconds)
		o.deps.Sleep(time.Duration(seconds) * time.Second)
	}
}

// imageSeed derives a stable per-scene seed so regenerated images match
// earlier runs.
func imageSeed(sceneID int) int {
	return sceneID*42 + 7
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
