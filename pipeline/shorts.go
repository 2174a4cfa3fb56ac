package pipeline

import (
	"context"
	"fmt"

	"storyboard-pipeline/fileutil"
	"storyboard-pipeline/types"
)

// AssembleShorts builds every configured short independently. A short's
// failure is recorded and logged but never stops its siblings.
func (o *Orchestrator) AssembleShorts(ctx context.Context, shorts []types.ShortDefinition) []types.ShortResult {
	results := make([]types.ShortResult, 0, len(shorts))
	for _, short := range shorts {
		if ctx.Err() != nil {
			break
		}
		o.log.Infof("🎬 Short %q (scenes %d..%d)", short.Name, short.StartID, short.EndID)
		results = append(results, o.assembleShort(ctx, short))
	}
	return results
}

func (o *Orchestrator) assembleShort(ctx context.Context, short types.ShortDefinition) types.ShortResult {
	st := o.deps.Store
	result := types.ShortResult{Name: short.Name}

	// Pure reuse: pick existing scene clips by id range, no regeneration.
	clips := o.clipsForShort(short)
	if clips.Len() == 0 {
		o.log.Warnf("   ⚠️ No clips found for range %d..%d — skipping short", short.StartID, short.EndID)
		return result
	}

	baseRaw := st.ShortStage(short.Name, "base_raw")
	baseMusic := st.ShortStage(short.Name, "base_music")
	baseVertical := st.ShortStage(short.Name, "base_9_16")

	o.safeDelete(baseRaw)
	if err := o.deps.Merger.Merge(ctx, clips.Paths, clips.Durations, baseRaw); err != nil {
		result.Err = fmt.Errorf("merge base: %w", err)
		return result
	}

	musicPath := st.MusicPath(o.cfg.Music.File)
	o.safeDelete(baseMusic)
	if st.Exists(musicPath) {
		if err := o.deps.Mixer.Mix(ctx, baseRaw, musicPath, baseMusic, o.cfg.Music.Volume); err != nil {
			o.log.Warnf("   ⚠️ Mix failed for %s, copying raw base: %v", short.Name, err)
			if err := fileutil.CopyFile(baseRaw, baseMusic); err != nil {
				result.Err = fmt.Errorf("fallback copy: %w", err)
				return result
			}
			result.MixCopied = true
		}
	} else {
		if err := fileutil.CopyFile(baseRaw, baseMusic); err != nil {
			result.Err = fmt.Errorf("fallback copy: %w", err)
			return result
		}
		result.MixCopied = true
	}

	zoom := short.Zoom
	if zoom == 0 {
		zoom = o.cfg.Vertical.ZoomFactor
	}
	o.safeDelete(baseVertical)
	if err := o.deps.Reframer.Reframe(ctx, baseMusic, baseVertical, zoom, o.cfg.Vertical.BlurIntensity); err != nil {
		result.Err = fmt.Errorf("reframe base: %w", err)
		return result
	}
	o.log.Infof("   ✅ Base ready. Building platform variants...")

	for _, platform := range o.cfg.Platforms {
		finalPath, err := o.assembleVariant(ctx, short, platform, baseVertical, musicPath)
		if err != nil {
			o.log.Errorf("   ❌ Variant %s/%s: %v", short.Name, platform.ID, err)
			continue
		}
		o.log.Infof("   ✨ Ready: %s", finalPath)
		result.Variants = append(result.Variants, finalPath)
	}

	// Intermediates go only when every platform variant was produced;
	// otherwise they stay around for a retry run.
	if len(result.Variants) == len(o.cfg.Platforms) {
		o.safeDelete(baseRaw)
		o.safeDelete(baseMusic)
		o.safeDelete(baseVertical)
	}
	return result
}

// assembleVariant concatenates base + ending + stinger for one platform.
// Missing optional pieces (ending, thumbnail) degrade gracefully; a
// single-segment variant is a plain copy of the base.
func (o *Orchestrator) assembleVariant(ctx context.Context, short types.ShortDefinition, platform types.Platform, baseVertical, musicPath string) (string, error) {
	st := o.deps.Store
	finalPath := st.ShortVariant(short.Name, platform.ID)
	o.safeDelete(finalPath)

	segments := []string{baseVertical}

	endingPath := st.EndingPath(platform.EndingFile)
	if platform.EndingFile != "" && st.Exists(endingPath) {
		segments = append(segments, endingPath)
	} else {
		o.log.Warnf("      ⚠️ No ending clip for %s", platform.ID)
	}

	stingerTemp := ""
	if platform.ID == "youtube" && short.ThumbnailYoutubeShort != "" {
		thumbPath := st.ThumbnailPath(short.ThumbnailYoutubeShort)
		if st.Exists(thumbPath) {
			o.log.Infof("      📸 Building thumbnail stinger...")
			stingerTemp = st.StingerTemp(short.Name)
			o.safeDelete(stingerTemp)
			if err := o.deps.Stinger.Build(ctx, thumbPath, musicPath, stingerTemp, o.cfg.Stinger.DurationSec); err != nil {
				o.log.Warnf("      ⚠️ Stinger failed, appending without it: %v", err)
				stingerTemp = ""
			} else {
				segments = append(segments, stingerTemp)
			}
		}
	}
	defer o.safeDelete(stingerTemp)

	if len(segments) == 1 {
		if err := fileutil.CopyFile(baseVertical, finalPath); err != nil {
			return "", err
		}
		return finalPath, nil
	}

	o.log.Infof("      🔨 Assembling %s (%d segments)...", platform.ID, len(segments))
	if err := o.deps.Segments.Concat(ctx, segments, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

// clipsForShort re-selects already rendered scene clips by id range,
// re-probing each narration so durations stay authoritative.
func (o *Orchestrator) clipsForShort(short types.ShortDefinition) types.ClipSet {
	st := o.deps.Store
	var clips types.ClipSet

	for id := short.StartID; id <= short.EndID; id++ {
		clipPath := st.ClipPath(id)
		audioPath := st.AudioPath(id)
		if !st.Exists(clipPath) || !st.Exists(audioPath) {
			continue
		}
		dur, err := o.deps.Prober.Duration(audioPath)
		if err != nil {
			o.log.Warnf("   ⚠️ Cannot probe scene %d audio: %v", id, err)
			continue
		}
		clips.Append(clipPath, dur+o.cfg.Video.TransitionDuration)
	}
	return clips
}

// safeDelete removes an intermediate; failures are logged, never fatal.
func (o *Orchestrator) safeDelete(path string) {
	if path == "" {
		return
	}
	if err := fileutil.RemoveIfExists(path); err != nil {
		o.log.Warnf("   ⚠️ Non-fatal: could not delete %s: %v", path, err)
	}
}
