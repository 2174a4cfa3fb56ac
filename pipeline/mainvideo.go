package pipeline

import (
	"context"
	"fmt"

	"storyboard-pipeline/fileutil"
	"storyboard-pipeline/types"
)

// Main-chain artifact names under the output directory.
const (
	mainRawName      = "video_raw.mp4"
	mainFinalName    = "final_video.mp4"
	mainVerticalName = "final_video_9_16.mp4"
)

// AssembleMain produces the long-form outputs: crossfade-merged body,
// music-mixed final, and the full-length vertical version. The merge is
// the only fatal step — a main video without its body is meaningless.
// Mixing degrades to a plain copy; a reframe failure just skips the
// vertical artifact.
func (o *Orchestrator) AssembleMain(ctx context.Context, clips types.ClipSet) error {
	st := o.deps.Store
	rawPath := st.MainOutput(mainRawName)
	finalPath := st.MainOutput(mainFinalName)
	verticalPath := st.MainOutput(mainVerticalName)

	o.log.Infof("   🔄 Merging %d clips with crossfades...", clips.Len())
	if err := o.deps.Merger.Merge(ctx, clips.Paths, clips.Durations, rawPath); err != nil {
		return fmt.Errorf("main merge: %w", err)
	}

	musicPath := st.MusicPath(o.cfg.Music.File)
	if st.Exists(musicPath) {
		o.log.Infof("   🎵 Mixing background music...")
		if err := o.deps.Mixer.Mix(ctx, rawPath, musicPath, finalPath, o.cfg.Music.Volume); err != nil {
			o.log.Warnf("   ⚠️ Mix failed, delivering video without music: %v", err)
			if err := fileutil.CopyFile(rawPath, finalPath); err != nil {
				return fmt.Errorf("fallback copy: %w", err)
			}
		}
	} else {
		o.log.Warnf("   ⚠️ No background music file — copying raw video")
		if err := fileutil.CopyFile(rawPath, finalPath); err != nil {
			return fmt.Errorf("fallback copy: %w", err)
		}
	}
	o.log.Infof("   ✅ Horizontal video ready: %s", finalPath)

	o.log.Infof("   📱 Creating vertical version (zoom %.2fx)...", o.cfg.Vertical.ZoomFactor)
	if err := o.deps.Reframer.Reframe(ctx, finalPath, verticalPath, o.cfg.Vertical.ZoomFactor, o.cfg.Vertical.BlurIntensity); err != nil {
		o.log.Warnf("   ⚠️ Vertical version failed: %v", err)
	} else {
		o.log.Infof("   ✅ Vertical video ready: %s", verticalPath)
	}

	// The raw merge is disposable once its consumers are written.
	if err := fileutil.RemoveIfExists(rawPath); err != nil {
		o.log.Warnf("   ⚠️ Could not delete %s: %v", rawPath, err)
	}
	return nil
}

// FinalVideoPath returns the long-form output consumed by the optional
// upload stage.
func (o *Orchestrator) FinalVideoPath() string {
	return o.deps.Store.MainOutput(mainFinalName)
}
