// Package render holds the composition algorithms of the pipeline: per-
// scene clip rendering, crossfade concatenation, music mixing, vertical
// reframing, stinger building and final segment concatenation. Every
// operation is expressed as a declarative engine job.
package render

import (
	"context"
	"fmt"

	"storyboard-pipeline/engine"
)

// ClipRenderer turns one (image, audio, duration) triple into a fixed-
// resolution timed clip. The image is held static for the full duration;
// the audio track is the narration.
type ClipRenderer struct {
	run    engine.Runner
	width  int
	height int
	fps    int
}

// NewClipRenderer creates a renderer producing width×height clips at fps.
func NewClipRenderer(run engine.Runner, width, height, fps int) *ClipRenderer {
	return &ClipRenderer{run: run, width: width, height: height, fps: fps}
}

// Render writes one clip to outputPath, overwriting any previous file.
// Callers own the skip-if-exists check.
func (r *ClipRenderer) Render(ctx context.Context, imagePath, audioPath string, duration float64, outputPath string) error {
	job := engine.Job{
		Inputs: []engine.Input{
			{Path: imagePath, Options: []string{"-loop", "1"}},
			{Path: audioPath},
		},
		Filters: []engine.Filter{
			{
				Inputs:  []string{"0:v"},
				Name:    "scale",
				Params:  []engine.Param{{Key: "w", Value: fmt.Sprintf("%d", r.width)}, {Key: "h", Value: fmt.Sprintf("%d", r.height)}},
				Outputs: []string{"scaled"},
			},
			{
				Inputs:  []string{"scaled"},
				Name:    "format",
				Params:  []engine.Param{{Key: "pix_fmts", Value: "yuv420p"}},
				Outputs: []string{"v"},
			},
		},
		Maps: []string{"[v]", "1:a"},
		OutputOptions: []string{
			"-c:v", "libx264",
			"-preset", "ultrafast",
			"-pix_fmt", "yuv420p",
			"-r", fmt.Sprintf("%d", r.fps),
			"-t", fmt.Sprintf("%.3f", duration),
		},
		Output: outputPath,
	}

	if err := r.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: scene clip %s: %v", ErrRenderFailed, outputPath, err)
	}
	return nil
}
