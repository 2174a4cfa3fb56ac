package render

import (
	"context"
	"fmt"

	"storyboard-pipeline/engine"
)

// Reframer converts a landscape video into a 9:16 composition: the same
// frame scaled to cover 1080×1920 and blurred as background, with a
// zoomed, center-cropped copy overlaid as foreground. No black bars.
type Reframer struct {
	run engine.Runner
}

// NewReframer creates a vertical reframer.
func NewReframer(run engine.Runner) *Reframer {
	return &Reframer{run: run}
}

// ForegroundWidth returns the scaled foreground width for a zoom factor.
// The encoder requires even dimensions, so an odd width rounds up.
func ForegroundWidth(zoomFactor float64) int {
	w := int(1080 * zoomFactor)
	if w%2 != 0 {
		w++
	}
	return w
}

// Reframe writes the vertical composition of inputPath to outputPath.
// Video is re-encoded; the original audio stream is copied through.
// There is no fallback on failure — callers verify the input exists
// before calling.
func (r *Reframer) Reframe(ctx context.Context, inputPath, outputPath string, zoomFactor float64, blurIntensity int) error {
	fgWidth := ForegroundWidth(zoomFactor)

	job := engine.Job{
		Inputs: []engine.Input{{Path: inputPath}},
		Filters: []engine.Filter{
			// Background: scale to cover, center-crop, blur.
			{
				Inputs: []string{"0:v"},
				Name:   "scale",
				Params: []engine.Param{
					{Key: "w", Value: "1080"},
					{Key: "h", Value: "1920"},
					{Key: "force_original_aspect_ratio", Value: "increase"},
				},
				Outputs: []string{"bg_scaled"},
			},
			{
				Inputs:  []string{"bg_scaled"},
				Name:    "crop",
				Params:  []engine.Param{{Key: "w", Value: "1080"}, {Key: "h", Value: "1920"}},
				Outputs: []string{"bg_cropped"},
			},
			{
				Inputs:  []string{"bg_cropped"},
				Name:    "boxblur",
				Params:  []engine.Param{{Key: "luma_radius", Value: fmt.Sprintf("%d", blurIntensity)}},
				Outputs: []string{"bg"},
			},
			// Foreground: zoom to fgWidth keeping aspect, crop to 1080 wide.
			{
				Inputs: []string{"0:v"},
				Name:   "scale",
				Params: []engine.Param{
					{Key: "w", Value: fmt.Sprintf("%d", fgWidth)},
					{Key: "h", Value: "-2"},
				},
				Outputs: []string{"fg_scaled"},
			},
			{
				Inputs: []string{"fg_scaled"},
				Name:   "crop",
				Params: []engine.Param{
					{Key: "w", Value: "1080"},
					{Key: "h", Value: "ih"},
					{Key: "x", Value: "(iw-1080)/2"},
					{Key: "y", Value: "0"},
				},
				Outputs: []string{"fg"},
			},
			// Composite: foreground centered vertically on the background.
			{
				Inputs: []string{"bg", "fg"},
				Name:   "overlay",
				Params: []engine.Param{
					{Key: "x", Value: "0"},
					{Key: "y", Value: "(H-h)/2"},
				},
				Outputs: []string{"final"},
			},
		},
		Maps: []string{"[final]", "0:a"},
		OutputOptions: []string{
			"-c:v", "libx264",
			"-c:a", "copy",
		},
		Output: outputPath,
	}

	if err := r.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: %v", ErrReframeFailed, err)
	}
	return nil
}
