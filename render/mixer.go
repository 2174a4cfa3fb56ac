package render

import (
	"context"
	"fmt"
	"os"

	"storyboard-pipeline/engine"
)

// Mixer overlays a looping, attenuated background track onto a video's
// narration audio. The video stream passes through untouched.
type Mixer struct {
	run engine.Runner
}

// NewMixer creates a music mixer.
func NewMixer(run engine.Runner) *Mixer {
	return &Mixer{run: run}
}

// Mix writes a copy of videoPath with musicPath mixed under its audio at
// the given volume. The music loops at the input level; mixed duration
// follows the first input (the video), so trailing music is discarded,
// never the voice. Callers degrade to a plain copy when this fails.
func (m *Mixer) Mix(ctx context.Context, videoPath, musicPath, outputPath string, volume float64) error {
	if _, err := os.Stat(musicPath); err != nil {
		return fmt.Errorf("%w: music file %s: %v", ErrMixFailed, musicPath, err)
	}

	job := engine.Job{
		Inputs: []engine.Input{
			{Path: videoPath},
			{Path: musicPath, Options: []string{"-stream_loop", "-1"}},
		},
		Filters: []engine.Filter{
			{
				Inputs:  []string{"1:a"},
				Name:    "volume",
				Params:  []engine.Param{{Key: "volume", Value: fmt.Sprintf("%.2f", volume)}},
				Outputs: []string{"music"},
			},
			{
				Inputs: []string{"0:a", "music"},
				Name:   "amix",
				Params: []engine.Param{
					{Key: "inputs", Value: "2"},
					{Key: "duration", Value: "first"},
				},
				Outputs: []string{"audio_out"},
			},
		},
		Maps: []string{"0:v", "[audio_out]"},
		OutputOptions: []string{
			"-c:v", "copy",
			"-c:a", "aac",
		},
		Output: outputPath,
	}

	if err := m.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: %v", ErrMixFailed, err)
	}
	return nil
}
