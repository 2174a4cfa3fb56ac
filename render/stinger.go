package render

import (
	"context"
	"fmt"
	"os"

	"storyboard-pipeline/engine"
)

// StingerBuilder turns a still image into a very short 1080×1920 clip,
// paired with the opening seconds of the background music or, failing
// that, generated silence. The audio track is not decoration: the
// segment concatenator requires every input to expose both a video and
// an audio stream, and a bare image clip would break that invariant.
type StingerBuilder struct {
	run engine.Runner
}

// NewStingerBuilder creates a stinger builder.
func NewStingerBuilder(run engine.Runner) *StingerBuilder {
	return &StingerBuilder{run: run}
}

// Build writes a duration-second clip of imagePath to outputPath. When
// musicPath is present its first duration seconds become the audio
// track; otherwise stereo silence at 44100 Hz is generated to keep the
// stream layout intact.
func (b *StingerBuilder) Build(ctx context.Context, imagePath, musicPath, outputPath string, duration float64) error {
	t := fmt.Sprintf("%.2f", duration)

	audioInput := engine.Input{
		Path:    "anullsrc=channel_layout=stereo:sample_rate=44100",
		Options: []string{"-f", "lavfi", "-t", t},
	}
	if musicPath != "" {
		if _, err := os.Stat(musicPath); err == nil {
			audioInput = engine.Input{Path: musicPath, Options: []string{"-t", t}}
		}
	}

	job := engine.Job{
		Inputs: []engine.Input{
			{Path: imagePath, Options: []string{"-loop", "1", "-framerate", "30", "-t", t}},
			audioInput,
		},
		Filters: []engine.Filter{
			{
				Inputs: []string{"0:v"},
				Name:   "scale",
				Params: []engine.Param{
					{Key: "w", Value: "1080"},
					{Key: "h", Value: "1920"},
					{Key: "force_original_aspect_ratio", Value: "decrease"},
				},
				Outputs: []string{"scaled"},
			},
			{
				Inputs: []string{"scaled"},
				Name:   "pad",
				Params: []engine.Param{
					{Key: "w", Value: "1080"},
					{Key: "h", Value: "1920"},
					{Key: "x", Value: "(ow-iw)/2"},
					{Key: "y", Value: "(oh-ih)/2"},
				},
				Outputs: []string{"padded"},
			},
			{
				Inputs:  []string{"padded"},
				Name:    "setsar",
				Params:  []engine.Param{{Key: "sar", Value: "1"}},
				Outputs: []string{"v"},
			},
		},
		Maps: []string{"[v]", "1:a"},
		OutputOptions: []string{
			"-c:v", "libx264",
			"-c:a", "aac",
			"-pix_fmt", "yuv420p",
			"-shortest",
			"-movflags", "+faststart",
		},
		Output: outputPath,
	}

	if err := b.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: %v", ErrStingerFailed, err)
	}
	return nil
}
