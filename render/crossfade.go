package render

import (
	"context"
	"fmt"

	"storyboard-pipeline/engine"
	"storyboard-pipeline/fileutil"
)

// Concatenator merges an ordered list of clips into one video with
// overlapping fade transitions. Video streams are chained through xfade;
// audio tracks are concatenated with hard cuts so narration never
// overlaps itself — a deliberate asymmetry.
type Concatenator struct {
	run        engine.Runner
	transition float64
}

// NewConcatenator creates a concatenator with a fixed transition length.
func NewConcatenator(run engine.Runner, transition float64) *Concatenator {
	return &Concatenator{run: run, transition: transition}
}

// Offsets computes the start time of each transition on the merged
// timeline. Each crossfade overlaps the tail of clip k with the head of
// clip k+1, so every join shortens the merged video by one transition:
//
//	offset[i] = sum(durations[0..i]) - (i+1)*transition
func Offsets(durations []float64, transition float64) []float64 {
	if len(durations) < 2 {
		return nil
	}
	offsets := make([]float64, 0, len(durations)-1)
	current := 0.0
	for i := 1; i < len(durations); i++ {
		current += durations[i-1] - transition
		offsets = append(offsets, current)
	}
	return offsets
}

// Merge produces one video from clips at output. N=0 is a no-op; N=1
// copies the clip verbatim (no re-encode). For N≥2 the video transitions
// chain left to right and the audio tracks are concatenated separately;
// the shortest stream truncates the mux so no dangling silence remains.
//
// On failure no partial output is authoritative and the caller must not
// delete the source clips.
func (c *Concatenator) Merge(ctx context.Context, clips []string, durations []float64, output string) error {
	if len(clips) != len(durations) {
		return fmt.Errorf("%w: %d clips but %d durations", ErrMergeFailed, len(clips), len(durations))
	}
	if len(clips) == 0 {
		return nil
	}
	if len(clips) == 1 {
		if err := fileutil.CopyFile(clips[0], output); err != nil {
			return fmt.Errorf("%w: %v", ErrMergeFailed, err)
		}
		return nil
	}

	inputs := make([]engine.Input, len(clips))
	for i, p := range clips {
		inputs[i] = engine.Input{Path: p}
	}

	var filters []engine.Filter
	offsets := Offsets(durations, c.transition)
	prev := "0:v"
	for i := 1; i < len(clips); i++ {
		out := fmt.Sprintf("v%d", i)
		filters = append(filters, engine.Filter{
			Inputs: []string{prev, fmt.Sprintf("%d:v", i)},
			Name:   "xfade",
			Params: []engine.Param{
				{Key: "transition", Value: "fade"},
				{Key: "duration", Value: fmt.Sprintf("%.2f", c.transition)},
				{Key: "offset", Value: fmt.Sprintf("%.2f", offsets[i-1])},
			},
			Outputs: []string{out},
		})
		prev = out
	}

	audioIn := make([]string, len(clips))
	for i := range clips {
		audioIn[i] = fmt.Sprintf("%d:a", i)
	}
	filters = append(filters, engine.Filter{
		Inputs: audioIn,
		Name:   "concat",
		Params: []engine.Param{
			{Key: "n", Value: fmt.Sprintf("%d", len(clips))},
			{Key: "v", Value: "0"},
			{Key: "a", Value: "1"},
		},
		Outputs: []string{"aout"},
	})

	job := engine.Job{
		Inputs:  inputs,
		Filters: filters,
		Maps:    []string{"[" + prev + "]", "[aout]"},
		OutputOptions: []string{
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-shortest",
		},
		Output: output,
	}

	if err := c.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	return nil
}
