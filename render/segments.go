package render

import (
	"context"
	"fmt"

	"storyboard-pipeline/engine"
)

// StreamProber reports how many video and audio streams a file exposes.
type StreamProber interface {
	StreamLayout(path string) (video, audio int, err error)
}

// SegmentConcatenator joins pre-rendered segments (base body, platform
// ending, stinger) into one final output, re-encoding both streams so
// mismatched codecs cannot poison the result.
type SegmentConcatenator struct {
	run   engine.Runner
	probe StreamProber
}

// NewSegmentConcatenator creates a segment concatenator.
func NewSegmentConcatenator(run engine.Runner, probe StreamProber) *SegmentConcatenator {
	return &SegmentConcatenator{run: run, probe: probe}
}

// Concat joins at least two inputs into output. Every input must expose
// exactly one video and one audio stream; the check runs up front so a
// malformed segment fails the variant before any encoding starts.
// The single-input case is the caller's job (plain copy).
func (s *SegmentConcatenator) Concat(ctx context.Context, inputPaths []string, outputPath string) error {
	if len(inputPaths) < 2 {
		return fmt.Errorf("%w: need at least 2 segments, got %d", ErrConcatFailed, len(inputPaths))
	}

	for _, in := range inputPaths {
		video, audio, err := s.probe.StreamLayout(in)
		if err != nil {
			return fmt.Errorf("%w: probe %s: %v", ErrConcatFailed, in, err)
		}
		if video != 1 || audio != 1 {
			return fmt.Errorf("%w: segment %s has %d video / %d audio streams, want 1/1", ErrConcatFailed, in, video, audio)
		}
	}

	inputs := make([]engine.Input, len(inputPaths))
	pads := make([]string, 0, len(inputPaths)*2)
	for i, p := range inputPaths {
		inputs[i] = engine.Input{Path: p}
		pads = append(pads, fmt.Sprintf("%d:v", i), fmt.Sprintf("%d:a", i))
	}

	job := engine.Job{
		Inputs: inputs,
		Filters: []engine.Filter{
			{
				Inputs: pads,
				Name:   "concat",
				Params: []engine.Param{
					{Key: "n", Value: fmt.Sprintf("%d", len(inputPaths))},
					{Key: "v", Value: "1"},
					{Key: "a", Value: "1"},
				},
				Outputs: []string{"v", "a"},
			},
		},
		Maps: []string{"[v]", "[a]"},
		OutputOptions: []string{
			"-c:v", "libx264",
			"-c:a", "aac",
		},
		Output: outputPath,
	}

	if err := s.run.Run(ctx, job); err != nil {
		return fmt.Errorf("%w: %v", ErrConcatFailed, err)
	}
	return nil
}
