package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes one transcode job, blocking until the engine process
// exits. Implementations must be safe for sequential reuse.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// FFmpeg runs jobs through the ffmpeg binary on PATH.
type FFmpeg struct {
	Bin    string
	Stderr io.Writer
}

// NewFFmpeg creates a runner with engine output forwarded to stderr.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Bin: "ffmpeg", Stderr: os.Stderr}
}

// Run compiles and executes the job. The context cancels the engine
// process; a non-zero exit surfaces as an error wrapping the job output.
func (f *FFmpeg) Run(ctx context.Context, job Job) error {
	args, err := job.BuildArgs()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, f.Bin, args...)
	cmd.Stderr = f.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("engine: %s -> %s: %w", f.Bin, job.Output, err)
	}
	return nil
}
