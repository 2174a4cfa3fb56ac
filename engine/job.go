// Package engine wraps the external media-transcoding tool behind a
// declarative job description: named inputs, a filter graph with named
// in/out pads, output stream mappings, and encoder options. Every
// composition step in the pipeline talks to ffmpeg exclusively through
// this seam, so swapping engines means reimplementing one Runner.
package engine

import (
	"fmt"
	"strings"
)

// Input is one source fed to the engine, with options that must precede
// it on the command line (e.g. "-stream_loop", "-1" or "-loop", "1").
type Input struct {
	Path    string
	Options []string
}

// Param is one key=value option of a filter node. Params are a slice,
// not a map, so a job always compiles to the same argv.
type Param struct {
	Key   string
	Value string
}

// Filter is one node of the filter graph. Inputs and Outputs are pad
// labels without brackets ("0:v", "v1", "aout").
type Filter struct {
	Inputs  []string
	Name    string
	Params  []Param
	Outputs []string
}

// String renders the node in filter_complex syntax:
// [0:v][1:v]xfade=transition=fade:duration=0.50:offset=3.00[v1]
func (f Filter) String() string {
	var b strings.Builder
	for _, in := range f.Inputs {
		b.WriteString("[" + in + "]")
	}
	b.WriteString(f.Name)
	for i, p := range f.Params {
		if i == 0 {
			b.WriteString("=")
		} else {
			b.WriteString(":")
		}
		b.WriteString(p.Key + "=" + p.Value)
	}
	for _, out := range f.Outputs {
		b.WriteString("[" + out + "]")
	}
	return b.String()
}

// Job is a complete engine invocation producing exactly one output file.
type Job struct {
	Inputs        []Input
	Filters       []Filter
	Maps          []string // stream selectors, e.g. "[v1]", "0:a"
	OutputOptions []string // encoder options, e.g. "-c:v", "libx264"
	Output        string
}

// BuildArgs compiles the job into ffmpeg argument order: global -y,
// per-input options, the filter graph, mappings, encoder options, output.
func (j Job) BuildArgs() ([]string, error) {
	if j.Output == "" {
		return nil, fmt.Errorf("engine: job has no output path")
	}
	if len(j.Inputs) == 0 {
		return nil, fmt.Errorf("engine: job %s has no inputs", j.Output)
	}
	for i, in := range j.Inputs {
		if in.Path == "" {
			return nil, fmt.Errorf("engine: job %s input %d has empty path", j.Output, i)
		}
	}

	args := []string{"-y"}
	for _, in := range j.Inputs {
		args = append(args, in.Options...)
		args = append(args, "-i", in.Path)
	}

	if len(j.Filters) > 0 {
		nodes := make([]string, len(j.Filters))
		for i, f := range j.Filters {
			nodes[i] = f.String()
		}
		args = append(args, "-filter_complex", strings.Join(nodes, ";"))
	}

	for _, m := range j.Maps {
		args = append(args, "-map", m)
	}
	args = append(args, j.OutputOptions...)
	args = append(args, j.Output)
	return args, nil
}

// DryRun returns the full command line without executing it.
func (j Job) DryRun() (string, error) {
	args, err := j.BuildArgs()
	if err != nil {
		return "", err
	}
	return "ffmpeg " + strings.Join(args, " "), nil
}
