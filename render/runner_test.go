package render

import (
	"context"
	"strings"

	"storyboard-pipeline/engine"
)

// captureRunner records every job instead of executing it.
type captureRunner struct {
	jobs []engine.Job
	err  error
}

func (c *captureRunner) Run(_ context.Context, job engine.Job) error {
	c.jobs = append(c.jobs, job)
	return c.err
}

func (c *captureRunner) lastFilterGraph() string {
	if len(c.jobs) == 0 {
		return ""
	}
	job := c.jobs[len(c.jobs)-1]
	nodes := make([]string, len(job.Filters))
	for i, f := range job.Filters {
		nodes[i] = f.String()
	}
	return strings.Join(nodes, ";")
}

// fakeProber returns canned stream layouts per path.
type fakeProber struct {
	layouts map[string][2]int
}

func (f *fakeProber) StreamLayout(path string) (int, int, error) {
	l, ok := f.layouts[path]
	if !ok {
		return 1, 1, nil
	}
	return l[0], l[1], nil
}
