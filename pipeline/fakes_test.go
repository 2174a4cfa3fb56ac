package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"storyboard-pipeline/config"
	"storyboard-pipeline/store"
)

var errTest = errors.New("boom")

func writeStub(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}
}

func stubFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("stub"), 0644)
}

type fakeTTS struct {
	calls  int
	failOn map[string]bool // narration text → fail
}

func (f *fakeTTS) Synthesize(_ context.Context, text, outputPath string) error {
	f.calls++
	if f.failOn[text] {
		return errors.New("tts quota exceeded")
	}
	return stubFile(outputPath)
}

type fakeImages struct {
	calls int
	err   error
}

func (f *fakeImages) Generate(_ context.Context, _, _ string, _ int, outputPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return stubFile(outputPath)
}

type fakeDurations struct {
	byPath  map[string]float64
	missing map[string]bool
}

func (f *fakeDurations) Duration(path string) (float64, error) {
	if f.missing[path] {
		return 0, errors.New("asset unreadable")
	}
	if d, ok := f.byPath[path]; ok {
		return d, nil
	}
	return 3.0, nil
}

type fakeClips struct {
	calls int
	err   error
}

func (f *fakeClips) Render(_ context.Context, _, _ string, _ float64, outputPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return stubFile(outputPath)
}

type fakeMerger struct {
	calls     int
	durations [][]float64
	errOn     string // fail when output contains this substring
}

func (f *fakeMerger) Merge(_ context.Context, clips []string, durations []float64, output string) error {
	f.calls++
	f.durations = append(f.durations, append([]float64(nil), durations...))
	if f.errOn != "" && strings.Contains(output, f.errOn) {
		return errors.New("merge blew up")
	}
	if len(clips) == 0 {
		return nil
	}
	return stubFile(output)
}

type fakeMixer struct {
	calls int
	err   error
}

func (f *fakeMixer) Mix(_ context.Context, _, _, outputPath string, _ float64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return stubFile(outputPath)
}

type fakeReframer struct {
	calls int
	zooms []float64
	errOn string
}

func (f *fakeReframer) Reframe(_ context.Context, _, outputPath string, zoomFactor float64, _ int) error {
	f.calls++
	f.zooms = append(f.zooms, zoomFactor)
	if f.errOn != "" && strings.Contains(outputPath, f.errOn) {
		return errors.New("reframe blew up")
	}
	return stubFile(outputPath)
}

type fakeStinger struct {
	calls int
	err   error
}

func (f *fakeStinger) Build(_ context.Context, _, _, outputPath string, _ float64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return stubFile(outputPath)
}

type fakeSegments struct {
	calls  int
	joined [][]string
	err    error
}

func (f *fakeSegments) Concat(_ context.Context, inputPaths []string, outputPath string) error {
	f.calls++
	f.joined = append(f.joined, append([]string(nil), inputPaths...))
	if f.err != nil {
		return f.err
	}
	return stubFile(outputPath)
}

// testHarness wires an orchestrator over a temp dir with all fakes.
type testHarness struct {
	cfg      *config.Config
	store    *store.Store
	tts      *fakeTTS
	images   *fakeImages
	prober   *fakeDurations
	clips    *fakeClips
	merger   *fakeMerger
	mixer    *fakeMixer
	reframer *fakeReframer
	stinger  *fakeStinger
	segments *fakeSegments
	orch     *Orchestrator
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	root := t.TempDir()

	cfg := config.Defaults()
	cfg.Paths = config.PathsConfig{
		Audio:      filepath.Join(root, "audio"),
		Images:     filepath.Join(root, "images"),
		Clips:      filepath.Join(root, "clips"),
		Music:      filepath.Join(root, "music"),
		Output:     filepath.Join(root, "output"),
		Shorts:     filepath.Join(root, "shorts"),
		Endings:    filepath.Join(root, "endings"),
		Thumbnails: filepath.Join(root, "thumbnails"),
		Logs:       filepath.Join(root, "logs"),
	}
	cfg.Cooldowns.ImageAPISec = 0
	cfg.Cooldowns.TTSAPISec = 0

	for _, d := range cfg.Dirs() {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	h := &testHarness{
		cfg:      cfg,
		store:    store.New(cfg.Paths),
		tts:      &fakeTTS{failOn: map[string]bool{}},
		images:   &fakeImages{},
		prober:   &fakeDurations{byPath: map[string]float64{}, missing: map[string]bool{}},
		clips:    &fakeClips{},
		merger:   &fakeMerger{},
		mixer:    &fakeMixer{},
		reframer: &fakeReframer{},
		stinger:  &fakeStinger{},
		segments: &fakeSegments{},
	}
	h.orch = New(cfg, zap.NewNop().Sugar(), Deps{
		Store:    h.store,
		TTS:      h.tts,
		Images:   h.images,
		Prober:   h.prober,
		Clips:    h.clips,
		Merger:   h.merger,
		Mixer:    h.mixer,
		Reframer: h.reframer,
		Stinger:  h.stinger,
		Segments: h.segments,
		Sleep:    func(time.Duration) {},
	})
	return h
}
