package pipeline

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"storyboard-pipeline/types"
)

func TestGenerateAssetsFromScratch(t *testing.T) {
	h := newHarness(t)
	scenes := []types.Scene{
		{ID: 1, Text: "one", ImagePrompt: "a"},
		{ID: 2, Text: "two", ImagePrompt: "b"},
		{ID: 3, Text: "three", ImagePrompt: "c"},
		{ID: 4, Text: "four", ImagePrompt: "d"},
	}
	narration := []float64{3.0, 2.5, 4.0, 3.2}
	for i, s := range scenes {
		h.prober.byPath[h.store.AudioPath(s.ID)] = narration[i]
	}

	clips, results := h.orch.GenerateAssets(context.Background(), scenes)

	if h.tts.calls != 4 || h.images.calls != 4 || h.clips.calls != 4 {
		t.Fatalf("calls tts=%d images=%d clips=%d, want 4 each", h.tts.calls, h.images.calls, h.clips.calls)
	}
	want := []float64{3.5, 3.0, 4.5, 3.7}
	if clips.Len() != len(want) {
		t.Fatalf("clips.Len() = %d, want %d", clips.Len(), len(want))
	}
	for i, d := range clips.Durations {
		if math.Abs(d-want[i]) > 1e-9 {
			t.Errorf("duration[%d] = %v, want %v", i, d, want[i])
		}
	}
	for _, r := range results {
		if r.Status != types.SceneRendered {
			t.Errorf("scene %d status = %v, want rendered", r.SceneID, r.Status)
		}
	}
}

func TestGenerateAssetsFullyCachedIsNoOp(t *testing.T) {
	h := newHarness(t)
	scenes := []types.Scene{
		{ID: 1, Text: "one", ImagePrompt: "a"},
		{ID: 2, Text: "two", ImagePrompt: "b"},
	}
	for _, s := range scenes {
		writeStub(t, h.store.AudioPath(s.ID))
		writeStub(t, h.store.ImagePath(s.ID))
		writeStub(t, h.store.ClipPath(s.ID))
	}

	clips, results := h.orch.GenerateAssets(context.Background(), scenes)

	if h.tts.calls != 0 || h.images.calls != 0 || h.clips.calls != 0 {
		t.Fatalf("cached run made calls: tts=%d images=%d clips=%d", h.tts.calls, h.images.calls, h.clips.calls)
	}
	if clips.Len() != 2 {
		t.Fatalf("clips.Len() = %d, want 2", clips.Len())
	}
	for _, r := range results {
		if r.Status != types.SceneCached {
			t.Errorf("scene %d status = %v, want cached", r.SceneID, r.Status)
		}
	}
}

func TestGenerateAssetsAudioFailureSkipsScene(t *testing.T) {
	h := newHarness(t)
	h.tts.failOn["two"] = true
	scenes := []types.Scene{
		{ID: 1, Text: "one", ImagePrompt: "a"},
		{ID: 2, Text: "two", ImagePrompt: "b"},
		{ID: 3, Text: "three", ImagePrompt: "c"},
	}

	clips, results := h.orch.GenerateAssets(context.Background(), scenes)

	if clips.Len() != 2 {
		t.Fatalf("clips.Len() = %d, want 2", clips.Len())
	}
	if results[1].Status != types.SceneFailed || results[1].Err == nil {
		t.Errorf("scene 2 = %+v, want failed with error", results[1])
	}
	if results[2].Status != types.SceneRendered {
		t.Errorf("scene 3 status = %v, want rendered (loop must continue)", results[2].Status)
	}
}

func TestGenerateAssetsMissingImageSkipsClip(t *testing.T) {
	h := newHarness(t)
	h.images.err = errTest
	scenes := []types.Scene{{ID: 1, Text: "one", ImagePrompt: "a"}}

	clips, results := h.orch.GenerateAssets(context.Background(), scenes)

	if clips.Len() != 0 {
		t.Fatalf("clips.Len() = %d, want 0", clips.Len())
	}
	if h.clips.calls != 0 {
		t.Errorf("clip renderer called %d times, want 0", h.clips.calls)
	}
	if results[0].Status != types.SceneSkipped {
		t.Errorf("status = %v, want skipped", results[0].Status)
	}
	if len(clips.Paths) != len(clips.Durations) {
		t.Errorf("paths/durations misaligned: %d vs %d", len(clips.Paths), len(clips.Durations))
	}
}

func TestGenerateAssetsSourceImageCopied(t *testing.T) {
	h := newHarness(t)
	src := filepath.Join(t.TempDir(), "supplied.png")
	writeStub(t, src)
	scenes := []types.Scene{{ID: 7, Text: "seven", SourceImage: src}}

	clips, _ := h.orch.GenerateAssets(context.Background(), scenes)

	if h.images.calls != 0 {
		t.Errorf("image generator called %d times, want 0 for supplied image", h.images.calls)
	}
	if !h.store.Exists(h.store.ImagePath(7)) {
		t.Error("supplied image was not copied into place")
	}
	if clips.Len() != 1 {
		t.Errorf("clips.Len() = %d, want 1", clips.Len())
	}
}

func TestGenerateAssetsProbeFailure(t *testing.T) {
	h := newHarness(t)
	scenes := []types.Scene{{ID: 1, Text: "one", ImagePrompt: "a"}}
	h.prober.missing[h.store.AudioPath(1)] = true

	clips, results := h.orch.GenerateAssets(context.Background(), scenes)

	if clips.Len() != 0 {
		t.Fatalf("clips.Len() = %d, want 0", clips.Len())
	}
	if results[0].Status != types.SceneFailed {
		t.Errorf("status = %v, want failed", results[0].Status)
	}
}
