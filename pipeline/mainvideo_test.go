package pipeline

import (
	"context"
	"testing"

	"storyboard-pipeline/types"
)

func mainClips(t *testing.T, h *testHarness) types.ClipSet {
	t.Helper()
	var clips types.ClipSet
	for id := 1; id <= 2; id++ {
		writeStub(t, h.store.ClipPath(id))
		clips.Append(h.store.ClipPath(id), 3.5)
	}
	return clips
}

func TestAssembleMainHappyPath(t *testing.T) {
	h := newHarness(t)
	clips := mainClips(t, h)
	writeStub(t, h.store.MusicPath(h.cfg.Music.File))

	if err := h.orch.AssembleMain(context.Background(), clips); err != nil {
		t.Fatalf("AssembleMain: %v", err)
	}

	if h.merger.calls != 1 || h.mixer.calls != 1 || h.reframer.calls != 1 {
		t.Errorf("calls merger=%d mixer=%d reframer=%d, want 1 each", h.merger.calls, h.mixer.calls, h.reframer.calls)
	}
	if !h.store.Exists(h.store.MainOutput("final_video.mp4")) {
		t.Error("final video missing")
	}
	if !h.store.Exists(h.store.MainOutput("final_video_9_16.mp4")) {
		t.Error("vertical video missing")
	}
	if h.store.Exists(h.store.MainOutput("video_raw.mp4")) {
		t.Error("raw merge should be deleted after assembly")
	}
}

func TestAssembleMainMergeFailureIsFatal(t *testing.T) {
	h := newHarness(t)
	h.merger.errOn = "video_raw"
	clips := mainClips(t, h)

	if err := h.orch.AssembleMain(context.Background(), clips); err == nil {
		t.Fatal("want error when merge fails")
	}
	if h.mixer.calls != 0 || h.reframer.calls != 0 {
		t.Errorf("downstream stages ran after merge failure: mixer=%d reframer=%d", h.mixer.calls, h.reframer.calls)
	}
}

func TestAssembleMainMixFallsBackToCopy(t *testing.T) {
	h := newHarness(t)
	h.mixer.err = errTest
	clips := mainClips(t, h)
	writeStub(t, h.store.MusicPath(h.cfg.Music.File))

	if err := h.orch.AssembleMain(context.Background(), clips); err != nil {
		t.Fatalf("mix failure must degrade, got %v", err)
	}
	if !h.store.Exists(h.store.MainOutput("final_video.mp4")) {
		t.Error("final video missing after copy fallback")
	}
}

func TestAssembleMainWithoutMusicCopiesRaw(t *testing.T) {
	h := newHarness(t)
	clips := mainClips(t, h)

	if err := h.orch.AssembleMain(context.Background(), clips); err != nil {
		t.Fatalf("AssembleMain: %v", err)
	}
	if h.mixer.calls != 0 {
		t.Errorf("mixer called %d times with no music file", h.mixer.calls)
	}
	if !h.store.Exists(h.store.MainOutput("final_video.mp4")) {
		t.Error("final video missing")
	}
}

func TestAssembleMainReframeFailureNonFatal(t *testing.T) {
	h := newHarness(t)
	h.reframer.errOn = "9_16"
	clips := mainClips(t, h)

	if err := h.orch.AssembleMain(context.Background(), clips); err != nil {
		t.Fatalf("reframe failure must not abort, got %v", err)
	}
	if h.store.Exists(h.store.MainOutput("final_video_9_16.mp4")) {
		t.Error("vertical artifact should not exist after reframe failure")
	}
}
