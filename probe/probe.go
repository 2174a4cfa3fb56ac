// Package probe extracts metadata from media files through the ffprobe
// command-line tool.
package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrAssetUnreadable marks files that are missing or not decodable.
// Callers skip the owning scene rather than abort the run.
var ErrAssetUnreadable = errors.New("asset unreadable")

// FFProbe shells out to the ffprobe binary on PATH.
type FFProbe struct {
	Bin string
}

// New creates a prober using the default binary name.
func New() *FFProbe {
	return &FFProbe{Bin: "ffprobe"}
}

// Duration returns the playback duration of a media file in seconds.
func (p *FFProbe) Duration(path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrAssetUnreadable, path, err)
	}

	out, err := exec.Command(p.Bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrAssetUnreadable, path, err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || dur <= 0 {
		return 0, fmt.Errorf("%w: %s: bad duration %q", ErrAssetUnreadable, path, strings.TrimSpace(string(out)))
	}
	return dur, nil
}

// stream is the subset of ffprobe stream JSON the pipeline cares about.
type stream struct {
	CodecType string `json:"codec_type"`
}

// StreamLayout returns the number of video and audio streams in a file.
// The segment concatenator uses it to reject inputs that would break
// the concat filter's stream-count invariant.
func (p *FFProbe) StreamLayout(path string) (video, audio int, err error) {
	out, err := exec.Command(p.Bin,
		"-v", "error",
		"-show_entries", "stream=codec_type",
		"-of", "json",
		path,
	).Output()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrAssetUnreadable, path, err)
	}

	var result struct {
		Streams []stream `json:"streams"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		return 0, 0, fmt.Errorf("%w: %s: parse streams: %v", ErrAssetUnreadable, path, err)
	}

	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			video++
		case "audio":
			audio++
		}
	}
	return video, audio, nil
}
