package export

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// LookupFFmpeg resolves the ffmpeg binary. A non-empty custom path must
// exist; otherwise ffmpeg is looked up on PATH.
func LookupFFmpeg(custom string) (string, error) {
	return lookup(custom, "ffmpeg")
}

// LookupFFprobe resolves ffprobe, first next to ffmpegPath, then on PATH.
func LookupFFprobe(ffmpegPath string) (string, error) {
	if ffmpegPath != "" {
		sibling := filepath.Join(filepath.Dir(ffmpegPath), "ffprobe"+filepath.Ext(ffmpegPath))
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	return lookup("", "ffprobe")
}

func lookup(custom, name string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return custom, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return path, nil
}

// Prober reads media metadata with ffprobe.
type Prober struct {
	ffprobe string
	run     RunFunc
}

// NewProber returns a Prober using the ffprobe binary at path.
func NewProber(path string) *Prober {
	return &Prober{ffprobe: path, run: execRun}
}

// Duration returns the media duration in milliseconds.
func (p *Prober) Duration(ctx context.Context, media string) (int64, error) {
	out, err := p.run(ctx, p.ffprobe, "-v", "quiet", "-print_format", "json", "-show_format", media)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", media, err)
	}
	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		return 0, fmt.Errorf("probe %s: %w", media, err)
	}
	secs, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: duration %q: %w", media, result.Format.Duration, err)
	}
	return int64(math.Round(secs * 1000)), nil
}

// ProbeDuration is a convenience wrapper around NewProber(ffprobe).Duration.
func ProbeDuration(ctx context.Context, ffprobe, media string) (int64, error) {
	return NewProber(ffprobe).Duration(ctx, media)
}
