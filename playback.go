package reelmark

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseRate parses a playback rate such as "1.5x", "2" or "0.5X".
func ParseRate(s string) (float64, error) {
	v := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "x")
	rate, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", s, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("parse rate %q: must be positive", s)
	}
	return rate, nil
}

// SetPlaybackRate parses text and sends the rate to the player. Invalid or
// non-positive input is ignored and reported as false.
func (t *Timeline) SetPlaybackRate(text string) bool {
	rate, err := ParseRate(text)
	if err != nil {
		t.debugf("ignored playback rate", "input", text)
		return false
	}
	if t.player != nil {
		t.player.SetPlaybackRate(rate)
	}
	t.emit(Event{Type: EventPlaybackRate, Rate: rate})
	return true
}

// Seek moves the playhead to ms, clamped to [0, duration].
func (t *Timeline) Seek(ms int64) {
	t.seek(float64(ms))
}

// StepFrame moves the playhead by n frames (negative steps back).
func (t *Timeline) StepFrame(n int) {
	t.seek(float64(max(0, t.position+int64(n)*t.cfg.FrameStep)))
}

// SectionBoundaries returns the sorted, unique start and end times of the
// root sections.
func SectionBoundaries(p *Project) []int64 {
	var pts []int64
	for _, s := range p.Sections {
		pts = append(pts, s.StartTime)
		if s.EndTime != nil {
			pts = append(pts, *s.EndTime)
		}
	}
	slices.Sort(pts)
	return slices.Compact(pts)
}

// JumpPrevSection seeks to the last boundary (or 0) more than the jump
// threshold before the playhead.
func (t *Timeline) JumpPrevSection() {
	target := int64(0)
	pts := SectionBoundaries(t.Project())
	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i] < t.position-t.cfg.JumpThreshold {
			target = pts[i]
			break
		}
	}
	t.Seek(target)
}

// JumpNextSection seeks to the first boundary more than the jump threshold
// after the playhead, or to the end of the video.
func (t *Timeline) JumpNextSection() {
	target := t.duration
	for _, pt := range SectionBoundaries(t.Project()) {
		if pt > t.position+t.cfg.JumpThreshold {
			target = pt
			break
		}
	}
	t.Seek(target)
}
