package reelmark

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds timeline geometry and behavior knobs. Zero values are not
// meaningful; start from DefaultConfig.
type Config struct {
	// BandHeight is the height of the fixed bookmark strip at the top.
	BandHeight float64 `yaml:"band_height"`
	// MinRowHeight is the smallest height a layer row may shrink to.
	MinRowHeight float64 `yaml:"min_row_height"`
	// ScrollbarHeight is reserved at the bottom for the horizontal scrollbar.
	ScrollbarHeight float64 `yaml:"scrollbar_height"`
	// HitRadius is the pixel tolerance for bookmark handles and section edges.
	HitRadius float64 `yaml:"hit_radius"`

	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
	// ZoomStep is the fractional zoom change per wheel tick (0.1 = ±10%).
	ZoomStep float64 `yaml:"zoom_step"`
	// ScrollStep is the fraction of the visible duration scrolled per wheel tick.
	ScrollStep float64 `yaml:"scroll_step"`
	// VerticalScrollStep is the pixel distance scrolled across layers per tick.
	VerticalScrollStep float64 `yaml:"vertical_scroll_step"`

	UndoLimit        int           `yaml:"undo_limit"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`

	// DoubleClickFrames is the maximum number of Update frames between two
	// presses that still count as a double click.
	DoubleClickFrames int `yaml:"double_click_frames"`
	// DragDeadZone is the pointer travel in pixels below which a second press
	// still counts toward a double click.
	DragDeadZone float64 `yaml:"drag_dead_zone"`

	FrameStep      int64 `yaml:"frame_step_ms"`
	JumpThreshold  int64 `yaml:"jump_threshold_ms"`
	FollowPlayhead bool  `yaml:"follow_playhead"`
	// FollowDuration is the scroll animation length in seconds.
	FollowDuration float32 `yaml:"follow_duration"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		BandHeight:         25,
		MinRowHeight:       50,
		ScrollbarHeight:    15,
		HitRadius:          6,
		MinZoom:            1.0,
		MaxZoom:            50.0,
		ZoomStep:           0.1,
		ScrollStep:         0.1,
		VerticalScrollStep: 30,
		UndoLimit:          50,
		AutosaveInterval:   60 * time.Second,
		DoubleClickFrames:  24,
		DragDeadZone:       4,
		FrameStep:          33,
		JumpThreshold:      500,
		FollowPlayhead:     true,
		FollowDuration:     0.25,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the timeline cannot work with.
func (c Config) Validate() error {
	switch {
	case c.MinZoom < 1 || c.MaxZoom < c.MinZoom:
		return fmt.Errorf("zoom range [%g, %g] invalid", c.MinZoom, c.MaxZoom)
	case c.HitRadius <= 0:
		return fmt.Errorf("hit_radius must be positive")
	case c.MinRowHeight <= 0:
		return fmt.Errorf("min_row_height must be positive")
	case c.UndoLimit < 1:
		return fmt.Errorf("undo_limit must be at least 1")
	case c.ZoomStep <= 0 || c.ZoomStep >= 1:
		return fmt.Errorf("zoom_step must be in (0, 1)")
	}
	return nil
}
