package reelmark

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// NewDocument discards the current document and starts an empty one for
// videoPath. The document path is cleared, so autosave stays off until the
// next Save.
func (t *Timeline) NewDocument(videoPath string) {
	t.history.Replace(NewProject(videoPath))
	t.path = ""
	t.replaced()
	if videoPath != "" {
		t.log("Started new project with " + filepath.Base(videoPath))
	}
}

// Load replaces the document with the one stored at path. On any error the
// current document, history and scope are left untouched.
func (t *Timeline) Load(path string) error {
	p, err := LoadProject(path)
	if err != nil {
		return err
	}
	t.history.Replace(p)
	t.path = path
	t.replaced()
	t.log("Project loaded.")
	return nil
}

// Save writes the document to path (or the current path when path is "")
// and remembers it for autosave.
func (t *Timeline) Save(path string) error {
	if path == "" {
		path = t.path
	}
	if path == "" {
		return fmt.Errorf("save project: no path")
	}
	if err := SaveProject(path, t.Project()); err != nil {
		return err
	}
	t.path = path
	t.log("Project saved.")
	return nil
}

// --- Autosave ---

type autosaveState struct {
	enabled bool
	elapsed time.Duration
	busy    bool
	done    chan error
	// write is the file writer; swapped out in tests.
	write func(path string, data []byte) error
}

// SetAutosave turns the periodic autosave on or off. It only writes when
// the document has a path.
func (t *Timeline) SetAutosave(on bool) {
	t.autosave.enabled = on
	t.autosave.elapsed = 0
}

// AutosaveEnabled reports whether autosave is on.
func (t *Timeline) AutosaveEnabled() bool { return t.autosave.enabled }

// tickAutosave runs from Update. The document is encoded here, on the UI
// goroutine; only the file write happens in the background. A write that
// is still running when the next interval elapses causes that tick to be
// skipped.
func (t *Timeline) tickAutosave(dt float32) {
	a := &t.autosave
	if a.done != nil {
		select {
		case err := <-a.done:
			a.busy = false
			if err != nil {
				t.logger.Error("autosave failed", slog.String("path", t.path), slog.Any("err", err))
			}
		default:
		}
	}
	if !a.enabled || t.path == "" || t.cfg.AutosaveInterval <= 0 {
		return
	}
	a.elapsed += time.Duration(float64(dt) * float64(time.Second))
	if a.elapsed < t.cfg.AutosaveInterval {
		return
	}
	a.elapsed = 0
	if a.busy {
		return
	}
	t.AutosaveNow()
}

// AutosaveNow starts an autosave immediately. It reports false when there
// is no path or a previous write is still running.
func (t *Timeline) AutosaveNow() bool {
	a := &t.autosave
	if t.path == "" || a.busy {
		return false
	}
	data, err := Encode(t.Project())
	if err != nil {
		t.logger.Error("autosave failed", slog.String("path", t.path), slog.Any("err", err))
		return false
	}
	if a.done == nil {
		a.done = make(chan error, 1)
	}
	write := a.write
	if write == nil {
		write = writeFileAtomic
	}
	a.busy = true
	path, done := t.path, a.done
	go func() {
		done <- write(path, data)
	}()
	return true
}
