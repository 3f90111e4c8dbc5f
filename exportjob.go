package reelmark

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// SectionRanges returns the closed ranges of every section of category in
// list order. Open sections are skipped.
func SectionRanges(sections []*Section, category string) []Range {
	var out []Range
	for _, s := range sections {
		if s.CategoryName != category {
			continue
		}
		if r, ok := s.Range(); ok {
			out = append(out, r)
		}
	}
	return out
}

// ExportSection cuts one section out of the project video into output. The
// export runs in the background; its result arrives as EventExportFinished
// on a later Update.
func (t *Timeline) ExportSection(ctx context.Context, id ID, output string) error {
	s, _, ok := t.Project().FindSection(id)
	if !ok {
		return fmt.Errorf("export section %d: %w", id, ErrUnknownSection)
	}
	r, ok := s.Range()
	if !ok {
		return fmt.Errorf("export section %d: %w", id, ErrOpenSection)
	}
	return t.startExport(ctx, []Range{r}, output)
}

// ExportCategory merges every closed section of category in the current
// scope into one output file.
func (t *Timeline) ExportCategory(ctx context.Context, category, output string) error {
	sections, _ := t.VisibleItems()
	ranges := SectionRanges(sections, category)
	if len(ranges) == 0 {
		return fmt.Errorf("export category %q: no closed sections", category)
	}
	return t.startExport(ctx, ranges, output)
}

func (t *Timeline) startExport(ctx context.Context, ranges []Range, output string) error {
	if t.exporter == nil {
		return errors.New("export: no exporter configured")
	}
	input := t.Project().VideoPath
	if input == "" {
		return fmt.Errorf("export: %w", ErrNoVideo)
	}
	if abs, err := filepath.Abs(input); err == nil {
		input = abs
	}
	t.emit(Event{Type: EventExportRequested, Ranges: ranges, Path: output})
	t.pending++
	exp, results := t.exporter, t.exports
	go func() {
		err := exp.Export(ctx, input, ranges, output)
		results <- exportResult{output: output, err: err}
	}()
	return nil
}
