package reelmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Wire types mirror the persisted document exactly. Required fields are
// pointers so a missing key can be told apart from a zero value.

type wireCategory struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Color *string `json:"color"`
	Layer string  `json:"layer"`
}

type wireBookmark struct {
	CategoryName *string `json:"category_name"`
	Timestamp    *int64  `json:"timestamp"`
	Description  string  `json:"description"`
}

type wireSection struct {
	CategoryName *string        `json:"category_name"`
	StartTime    *int64         `json:"start_time"`
	EndTime      *int64         `json:"end_time"`
	SubSections  []wireSection  `json:"sub_sections"`
	Bookmarks    []wireBookmark `json:"bookmarks"`
}

type wireProject struct {
	VideoPath  string            `json:"video_path"`
	Categories []wireCategory    `json:"categories"`
	Sections   []wireSection     `json:"sections"`
	Bookmarks  []wireBookmark    `json:"bookmarks"`
	Events     []string          `json:"events"`
	Keybinds   map[string]string `json:"keybinds"`
}

// Encode serializes the project as 4-space indented JSON. Empty lists are
// written as [] rather than null so a load/save cycle reproduces the input.
func Encode(p *Project) ([]byte, error) {
	w := wireProject{
		VideoPath:  p.VideoPath,
		Categories: make([]wireCategory, 0, len(p.Categories)),
		Sections:   encodeSections(p.Sections),
		Bookmarks:  encodeBookmarks(p.Bookmarks),
		Events:     p.Events,
		Keybinds:   p.Keybinds,
	}
	if w.Events == nil {
		w.Events = []string{}
	}
	if w.Keybinds == nil {
		w.Keybinds = map[string]string{}
	}
	for _, c := range p.Categories {
		name, kind, color := c.Name, c.Kind.String(), c.ColorText()
		w.Categories = append(w.Categories, wireCategory{Name: &name, Type: &kind, Color: &color, Layer: c.Layer})
	}
	data, err := json.MarshalIndent(w, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

func encodeSections(list []*Section) []wireSection {
	out := make([]wireSection, 0, len(list))
	for _, s := range list {
		name, start := s.CategoryName, s.StartTime
		ws := wireSection{
			CategoryName: &name,
			StartTime:    &start,
			SubSections:  encodeSections(s.SubSections),
			Bookmarks:    encodeBookmarks(s.Bookmarks),
		}
		if s.EndTime != nil {
			end := *s.EndTime
			ws.EndTime = &end
		}
		out = append(out, ws)
	}
	return out
}

func encodeBookmarks(list []*Bookmark) []wireBookmark {
	out := make([]wireBookmark, 0, len(list))
	for _, b := range list {
		name, ts := b.CategoryName, b.Timestamp
		out = append(out, wireBookmark{CategoryName: &name, Timestamp: &ts, Description: b.Description})
	}
	return out
}

// Decode parses a project document. The result is a fresh Project with IDs
// assigned in traversal order; nothing is shared with any other Project.
func Decode(data []byte) (*Project, error) {
	var w wireProject
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}

	p := NewProject(w.VideoPath)
	for i, wc := range w.Categories {
		if wc.Name == nil || wc.Type == nil || wc.Color == nil {
			return nil, fmt.Errorf("decode project: categories[%d]: name, type and color are required", i)
		}
		kind, err := ParseKind(*wc.Type)
		if err != nil {
			return nil, fmt.Errorf("decode project: categories[%d]: %w", i, err)
		}
		color, err := ParseColor(*wc.Color)
		if err != nil {
			return nil, fmt.Errorf("decode project: categories[%d]: %w", i, err)
		}
		layer := wc.Layer
		if layer == "" {
			layer = DefaultLayer
		}
		c := Category{Name: *wc.Name, Kind: kind, Color: color, Layer: layer}
		if *wc.Color != color.Hex() {
			c.hex = *wc.Color
		}
		p.Categories = append(p.Categories, c)
	}

	var err error
	if p.Sections, err = decodeSections(w.Sections, "sections"); err != nil {
		return nil, err
	}
	if p.Bookmarks, err = decodeBookmarks(w.Bookmarks, "bookmarks"); err != nil {
		return nil, err
	}
	if w.Events != nil {
		p.Events = w.Events
	}
	if w.Keybinds != nil {
		p.Keybinds = w.Keybinds
	}
	p.assignIDs()
	return p, nil
}

func decodeSections(list []wireSection, path string) ([]*Section, error) {
	out := make([]*Section, 0, len(list))
	for i, ws := range list {
		at := fmt.Sprintf("%s[%d]", path, i)
		if ws.CategoryName == nil || ws.StartTime == nil {
			return nil, fmt.Errorf("decode project: %s: category_name and start_time are required", at)
		}
		if *ws.StartTime < 0 {
			return nil, fmt.Errorf("decode project: %s: negative start_time %d", at, *ws.StartTime)
		}
		s := &Section{CategoryName: *ws.CategoryName, StartTime: *ws.StartTime}
		if ws.EndTime != nil {
			s.SetEnd(*ws.EndTime)
		}
		var err error
		if s.SubSections, err = decodeSections(ws.SubSections, at+".sub_sections"); err != nil {
			return nil, err
		}
		if s.Bookmarks, err = decodeBookmarks(ws.Bookmarks, at+".bookmarks"); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeBookmarks(list []wireBookmark, path string) ([]*Bookmark, error) {
	out := make([]*Bookmark, 0, len(list))
	for i, wb := range list {
		if wb.CategoryName == nil || wb.Timestamp == nil {
			return nil, fmt.Errorf("decode project: %s[%d]: category_name and timestamp are required", path, i)
		}
		if *wb.Timestamp < 0 {
			return nil, fmt.Errorf("decode project: %s[%d]: negative timestamp %d", path, i, *wb.Timestamp)
		}
		out = append(out, &Bookmark{CategoryName: *wb.CategoryName, Timestamp: *wb.Timestamp, Description: wb.Description})
	}
	return out, nil
}

// LoadProject reads and decodes a project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}
	return p, nil
}

// SaveProject encodes p and writes it to path atomically.
func SaveProject(path string, p *Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes into a temp file in the target directory and renames
// it over path, so readers never observe a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}
