package reelmark

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Modifier names in the order they appear in a normalized chord.
var chordModifiers = []struct {
	mod  KeyModifiers
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

func modifierFromName(s string) (KeyModifiers, bool) {
	switch strings.ToLower(s) {
	case "ctrl", "control":
		return ModCtrl, true
	case "alt", "option":
		return ModAlt, true
	case "shift":
		return ModShift, true
	case "meta", "cmd", "command", "super", "win":
		return ModMeta, true
	}
	return 0, false
}

// FormatChord builds the normalized chord for a key pressed with mods, e.g.
// "Ctrl+Shift+B". It returns "" for a modifier-only press or an empty key.
func FormatChord(mods KeyModifiers, key string) string {
	key = normalizeKeyName(key)
	if key == "" {
		return ""
	}
	if _, ok := modifierFromName(key); ok {
		return ""
	}
	var b strings.Builder
	for _, m := range chordModifiers {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String()
}

// NormalizeChord rewrites a chord typed in any modifier order or case into
// its normalized form. "shift+ctrl+b" becomes "Ctrl+Shift+B".
func NormalizeChord(chord string) (string, error) {
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return "", fmt.Errorf("parse chord: empty")
	}
	var parts []string
	switch {
	case chord == "+":
		parts = []string{"+"}
	case strings.HasSuffix(chord, "++"):
		parts = append(strings.Split(strings.TrimSuffix(chord, "++"), "+"), "+")
		if parts[0] == "" {
			parts = parts[1:]
		}
	default:
		parts = strings.Split(chord, "+")
	}
	var mods KeyModifiers
	key := ""
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if m, ok := modifierFromName(part); ok {
			mods |= m
			continue
		}
		if i != len(parts)-1 || part == "" {
			return "", fmt.Errorf("parse chord %q: unexpected %q", chord, part)
		}
		key = part
	}
	out := FormatChord(mods, key)
	if out == "" {
		return "", fmt.Errorf("parse chord %q: no key", chord)
	}
	return out, nil
}

// normalizeKeyName uppercases single characters and title-cases named keys
// ("space" becomes "Space", "f5" becomes "F5").
func normalizeKeyName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	lower := strings.ToLower(key)
	if lower[0] == 'f' && len(lower) <= 3 && strings.Trim(lower[1:], "0123456789") == "" {
		return strings.ToUpper(lower)
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// KeyPress queues a key press for the next Update. key is a key name such as
// "B" or "Space"; modifier-only presses are dropped.
func (t *Timeline) KeyPress(mods KeyModifiers, key string) {
	if chord := FormatChord(mods, key); chord != "" {
		t.keyQueue = append(t.keyQueue, chord)
	}
}
