package reelmark

import "testing"

func TestNormalizeChord(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"ctrl+b", "Ctrl+B", false},
		{"shift+ctrl+b", "Ctrl+Shift+B", false},
		{"Meta+Alt+Ctrl+Shift+k", "Ctrl+Alt+Shift+Meta+K", false},
		{"cmd+space", "Meta+Space", false},
		{"f5", "F5", false},
		{"Ctrl+F12", "Ctrl+F12", false},
		{" b ", "B", false},
		{"+", "+", false},
		{"Ctrl++", "Ctrl++", false},
		{"", "", true},
		{"ctrl+shift", "", true},
		{"a+b", "", true},
		{"ctrl+", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeChord(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeChord(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatChord(t *testing.T) {
	if got := FormatChord(ModShift|ModCtrl, "b"); got != "Ctrl+Shift+B" {
		t.Errorf("got %q", got)
	}
	if got := FormatChord(ModCtrl, "control"); got != "" {
		t.Errorf("modifier-only chord = %q", got)
	}
	if got := FormatChord(0, "escape"); got != "Escape" {
		t.Errorf("got %q", got)
	}
}
