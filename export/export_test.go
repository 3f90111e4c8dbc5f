package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/phanxgames/reelmark"
)

type call struct {
	name string
	args []string
	list string // files.txt content, read while the temp dir still exists
}

type fakeRunner struct {
	calls  []call
	failAt int // 1-based call index that fails; 0 never
	out    []byte
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	c := call{name: name, args: args}
	if i := slices.Index(args, "concat"); i >= 0 {
		data, err := os.ReadFile(args[slices.Index(args, "-i")+1])
		if err != nil {
			return nil, err
		}
		c.list = string(data)
	}
	f.calls = append(f.calls, c)
	if len(f.calls) == f.failAt {
		return nil, &EncoderError{Args: args, Stderr: "frame=1\nInvalid data found", Err: errors.New("exit status 1")}
	}
	return f.out, nil
}

func newTestExporter(f *fakeRunner) *Exporter {
	e := New("/usr/bin/ffmpeg")
	e.run = f.run
	return e
}

func TestExportSingleRange(t *testing.T) {
	f := &fakeRunner{}
	e := newTestExporter(f)
	out := filepath.Join(t.TempDir(), "clips", "take.mp4")
	err := e.Export(context.Background(), "/videos/in.mp4", []reelmark.Range{{Start: 1000, End: 5250}}, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("calls = %d", len(f.calls))
	}
	want := []string{"-y", "-ss", "1.000", "-i", "/videos/in.mp4", "-t", "4.250",
		"-c:v", "libx264", "-preset", "fast", "-crf", "23", "-c:a", "aac", out}
	if !slices.Equal(f.calls[0].args, want) {
		t.Errorf("args = %q", f.calls[0].args)
	}
	if f.calls[0].name != "/usr/bin/ffmpeg" {
		t.Errorf("binary = %q", f.calls[0].name)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Error("output directory not created")
	}
}

func TestExportConcat(t *testing.T) {
	f := &fakeRunner{}
	e := newTestExporter(f)
	ranges := []reelmark.Range{{Start: 0, End: 1000}, {Start: 3000, End: 4500}, {Start: 8000, End: 9000}}
	if err := e.Export(context.Background(), "in.mp4", ranges, "out.mp4"); err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 4 {
		t.Fatalf("calls = %d, want 3 clips + concat", len(f.calls))
	}
	var clips []string
	for _, c := range f.calls[:3] {
		clips = append(clips, c.args[len(c.args)-1])
	}
	if filepath.Base(clips[1]) != "seg_0001.mp4" {
		t.Errorf("clip name = %q", clips[1])
	}
	if f.calls[1].args[2] != "3.000" || f.calls[1].args[6] != "1.500" {
		t.Errorf("second clip args = %q", f.calls[1].args)
	}

	concat := f.calls[3]
	if !slices.Contains(concat.args, "copy") || concat.args[len(concat.args)-1] != "out.mp4" {
		t.Errorf("concat args = %q", concat.args)
	}
	for _, clip := range clips {
		if !strings.Contains(concat.list, "file '"+clip+"'\n") {
			t.Errorf("list missing %s:\n%s", clip, concat.list)
		}
	}
	if _, err := os.Stat(filepath.Dir(clips[0])); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("temp dir left behind: %v", err)
	}
}

func TestExportFailureCleansUp(t *testing.T) {
	f := &fakeRunner{failAt: 2}
	e := newTestExporter(f)
	ranges := []reelmark.Range{{Start: 0, End: 1000}, {Start: 2000, End: 3000}}
	err := e.Export(context.Background(), "in.mp4", ranges, "out.mp4")
	var encErr *EncoderError
	if !errors.As(err, &encErr) {
		t.Fatalf("err = %v, want *EncoderError", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error should carry the last stderr line: %v", err)
	}
	if len(f.calls) != 2 {
		t.Errorf("calls = %d, concat should not run", len(f.calls))
	}
	tmp := filepath.Dir(f.calls[0].args[len(f.calls[0].args)-1])
	if _, err := os.Stat(tmp); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("temp dir left behind: %v", err)
	}
}

func TestExportRejectsBadRanges(t *testing.T) {
	e := newTestExporter(&fakeRunner{})
	tests := []struct {
		name   string
		ranges []reelmark.Range
	}{
		{"none", nil},
		{"empty", []reelmark.Range{{Start: 10, End: 10}}},
		{"negative", []reelmark.Range{{Start: -5, End: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.Export(context.Background(), "in.mp4", tt.ranges, "out.mp4"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncoderErrorMessage(t *testing.T) {
	err := &EncoderError{Err: errors.New("exit status 1")}
	if err.Error() != "encoder failed: exit status 1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap mismatch")
	}

	err.Stderr = "[mp4 @ 0x1] moov atom not found\nclip.mp4: Invalid data found when processing input\n"
	want := "encoder failed: exit status 1: [mp4 @ 0x1] moov atom not found\nclip.mp4: Invalid data found when processing input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var lines []string
	for i := range 25 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	err.Stderr = strings.Join(lines, "\n")
	msg := err.Error()
	if strings.Contains(msg, "line 14\n") || !strings.Contains(msg, ": line 15\n") || !strings.HasSuffix(msg, "line 24") {
		t.Errorf("want the last %d lines, got %q", stderrLines, msg)
	}
}

func TestExecRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	out, err := execRun(context.Background(), "sh", "-c", "echo ok")
	if err != nil || strings.TrimSpace(string(out)) != "ok" {
		t.Errorf("out = %q, err = %v", out, err)
	}
	_, err = execRun(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	var encErr *EncoderError
	if !errors.As(err, &encErr) || !strings.Contains(encErr.Stderr, "broken") {
		t.Errorf("err = %v", err)
	}
}
