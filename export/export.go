// Package export cuts time ranges out of a media file with ffmpeg.
//
// One range is re-encoded into the output directly. Several ranges are
// each extracted to a temporary clip and then joined with ffmpeg's concat
// demuxer without re-encoding. Temporary files are removed on every path.
//
// Usage:
//
//	ffmpeg, err := export.LookupFFmpeg("")
//	exp := export.New(ffmpeg)
//	timeline.SetExporter(exp)
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/reelmark"
)

// RunFunc runs an external command and returns its standard output. A
// non-zero exit must be reported as an error carrying the standard error
// text (see EncoderError).
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// EncoderError is returned when ffmpeg or ffprobe exits unsuccessfully.
type EncoderError struct {
	Args   []string
	Stderr string
	Err    error
}

// stderrLines caps how much encoder output an EncoderError message carries.
// ffmpeg prints its banner first and the diagnosis last.
const stderrLines = 10

func (e *EncoderError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if lines := strings.Split(msg, "\n"); len(lines) > stderrLines {
		msg = strings.Join(lines[len(lines)-stderrLines:], "\n")
	}
	if msg == "" {
		return fmt.Sprintf("encoder failed: %v", e.Err)
	}
	return fmt.Sprintf("encoder failed: %v: %s", e.Err, msg)
}

func (e *EncoderError) Unwrap() error { return e.Err }

// Exporter drives ffmpeg. It implements reelmark.Exporter.
type Exporter struct {
	ffmpeg string
	logger *slog.Logger
	run    RunFunc
}

var _ reelmark.Exporter = (*Exporter)(nil)

// New returns an Exporter using the ffmpeg binary at ffmpegPath.
func New(ffmpegPath string) *Exporter {
	return &Exporter{
		ffmpeg: ffmpegPath,
		logger: slog.New(slog.DiscardHandler),
		run:    execRun,
	}
}

// SetLogger sets the logger that receives each encoder invocation at debug level.
func (e *Exporter) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	e.logger = l
}

// Export writes ranges of input into output. Ranges are used in the order
// given.
func (e *Exporter) Export(ctx context.Context, input string, ranges []reelmark.Range, output string) error {
	if len(ranges) == 0 {
		return errors.New("export: no ranges")
	}
	for i, r := range ranges {
		if r.Start < 0 || r.End <= r.Start {
			return fmt.Errorf("export: range %d [%d, %d] is empty", i, r.Start, r.End)
		}
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	if len(ranges) == 1 {
		return e.ffmpegRun(ctx, trimArgs(input, ranges[0], output))
	}

	tmp, err := os.MkdirTemp("", "reelmark-export-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer os.RemoveAll(tmp)

	var list strings.Builder
	for i, r := range ranges {
		clip := filepath.Join(tmp, fmt.Sprintf("seg_%04d.mp4", i))
		if err := e.ffmpegRun(ctx, trimArgs(input, r, clip)); err != nil {
			return err
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(clip, "'", `'\''`))
	}
	listPath := filepath.Join(tmp, "files.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return e.ffmpegRun(ctx, concatArgs(listPath, output))
}

func (e *Exporter) ffmpegRun(ctx context.Context, args []string) error {
	e.logger.Debug("ffmpeg", slog.String("args", strings.Join(args, " ")))
	_, err := e.run(ctx, e.ffmpeg, args...)
	return err
}

func trimArgs(input string, r reelmark.Range, output string) []string {
	return []string{
		"-y",
		"-ss", seconds(r.Start),
		"-i", input,
		"-t", seconds(r.Duration()),
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac",
		output,
	}
}

func concatArgs(list, output string) []string {
	return []string{"-y", "-f", "concat", "-safe", "0", "-i", list, "-c", "copy", output}
}

// seconds formats milliseconds as decimal seconds with millisecond precision.
func seconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &EncoderError{Args: append([]string{name}, args...), Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
