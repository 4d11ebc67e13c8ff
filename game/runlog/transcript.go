package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	transcriptTitle = "Spilled Mushrooms Game Log"
	stampLayout     = "2006-01-02 15:04:05"
)

var rule = strings.Repeat("=", 60)

// Transcript mirrors everything written to it into a timestamped log file
type Transcript struct {
	file *os.File
	out  io.Writer
	path string
	now  func() time.Time
}

// TranscriptName returns the file name of a run started at t
func TranscriptName(t time.Time) string {
	return fmt.Sprintf("game_run_%s.txt", t.Format("20060102_150405"))
}

// NewTranscript creates dir/game_run_<timestamp>.txt, writes the header and
// tees every later write to console (which may be nil)
func NewTranscript(dir string, console io.Writer) (*Transcript, error) {
	return newTranscript(dir, console, time.Now)
}

func newTranscript(dir string, console io.Writer, now func() time.Time) (*Transcript, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	started := now()
	path := filepath.Join(dir, TranscriptName(started))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript: %w", err)
	}

	fmt.Fprintf(f, "%s\nStarted at: %s\n%s\n\n", transcriptTitle, started.Format(stampLayout), rule)

	t := &Transcript{file: f, out: f, path: path, now: now}
	if console != nil {
		t.out = io.MultiWriter(console, f)
	}
	return t, nil
}

// Path returns the transcript file path
func (t *Transcript) Path() string {
	return t.path
}

func (t *Transcript) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Printf writes a formatted line to the console and the file
func (t *Transcript) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Close writes the footer and closes the file
func (t *Transcript) Close() error {
	fmt.Fprintf(t.file, "\n\n%s\nEnded at: %s\n", rule, t.now().Format(stampLayout))
	return t.file.Close()
}
