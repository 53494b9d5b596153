// Package tracelog holds the diagnostic outputs of the harness: a zap logger for
// stderr tracing and a best-effort append-only log file.
package tracelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger returns a console logger writing to w, or a no-op logger when
// verbose is false.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if isTerminal(w) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// File appends timestamped records to a log file shared between processes.
type File struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
	now  func() time.Time
}

func NewFile(path string) *File {
	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
}

func (f *File) Path() string { return f.path }

// RecordArgs appends one line describing a parsed argument vector.
func (f *File) RecordArgs(argv []string) error {
	line := fmt.Sprintf("%s argc=%d argv=[%s]\n", f.now().Format(time.RFC3339), len(argv), quoteArgs(argv))
	return f.append(line)
}

func (f *File) append(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock trace log: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open trace log: %w", err)
	}
	if _, err := io.WriteString(out, line); err != nil {
		_ = out.Close()
		return fmt.Errorf("write trace log: %w", err)
	}
	return out.Close()
}

func quoteArgs(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = fmt.Sprintf("%q", a)
	}
	return strings.Join(parts, " ")
}
