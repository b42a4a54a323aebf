package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogFilePath is the path to the scene log file, relative to the working directory (project root when run via go run ./cmd/scene).
const LogFilePath = "logs/scene.txt"

// maxLines bounds the in-memory history; the file keeps everything.
const maxLines = 512

// Logger stores lines of text in memory (for the console) and appends them to a file on disk.
// It is also an io.Writer so slog handlers can write into it; see Slog.
type Logger struct {
	mu      sync.Mutex
	lines   []string
	path    string
	partial []byte
	now     func() time.Time
}

// New returns a Logger writing to LogFilePath and ensures the logs directory exists.
func New() *Logger {
	return NewAt(LogFilePath)
}

// NewAt returns a Logger appending to path. An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{lines: make([]string, 0), path: path, now: time.Now}
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp] using computer time.
// Used for console echo; structured records go through Slog.
func (l *Logger) Log(line string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	l.append("[" + ts + "] " + line)
}

// Write implements io.Writer. Input is split on newlines; a trailing fragment is held until the next write.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	l.partial = append(l.partial, p...)
	var complete []string
	for {
		i := bytes.IndexByte(l.partial, '\n')
		if i < 0 {
			break
		}
		complete = append(complete, string(l.partial[:i]))
		l.partial = l.partial[i+1:]
	}
	l.mu.Unlock()

	for _, line := range complete {
		l.append(line)
	}
	return len(p), nil
}

func (l *Logger) append(line string) {
	line = strings.TrimRight(line, "\r")

	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(line + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Slog returns a text slog.Logger whose records land in this Logger.
func (l *Logger) Slog(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05.000"))
			}
			return a
		},
	}))
}

// Discard returns a logger that drops everything. Packages use it when handed a nil *slog.Logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
