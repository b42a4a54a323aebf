package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogPrefixesTimestamp(t *testing.T) {
	l := NewAt("")
	l.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	l.Log("hello")

	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("Lines() len = %d, want 1", len(lines))
	}
	if lines[0] != "[2025-03-04 05:06:07] hello" {
		t.Errorf("Lines()[0] = %q", lines[0])
	}
}

func TestWriteSplitsLines(t *testing.T) {
	l := NewAt("")
	_, _ = l.Write([]byte("first\nsec"))
	_, _ = l.Write([]byte("ond\n"))

	got := l.Lines()
	want := []string{"first", "second"}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewAt("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "mutated"
	if l.Lines()[0] == "mutated" {
		t.Error("Lines() must return a copy")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	l := NewAt("")
	for i := 0; i < maxLines+10; i++ {
		_, _ = l.Write([]byte("x\n"))
	}
	if n := len(l.Lines()); n != maxLines {
		t.Errorf("len(Lines()) = %d, want %d", n, maxLines)
	}
}

func TestFileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scene.txt")
	l := NewAt(path)
	l.Log("one")
	l.Log("two")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("file has %d lines, want 2: %q", got, data)
	}
}

func TestSlogWritesRecords(t *testing.T) {
	l := NewAt("")
	log := l.Slog(slog.LevelInfo)

	log.Debug("hidden")
	log.Warn("texture missing", "path", "gradients/5.jpg")

	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("Lines() = %q, want one record", lines)
	}
	if !strings.Contains(lines[0], "level=WARN") || !strings.Contains(lines[0], "path=gradients/5.jpg") {
		t.Errorf("record = %q", lines[0])
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil).Enabled(context.Background(), slog.LevelError) {
		t.Error("OrDiscard(nil) should be disabled")
	}
	l := slog.Default()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}
