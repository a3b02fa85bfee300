package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"tle_zone_assist/internal/assist"
)

func TestWatcherPollAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.py")
	if err := os.WriteFile(path, []byte("def f():"), 0o644); err != nil {
		t.Fatal(err)
	}
	buf := assist.NewBuffer("def f():")
	session := assist.NewSession(assist.Options{DebounceWindow: time.Hour})
	defer session.Close()
	w := newWatcher(path, buf, session, time.Millisecond)

	if err := os.WriteFile(path, []byte("def f():\n    return"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.poll()
	if buf.Text() != "def f():\n    return" {
		t.Fatalf("buffer = %q", buf.Text())
	}
	if pos, _ := buf.Position(); pos != (assist.Position{Line: 2, Column: 11}) {
		t.Fatalf("cursor = %+v, want end of file", pos)
	}
	if session.Code() != buf.Text() {
		t.Fatalf("session code = %q", session.Code())
	}

	buf.ExecuteEdits("test", []assist.Edit{{Range: assist.CollapsedRange(buf.End()), Text: " 1"}})
	w.flush()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "def f():\n    return 1" {
		t.Fatalf("file = %q", data)
	}

	w.poll()
	if buf.Text() != "def f():\n    return 1" {
		t.Fatalf("buffer = %q after flushing", buf.Text())
	}
}
