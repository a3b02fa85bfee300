package main

import (
	"context"
	"log"
	"os"
	"sync"
	"time"
	"tle_zone_assist/internal/assist"
)

// watcher mirrors a file into the editor buffer and writes accepted
// suggestions back.
type watcher struct {
	path     string
	buf      *assist.Buffer
	session  *assist.Session
	interval time.Duration

	mu   sync.Mutex
	last string
}

func newWatcher(path string, buf *assist.Buffer, session *assist.Session, interval time.Duration) *watcher {
	return &watcher{path: path, buf: buf, session: session, interval: interval, last: buf.Text()}
}

func (w *watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *watcher) poll() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Printf("WARN: read %s: %v", w.path, err)
		return
	}
	text := string(data)

	w.mu.Lock()
	changed := text != w.last
	w.last = text
	w.mu.Unlock()
	if !changed {
		return
	}

	w.buf.Reset(text)
	w.buf.SetPosition(w.buf.End())
	w.session.SetCode(text)
}

// flush writes the buffer to disk after an accepted suggestion.
func (w *watcher) flush() {
	text := w.buf.Text()
	w.mu.Lock()
	w.last = text
	w.mu.Unlock()

	if err := os.WriteFile(w.path, []byte(text), 0o644); err != nil {
		log.Printf("ERROR: write %s: %v", w.path, err)
		return
	}
	w.session.SetCode(text)
}
