package core

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchDir_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)

	go func() {
		done <- WatchDir(ctx, dir, func() {
			calls.Add(1)
			changed <- struct{}{}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected onChange after write")
	}

	time.Sleep(3 * watchDebounce)
	if n := calls.Load(); n > 2 {
		t.Errorf("expected writes to be debounced, got %d calls", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchDir_MissingDir(t *testing.T) {
	err := WatchDir(context.Background(), filepath.Join(t.TempDir(), "missing"), func() {})
	if err == nil {
		t.Error("expected error for missing dir")
	}
}
