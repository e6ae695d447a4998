package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	writeFile(t, path, "[history]\ncapacity = 10\n")

	w, err := New(path, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	changes := make(chan string, 4)
	w.OnChange(func(p string) { changes <- p })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	writeFile(t, path, "[history]\ncapacity = 20\n")

	select {
	case p := <-changes:
		if filepath.Base(p) != "quill.toml" {
			t.Errorf("changed path = %q", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	writeFile(t, path, "a = 1\n")

	w, err := New(path, WithDebounce(150*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	changes := make(chan string, 16)
	w.OnChange(func(p string) { changes <- p })
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		writeFile(t, path, "a = 2\n")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	// The burst should have collapsed into a single notification.
	select {
	case <-changes:
		t.Error("burst produced more than one event")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	writeFile(t, path, "a = 1\n")

	w, err := New(path, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	changes := make(chan string, 4)
	w.OnChange(func(p string) { changes <- p })
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	writeFile(t, filepath.Join(dir, "other.toml"), "b = 2\n")

	select {
	case p := <-changes:
		t.Errorf("unexpected event for sibling file: %q", p)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	writeFile(t, path, "a = 1\n")

	w, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}

	if err := w.Start(); err != ErrClosed {
		t.Errorf("Start after Stop = %v, want ErrClosed", err)
	}
}

func TestWatcherHandlerPanicDoesNotKillLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	writeFile(t, path, "a = 1\n")

	w, err := New(path, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	changes := make(chan string, 4)
	w.OnChange(func(string) { panic("bad handler") })
	w.OnChange(func(p string) { changes <- p })
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	writeFile(t, path, "a = 2\n")

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("panicking handler stopped event delivery")
	}
}
