package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Errorf("Watch(a) again error = %v", err)
	}
	if n := len(w.WatchedFiles()); n != 2 {
		t.Errorf("WatchedFiles() = %d, want 2", n)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch(a) error = %v", err)
	}
	if err := w.Unwatch(a); err != ErrNotWatching {
		t.Errorf("Unwatch(a) again error = %v, want ErrNotWatching", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Errorf("Unwatch(b) error = %v", err)
	}
	if n := len(w.WatchedFiles()); n != 0 {
		t.Errorf("WatchedFiles() = %d, want 0", n)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "missing", "config.toml")); err == nil {
		t.Error("expected error watching file in missing directory")
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	events := make(chan Event, 8)
	w.OnChange(func(e Event) { events <- e })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Unwatched siblings are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"dark\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		if filepath.Base(e.Path) != "config.toml" {
			t.Errorf("event path = %q, want config.toml", e.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch("x.toml"); err != ErrWatcherClosed {
		t.Errorf("Watch after Close error = %v, want ErrWatcherClosed", err)
	}
}
