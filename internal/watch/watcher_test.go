// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func startWatcher(t *testing.T, w *Watcher) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	return func() error {
		stop()
		return <-errCh
	}
}

func TestWatcher_DebouncesWatchedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	presetsPath := filepath.Join(dir, "presets.toml")
	configPath := filepath.Join(dir, "config.cue")

	var (
		mu    sync.Mutex
		calls int
		got   []string
	)
	done := make(chan struct{})

	w, err := New(Config{
		Files:    []string{presetsPath, configPath},
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			got = append(got, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)

	for _, p := range []string{presetsPath, configPath, presetsPath, filepath.Join(dir, "other.txt")} {
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)

	if err := stop(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
	if !slices.Equal(got, []string{configPath, presetsPath}) {
		t.Errorf("changed = %v, want only the watched files, sorted", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 1)
	w, err := New(Config{
		Files:    []string{filepath.Join(dir, "presets.toml")},
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-fired:
		t.Errorf("unexpected callback for %v", changed)
	case <-time.After(400 * time.Millisecond):
	}
	if err := stop(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestWatcher_SkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "presets.toml")

	var (
		mu         sync.Mutex
		concurrent int
		maxSeen    int
		calls      int
	)
	secondDone := make(chan struct{})

	w, err := New(Config{
		Files:    []string{target},
		Debounce: 30 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			mu.Lock()
			concurrent++
			maxSeen = max(maxSeen, concurrent)
			calls++
			n := calls
			mu.Unlock()

			time.Sleep(150 * time.Millisecond)

			mu.Lock()
			concurrent--
			mu.Unlock()
			if n == 2 {
				close(secondDone)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)

	if err := os.WriteFile(target, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(80 * time.Millisecond)
	if err := os.WriteFile(target, []byte("2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-secondDone:
	case <-time.After(5 * time.Second):
		t.Fatal("pending change was not retried after the busy run")
	}
	if err := stop(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if maxSeen != 1 {
		t.Errorf("max concurrent callbacks = %d, want 1", maxSeen)
	}
}

func TestWatcher_CallbackErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "config.cue")
	calls := make(chan struct{}, 4)

	w, err := New(Config{
		Files:    []string{target},
		Debounce: 30 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			calls <- struct{}{}
			return errors.New("reload failed")
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)

	for i := range 2 {
		if err := os.WriteFile(target, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("callback %d not invoked", i+1)
		}
	}
	if err := stop(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); !errors.Is(err, ErrNoFiles) {
		t.Errorf("New(empty) error = %v, want ErrNoFiles", err)
	}

	missing := filepath.Join(t.TempDir(), "nope", "presets.toml")
	if _, err := New(Config{Files: []string{missing}}); err == nil {
		t.Error("New() with a missing directory should fail")
	}
}

func TestWatcher_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := filepath.Join(dir, "b.toml")
	a := filepath.Join(dir, "a.cue")
	w, err := New(Config{Files: []string{b, a, b}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })

	if got := w.Files(); !slices.Equal(got, []string{a, b}) {
		t.Errorf("Files() = %v", got)
	}
}

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "presets.toml")
	w, err := New(Config{Files: []string{target}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })

	tests := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"rename onto", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"unclean path", fsnotify.Event{Name: dir + "/./presets.toml", Op: fsnotify.Write}, true},
		{"sibling", fsnotify.Event{Name: filepath.Join(dir, "presets.toml.swp"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := w.relevant(tt.evt); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.evt, got, tt.want)
			}
		})
	}
}

func TestRun_Twice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Files: []string{filepath.Join(t.TempDir(), "x")}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() = %v, want nil on cancelled ctx", err)
	}
	if err := w.Run(ctx); err == nil {
		t.Error("second Run() should fail")
	}
}
