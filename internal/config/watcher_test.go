package config

import (
	"errors"
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

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edkit.toml")
	writeFile(t, path, "[clipboard]\ncapacity = 5\n")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(NewLoader(WithoutEnv()), path, func(cfg *Config) {
		changes <- cfg
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "[clipboard]\ncapacity = 7\n")

	// A reload may observe the truncated file before the new content lands.
	timeout := time.After(2 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Clipboard.Capacity == 7 {
				return
			}
		case <-timeout:
			t.Fatal("no reload with the new capacity")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edkit.toml")
	writeFile(t, path, "")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(NewLoader(WithoutEnv()), path, func(cfg *Config) {
		changes <- cfg
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	select {
	case <-changes:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edkit.toml")
	writeFile(t, path, "")

	errs := make(chan error, 4)
	w, err := NewWatcher(NewLoader(WithoutEnv()), path, func(*Config) {}, WithDebounce(10*time.Millisecond), WithErrorHandler(func(err error) {
		errs <- err
	}))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "[clipboard]\ncapacity = 0\n")

	select {
	case err := <-errs:
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported")
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edkit.toml")

	w, err := NewWatcher(NewLoader(WithoutEnv()), path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
}
