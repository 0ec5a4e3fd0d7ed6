package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_TriggersOnTrackedFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brothers.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alex\n"), 0644))

	var runs atomic.Int64
	fired := make(chan struct{}, 8)
	w := New([]string{path}, 20*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		fired <- struct{}{}
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond) // let the watch registration land
	require.NoError(t, os.WriteFile(path, []byte("Alex\nBob\n"), 0644))

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("regeneration never triggered")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duty_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0644))

	var runs atomic.Int64
	w := New([]string{path}, 100*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	if got := runs.Load(); got != 1 {
		t.Errorf("expected 1 debounced run, got %d", got)
	}
}

func TestWatcher_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "constraints.json")
	require.NoError(t, os.WriteFile(tracked, []byte("{}"), 0644))

	var runs atomic.Int64
	w := New([]string{tracked}, 20*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0644))

	time.Sleep(200 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	if got := runs.Load(); got != 0 {
		t.Errorf("expected no runs for untracked file, got %d", got)
	}
}
