package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func startWatcher(t *testing.T, paths ...string) <-chan []string {
	t.Helper()
	w, err := New(paths, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) { changes <- changed })
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		w.Close()
	})
	return changes
}

func TestNewResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.proto")
	writeFile(t, a, "")
	writeFile(t, b, "")

	w, err := New([]string{b, a, a}, 0)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []string{a, b}, w.Files())
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "gateway.yaml")}, 0)
	assert.Error(t, err)
}

func TestRunReportsWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "gateway.yaml")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, cfg, "a")
	writeFile(t, other, "a")

	changes := startWatcher(t, cfg)

	writeFile(t, other, "b")
	writeFile(t, cfg, "b")
	writeFile(t, cfg, "c")

	select {
	case changed := <-changes:
		assert.Equal(t, []string{cfg}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRunCoalescesFiles(t *testing.T) {
	dir := t.TempDir()
	protos := filepath.Join(dir, "protos")
	require.NoError(t, os.Mkdir(protos, 0o755))
	cfg := filepath.Join(dir, "gateway.yaml")
	proto := filepath.Join(protos, "auth.proto")
	writeFile(t, cfg, "")
	writeFile(t, proto, "")

	changes := startWatcher(t, cfg, proto)

	writeFile(t, proto, "package auth;")
	writeFile(t, cfg, "metadata: {}")

	seen := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case changed := <-changes:
			for _, p := range changed {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("saw only %v", seen)
		}
	}
	assert.True(t, seen[cfg])
	assert.True(t, seen[proto])
}
